package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

type reportService interface {
	SearchTranslations(ctx context.Context, params dashboard.SearchParams) (dashboard.Page[dashboard.TranslationListItem], error)
	Statistics(ctx context.Context, filter dashboard.StatisticsFilter) (dashboard.Statistics, error)
	ExportCSV(ctx context.Context, params dashboard.SearchParams) (dashboard.Export, error)
	FocusState(id string) (dashboard.FocusSummary, error)
	FocusMemory(ctx context.Context, id string) ([]dashboard.Translation, error)
}

// SearchQuery runs a translation search.
type SearchQuery struct {
	service reportService
}

func NewSearchQuery(service reportService) *SearchQuery {
	return &SearchQuery{service: service}
}

var _ gocommand.Querier[dashboard.SearchParams, dashboard.Page[dashboard.TranslationListItem]] = (*SearchQuery)(nil)

func (q *SearchQuery) Query(ctx context.Context, params dashboard.SearchParams) (dashboard.Page[dashboard.TranslationListItem], error) {
	return q.service.SearchTranslations(ctx, params)
}

// StatisticsQuery fetches the statistics aggregate.
type StatisticsQuery struct {
	service reportService
}

func NewStatisticsQuery(service reportService) *StatisticsQuery {
	return &StatisticsQuery{service: service}
}

var _ gocommand.Querier[dashboard.StatisticsFilter, dashboard.Statistics] = (*StatisticsQuery)(nil)

func (q *StatisticsQuery) Query(ctx context.Context, filter dashboard.StatisticsFilter) (dashboard.Statistics, error) {
	return q.service.Statistics(ctx, filter)
}

// ExportQuery renders the CSV download for a search.
type ExportQuery struct {
	service reportService
}

func NewExportQuery(service reportService) *ExportQuery {
	return &ExportQuery{service: service}
}

var _ gocommand.Querier[dashboard.SearchParams, dashboard.Export] = (*ExportQuery)(nil)

func (q *ExportQuery) Query(ctx context.Context, params dashboard.SearchParams) (dashboard.Export, error) {
	return q.service.ExportCSV(ctx, params)
}

// FocusInput identifies a running focus session.
type FocusInput struct {
	SessionID string `json:"sessionId"`
}

// FocusView is a focus session together with the other-locale translations
// of its current key.
type FocusView struct {
	Session dashboard.FocusSummary  `json:"session"`
	Memory  []dashboard.Translation `json:"memory"`
}

// FocusQuery reads the state of a focus session.
type FocusQuery struct {
	service reportService
}

func NewFocusQuery(service reportService) *FocusQuery {
	return &FocusQuery{service: service}
}

var _ gocommand.Querier[FocusInput, FocusView] = (*FocusQuery)(nil)

func (q *FocusQuery) Query(ctx context.Context, input FocusInput) (FocusView, error) {
	if input.SessionID == "" {
		return FocusView{}, errors.New("focus query requires session id")
	}
	summary, err := q.service.FocusState(input.SessionID)
	if err != nil {
		return FocusView{}, err
	}
	memory, err := q.service.FocusMemory(ctx, input.SessionID)
	if err != nil {
		return FocusView{}, err
	}
	return FocusView{Session: summary, Memory: memory}, nil
}

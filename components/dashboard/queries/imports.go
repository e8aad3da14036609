package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

type draftService interface {
	OpenDraft(ctx context.Context, projectID, keyID string) (*dashboard.TranslationDraft, dashboard.KeyWithFeature, error)
}

// DraftInput identifies the key whose editor draft is opened.
type DraftInput struct {
	ProjectID string `json:"projectId,omitempty"`
	KeyID     string `json:"keyId"`
}

// DraftQuery opens a fresh editor draft.
type DraftQuery struct {
	service draftService
}

func NewDraftQuery(service draftService) *DraftQuery {
	return &DraftQuery{service: service}
}

var _ gocommand.Querier[DraftInput, *dashboard.TranslationDraft] = (*DraftQuery)(nil)

func (q *DraftQuery) Query(ctx context.Context, input DraftInput) (*dashboard.TranslationDraft, error) {
	if input.KeyID == "" {
		return nil, errors.New("draft query requires key id")
	}
	draft, _, err := q.service.OpenDraft(ctx, input.ProjectID, input.KeyID)
	return draft, err
}

type importPreviewService interface {
	ImportColumns(ctx context.Context, projectID string, session *dashboard.ImportSession) ([]dashboard.ColumnStatus, error)
	Languages(ctx context.Context, projectID string) ([]dashboard.Language, error)
}

// ImportPreviewInput is a parsed upload awaiting confirmation.
type ImportPreviewInput struct {
	ProjectID string
	Session   *dashboard.ImportSession
	Rows      int
}

// ImportPreview shows the first rows, which columns will be uploaded, and
// header renames suggested from the project's languages.
type ImportPreview struct {
	Preview     dashboard.CSVPreview     `json:"preview"`
	Columns     []dashboard.ColumnStatus `json:"columns"`
	Suggestions map[int]string           `json:"suggestions"`
}

// ImportPreviewQuery evaluates an upload before it is sent.
type ImportPreviewQuery struct {
	service importPreviewService
}

func NewImportPreviewQuery(service importPreviewService) *ImportPreviewQuery {
	return &ImportPreviewQuery{service: service}
}

var _ gocommand.Querier[ImportPreviewInput, ImportPreview] = (*ImportPreviewQuery)(nil)

func (q *ImportPreviewQuery) Query(ctx context.Context, input ImportPreviewInput) (ImportPreview, error) {
	if input.Session == nil {
		return ImportPreview{}, dashboard.ErrCSVEmpty
	}
	languages, err := q.service.Languages(ctx, input.ProjectID)
	if err != nil {
		return ImportPreview{}, err
	}
	columns, err := q.service.ImportColumns(ctx, input.ProjectID, input.Session)
	if err != nil {
		return ImportPreview{}, err
	}
	return ImportPreview{
		Preview:     input.Session.Preview(input.Rows),
		Columns:     columns,
		Suggestions: input.Session.SuggestMapping(languages),
	}, nil
}

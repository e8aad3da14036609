package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

type pageService interface {
	DashboardPayload(ctx context.Context, viewer dashboard.ViewerContext, featureID string) (dashboard.DashboardView, error)
	EditorPayload(ctx context.Context, viewer dashboard.ViewerContext, keyID string, filter dashboard.DraftFilter) (dashboard.EditorView, error)
}

// DashboardInput selects the statistics page for a viewer.
type DashboardInput struct {
	Viewer    dashboard.ViewerContext
	FeatureID string
}

// DashboardQuery builds the statistics page payload.
type DashboardQuery struct {
	service pageService
}

func NewDashboardQuery(service pageService) *DashboardQuery {
	return &DashboardQuery{service: service}
}

var _ gocommand.Querier[DashboardInput, dashboard.DashboardView] = (*DashboardQuery)(nil)

func (q *DashboardQuery) Query(ctx context.Context, input DashboardInput) (dashboard.DashboardView, error) {
	return q.service.DashboardPayload(ctx, input.Viewer, input.FeatureID)
}

// EditorInput opens the editor of one key.
type EditorInput struct {
	Viewer dashboard.ViewerContext
	KeyID  string
	Filter dashboard.DraftFilter
}

// EditorQuery builds the translation editor payload.
type EditorQuery struct {
	service pageService
}

func NewEditorQuery(service pageService) *EditorQuery {
	return &EditorQuery{service: service}
}

var _ gocommand.Querier[EditorInput, dashboard.EditorView] = (*EditorQuery)(nil)

func (q *EditorQuery) Query(ctx context.Context, input EditorInput) (dashboard.EditorView, error) {
	return q.service.EditorPayload(ctx, input.Viewer, input.KeyID, input.Filter)
}

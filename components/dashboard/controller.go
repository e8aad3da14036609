package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"golang.org/x/text/language"
)

// PageName names an HTML page of the dashboard.
type PageName string

const (
	PageDashboard    PageName = "dashboard"
	PageProjects     PageName = "projects"
	PageProject      PageName = "project"
	PageFeatures     PageName = "features"
	PageFeature      PageName = "feature"
	PageLanguages    PageName = "languages"
	PageTranslations PageName = "translations"
	PageEditor       PageName = "editor"
	PageFocus        PageName = "focus"
	PageImport       PageName = "import"
)

// Pages lists every page in navigation order.
var Pages = []PageName{
	PageDashboard, PageProjects, PageProject, PageFeatures, PageFeature,
	PageLanguages, PageTranslations, PageEditor, PageFocus, PageImport,
}

// Template returns the template file rendered for p.
func (p PageName) Template() string { return string(p) + ".html" }

var (
	errUnknownPage     = errors.New("dashboard: unknown page")
	errRendererMissing = errors.New("dashboard: renderer not configured")
)

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	Service  *Service
	Renderer Renderer
	Charts   *StatisticsCharts
	// Locale drives number formatting; English when empty.
	Locale   string
	BasePath string
	Now      func() time.Time
}

// Controller turns service reads into page payloads and renders them.
type Controller struct {
	service  *Service
	renderer Renderer
	charts   *StatisticsCharts
	numbers  NumberFormatter
	basePath string
	now      func() time.Time
}

// NewController wires the service into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Charts == nil {
		opts.Charts = NewStatisticsCharts(ChartOptions{})
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.BasePath == "" {
		opts.BasePath = "/admin"
	}
	tag := language.English
	if opts.Locale != "" {
		if parsed, err := language.Parse(opts.Locale); err == nil {
			tag = parsed
		}
	}
	return &Controller{
		service:  opts.Service,
		renderer: opts.Renderer,
		charts:   opts.Charts,
		numbers:  NewNumberFormatter(tag),
		basePath: opts.BasePath,
		now:      opts.Now,
	}
}

// Service returns the wrapped service.
func (c *Controller) Service() *Service { return c.service }

func (c *Controller) projectFor(viewer ViewerContext) string {
	if viewer.ProjectID != "" {
		return viewer.ProjectID
	}
	if c.service == nil {
		return ""
	}
	return c.service.SelectedProject()
}

// DashboardPayload assembles the statistics page, optionally narrowed to one
// feature.
func (c *Controller) DashboardPayload(ctx context.Context, viewer ViewerContext, featureID string) (DashboardView, error) {
	if c.service == nil {
		return DashboardView{}, ErrMissingBackend
	}
	if featureID == AllFilter {
		featureID = ""
	}
	projectID := c.projectFor(viewer)
	stats, err := c.service.Statistics(ctx, StatisticsFilter{ProjectID: projectID, FeatureID: featureID})
	if err != nil {
		return DashboardView{}, err
	}
	view := BuildDashboardView(stats, c.numbers, c.now())
	view.ProjectID = projectID
	view.FeatureID = featureID
	if view.Features, err = c.service.Features(ctx, projectID); err != nil {
		return DashboardView{}, err
	}
	if view.Charts, err = c.charts.Render(stats); err != nil {
		return DashboardView{}, fmt.Errorf("dashboard: render charts: %w", err)
	}
	return view, nil
}

// SearchPayload runs the translation search described by query.
func (c *Controller) SearchPayload(ctx context.Context, viewer ViewerContext, query url.Values) (SearchView, error) {
	if c.service == nil {
		return SearchView{}, ErrMissingBackend
	}
	state := SearchStateFromQuery(query)
	defer state.Stop()
	if viewer.ProjectID != "" || query.Get("projectId") == "" {
		state.SetProject(c.projectFor(viewer))
	}
	page, _, err := c.service.RunSearch(ctx, state)
	if err != nil {
		return SearchView{}, err
	}
	params := state.Params()
	view := BuildSearchView(page, params, c.now())
	if view.Features, err = c.service.Features(ctx, params.ProjectID); err != nil {
		return SearchView{}, err
	}
	return view, nil
}

// EditorPayload opens a fresh draft of keyID.
func (c *Controller) EditorPayload(ctx context.Context, viewer ViewerContext, keyID string, filter DraftFilter) (EditorView, error) {
	if c.service == nil {
		return EditorView{}, ErrMissingBackend
	}
	draft, key, err := c.service.OpenDraft(ctx, c.projectFor(viewer), keyID)
	if err != nil {
		return EditorView{}, err
	}
	return BuildEditorView(key, draft, filter), nil
}

// ProjectsView lists projects with the current selection.
type ProjectsView struct {
	Projects []Project `json:"projects"`
	Selected string    `json:"selected,omitempty"`
}

func (c *Controller) ProjectsPayload(ctx context.Context) (ProjectsView, error) {
	if c.service == nil {
		return ProjectsView{}, ErrMissingBackend
	}
	projects, err := c.service.Projects(ctx)
	if err != nil {
		return ProjectsView{}, err
	}
	return ProjectsView{Projects: projects, Selected: c.service.SelectedProject()}, nil
}

// FeaturesView lists the features of the selected project.
type FeaturesView struct {
	ProjectID string    `json:"projectId,omitempty"`
	Features  []Feature `json:"features"`
}

func (c *Controller) FeaturesPayload(ctx context.Context, viewer ViewerContext) (FeaturesView, error) {
	if c.service == nil {
		return FeaturesView{}, ErrMissingBackend
	}
	projectID := c.projectFor(viewer)
	features, err := c.service.Features(ctx, projectID)
	if err != nil {
		return FeaturesView{}, err
	}
	return FeaturesView{ProjectID: projectID, Features: features}, nil
}

// LanguagesView lists the languages of the selected project.
type LanguagesView struct {
	ProjectID string     `json:"projectId,omitempty"`
	Languages []Language `json:"languages"`
	Active    int        `json:"active"`
}

func (c *Controller) LanguagesPayload(ctx context.Context, viewer ViewerContext) (LanguagesView, error) {
	if c.service == nil {
		return LanguagesView{}, ErrMissingBackend
	}
	projectID := c.projectFor(viewer)
	languages, err := c.service.Languages(ctx, projectID)
	if err != nil {
		return LanguagesView{}, err
	}
	view := LanguagesView{ProjectID: projectID, Languages: languages}
	for _, l := range languages {
		if l.IsActive {
			view.Active++
		}
	}
	return view, nil
}

// RenderPage builds the payload of page and renders its template into out.
func (c *Controller) RenderPage(ctx context.Context, page PageName, viewer ViewerContext, query url.Values, out io.Writer) error {
	if c.renderer == nil {
		return errRendererMissing
	}
	var (
		view any
		err  error
	)
	switch page {
	case PageDashboard:
		view, err = c.DashboardPayload(ctx, viewer, query.Get("featureId"))
	case PageProjects:
		view, err = c.ProjectsPayload(ctx)
	case PageProject:
		view, err = c.ProjectPayload(ctx, viewer, query.Get("id"))
	case PageFeatures:
		view, err = c.FeaturesPayload(ctx, viewer)
	case PageFeature:
		view, err = c.FeaturePayload(ctx, query.Get("id"))
	case PageLanguages:
		view, err = c.LanguagesPayload(ctx, viewer)
	case PageFocus:
		view, err = c.FocusPayload(ctx, viewer, query.Get("session"))
	case PageImport:
		view, err = c.ImportPayload(ctx, viewer, nil)
	case PageTranslations:
		view, err = c.SearchPayload(ctx, viewer, query)
	case PageEditor:
		view, err = c.EditorPayload(ctx, viewer, query.Get("keyId"), ParseDraftFilter(query.Get("filter")))
	default:
		return fmt.Errorf("%w: %s", errUnknownPage, page)
	}
	if err != nil {
		return err
	}
	return c.render(page, viewer, view, out)
}

// RenderImport runs one step of the import page: a preview of upload with
// its column renames, or the upload itself when upload.Commit is set.
func (c *Controller) RenderImport(ctx context.Context, viewer ViewerContext, upload ImportUpload, out io.Writer) error {
	if c.renderer == nil {
		return errRendererMissing
	}
	view, err := c.ImportPayload(ctx, viewer, &upload)
	if err != nil {
		return err
	}
	return c.render(PageImport, viewer, view, out)
}

func (c *Controller) render(page PageName, viewer ViewerContext, view any, out io.Writer) error {
	_, err := c.renderer.Render(page.Template(), map[string]any{
		"page":      string(page),
		"viewer":    viewer,
		"view":      view,
		"base_path": c.basePath,
		"project":   c.projectFor(viewer),
	}, out)
	return err
}

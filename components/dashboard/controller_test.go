package dashboard_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

type stubRenderer struct {
	lastTemplate string
	lastPayload  map[string]any
	err          error
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.lastTemplate = name
	if payload, ok := data.(map[string]any); ok {
		r.lastPayload = payload
	}
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("<html></html>"))
	}
	return "<html></html>", r.err
}

func newController(t *testing.T, renderer dashboard.Renderer) *dashboard.Controller {
	t.Helper()
	service, _ := newService(t, dashboard.Options{})
	return dashboard.NewController(dashboard.ControllerOptions{
		Service:  service,
		Renderer: renderer,
		BasePath: "/l10n",
	})
}

func TestControllerRenderDashboard(t *testing.T) {
	renderer := &stubRenderer{}
	controller := newController(t, renderer)

	var buf bytes.Buffer
	err := controller.RenderPage(context.Background(), dashboard.PageDashboard, dashboard.ViewerContext{UserID: "user"}, url.Values{}, &buf)
	if err != nil {
		t.Fatalf("RenderPage returned error: %v", err)
	}
	if renderer.lastTemplate != "dashboard.html" {
		t.Fatalf("expected dashboard template to render, got %s", renderer.lastTemplate)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected renderer output")
	}
	assert.Equal(t, "/l10n", renderer.lastPayload["base_path"])
	assert.Equal(t, "p1", renderer.lastPayload["project"])
	view, ok := renderer.lastPayload["view"].(dashboard.DashboardView)
	require.True(t, ok, "expected dashboard view payload")
	assert.Equal(t, "p1", view.ProjectID)
	assert.Len(t, view.Features, 1)
	assert.NotEmpty(t, view.Charts.Overall)
}

func TestControllerRenderTranslations(t *testing.T) {
	renderer := &stubRenderer{}
	controller := newController(t, renderer)

	query := url.Values{"q": {"checkout"}, "locale": {"en"}}
	err := controller.RenderPage(context.Background(), dashboard.PageTranslations, dashboard.ViewerContext{}, query, io.Discard)
	require.NoError(t, err)

	view := renderer.lastPayload["view"].(dashboard.SearchView)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "checkout.title", view.Rows[0].KeyName)
	assert.Equal(t, "p1", view.Params.ProjectID)
	assert.True(t, view.HasActiveFilters)
}

func TestControllerRenderEditor(t *testing.T) {
	renderer := &stubRenderer{}
	controller := newController(t, renderer)

	query := url.Values{"keyId": {"k1"}, "filter": {"empty"}}
	err := controller.RenderPage(context.Background(), dashboard.PageEditor, dashboard.ViewerContext{}, query, io.Discard)
	require.NoError(t, err)

	view := renderer.lastPayload["view"].(dashboard.EditorView)
	assert.Equal(t, dashboard.FilterEmpty, view.Filter)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "es", view.Rows[0].Locale)
	assert.Equal(t, 50, view.Percent)
}

func TestControllerListPages(t *testing.T) {
	renderer := &stubRenderer{}
	controller := newController(t, renderer)
	ctx := context.Background()

	projects, err := controller.ProjectsPayload(ctx)
	require.NoError(t, err)
	assert.Equal(t, "p1", projects.Selected)

	languages, err := controller.LanguagesPayload(ctx, dashboard.ViewerContext{})
	require.NoError(t, err)
	assert.Len(t, languages.Languages, 3)
	assert.Equal(t, 2, languages.Active)

	features, err := controller.FeaturesPayload(ctx, dashboard.ViewerContext{ProjectID: "other"})
	require.NoError(t, err)
	assert.Equal(t, "other", features.ProjectID)
	assert.Empty(t, features.Features)
}

func TestControllerRenderErrors(t *testing.T) {
	err := newController(t, nil).RenderPage(context.Background(), dashboard.PageDashboard, dashboard.ViewerContext{}, nil, io.Discard)
	if err == nil {
		t.Fatalf("expected missing renderer error")
	}

	err = newController(t, &stubRenderer{}).RenderPage(context.Background(), dashboard.PageName("nope"), dashboard.ViewerContext{}, nil, io.Discard)
	if err == nil {
		t.Fatalf("expected unknown page error")
	}

	failing := &stubRenderer{err: errors.New("template exploded")}
	err = newController(t, failing).RenderPage(context.Background(), dashboard.PageProjects, dashboard.ViewerContext{}, nil, io.Discard)
	require.EqualError(t, err, "template exploded")

	bare := dashboard.NewController(dashboard.ControllerOptions{})
	_, err = bare.DashboardPayload(context.Background(), dashboard.ViewerContext{}, "")
	require.ErrorIs(t, err, dashboard.ErrMissingBackend)
}

func TestEmbeddedTemplatesRenderEveryPage(t *testing.T) {
	t.Chdir(t.TempDir())

	renderer, err := dashboard.NewTemplateRenderer("")
	require.NoError(t, err)
	controller := newController(t, renderer)

	queries := map[dashboard.PageName]url.Values{
		dashboard.PageFeature: {"id": {"f1"}},
		dashboard.PageEditor:  {"keyId": {"k1"}},
	}
	for _, page := range dashboard.Pages {
		t.Run(string(page), func(t *testing.T) {
			var buf bytes.Buffer
			err := controller.RenderPage(context.Background(), page, dashboard.ViewerContext{}, queries[page], &buf)
			if err != nil {
				t.Fatalf("render %s: %v", page, err)
			}
			assert.NotEmpty(t, buf.String())
		})
	}
}

func TestControllerProjectAndFeaturePayloads(t *testing.T) {
	controller := newController(t, &stubRenderer{})
	ctx := context.Background()

	project, err := controller.ProjectPayload(ctx, dashboard.ViewerContext{}, "")
	require.NoError(t, err)
	assert.Equal(t, "Web", project.Project.Name)
	assert.True(t, project.Selected)
	assert.Len(t, project.Features, 1)
	assert.Equal(t, 2, project.Missing)

	_, err = controller.FeaturePayload(ctx, "")
	var validation *dashboard.ValidationError
	require.ErrorAs(t, err, &validation)

	feature, err := controller.FeaturePayload(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "checkout", feature.Feature.Name)
	assert.Len(t, feature.Keys, 2)
}

func TestControllerFocusPayload(t *testing.T) {
	service, _ := newService(t, dashboard.Options{})
	controller := dashboard.NewController(dashboard.ControllerOptions{Service: service, Renderer: &stubRenderer{}})
	ctx := context.Background()

	expired, err := controller.FocusPayload(ctx, dashboard.ViewerContext{}, "gone")
	require.NoError(t, err)
	assert.True(t, expired.Expired)
	assert.Nil(t, expired.Session)
	assert.Len(t, expired.Languages, 2, "only active languages can be focused")

	session, err := service.StartFocus(ctx, dashboard.FocusRequest{Locale: "es"})
	require.NoError(t, err)
	running, err := controller.FocusPayload(ctx, dashboard.ViewerContext{}, session.ID)
	require.NoError(t, err)
	require.NotNil(t, running.Session)
	assert.Equal(t, 2, running.Session.Total)
	assert.NotNil(t, running.Memory)
}

func TestControllerImportPayload(t *testing.T) {
	controller := newController(t, &stubRenderer{})
	ctx := context.Background()
	content := []byte("key,Spanish\ncheckout.pay,Pagar\n")

	form, err := controller.ImportPayload(ctx, dashboard.ViewerContext{}, nil)
	require.NoError(t, err)
	assert.Nil(t, form.Preview)
	assert.Len(t, form.Features, 1)

	preview, err := controller.ImportPayload(ctx, dashboard.ViewerContext{}, &dashboard.ImportUpload{FeatureID: "f1", Content: content})
	require.NoError(t, err)
	require.NotNil(t, preview.Preview)
	assert.Equal(t, 1, preview.Preview.Kept)
	assert.Equal(t, "es", preview.Preview.Columns[1].Suggest)
	assert.Nil(t, preview.Result)

	rejected, err := controller.ImportPayload(ctx, dashboard.ViewerContext{}, &dashboard.ImportUpload{
		FeatureID: "f1",
		Content:   []byte("Spanish,notes\nPagar,x\n"),
		Commit:    true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rejected.Error)
	assert.NotNil(t, rejected.Preview, "failed uploads fall back to the preview")

	done, err := controller.ImportPayload(ctx, dashboard.ViewerContext{}, &dashboard.ImportUpload{
		FeatureID: "f1",
		Content:   content,
		Mapping:   map[string]string{"Spanish": "es"},
		Commit:    true,
	})
	require.NoError(t, err)
	require.NotNil(t, done.Result)
	assert.Equal(t, 1, done.Result.Created)
	assert.Empty(t, done.Error)
}

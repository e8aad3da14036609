package queries

import (
	"context"
	"errors"
	"testing"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

type stubCatalog struct {
	calls map[string]int
}

func newStubCatalog() *stubCatalog { return &stubCatalog{calls: map[string]int{}} }

func (s *stubCatalog) Projects(context.Context) ([]dashboard.Project, error) {
	s.calls["Projects"]++
	return []dashboard.Project{{ID: "p1"}}, nil
}

func (s *stubCatalog) Features(_ context.Context, projectID string) ([]dashboard.Feature, error) {
	s.calls["Features"]++
	return []dashboard.Feature{{ID: "f1", ProjectID: projectID}}, nil
}

func (s *stubCatalog) Keys(context.Context, string) ([]dashboard.Key, error) {
	s.calls["Keys"]++
	return nil, nil
}

func (s *stubCatalog) Key(_ context.Context, id string) (dashboard.KeyWithFeature, error) {
	s.calls["Key"]++
	return dashboard.KeyWithFeature{Key: dashboard.Key{ID: id}}, nil
}

func (s *stubCatalog) Languages(context.Context, string) ([]dashboard.Language, error) {
	s.calls["Languages"]++
	return []dashboard.Language{{Locale: "en", IsActive: true}, {Locale: "fr"}}, nil
}

func (s *stubCatalog) ActiveLanguages(context.Context, string) ([]dashboard.Language, error) {
	s.calls["ActiveLanguages"]++
	return []dashboard.Language{{Locale: "en", IsActive: true}}, nil
}

func (s *stubCatalog) TranslationsForKey(context.Context, string) ([]dashboard.Translation, error) {
	s.calls["TranslationsForKey"]++
	return nil, nil
}

func TestCatalogQueries(t *testing.T) {
	service := newStubCatalog()
	ctx := context.Background()

	if _, err := NewProjectsQuery(service).Query(ctx, ProjectsInput{}); err != nil {
		t.Fatalf("projects: %v", err)
	}
	features, err := NewFeaturesQuery(service).Query(ctx, FeaturesInput{ProjectID: "p1"})
	if err != nil {
		t.Fatalf("features: %v", err)
	}
	if features[0].ProjectID != "p1" {
		t.Fatalf("expected project scope to pass through, got %#v", features)
	}
	if _, err := NewKeysQuery(service).Query(ctx, KeysInput{FeatureID: "f1"}); err != nil {
		t.Fatalf("keys: %v", err)
	}
	key, err := NewKeyQuery(service).Query(ctx, KeyInput{ID: "k1"})
	if err != nil || key.ID != "k1" {
		t.Fatalf("key: %#v %v", key, err)
	}
	if _, err := NewTranslationsQuery(service).Query(ctx, TranslationsInput{KeyID: "k1"}); err != nil {
		t.Fatalf("translations: %v", err)
	}
	for _, name := range []string{"Projects", "Features", "Keys", "Key", "TranslationsForKey"} {
		if service.calls[name] != 1 {
			t.Fatalf("expected 1 %s call, got %d", name, service.calls[name])
		}
	}
}

func TestLanguagesQueryActiveOnly(t *testing.T) {
	service := newStubCatalog()
	query := NewLanguagesQuery(service)
	all, err := query.Query(context.Background(), LanguagesInput{})
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	active, err := query.Query(context.Background(), LanguagesInput{ActiveOnly: true})
	if err != nil {
		t.Fatalf("active languages: %v", err)
	}
	if len(all) != 2 || len(active) != 1 {
		t.Fatalf("unexpected results %d/%d", len(all), len(active))
	}
	if service.calls["ActiveLanguages"] != 1 {
		t.Fatalf("expected ActiveLanguages call")
	}
}

type stubReports struct {
	focusErr error
}

func (s *stubReports) SearchTranslations(_ context.Context, params dashboard.SearchParams) (dashboard.Page[dashboard.TranslationListItem], error) {
	return dashboard.Page[dashboard.TranslationListItem]{Meta: dashboard.PaginationMeta{Page: params.Page}}, nil
}

func (s *stubReports) Statistics(context.Context, dashboard.StatisticsFilter) (dashboard.Statistics, error) {
	return dashboard.Statistics{TotalTranslations: 12}, nil
}

func (s *stubReports) ExportCSV(context.Context, dashboard.SearchParams) (dashboard.Export, error) {
	return dashboard.Export{Filename: "translations_all_2024-01-02.csv"}, nil
}

func (s *stubReports) FocusState(id string) (dashboard.FocusSummary, error) {
	if s.focusErr != nil {
		return dashboard.FocusSummary{}, s.focusErr
	}
	return dashboard.FocusSummary{ID: id, Locale: "es"}, nil
}

func (s *stubReports) FocusMemory(context.Context, string) ([]dashboard.Translation, error) {
	return []dashboard.Translation{{Locale: "en", Value: "Hello"}}, nil
}

func TestReportQueries(t *testing.T) {
	service := &stubReports{}
	ctx := context.Background()
	page, err := NewSearchQuery(service).Query(ctx, dashboard.SearchParams{Page: 3})
	if err != nil || page.Meta.Page != 3 {
		t.Fatalf("search: %#v %v", page.Meta, err)
	}
	stats, err := NewStatisticsQuery(service).Query(ctx, dashboard.StatisticsFilter{})
	if err != nil || stats.TotalTranslations != 12 {
		t.Fatalf("statistics: %#v %v", stats, err)
	}
	export, err := NewExportQuery(service).Query(ctx, dashboard.SearchParams{})
	if err != nil || export.Filename == "" {
		t.Fatalf("export: %#v %v", export, err)
	}
}

func TestFocusQuery(t *testing.T) {
	service := &stubReports{}
	view, err := NewFocusQuery(service).Query(context.Background(), FocusInput{SessionID: "s1"})
	if err != nil {
		t.Fatalf("focus: %v", err)
	}
	if view.Session.ID != "s1" || len(view.Memory) != 1 {
		t.Fatalf("unexpected view %#v", view)
	}

	if _, err := NewFocusQuery(service).Query(context.Background(), FocusInput{}); err == nil {
		t.Fatalf("expected error without session id")
	}
	service.focusErr = dashboard.ErrFocusNotFound
	if _, err := NewFocusQuery(service).Query(context.Background(), FocusInput{SessionID: "gone"}); !errors.Is(err, dashboard.ErrFocusNotFound) {
		t.Fatalf("expected ErrFocusNotFound, got %v", err)
	}
}

type stubPages struct{ viewer dashboard.ViewerContext }

func (s *stubPages) DashboardPayload(_ context.Context, viewer dashboard.ViewerContext, featureID string) (dashboard.DashboardView, error) {
	s.viewer = viewer
	return dashboard.DashboardView{FeatureID: featureID}, nil
}

func (s *stubPages) EditorPayload(_ context.Context, _ dashboard.ViewerContext, keyID string, filter dashboard.DraftFilter) (dashboard.EditorView, error) {
	return dashboard.EditorView{Key: dashboard.KeyWithFeature{Key: dashboard.Key{ID: keyID}}, Filter: filter}, nil
}

func TestPageQueries(t *testing.T) {
	service := &stubPages{}
	view, err := NewDashboardQuery(service).Query(context.Background(), DashboardInput{
		Viewer:    dashboard.ViewerContext{UserID: "u1"},
		FeatureID: "f1",
	})
	if err != nil || view.FeatureID != "f1" || service.viewer.UserID != "u1" {
		t.Fatalf("dashboard: %#v %v", view, err)
	}
	editor, err := NewEditorQuery(service).Query(context.Background(), EditorInput{KeyID: "k1", Filter: dashboard.FilterEmpty})
	if err != nil || editor.Key.ID != "k1" || editor.Filter != dashboard.FilterEmpty {
		t.Fatalf("editor: %#v %v", editor, err)
	}
}

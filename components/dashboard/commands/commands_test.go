package commands

import (
	"context"
	"errors"
	"testing"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

type stubTelemetry struct {
	events []string
}

func (s *stubTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	s.events = append(s.events, event)
}

type stubService struct {
	calls    map[string]int
	err      error
	selected string
}

func newStubService() *stubService {
	return &stubService{calls: map[string]int{}}
}

func (s *stubService) hit(_ context.Context, name string) error {
	s.calls[name]++
	return s.err
}

func (s *stubService) CreateProject(ctx context.Context, input dashboard.CreateProjectInput) (dashboard.Project, error) {
	return dashboard.Project{ID: "p1", Name: input.Name}, s.hit(ctx, "CreateProject")
}

func (s *stubService) UpdateProject(ctx context.Context, id string, _ dashboard.UpdateProjectInput) (dashboard.Project, error) {
	return dashboard.Project{ID: id}, s.hit(ctx, "UpdateProject")
}

func (s *stubService) DeleteProject(ctx context.Context, _ string) error {
	return s.hit(ctx, "DeleteProject")
}

func (s *stubService) SelectProject(ctx context.Context, id string) error {
	s.selected = id
	return s.hit(ctx, "SelectProject")
}

func (s *stubService) CreateFeature(ctx context.Context, input dashboard.CreateFeatureInput) (dashboard.Feature, error) {
	return dashboard.Feature{ID: "f1", Name: input.Name, ProjectID: input.ProjectID}, s.hit(ctx, "CreateFeature")
}

func (s *stubService) UpdateFeature(ctx context.Context, id string, _ dashboard.UpdateFeatureInput) (dashboard.Feature, error) {
	return dashboard.Feature{ID: id}, s.hit(ctx, "UpdateFeature")
}

func (s *stubService) DeleteFeature(ctx context.Context, _ string) error {
	return s.hit(ctx, "DeleteFeature")
}

func (s *stubService) CreateKey(ctx context.Context, input dashboard.CreateKeyInput) (dashboard.Key, error) {
	return dashboard.Key{ID: "k1", Key: input.Key}, s.hit(ctx, "CreateKey")
}

func (s *stubService) UpdateKey(ctx context.Context, id string, _ dashboard.UpdateKeyInput) (dashboard.Key, error) {
	return dashboard.Key{ID: id}, s.hit(ctx, "UpdateKey")
}

func (s *stubService) DeleteKey(ctx context.Context, _, _ string) error {
	return s.hit(ctx, "DeleteKey")
}

func (s *stubService) CreateLanguage(ctx context.Context, input dashboard.CreateLanguageInput) (dashboard.Language, error) {
	return dashboard.Language{ID: "l1", Locale: input.Locale}, s.hit(ctx, "CreateLanguage")
}

func (s *stubService) UpdateLanguage(ctx context.Context, id string, _ dashboard.UpdateLanguageInput) (dashboard.Language, error) {
	return dashboard.Language{ID: id}, s.hit(ctx, "UpdateLanguage")
}

func (s *stubService) DeleteLanguage(ctx context.Context, _ string) error {
	return s.hit(ctx, "DeleteLanguage")
}

func (s *stubService) CreateTranslation(ctx context.Context, input dashboard.CreateTranslationInput) (dashboard.Translation, error) {
	return dashboard.Translation{ID: "t1", KeyID: input.KeyID, Locale: input.Locale, Value: input.Value}, s.hit(ctx, "CreateTranslation")
}

func (s *stubService) UpdateTranslation(ctx context.Context, id, value string) (dashboard.Translation, error) {
	return dashboard.Translation{ID: id, Value: value}, s.hit(ctx, "UpdateTranslation")
}

func (s *stubService) DeleteTranslation(ctx context.Context, _, _ string) error {
	return s.hit(ctx, "DeleteTranslation")
}

func (s *stubService) BulkUpsert(ctx context.Context, input dashboard.BulkUpsertInput) ([]dashboard.Translation, error) {
	out := make([]dashboard.Translation, 0, len(input.Translations))
	for _, lv := range input.Translations {
		out = append(out, dashboard.Translation{KeyID: input.KeyID, Locale: lv.Locale, Value: lv.Value})
	}
	return out, s.hit(ctx, "BulkUpsert")
}

func (s *stubService) ImportCSV(ctx context.Context, _ dashboard.ImportRequest) (dashboard.BulkUploadResult, error) {
	return dashboard.BulkUploadResult{Created: 3}, s.hit(ctx, "ImportCSV")
}

func (s *stubService) AITranslateKey(ctx context.Context, _ string, locales []string) (dashboard.AITranslateResult, error) {
	return dashboard.AITranslateResult{Success: true, TranslatedCount: len(locales)}, s.hit(ctx, "AITranslateKey")
}

func (s *stubService) AITranslateBatch(ctx context.Context, _ dashboard.AITranslateBatchInput) (dashboard.AITranslateBatchResult, error) {
	return dashboard.AITranslateBatchResult{Success: true, TranslatedCount: 7}, s.hit(ctx, "AITranslateBatch")
}

func (s *stubService) AdvanceFocus(ctx context.Context, id string, _ dashboard.FocusAction, _ string) (dashboard.FocusSummary, error) {
	return dashboard.FocusSummary{ID: id, Streak: 1}, s.hit(ctx, "AdvanceFocus")
}

func TestCreateProjectCommandFillsResult(t *testing.T) {
	service := newStubService()
	telemetry := &stubTelemetry{}
	cmd := NewCreateProjectCommand(service, telemetry)
	var created dashboard.Project
	err := cmd.Execute(context.Background(), CreateProjectInput{
		CreateProjectInput: dashboard.CreateProjectInput{Name: "Web"},
		Result:             &created,
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if created.ID != "p1" || created.Name != "Web" {
		t.Fatalf("unexpected result %#v", created)
	}
	if len(telemetry.events) != 1 || telemetry.events[0] != "l10n.command.project.create" {
		t.Fatalf("unexpected telemetry %v", telemetry.events)
	}
}

func TestCommandsRequireService(t *testing.T) {
	if err := NewDeleteProjectCommand(nil, nil).Execute(context.Background(), DeleteProjectInput{ID: "p1"}); err == nil {
		t.Fatalf("expected error without service")
	}
	if err := NewSaveTranslationsCommand(nil, nil).Execute(context.Background(), SaveTranslationsInput{}); err == nil {
		t.Fatalf("expected error without service")
	}
}

func TestCommandsRequireIDs(t *testing.T) {
	service := newStubService()
	ctx := context.Background()
	checks := map[string]error{
		"update project":     NewUpdateProjectCommand(service, nil).Execute(ctx, UpdateProjectInput{}),
		"delete feature":     NewDeleteFeatureCommand(service, nil).Execute(ctx, DeleteFeatureInput{}),
		"update key":         NewUpdateKeyCommand(service, nil).Execute(ctx, UpdateKeyInput{}),
		"delete language":    NewDeleteLanguageCommand(service, nil).Execute(ctx, DeleteLanguageInput{}),
		"update translation": NewUpdateTranslationCommand(service, nil).Execute(ctx, UpdateTranslationInput{}),
		"save translations":  NewSaveTranslationsCommand(service, nil).Execute(ctx, SaveTranslationsInput{}),
		"ai translate":       NewAITranslateCommand(service, nil).Execute(ctx, AITranslateInput{}),
		"focus":              NewFocusStepCommand(service, nil).Execute(ctx, FocusStepInput{}),
	}
	for name, err := range checks {
		if err == nil {
			t.Fatalf("%s: expected missing id error", name)
		}
	}
	if len(service.calls) != 0 {
		t.Fatalf("service must not be called without ids: %v", service.calls)
	}
}

func TestCommandsDelegate(t *testing.T) {
	service := newStubService()
	ctx := context.Background()
	run := []func() error{
		func() error { return NewUpdateProjectCommand(service, nil).Execute(ctx, UpdateProjectInput{ID: "p1"}) },
		func() error { return NewSelectProjectCommand(service, nil).Execute(ctx, SelectProjectInput{ProjectID: "p2"}) },
		func() error {
			return NewCreateFeatureCommand(service, nil).Execute(ctx, CreateFeatureInput{
				CreateFeatureInput: dashboard.CreateFeatureInput{Name: "checkout", ProjectID: "p1"},
			})
		},
		func() error { return NewDeleteKeyCommand(service, nil).Execute(ctx, DeleteKeyInput{ID: "k1", FeatureID: "f1"}) },
		func() error {
			return NewUpdateLanguageCommand(service, nil).Execute(ctx, UpdateLanguageInput{ID: "l1"})
		},
		func() error {
			return NewDeleteTranslationCommand(service, nil).Execute(ctx, DeleteTranslationInput{ID: "t1", KeyID: "k1"})
		},
		func() error {
			return NewAITranslateBatchCommand(service, nil).Execute(ctx, AITranslateBatchInput{})
		},
	}
	for i, fn := range run {
		if err := fn(); err != nil {
			t.Fatalf("command %d returned error: %v", i, err)
		}
	}
	for _, name := range []string{"UpdateProject", "SelectProject", "CreateFeature", "DeleteKey", "UpdateLanguage", "DeleteTranslation", "AITranslateBatch"} {
		if service.calls[name] != 1 {
			t.Fatalf("expected one %s call, got %d", name, service.calls[name])
		}
	}
	if service.selected != "p2" {
		t.Fatalf("expected selection p2, got %q", service.selected)
	}
}

func TestSaveTranslationsCommandReturnsSaved(t *testing.T) {
	service := newStubService()
	var saved []dashboard.Translation
	err := NewSaveTranslationsCommand(service, nil).Execute(context.Background(), SaveTranslationsInput{
		BulkUpsertInput: dashboard.BulkUpsertInput{
			KeyID:        "k1",
			Translations: []dashboard.LocaleValue{{Locale: "es", Value: "Hola"}},
		},
		Result: &saved,
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(saved) != 1 || saved[0].Value != "Hola" {
		t.Fatalf("unexpected saved rows %#v", saved)
	}
}

func TestImportCommandPropagatesErrors(t *testing.T) {
	service := newStubService()
	service.err = &dashboard.APIError{Status: 400, Message: "bad csv"}
	telemetry := &stubTelemetry{}
	var result dashboard.BulkUploadResult
	err := NewImportTranslationsCommand(service, telemetry).Execute(context.Background(), ImportTranslationsInput{Result: &result})
	var apiErr *dashboard.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected api error, got %v", err)
	}
	if len(telemetry.events) != 0 {
		t.Fatalf("failed commands must not record telemetry")
	}
	if result.Created != 0 {
		t.Fatalf("result must stay empty on failure")
	}
}

func TestFocusStepDefaultsToSubmit(t *testing.T) {
	service := newStubService()
	telemetry := &stubTelemetry{}
	var summary dashboard.FocusSummary
	err := NewFocusStepCommand(service, telemetry).Execute(context.Background(), FocusStepInput{
		SessionID: "s1",
		Value:     "Hola",
		Result:    &summary,
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if summary.ID != "s1" {
		t.Fatalf("expected summary for s1, got %#v", summary)
	}
	if telemetry.events[0] != "l10n.command.focus.submit" {
		t.Fatalf("unexpected telemetry %v", telemetry.events)
	}
}

func TestActorIsAttachedToContext(t *testing.T) {
	ctx := Actor{ActorID: "u1"}.apply(context.Background())
	if ctx == context.Background() {
		t.Fatalf("expected derived context for non-empty actor")
	}
	if got := (Actor{}).apply(context.Background()); got != context.Background() {
		t.Fatalf("empty actor must not wrap the context")
	}
}

package dashboard_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-l10n-dashboard/components/dashboard"
	"github.com/goliatone/go-l10n-dashboard/pkg/activity"
)

func TestCreateKeyEmitsActivity(t *testing.T) {
	capture := &activity.CaptureHook{}
	service, _ := newService(t, dashboard.Options{
		ActivityHooks:  activity.Hooks{capture},
		ActivityConfig: activity.Config{Enabled: true, Channel: "l10n"},
	})

	ctx := dashboard.ContextWithActivity(context.Background(), dashboard.ActivityContext{
		ActorID:  "actor-1",
		UserID:   "user-1",
		TenantID: "tenant-1",
	})
	key, err := service.CreateKey(ctx, dashboard.CreateKeyInput{Key: "checkout.back", FeatureID: "f1"})
	if err != nil {
		t.Fatalf("CreateKey returned error: %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected 1 activity event, got %d", len(capture.Events))
	}
	event := capture.Events[0]
	if event.Verb != string(dashboard.MutationKeyCreate) || event.ObjectType != "key" || event.ObjectID != key.ID {
		t.Fatalf("unexpected event payload: %+v", event)
	}
	if event.ActorID != "actor-1" || event.UserID != "user-1" || event.TenantID != "tenant-1" {
		t.Fatalf("unexpected actor context: %+v", event)
	}
	if event.Channel != "l10n" {
		t.Fatalf("expected l10n channel, got %q", event.Channel)
	}
}

func TestFailedMutationEmitsNoActivity(t *testing.T) {
	capture := &activity.CaptureHook{}
	service, _ := newService(t, dashboard.Options{
		ActivityHooks:  activity.Hooks{capture},
		ActivityConfig: activity.Config{Enabled: true},
	})

	if err := service.DeleteTranslation(context.Background(), "missing", ""); err == nil {
		t.Fatalf("expected delete of unknown translation to fail")
	}
	if len(capture.Events) != 0 {
		t.Fatalf("expected no activity, got %+v", capture.Events)
	}
}

func TestDisabledActivitySkipsHooks(t *testing.T) {
	capture := &activity.CaptureHook{}
	service, _ := newService(t, dashboard.Options{
		ActivityHooks: activity.Hooks{capture},
	})

	if _, err := service.CreateProject(context.Background(), dashboard.CreateProjectInput{Name: "Docs"}); err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("expected activity to stay disabled, got %d events", len(capture.Events))
	}
}

package commands

import (
	"context"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

// Actor identifies who issued a command. Non-empty ids are attached to the
// context so the service's activity events carry them.
type Actor struct {
	ActorID  string `json:"actor_id,omitempty"`
	UserID   string `json:"user_id,omitempty"`
	TenantID string `json:"tenant_id,omitempty"`
}

func (a Actor) apply(ctx context.Context) context.Context {
	if a == (Actor{}) {
		return ctx
	}
	return dashboard.ContextWithActivity(ctx, dashboard.ActivityContext{
		ActorID:  a.ActorID,
		UserID:   a.UserID,
		TenantID: a.TenantID,
	})
}

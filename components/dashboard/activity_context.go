package dashboard

import "context"

// ActivityContext identifies who caused a mutation. It travels on the
// request context from the transport to the activity emitter.
type ActivityContext struct {
	ActorID  string
	UserID   string
	TenantID string
}

func (a ActivityContext) merge(over ActivityContext) ActivityContext {
	if over.ActorID != "" {
		a.ActorID = over.ActorID
	}
	if over.UserID != "" {
		a.UserID = over.UserID
	}
	if over.TenantID != "" {
		a.TenantID = over.TenantID
	}
	return a
}

type activityContextKey struct{}

// ContextWithActivity attaches meta to ctx. Empty fields keep the value an
// outer layer already attached, so a transport can set the tenant and a
// command the actor.
func ContextWithActivity(ctx context.Context, meta ActivityContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, activityContextKey{}, ActivityFrom(ctx).merge(meta))
}

// ActivityFrom returns the identifiers attached to ctx, zero when none.
func ActivityFrom(ctx context.Context) ActivityContext {
	if ctx == nil {
		return ActivityContext{}
	}
	meta, _ := ctx.Value(activityContextKey{}).(ActivityContext)
	return meta
}

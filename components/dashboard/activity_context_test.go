package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextWithActivityMergesLayers(t *testing.T) {
	ctx := ContextWithActivity(context.Background(), ActivityContext{TenantID: "tenant-1", UserID: "user-1"})
	ctx = ContextWithActivity(ctx, ActivityContext{ActorID: "actor-1", UserID: "user-2"})

	assert.Equal(t, ActivityContext{ActorID: "actor-1", UserID: "user-2", TenantID: "tenant-1"}, ActivityFrom(ctx))
	assert.Equal(t, ActivityContext{}, ActivityFrom(context.Background()))
}

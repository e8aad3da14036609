package selectionstore

import (
	"context"
	"fmt"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

// Kinds accepted by Open.
const (
	KindMemory = "memory"
	KindFile   = "file"
	KindRedis  = "redis"
)

// Settings selects and configures a store for Open.
type Settings struct {
	Kind     string
	FilePath string
	RedisURL string
}

// Open builds the store described by settings. The returned close func
// releases connections and is never nil.
func Open(ctx context.Context, settings Settings) (dashboard.KVStore, func() error, error) {
	noop := func() error { return nil }
	switch settings.Kind {
	case "", KindMemory:
		return dashboard.NewMemoryKVStore(), noop, nil
	case KindFile:
		store, err := NewFileStore(settings.FilePath)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	case KindRedis:
		client, err := Connect(ctx, settings.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		store, err := NewRedisStore(client)
		if err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		return store, client.Close, nil
	default:
		return nil, noop, fmt.Errorf("selectionstore: unknown kind %q", settings.Kind)
	}
}

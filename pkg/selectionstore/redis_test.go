package selectionstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data    map[string]string
	ttl     map[string]time.Duration
	failGet error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = value.(string)
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	removed := 0
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			removed++
		}
	}
	return redis.NewIntResult(int64(removed), nil)
}

func TestRedisStorePrefixesKeys(t *testing.T) {
	fake := newFakeRedis()
	store, err := NewRedisStore(fake, WithPrefix("test:"), WithTTL(time.Hour))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "selected", "p1"))
	assert.Equal(t, "p1", fake.data["test:selected"])
	assert.Equal(t, time.Hour, fake.ttl["test:selected"])

	value, ok, err := store.Get(ctx, "selected")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "p1", value)

	require.NoError(t, store.Delete(ctx, "selected"))
	_, ok, err = store.Get(ctx, "selected")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreWrapsErrors(t *testing.T) {
	fake := newFakeRedis()
	fake.failGet = errors.New("connection refused")
	store, err := NewRedisStore(fake)
	require.NoError(t, err)
	_, _, err = store.Get(context.Background(), "selected")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRedisStoreRequiresClient(t *testing.T) {
	_, err := NewRedisStore(nil)
	assert.Error(t, err)
}

func TestConnectRejectsEmptyURL(t *testing.T) {
	_, err := Connect(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyRedisURL)
}

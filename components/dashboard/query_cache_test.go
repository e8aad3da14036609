package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCacheStoresUntilTTL(t *testing.T) {
	cache := NewQueryCache(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	calls := 0
	fetch := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	first, err := Query(context.Background(), cache, ProjectsKey(), fetch)
	require.NoError(t, err)
	second, err := Query(context.Background(), cache, ProjectsKey(), fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)

	now = now.Add(2 * time.Minute)
	third, err := Query(context.Background(), cache, ProjectsKey(), fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, third)
}

func TestQueryCacheDoesNotStoreErrors(t *testing.T) {
	cache := NewQueryCache(time.Minute)
	boom := errors.New("boom")
	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", boom
		}
		return "ok", nil
	}

	_, err := Query(context.Background(), cache, FeaturesKey("p1"), fetch)
	require.ErrorIs(t, err, boom)
	value, err := Query(context.Background(), cache, FeaturesKey("p1"), fetch)
	require.NoError(t, err)
	assert.Equal(t, "ok", value)
	assert.Equal(t, 2, calls)
}

func TestQueryCacheSharesInFlightRequests(t *testing.T) {
	cache := NewQueryCache(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	fetch := func(context.Context) (int, error) {
		calls.Add(1)
		once.Do(func() { close(started) })
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Query(context.Background(), cache, StatisticsKey(StatisticsFilter{}), fetch)
		}(i)
	}
	<-started
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, 42, r)
	}
}

func TestQueryCacheCallerCancellation(t *testing.T) {
	cache := NewQueryCache(time.Minute)
	release := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := Query(ctx, cache, ProjectsKey(), func(context.Context) (int, error) {
			<-release
			return 7, nil
		})
		done <- err
	}()
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	close(release)

	assert.Eventually(t, func() bool {
		_, ok := cache.Peek(ProjectsKey())
		return ok
	}, time.Second, 5*time.Millisecond)
}

func TestQueryCacheInvalidateMarksInFlightStale(t *testing.T) {
	cache := NewQueryCache(time.Minute)
	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = Query(context.Background(), cache, TranslationsKey("k1"), func(context.Context) (int, error) {
			close(started)
			<-release
			return 1, nil
		})
	}()
	<-started
	cache.Invalidate(Match(ResourceTranslations, "k1"))
	close(release)
	<-done

	_, ok := cache.Peek(TranslationsKey("k1"))
	assert.False(t, ok, "a result fetched before invalidation must not be stored")
}

func TestQueryCacheInvalidateByPattern(t *testing.T) {
	cache := NewQueryCache(time.Minute)
	ctx := context.Background()
	for _, key := range []QueryKey{TranslationsKey("k1"), TranslationsKey("k2"), KeysKey("f1"), ProjectsKey()} {
		_, err := Query(ctx, cache, key, func(context.Context) (bool, error) { return true, nil })
		require.NoError(t, err)
	}

	removed := cache.Invalidate(Match(ResourceTranslations, "k1"), Match(ResourceKeys))

	assert.Equal(t, 2, removed)
	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Peek(TranslationsKey("k2"))
	assert.True(t, ok)

	cache.Clear()
	assert.Zero(t, cache.Len())
}

func TestQueryCacheZeroTTLSkipsStorage(t *testing.T) {
	cache := NewQueryCache(0)
	_, err := Query(context.Background(), cache, ProjectsKey(), func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)
	assert.Zero(t, cache.Len())
}

func TestQueryTypeMismatch(t *testing.T) {
	cache := NewQueryCache(time.Minute)
	_, err := Query(context.Background(), cache, ProjectsKey(), func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)

	_, err = Query(context.Background(), cache, ProjectsKey(), func(context.Context) (string, error) { return "", nil })
	require.Error(t, err)
}

func TestSearchKeyCoversPagination(t *testing.T) {
	a := SearchKey(SearchParams{Q: "x", Page: 1, Limit: 25})
	b := SearchKey(SearchParams{Q: "x", Page: 2, Limit: 25})
	assert.NotEqual(t, a.String(), b.String())
	assert.True(t, Match(ResourceTranslationSearch).Matches(a))
	assert.False(t, Match(ResourceTranslationSearch, "y").Matches(a))
}

func TestInvalidationsFor(t *testing.T) {
	cases := []struct {
		name     string
		mutation Mutation
		scope    MutationScope
		hits     []QueryKey
		misses   []QueryKey
	}{
		{
			name:     "project update",
			mutation: MutationProjectUpdate,
			scope:    MutationScope{ID: "p1"},
			hits:     []QueryKey{ProjectsKey(), ProjectKey("p1")},
			misses:   []QueryKey{ProjectKey("p2"), FeaturesKey("p1")},
		},
		{
			name:     "key create",
			mutation: MutationKeyCreate,
			scope:    MutationScope{ID: "k9", FeatureID: "f1"},
			hits:     []QueryKey{KeysKey("f1"), KeyKey("k9")},
			misses:   []QueryKey{KeysKey("f2")},
		},
		{
			name:     "translation update",
			mutation: MutationTranslationUpdate,
			scope:    MutationScope{ID: "t1", KeyID: "k1"},
			hits:     []QueryKey{TranslationsKey("k1"), StatisticsKey(StatisticsFilter{FeatureID: "f1"})},
			misses:   []QueryKey{TranslationsKey("k2"), SearchKey(SearchParams{})},
		},
		{
			name:     "bulk upload",
			mutation: MutationBulkUpload,
			scope:    MutationScope{ID: "f1", FeatureID: "f1"},
			hits:     []QueryKey{SearchKey(SearchParams{Q: "a"}), StatisticsKey(StatisticsFilter{})},
			misses:   []QueryKey{TranslationsKey("k1")},
		},
		{
			name:     "language toggle",
			mutation: MutationLanguageUpdate,
			hits:     []QueryKey{LanguagesKey("p1"), LanguagesKey("")},
			misses:   []QueryKey{ProjectsKey()},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			patterns := InvalidationsFor(tc.mutation, tc.scope)
			for _, key := range tc.hits {
				assert.True(t, matchesAny(patterns, key), "expected %s to be invalidated", key)
			}
			for _, key := range tc.misses {
				assert.False(t, matchesAny(patterns, key), "expected %s to survive", key)
			}
		})
	}
}

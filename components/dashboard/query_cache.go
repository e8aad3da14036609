package dashboard

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Resource names a family of cached reads.
type Resource string

const (
	ResourceProjects          Resource = "projects"
	ResourceProject           Resource = "project"
	ResourceFeatures          Resource = "features"
	ResourceFeature           Resource = "feature"
	ResourceKeys              Resource = "keys"
	ResourceKey               Resource = "key"
	ResourceLanguages         Resource = "languages"
	ResourceTranslations      Resource = "translations"
	ResourceTranslationSearch Resource = "translations-search"
	ResourceStatistics        Resource = "statistics"
)

// QueryKey addresses one cached read: a resource plus its parameters.
type QueryKey struct {
	Resource Resource `json:"resource"`
	Params   []string `json:"params,omitempty"`
}

// String renders an unambiguous identifier for the key.
func (k QueryKey) String() string {
	var b strings.Builder
	b.WriteString(string(k.Resource))
	for _, p := range k.Params {
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(p))
	}
	return b.String()
}

func ProjectsKey() QueryKey { return QueryKey{Resource: ResourceProjects} }

func ProjectKey(id string) QueryKey {
	return QueryKey{Resource: ResourceProject, Params: []string{id}}
}

func FeaturesKey(projectID string) QueryKey {
	return QueryKey{Resource: ResourceFeatures, Params: []string{projectID}}
}

func FeatureKey(id string) QueryKey {
	return QueryKey{Resource: ResourceFeature, Params: []string{id}}
}

func KeysKey(featureID string) QueryKey {
	return QueryKey{Resource: ResourceKeys, Params: []string{featureID}}
}

func KeyKey(id string) QueryKey {
	return QueryKey{Resource: ResourceKey, Params: []string{id}}
}

func LanguagesKey(projectID string) QueryKey {
	return QueryKey{Resource: ResourceLanguages, Params: []string{projectID}}
}

func TranslationsKey(keyID string) QueryKey {
	return QueryKey{Resource: ResourceTranslations, Params: []string{keyID}}
}

// SearchKey covers every search parameter, pagination included.
func SearchKey(p SearchParams) QueryKey {
	return QueryKey{Resource: ResourceTranslationSearch, Params: []string{
		p.Q,
		p.Locale,
		p.FeatureID,
		p.ProjectID,
		strconv.Itoa(p.Page),
		strconv.Itoa(p.Limit),
		p.SortBy,
		string(p.SortOrder),
	}}
}

func StatisticsKey(f StatisticsFilter) QueryKey {
	return QueryKey{Resource: ResourceStatistics, Params: []string{f.FeatureID, f.ProjectID}}
}

// KeyPattern selects cached keys by resource and leading parameters. An empty
// prefix matches every key of the resource.
type KeyPattern struct {
	Resource Resource `json:"resource"`
	Prefix   []string `json:"prefix,omitempty"`
}

// Match builds a pattern.
func Match(resource Resource, prefix ...string) KeyPattern {
	return KeyPattern{Resource: resource, Prefix: prefix}
}

// Matches reports whether key falls under the pattern.
func (p KeyPattern) Matches(key QueryKey) bool {
	if p.Resource != key.Resource || len(p.Prefix) > len(key.Params) {
		return false
	}
	return slices.Equal(p.Prefix, key.Params[:len(p.Prefix)])
}

func (p KeyPattern) String() string {
	return QueryKey{Resource: p.Resource, Params: p.Prefix}.String() + " *"
}

// QueryCache stores read results per QueryKey for a TTL and shares one
// in-flight request between identical concurrent reads. Fetch errors are not
// cached and nothing is retried.
type QueryCache struct {
	ttl      time.Duration
	now      func() time.Time
	group    singleflight.Group
	mu       sync.Mutex
	entries  map[string]cachedQuery
	inflight map[string]*flight
}

type cachedQuery struct {
	key     QueryKey
	value   any
	expires time.Time
}

type flight struct {
	key   QueryKey
	stale bool
}

// NewQueryCache builds a cache. A non-positive ttl disables storage but keeps
// in-flight deduplication.
func NewQueryCache(ttl time.Duration) *QueryCache {
	return &QueryCache{
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[string]cachedQuery),
		inflight: make(map[string]*flight),
	}
}

// Fetch returns the cached value for key or runs fn. Concurrent callers with
// the same key wait on the same fn call. A caller whose ctx ends stops
// waiting, but the shared call still completes for the others.
func (c *QueryCache) Fetch(ctx context.Context, key QueryKey, fn func(context.Context) (any, error)) (any, error) {
	id := key.String()
	if value, ok := c.lookup(id); ok {
		return value, nil
	}
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(id, func() (any, error) {
		f := c.begin(id, key)
		value, err := fn(shared)
		c.finish(id, f, value, err)
		return value, err
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

// Query is the typed form of QueryCache.Fetch. A nil cache calls fn directly.
func Query[T any](ctx context.Context, c *QueryCache, key QueryKey, fn func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return fn(ctx)
	}
	value, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("dashboard: cached value for %s has type %T", key, value)
	}
	return typed, nil
}

// Invalidate discards every entry matching any pattern and marks matching
// in-flight reads stale so their results are not stored. The next read of an
// invalidated key starts a fresh request. It returns the number of discarded
// entries.
func (c *QueryCache) Invalidate(patterns ...KeyPattern) int {
	if c == nil || len(patterns) == 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for id, entry := range c.entries {
		if matchesAny(patterns, entry.key) {
			delete(c.entries, id)
			removed++
		}
	}
	for id, f := range c.inflight {
		if matchesAny(patterns, f.key) {
			f.stale = true
			c.group.Forget(id)
		}
	}
	return removed
}

// Peek returns a fresh cached value without fetching.
func (c *QueryCache) Peek(key QueryKey) (any, bool) {
	return c.lookup(key.String())
}

// Len reports the number of stored entries, expired ones included.
func (c *QueryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *QueryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	for id, f := range c.inflight {
		f.stale = true
		c.group.Forget(id)
	}
}

func (c *QueryCache) lookup(id string) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expires) {
		delete(c.entries, id)
		return nil, false
	}
	return entry.value, true
}

func (c *QueryCache) begin(id string, key QueryKey) *flight {
	f := &flight{key: key}
	c.mu.Lock()
	c.inflight[id] = f
	c.mu.Unlock()
	return f
}

func (c *QueryCache) finish(id string, f *flight, value any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[id] == f {
		delete(c.inflight, id)
	}
	if err != nil || f.stale || c.ttl <= 0 {
		return
	}
	c.entries[id] = cachedQuery{
		key:     f.key,
		value:   value,
		expires: c.now().Add(c.ttl),
	}
}

func matchesAny(patterns []KeyPattern, key QueryKey) bool {
	for _, p := range patterns {
		if p.Matches(key) {
			return true
		}
	}
	return false
}

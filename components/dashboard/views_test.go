package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDashboardView(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	stats := Statistics{
		OverallCompletionPercentage: 72.4,
		TotalTranslations:           1234,
		EmptyValueCount:             3,
		MissingTranslations:         []MissingTranslation{{KeyID: "k1", MissingLocales: []string{"es"}}},
		CompletionByLocale: []LocaleCompletion{
			{Locale: "en", Total: 10, Filled: 10, Percentage: 100},
			{Locale: "es", Total: 10, Filled: 4, Percentage: 40},
		},
		CompletionByFeature: []FeatureCompletion{{FeatureID: "f1", FeatureName: "checkout", Total: 20, Filled: 14, Percentage: 70}},
		RecentlyUpdated:     []RecentTranslation{{KeyID: "k1", KeyName: "checkout.title", Locale: "en", UpdatedAt: now.Add(-5 * time.Minute)}},
	}

	view := BuildDashboardView(stats, NumberFormatter{}, now)

	require.Len(t, view.Metrics, 4)
	assert.Equal(t, "72%", view.Metrics[0].Value)
	assert.Equal(t, "blue", view.Metrics[0].Tone)
	assert.Equal(t, "1,234", view.Metrics[1].Value)
	assert.Equal(t, "1", view.Metrics[3].Value)

	require.Len(t, view.ByLocale, 2)
	assert.Equal(t, CompletionComplete, view.ByLocale[0].Level)
	assert.Equal(t, "red", view.ByLocale[1].Tone)
	assert.Equal(t, "checkout", view.ByFeature[0].Label)
	assert.Equal(t, "f1", view.ByFeature[0].ID)
	assert.Equal(t, "5m ago", view.Recent[0].When)
	assert.True(t, view.Healthy)
	assert.Equal(t, now, view.GeneratedAt)
}

func TestBuildDashboardViewEmptyStatistics(t *testing.T) {
	view := BuildDashboardView(Statistics{}, NumberFormatter{}, time.Now())

	assert.NotNil(t, view.Missing)
	assert.Empty(t, view.ByLocale)
	assert.Equal(t, "0%", view.Metrics[0].Value)
	assert.Equal(t, "red", view.Metrics[0].Tone)
}

func TestHealthIndicators(t *testing.T) {
	indicators := HealthIndicators(Statistics{
		OrphanedKeysCount: 1,
		DuplicateKeys: []DuplicateKey{{
			KeyName:  "title",
			Features: []FeatureRef{{FeatureName: "checkout"}, {FeatureName: "account"}},
		}},
		ActiveFeaturesWithMissingTranslations: 2,
	})

	require.Len(t, indicators, 3)
	assert.False(t, indicators[0].OK)
	assert.Equal(t, "1 orphaned key found (keys with no translations in any locale)", indicators[0].Message)
	assert.Equal(t, "1 duplicate key found", indicators[1].Message)
	assert.Equal(t, []string{"title (checkout, account)"}, indicators[1].Details)
	assert.Equal(t, "2 active features with incomplete translations", indicators[2].Message)

	healthy := HealthIndicators(Statistics{})
	for _, h := range healthy {
		assert.True(t, h.OK, h.Name)
	}
	assert.Equal(t, "All active features have complete translations", healthy[2].Message)
}

func TestBuildSearchView(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	page := Page[TranslationListItem]{
		Data: []TranslationListItem{
			{ID: "t1", KeyName: "a", Locale: "en", Value: "A", UpdatedAt: now.Add(-2 * time.Hour)},
			{ID: "t2", KeyName: "b", Locale: "en", Value: "  ", UpdatedAt: now.Add(-30 * 24 * time.Hour)},
		},
		Meta: PaginationMeta{Total: 60, Page: 2, Limit: 25, TotalPages: 3},
	}

	view := BuildSearchView(page, SearchParams{Q: "a", Locale: "en"}, now)

	require.Len(t, view.Rows, 2)
	assert.Equal(t, "2h ago", view.Rows[0].Updated)
	assert.False(t, view.Rows[0].Empty)
	assert.True(t, view.Rows[1].Empty)
	assert.Equal(t, "Apr 1, 2024", view.Rows[1].Updated)
	assert.Equal(t, []FilterChip{{Name: "q", Value: "a"}, {Name: "locale", Value: "en"}}, view.Filters)
	assert.True(t, view.HasActiveFilters)
	assert.Equal(t, 1, view.PrevPage)
	assert.Equal(t, 3, view.NextPage)

	first := BuildSearchView(Page[TranslationListItem]{Meta: PaginationMeta{Page: 1, TotalPages: 1}}, SearchParams{}, now)
	assert.False(t, first.HasPrev)
	assert.False(t, first.HasNext)
	assert.False(t, first.HasActiveFilters)
	assert.NotNil(t, first.Rows)
}

func TestBuildSearchViewPageLinksKeepFilters(t *testing.T) {
	params := SearchParams{Q: "pay", Locale: "es", FeatureID: "f1", Page: 2, Limit: 10, SortBy: "key", SortOrder: SortAsc}
	page := Page[TranslationListItem]{Meta: PaginationMeta{Total: 30, Page: 2, Limit: 10, TotalPages: 3}}

	view := BuildSearchView(page, params, time.Now())

	assert.Equal(t, "featureId=f1&limit=10&locale=es&page=1&q=pay&sortBy=key&sortOrder=asc", view.PrevQuery)
	assert.Equal(t, "featureId=f1&limit=10&locale=es&page=3&q=pay&sortBy=key&sortOrder=asc", view.NextQuery)
	assert.Equal(t, "featureId=f1&locale=es&q=pay&sortBy=key&sortOrder=asc", view.ExportQuery)
}

func TestBuildEditorView(t *testing.T) {
	draft := NewTranslationDraft("k1",
		[]Translation{{ID: "t1", KeyID: "k1", Locale: "en", Value: "Hello"}},
		[]Language{
			{Locale: "en", Name: "English", IsActive: true},
			{Locale: "es", Name: "Spanish", IsActive: true},
		},
	)
	draft.Set("es", "Hola")

	view := BuildEditorView(KeyWithFeature{Key: Key{ID: "k1", Key: "greeting"}}, draft, FilterAll)

	assert.Equal(t, "greeting", view.Key.Key.Key)
	assert.Len(t, view.Rows, 2)
	assert.Equal(t, []string{"es"}, view.Dirty)
	assert.True(t, view.HasChanges)
	assert.Equal(t, 2, view.Filled)
	assert.Equal(t, 100, view.Percent)
}

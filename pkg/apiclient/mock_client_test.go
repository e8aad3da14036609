package apiclient

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

func seededMock() *MockClient {
	return NewMockClient(MockData{
		Projects: []dashboard.Project{{ID: "p1", Name: "Web", IsActive: true}},
		Features: []dashboard.Feature{
			{ID: "f1", Name: "checkout", ProjectID: "p1"},
			{ID: "f2", Name: "profile", ProjectID: "p1"},
		},
		Keys: []dashboard.Key{
			{ID: "k1", Key: "checkout.title", FeatureID: "f1"},
			{ID: "k2", Key: "checkout.pay", FeatureID: "f1"},
			{ID: "k3", Key: "checkout.title", FeatureID: "f2"},
		},
		Languages: []dashboard.Language{
			{ID: "l1", Locale: "en", Name: "English", IsActive: true, ProjectID: "p1"},
			{ID: "l2", Locale: "es", Name: "Spanish", IsActive: true, ProjectID: "p1"},
			{ID: "l3", Locale: "fr", Name: "French", IsActive: false, ProjectID: "p1"},
		},
		Translations: []dashboard.Translation{
			{ID: "t1", KeyID: "k1", Locale: "en", Value: "Checkout"},
			{ID: "t2", KeyID: "k1", Locale: "es", Value: "Pagar"},
			{ID: "t3", KeyID: "k2", Locale: "en", Value: ""},
		},
	})
}

func TestMockCreateTranslationRejectsDuplicateLocale(t *testing.T) {
	mock := seededMock()
	_, err := mock.CreateTranslation(context.Background(), dashboard.CreateTranslationInput{KeyID: "k1", Locale: "es", Value: "x"})
	var apiErr *dashboard.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
}

func TestMockBulkUpsertUpdatesAndCreates(t *testing.T) {
	mock := seededMock()
	saved, err := mock.BulkUpsert(context.Background(), dashboard.BulkUpsertInput{
		KeyID:        "k2",
		Translations: []dashboard.LocaleValue{{Locale: "en", Value: "Pay"}, {Locale: "es", Value: "Pagar ahora"}},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)

	list, err := mock.ListTranslations(context.Background(), "k2")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Pay", list[0].Value)
	assert.Equal(t, "es", list[1].Locale)
}

func TestMockStatistics(t *testing.T) {
	mock := seededMock()
	stats, err := mock.Statistics(context.Background(), dashboard.StatisticsFilter{ProjectID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalTranslations)
	assert.Equal(t, 1, stats.EmptyValueCount)
	// k3 has no translations at all.
	assert.Equal(t, 1, stats.OrphanedKeysCount)
	require.Len(t, stats.CompletionByLocale, 2)
	assert.Equal(t, 1, stats.CompletionByLocale[0].Filled)
	// 2 filled cells of 3 keys x 2 active locales.
	assert.InDelta(t, 33.3, stats.OverallCompletionPercentage, 0.01)
	require.Len(t, stats.DuplicateKeys, 1)
	assert.Equal(t, "checkout.title", stats.DuplicateKeys[0].KeyName)
	assert.Len(t, stats.MissingTranslations, 2)
	assert.Equal(t, 2, stats.ActiveFeaturesWithMissingTranslations)
}

func TestMockSearchFiltersAndPaginates(t *testing.T) {
	mock := seededMock()
	page, err := mock.SearchTranslations(context.Background(), dashboard.SearchParams{
		Q: "checkout", Limit: 2, Page: 1, SortBy: "locale", SortOrder: dashboard.SortAsc,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Meta.Total)
	assert.Equal(t, 2, page.Meta.TotalPages)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "en", page.Data[0].Locale)

	page, err = mock.SearchTranslations(context.Background(), dashboard.SearchParams{Locale: "es"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Pagar", page.Data[0].Value)
	assert.Equal(t, "checkout", page.Data[0].FeatureName)
}

func TestMockBulkUploadCountsRows(t *testing.T) {
	mock := seededMock()
	csv := "key,en,es\ncheckout.title,Checkout!,\ncheckout.new,New,Nuevo\n"
	result, err := mock.BulkUpload(context.Background(), "f1", "upload.csv", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)

	keys, err := mock.ListKeys(context.Background(), "f1")
	require.NoError(t, err)
	assert.Len(t, keys, 3)
}

func TestMockAITranslateFillsMissingLocales(t *testing.T) {
	mock := seededMock()
	result, err := mock.AITranslate(context.Background(), dashboard.AITranslateInput{KeyID: "k1", TargetLocales: []string{"es", "fr"}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TranslatedCount)
	assert.Equal(t, 1, result.SkippedCount)
	require.Len(t, result.Translations, 1)
	assert.Equal(t, "[fr] Checkout", result.Translations[0].Value)
}

func TestMockDeleteFeatureCascades(t *testing.T) {
	mock := seededMock()
	require.NoError(t, mock.DeleteFeature(context.Background(), "f1"))
	list, err := mock.ListTranslations(context.Background(), "k1")
	require.NoError(t, err)
	assert.Empty(t, list)
	_, err = mock.GetKey(context.Background(), "k1")
	assert.Error(t, err)
}

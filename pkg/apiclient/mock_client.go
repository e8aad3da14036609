package apiclient

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"maps"
	"math"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

// MockData seeds the in-memory API.
type MockData struct {
	Projects     []dashboard.Project
	Features     []dashboard.Feature
	Keys         []dashboard.Key
	Languages    []dashboard.Language
	Translations []dashboard.Translation
}

type mockTranslation struct {
	dashboard.Translation
	createdAt time.Time
	updatedAt time.Time
}

// MockClient implements dashboard.Backend in memory. It assigns ids, keeps
// one translation per key and locale, and computes a simple statistics
// aggregate so demos render.
type MockClient struct {
	mu           sync.RWMutex
	now          func() time.Time
	projects     map[string]dashboard.Project
	features     map[string]dashboard.Feature
	keys         map[string]dashboard.Key
	languages    map[string]dashboard.Language
	translations map[string]*mockTranslation
}

var _ dashboard.Backend = (*MockClient)(nil)

// NewMockClient builds a mock API from data.
func NewMockClient(data MockData) *MockClient {
	c := &MockClient{
		now:          time.Now,
		projects:     map[string]dashboard.Project{},
		features:     map[string]dashboard.Feature{},
		keys:         map[string]dashboard.Key{},
		languages:    map[string]dashboard.Language{},
		translations: map[string]*mockTranslation{},
	}
	for _, p := range data.Projects {
		c.projects[p.ID] = p
	}
	for _, f := range data.Features {
		c.features[f.ID] = f
	}
	for _, k := range data.Keys {
		c.keys[k.ID] = k
	}
	for _, l := range data.Languages {
		c.languages[l.ID] = l
	}
	now := c.now()
	for _, t := range data.Translations {
		c.translations[t.ID] = &mockTranslation{Translation: t, createdAt: now, updatedAt: now}
	}
	return c
}

func notFound(kind, id string) error {
	return &dashboard.APIError{
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s %s not found", kind, id),
	}
}

func conflict(message string) error {
	return &dashboard.APIError{Status: http.StatusConflict, Message: message}
}

func sortedValues[T any](m map[string]T, key func(T) string) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(key(a), key(b)) })
	return out
}

func (c *MockClient) ListProjects(context.Context) ([]dashboard.Project, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedValues(c.projects, func(p dashboard.Project) string { return p.Name }), nil
}

func (c *MockClient) GetProject(_ context.Context, id string) (dashboard.Project, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.projects[id]
	if !ok {
		return dashboard.Project{}, notFound("project", id)
	}
	return p, nil
}

func (c *MockClient) CreateProject(_ context.Context, input dashboard.CreateProjectInput) (dashboard.Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	p := dashboard.Project{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	c.projects[p.ID] = p
	return p, nil
}

func (c *MockClient) UpdateProject(_ context.Context, id string, input dashboard.UpdateProjectInput) (dashboard.Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.projects[id]
	if !ok {
		return dashboard.Project{}, notFound("project", id)
	}
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	p.UpdatedAt = c.now()
	c.projects[id] = p
	return p, nil
}

// DeleteProject cascades to the project's features and languages.
func (c *MockClient) DeleteProject(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.projects[id]; !ok {
		return notFound("project", id)
	}
	delete(c.projects, id)
	for fid, f := range c.features {
		if f.ProjectID == id {
			c.deleteFeatureLocked(fid)
		}
	}
	for lid, l := range c.languages {
		if l.ProjectID == id {
			delete(c.languages, lid)
		}
	}
	return nil
}

func (c *MockClient) ListFeatures(_ context.Context, projectID string) ([]dashboard.Feature, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]dashboard.Feature, 0, len(c.features))
	for _, f := range sortedValues(c.features, func(f dashboard.Feature) string { return f.Name }) {
		if projectID != "" && f.ProjectID != projectID {
			continue
		}
		out = append(out, c.withKeyCountLocked(f))
	}
	return out, nil
}

func (c *MockClient) withKeyCountLocked(f dashboard.Feature) dashboard.Feature {
	total := 0
	for _, k := range c.keys {
		if k.FeatureID == f.ID {
			total++
		}
	}
	f.TotalKeys = &total
	return f
}

func (c *MockClient) GetFeature(_ context.Context, id string) (dashboard.Feature, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.features[id]
	if !ok {
		return dashboard.Feature{}, notFound("feature", id)
	}
	return c.withKeyCountLocked(f), nil
}

func (c *MockClient) CreateFeature(_ context.Context, input dashboard.CreateFeatureInput) (dashboard.Feature, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.projects[input.ProjectID]; !ok {
		return dashboard.Feature{}, notFound("project", input.ProjectID)
	}
	f := dashboard.Feature{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		ProjectID:   input.ProjectID,
	}
	c.features[f.ID] = f
	return c.withKeyCountLocked(f), nil
}

func (c *MockClient) UpdateFeature(_ context.Context, id string, input dashboard.UpdateFeatureInput) (dashboard.Feature, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.features[id]
	if !ok {
		return dashboard.Feature{}, notFound("feature", id)
	}
	if input.Name != nil {
		f.Name = *input.Name
	}
	if input.Description != nil {
		f.Description = *input.Description
	}
	c.features[id] = f
	return c.withKeyCountLocked(f), nil
}

func (c *MockClient) DeleteFeature(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.features[id]; !ok {
		return notFound("feature", id)
	}
	c.deleteFeatureLocked(id)
	return nil
}

func (c *MockClient) deleteFeatureLocked(id string) {
	delete(c.features, id)
	for kid, k := range c.keys {
		if k.FeatureID == id {
			c.deleteKeyLocked(kid)
		}
	}
}

func (c *MockClient) ListKeys(_ context.Context, featureID string) ([]dashboard.Key, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]dashboard.Key, 0)
	for _, k := range sortedValues(c.keys, func(k dashboard.Key) string { return k.Key }) {
		if k.FeatureID == featureID {
			out = append(out, k)
		}
	}
	return out, nil
}

func (c *MockClient) GetKey(_ context.Context, id string) (dashboard.KeyWithFeature, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	k, ok := c.keys[id]
	if !ok {
		return dashboard.KeyWithFeature{}, notFound("key", id)
	}
	out := dashboard.KeyWithFeature{Key: k}
	if f, ok := c.features[k.FeatureID]; ok {
		out.Feature = &f
	}
	return out, nil
}

func (c *MockClient) CreateKey(_ context.Context, input dashboard.CreateKeyInput) (dashboard.Key, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.createKeyLocked(input)
}

func (c *MockClient) createKeyLocked(input dashboard.CreateKeyInput) (dashboard.Key, error) {
	if _, ok := c.features[input.FeatureID]; !ok {
		return dashboard.Key{}, notFound("feature", input.FeatureID)
	}
	for _, k := range c.keys {
		if k.FeatureID == input.FeatureID && k.Key == input.Key {
			return dashboard.Key{}, conflict(fmt.Sprintf("key %q already exists in this feature", input.Key))
		}
	}
	k := dashboard.Key{
		ID:          uuid.NewString(),
		Key:         input.Key,
		Description: input.Description,
		FeatureID:   input.FeatureID,
	}
	c.keys[k.ID] = k
	return k, nil
}

func (c *MockClient) UpdateKey(_ context.Context, id string, input dashboard.UpdateKeyInput) (dashboard.Key, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k, ok := c.keys[id]
	if !ok {
		return dashboard.Key{}, notFound("key", id)
	}
	if input.Key != nil {
		k.Key = *input.Key
	}
	if input.Description != nil {
		k.Description = *input.Description
	}
	c.keys[id] = k
	return k, nil
}

func (c *MockClient) DeleteKey(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.keys[id]; !ok {
		return notFound("key", id)
	}
	c.deleteKeyLocked(id)
	return nil
}

func (c *MockClient) deleteKeyLocked(id string) {
	delete(c.keys, id)
	for tid, t := range c.translations {
		if t.KeyID == id {
			delete(c.translations, tid)
		}
	}
}

func (c *MockClient) ListLanguages(_ context.Context, projectID string) ([]dashboard.Language, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.languagesLocked(projectID), nil
}

func (c *MockClient) languagesLocked(projectID string) []dashboard.Language {
	out := make([]dashboard.Language, 0)
	for _, l := range sortedValues(c.languages, func(l dashboard.Language) string { return l.Locale }) {
		if projectID != "" && l.ProjectID != "" && l.ProjectID != projectID {
			continue
		}
		out = append(out, l)
	}
	return out
}

func (c *MockClient) CreateLanguage(_ context.Context, input dashboard.CreateLanguageInput) (dashboard.Language, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.languages {
		if l.Locale == input.Locale && l.ProjectID == input.ProjectID {
			return dashboard.Language{}, conflict(fmt.Sprintf("language %s already exists", input.Locale))
		}
	}
	l := dashboard.Language{
		ID:        uuid.NewString(),
		Locale:    input.Locale,
		Name:      input.Name,
		IsActive:  input.IsActive,
		ProjectID: input.ProjectID,
	}
	c.languages[l.ID] = l
	return l, nil
}

func (c *MockClient) UpdateLanguage(_ context.Context, id string, input dashboard.UpdateLanguageInput) (dashboard.Language, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.languages[id]
	if !ok {
		return dashboard.Language{}, notFound("language", id)
	}
	if input.Locale != nil {
		l.Locale = *input.Locale
	}
	if input.Name != nil {
		l.Name = *input.Name
	}
	if input.IsActive != nil {
		l.IsActive = *input.IsActive
	}
	c.languages[id] = l
	return l, nil
}

func (c *MockClient) DeleteLanguage(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.languages[id]; !ok {
		return notFound("language", id)
	}
	delete(c.languages, id)
	return nil
}

func (c *MockClient) ListTranslations(_ context.Context, keyID string) ([]dashboard.Translation, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]dashboard.Translation, 0)
	for _, t := range c.translations {
		if t.KeyID == keyID {
			out = append(out, t.Translation)
		}
	}
	slices.SortFunc(out, func(a, b dashboard.Translation) int { return cmp.Compare(a.Locale, b.Locale) })
	return out, nil
}

func (c *MockClient) findTranslationLocked(keyID, locale string) *mockTranslation {
	for _, t := range c.translations {
		if t.KeyID == keyID && t.Locale == locale {
			return t
		}
	}
	return nil
}

func (c *MockClient) CreateTranslation(_ context.Context, input dashboard.CreateTranslationInput) (dashboard.Translation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.keys[input.KeyID]; !ok {
		return dashboard.Translation{}, notFound("key", input.KeyID)
	}
	if c.findTranslationLocked(input.KeyID, input.Locale) != nil {
		return dashboard.Translation{}, conflict(fmt.Sprintf("translation for locale %s already exists", input.Locale))
	}
	return c.insertTranslationLocked(input.KeyID, input.Locale, input.Value), nil
}

func (c *MockClient) insertTranslationLocked(keyID, locale, value string) dashboard.Translation {
	now := c.now()
	t := &mockTranslation{
		Translation: dashboard.Translation{ID: uuid.NewString(), KeyID: keyID, Locale: locale, Value: value},
		createdAt:   now,
		updatedAt:   now,
	}
	c.translations[t.ID] = t
	return t.Translation
}

func (c *MockClient) UpdateTranslation(_ context.Context, id, value string) (dashboard.Translation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.translations[id]
	if !ok {
		return dashboard.Translation{}, notFound("translation", id)
	}
	t.Value = value
	t.updatedAt = c.now()
	return t.Translation, nil
}

func (c *MockClient) DeleteTranslation(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.translations[id]; !ok {
		return notFound("translation", id)
	}
	delete(c.translations, id)
	return nil
}

// upsertLocked reports whether a new translation was created.
func (c *MockClient) upsertLocked(keyID, locale, value string) (dashboard.Translation, bool) {
	if existing := c.findTranslationLocked(keyID, locale); existing != nil {
		existing.Value = value
		existing.updatedAt = c.now()
		return existing.Translation, false
	}
	return c.insertTranslationLocked(keyID, locale, value), true
}

func (c *MockClient) BulkUpsert(_ context.Context, input dashboard.BulkUpsertInput) ([]dashboard.Translation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.keys[input.KeyID]; !ok {
		return nil, notFound("key", input.KeyID)
	}
	out := make([]dashboard.Translation, 0, len(input.Translations))
	for _, lv := range input.Translations {
		t, _ := c.upsertLocked(input.KeyID, lv.Locale, lv.Value)
		out = append(out, t)
	}
	return out, nil
}

// BulkUpload reads a "key,<locale>..." CSV. Unknown keys are created in the
// feature and empty cells are skipped.
func (c *MockClient) BulkUpload(_ context.Context, featureID, _ string, file io.Reader) (dashboard.BulkUploadResult, error) {
	doc, err := dashboard.ParseCSV(file)
	if err != nil {
		return dashboard.BulkUploadResult{}, &dashboard.APIError{Status: http.StatusBadRequest, Message: err.Error()}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.features[featureID]; !ok {
		return dashboard.BulkUploadResult{}, notFound("feature", featureID)
	}
	var result dashboard.BulkUploadResult
	for _, row := range doc.Records() {
		name := strings.TrimSpace(row[dashboard.KeyColumn])
		if name == "" {
			result.Skipped++
			continue
		}
		keyID := ""
		for _, k := range c.keys {
			if k.FeatureID == featureID && k.Key == name {
				keyID = k.ID
				break
			}
		}
		if keyID == "" {
			k, err := c.createKeyLocked(dashboard.CreateKeyInput{Key: name, FeatureID: featureID})
			if err != nil {
				return result, err
			}
			keyID = k.ID
		}
		for _, header := range doc.Headers {
			if header == dashboard.KeyColumn {
				continue
			}
			value := row[header]
			if strings.TrimSpace(value) == "" {
				result.Skipped++
				continue
			}
			if _, created := c.upsertLocked(keyID, header, value); created {
				result.Created++
			} else {
				result.Updated++
			}
		}
	}
	result.Message = fmt.Sprintf("Processed %d rows", len(doc.Rows))
	return result, nil
}

func (c *MockClient) SearchTranslations(_ context.Context, params dashboard.SearchParams) (dashboard.Page[dashboard.TranslationListItem], error) {
	c.mu.RLock()
	items := make([]dashboard.TranslationListItem, 0, len(c.translations))
	q := strings.ToLower(strings.TrimSpace(params.Q))
	for _, t := range c.translations {
		k, ok := c.keys[t.KeyID]
		if !ok {
			continue
		}
		f := c.features[k.FeatureID]
		if params.Locale != "" && t.Locale != params.Locale {
			continue
		}
		if params.FeatureID != "" && k.FeatureID != params.FeatureID {
			continue
		}
		if params.ProjectID != "" && f.ProjectID != params.ProjectID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(k.Key), q) && !strings.Contains(strings.ToLower(t.Value), q) {
			continue
		}
		items = append(items, dashboard.TranslationListItem{
			ID:          t.ID,
			KeyID:       k.ID,
			KeyName:     k.Key,
			FeatureID:   f.ID,
			FeatureName: f.Name,
			Locale:      t.Locale,
			Value:       t.Value,
			CreatedAt:   t.createdAt,
			UpdatedAt:   t.updatedAt,
		})
	}
	c.mu.RUnlock()

	slices.SortStableFunc(items, func(a, b dashboard.TranslationListItem) int {
		var r int
		switch params.SortBy {
		case "keyName", "key":
			r = cmp.Compare(a.KeyName, b.KeyName)
		case "locale":
			r = cmp.Compare(a.Locale, b.Locale)
		case "value":
			r = cmp.Compare(a.Value, b.Value)
		case "createdAt":
			r = a.CreatedAt.Compare(b.CreatedAt)
		default:
			r = a.UpdatedAt.Compare(b.UpdatedAt)
		}
		if r == 0 {
			r = cmp.Compare(a.KeyName+a.Locale, b.KeyName+b.Locale)
		}
		if params.SortOrder != dashboard.SortAsc {
			r = -r
		}
		return r
	})

	page, limit := params.Page, params.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = dashboard.DefaultPageSize
	}
	total := len(items)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)
	return dashboard.Page[dashboard.TranslationListItem]{
		Data: items[start:end],
		Meta: dashboard.PaginationMeta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

// Statistics computes completion over active languages for the keys in
// scope.
func (c *MockClient) Statistics(_ context.Context, filter dashboard.StatisticsFilter) (dashboard.Statistics, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var locales []string
	for _, l := range c.languagesLocked(filter.ProjectID) {
		if l.IsActive {
			locales = append(locales, l.Locale)
		}
	}
	features := map[string]dashboard.Feature{}
	for id, f := range c.features {
		if filter.ProjectID != "" && f.ProjectID != filter.ProjectID {
			continue
		}
		if filter.FeatureID != "" && id != filter.FeatureID {
			continue
		}
		features[id] = f
	}
	keys := sortedValues(c.keys, func(k dashboard.Key) string { return k.Key + "\x00" + k.ID })
	keys = slices.DeleteFunc(keys, func(k dashboard.Key) bool { _, ok := features[k.FeatureID]; return !ok })

	byKey := map[string]map[string]*mockTranslation{}
	stats := dashboard.Statistics{
		MissingTranslations: []dashboard.MissingTranslation{},
		CompletionByLocale:  []dashboard.LocaleCompletion{},
		CompletionByFeature: []dashboard.FeatureCompletion{},
		RecentlyUpdated:     []dashboard.RecentTranslation{},
		MostActiveFeatures:  []dashboard.ActiveFeature{},
		DuplicateKeys:       []dashboard.DuplicateKey{},
	}
	var recent []*mockTranslation
	for _, t := range c.translations {
		k, ok := c.keys[t.KeyID]
		if !ok {
			continue
		}
		if _, ok := features[k.FeatureID]; !ok {
			continue
		}
		if byKey[t.KeyID] == nil {
			byKey[t.KeyID] = map[string]*mockTranslation{}
		}
		byKey[t.KeyID][t.Locale] = t
		stats.TotalTranslations++
		if strings.TrimSpace(t.Value) == "" {
			stats.EmptyValueCount++
		}
		recent = append(recent, t)
	}

	filledByLocale := map[string]int{}
	type featureTotals struct{ filled, total, translations int }
	perFeature := map[string]*featureTotals{}
	namesByKey := map[string][]dashboard.FeatureRef{}
	filledCells := 0
	for _, k := range keys {
		f := features[k.FeatureID]
		ft := perFeature[f.ID]
		if ft == nil {
			ft = &featureTotals{}
			perFeature[f.ID] = ft
		}
		namesByKey[k.Key] = append(namesByKey[k.Key], dashboard.FeatureRef{FeatureID: f.ID, FeatureName: f.Name})
		ft.translations += len(byKey[k.ID])
		if len(byKey[k.ID]) == 0 {
			stats.OrphanedKeysCount++
		}
		item := dashboard.MissingTranslation{
			KeyID:          k.ID,
			KeyName:        k.Key,
			FeatureID:      f.ID,
			FeatureName:    f.Name,
			ProjectID:      f.ProjectID,
			ProjectName:    c.projects[f.ProjectID].Name,
			MissingLocales: []string{},
			FilledLocales:  []string{},
		}
		for _, locale := range locales {
			ft.total++
			if t := byKey[k.ID][locale]; t != nil && strings.TrimSpace(t.Value) != "" {
				item.FilledLocales = append(item.FilledLocales, locale)
				filledByLocale[locale]++
				filledCells++
				ft.filled++
			} else {
				item.MissingLocales = append(item.MissingLocales, locale)
			}
		}
		if len(item.MissingLocales) > 0 {
			stats.MissingTranslations = append(stats.MissingTranslations, item)
		}
	}

	for _, locale := range locales {
		stats.CompletionByLocale = append(stats.CompletionByLocale, dashboard.LocaleCompletion{
			Locale:     locale,
			Total:      len(keys),
			Filled:     filledByLocale[locale],
			Percentage: percent(filledByLocale[locale], len(keys)),
		})
	}
	stats.OverallCompletionPercentage = percent(filledCells, len(keys)*len(locales))

	for _, f := range sortedValues(features, func(f dashboard.Feature) string { return f.Name }) {
		ft := perFeature[f.ID]
		if ft == nil {
			ft = &featureTotals{}
		}
		stats.CompletionByFeature = append(stats.CompletionByFeature, dashboard.FeatureCompletion{
			FeatureID:   f.ID,
			FeatureName: f.Name,
			Total:       ft.total,
			Filled:      ft.filled,
			Percentage:  percent(ft.filled, ft.total),
		})
		if ft.filled < ft.total {
			stats.ActiveFeaturesWithMissingTranslations++
		}
		if ft.translations > 0 {
			stats.MostActiveFeatures = append(stats.MostActiveFeatures, dashboard.ActiveFeature{
				FeatureID:        f.ID,
				FeatureName:      f.Name,
				TranslationCount: ft.translations,
			})
		}
	}
	slices.SortStableFunc(stats.MostActiveFeatures, func(a, b dashboard.ActiveFeature) int {
		return cmp.Compare(b.TranslationCount, a.TranslationCount)
	})
	if len(stats.MostActiveFeatures) > 5 {
		stats.MostActiveFeatures = stats.MostActiveFeatures[:5]
	}

	for _, name := range slices.Sorted(maps.Keys(namesByKey)) {
		if refs := namesByKey[name]; len(refs) > 1 {
			stats.DuplicateKeys = append(stats.DuplicateKeys, dashboard.DuplicateKey{KeyName: name, Features: refs})
		}
	}

	slices.SortFunc(recent, func(a, b *mockTranslation) int { return b.updatedAt.Compare(a.updatedAt) })
	for _, t := range recent[:min(len(recent), 10)] {
		stats.RecentlyUpdated = append(stats.RecentlyUpdated, dashboard.RecentTranslation{
			KeyID:     t.KeyID,
			KeyName:   c.keys[t.KeyID].Key,
			Locale:    t.Locale,
			Value:     t.Value,
			UpdatedAt: t.updatedAt,
		})
	}
	return stats, nil
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// AITranslate fills the missing target locales of a key with a marked copy
// of its first available translation.
func (c *MockClient) AITranslate(_ context.Context, input dashboard.AITranslateInput) (dashboard.AITranslateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.keys[input.KeyID]; !ok {
		return dashboard.AITranslateResult{}, notFound("key", input.KeyID)
	}
	result := dashboard.AITranslateResult{Success: true, Errors: []string{}, Translations: []dashboard.Translation{}}
	for _, locale := range input.TargetLocales {
		t, ok := c.machineTranslateLocked(input.KeyID, locale)
		if !ok {
			result.SkippedCount++
			continue
		}
		result.TranslatedCount++
		result.Translations = append(result.Translations, t)
	}
	return result, nil
}

func (c *MockClient) AITranslateBatch(_ context.Context, input dashboard.AITranslateBatchInput) (dashboard.AITranslateBatchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := dashboard.AITranslateBatchResult{Success: true, Errors: []string{}}
	for _, k := range sortedValues(c.keys, func(k dashboard.Key) string { return k.ID }) {
		f := c.features[k.FeatureID]
		if input.FeatureID != "" && f.ID != input.FeatureID {
			continue
		}
		if input.FeatureID == "" && input.ProjectID != "" && f.ProjectID != input.ProjectID {
			continue
		}
		result.Statistics.TotalKeys++
		for _, locale := range input.TargetLocales {
			if _, ok := c.machineTranslateLocked(k.ID, locale); ok {
				result.TranslatedCount++
			} else {
				result.SkippedCount++
			}
		}
		result.Statistics.ProcessedKeys++
	}
	result.Statistics.EstimatedTimeSeconds = float64(result.TranslatedCount) * 0.5
	return result, nil
}

// machineTranslateLocked reports false when locale is already filled or the
// key has no source text.
func (c *MockClient) machineTranslateLocked(keyID, locale string) (dashboard.Translation, bool) {
	if t := c.findTranslationLocked(keyID, locale); t != nil && strings.TrimSpace(t.Value) != "" {
		return dashboard.Translation{}, false
	}
	var source *mockTranslation
	for _, t := range c.translations {
		if t.KeyID == keyID && t.Locale != locale && strings.TrimSpace(t.Value) != "" {
			if source == nil || t.Locale < source.Locale {
				source = t
			}
		}
	}
	if source == nil {
		return dashboard.Translation{}, false
	}
	t, _ := c.upsertLocked(keyID, locale, fmt.Sprintf("[%s] %s", locale, source.Value))
	return t, true
}

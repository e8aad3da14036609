package dashboard

import (
	"fmt"
	"strings"
	"time"
)

// ViewerContext describes the operator a page is rendered for.
type ViewerContext struct {
	UserID    string   `json:"userId,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	Locale    string   `json:"locale,omitempty"`
	ProjectID string   `json:"projectId,omitempty"`
}

// MetricCard is one headline number on the dashboard page.
type MetricCard struct {
	Title    string `json:"title"`
	Value    string `json:"value"`
	Subtitle string `json:"subtitle"`
	Tone     string `json:"tone,omitempty"`
}

// CompletionRow is one bar of a completion breakdown.
type CompletionRow struct {
	ID         string          `json:"id,omitempty"`
	Label      string          `json:"label"`
	Filled     int             `json:"filled"`
	Total      int             `json:"total"`
	Percentage float64         `json:"percentage"`
	Formatted  string          `json:"formatted"`
	Level      CompletionLevel `json:"level"`
	Tone       string          `json:"tone"`
}

// HealthIndicator reports one data-quality check.
type HealthIndicator struct {
	Name    string   `json:"name"`
	Count   int      `json:"count"`
	OK      bool     `json:"ok"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// ActivityRow is a recently updated translation with a relative timestamp.
type ActivityRow struct {
	KeyID   string `json:"keyId"`
	KeyName string `json:"keyName"`
	Locale  string `json:"locale"`
	Value   string `json:"value"`
	When    string `json:"when"`
}

// DashboardView is the data of the statistics page.
type DashboardView struct {
	ProjectID   string               `json:"projectId,omitempty"`
	FeatureID   string               `json:"featureId,omitempty"`
	Features    []Feature            `json:"features,omitempty"`
	Metrics     []MetricCard         `json:"metrics"`
	ByLocale    []CompletionRow      `json:"byLocale"`
	ByFeature   []CompletionRow      `json:"byFeature"`
	Health      []HealthIndicator    `json:"health"`
	Healthy     bool                 `json:"healthy"`
	Missing     []MissingTranslation `json:"missing"`
	Recent      []ActivityRow        `json:"recent"`
	Charts      RenderedCharts       `json:"charts"`
	GeneratedAt time.Time            `json:"generatedAt"`
}

// BuildDashboardView formats stats for display.
func BuildDashboardView(stats Statistics, numbers NumberFormatter, now time.Time) DashboardView {
	view := DashboardView{
		Metrics: []MetricCard{
			{
				Title:    "Overall Completion",
				Value:    FormatPercentage(stats.OverallCompletionPercentage),
				Subtitle: "Across all locales and keys",
				Tone:     CompletionLevelFor(stats.OverallCompletionPercentage).Tone(),
			},
			{Title: "Total Translations", Value: numbers.Format(stats.TotalTranslations), Subtitle: "Translation records"},
			{Title: "Empty Values", Value: numbers.Format(stats.EmptyValueCount), Subtitle: "Translations with empty strings"},
			{Title: "Missing Translations", Value: numbers.Format(len(stats.MissingTranslations)), Subtitle: "Keys with incomplete locales"},
		},
		ByLocale:    make([]CompletionRow, 0, len(stats.CompletionByLocale)),
		ByFeature:   make([]CompletionRow, 0, len(stats.CompletionByFeature)),
		Missing:     stats.MissingTranslations,
		Recent:      make([]ActivityRow, 0, len(stats.RecentlyUpdated)),
		GeneratedAt: now,
	}
	for _, row := range stats.CompletionByLocale {
		view.ByLocale = append(view.ByLocale, completionRow(row.Locale, row.Locale, row.Filled, row.Total, row.Percentage))
	}
	for _, row := range stats.CompletionByFeature {
		view.ByFeature = append(view.ByFeature, completionRow(row.FeatureID, row.FeatureName, row.Filled, row.Total, row.Percentage))
	}
	for _, item := range stats.RecentlyUpdated {
		view.Recent = append(view.Recent, ActivityRow{
			KeyID:   item.KeyID,
			KeyName: item.KeyName,
			Locale:  item.Locale,
			Value:   item.Value,
			When:    FormatRelativeTime(item.UpdatedAt, now),
		})
	}
	if view.Missing == nil {
		view.Missing = []MissingTranslation{}
	}
	view.Health = HealthIndicators(stats)
	view.Healthy = true
	for _, h := range view.Health {
		view.Healthy = view.Healthy && h.OK
	}
	return view
}

func completionRow(id, label string, filled, total int, pct float64) CompletionRow {
	level := CompletionLevelFor(pct)
	return CompletionRow{
		ID:         id,
		Label:      label,
		Filled:     filled,
		Total:      total,
		Percentage: pct,
		Formatted:  FormatPercentage(pct),
		Level:      level,
		Tone:       level.Tone(),
	}
}

// HealthIndicators evaluates orphaned keys, duplicate key names and features
// with incomplete translations.
func HealthIndicators(stats Statistics) []HealthIndicator {
	orphaned := HealthIndicator{Name: "orphaned_keys", Count: stats.OrphanedKeysCount, OK: stats.OrphanedKeysCount == 0}
	if orphaned.OK {
		orphaned.Message = "No orphaned keys"
	} else {
		orphaned.Message = fmt.Sprintf("%d orphaned %s found (keys with no translations in any locale)",
			stats.OrphanedKeysCount, plural(stats.OrphanedKeysCount, "key", "keys"))
	}

	duplicates := HealthIndicator{Name: "duplicate_keys", Count: len(stats.DuplicateKeys), OK: len(stats.DuplicateKeys) == 0}
	if duplicates.OK {
		duplicates.Message = "No duplicate keys"
	} else {
		duplicates.Message = fmt.Sprintf("%d duplicate %s found", len(stats.DuplicateKeys), plural(len(stats.DuplicateKeys), "key", "keys"))
		for _, dup := range stats.DuplicateKeys {
			names := make([]string, 0, len(dup.Features))
			for _, f := range dup.Features {
				names = append(names, f.FeatureName)
			}
			duplicates.Details = append(duplicates.Details, fmt.Sprintf("%s (%s)", dup.KeyName, strings.Join(names, ", ")))
		}
	}

	count := stats.ActiveFeaturesWithMissingTranslations
	incomplete := HealthIndicator{Name: "incomplete_features", Count: count, OK: count == 0}
	if incomplete.OK {
		incomplete.Message = "All active features have complete translations"
	} else {
		incomplete.Message = fmt.Sprintf("%d active %s with incomplete translations", count, plural(count, "feature", "features"))
	}
	return []HealthIndicator{orphaned, duplicates, incomplete}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// EditorView is the data of the per-key translation editor.
type EditorView struct {
	Key        KeyWithFeature `json:"key"`
	Filter     DraftFilter    `json:"filter"`
	Rows       []DraftRow     `json:"rows"`
	Filled     int            `json:"filled"`
	Total      int            `json:"total"`
	Percent    int            `json:"percent"`
	Dirty      []string       `json:"dirty"`
	HasChanges bool           `json:"hasChanges"`
}

// BuildEditorView projects draft through filter.
func BuildEditorView(key KeyWithFeature, draft *TranslationDraft, filter DraftFilter) EditorView {
	filled, total, percent := draft.Progress()
	return EditorView{
		Key:        key,
		Filter:     filter,
		Rows:       draft.Rows(filter),
		Filled:     filled,
		Total:      total,
		Percent:    percent,
		Dirty:      draft.DirtyLocales(),
		HasChanges: draft.HasChanges(),
	}
}

// FilterChip is an active search filter shown above the table.
type FilterChip struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SearchRow is a translation row with display fields.
type SearchRow struct {
	TranslationListItem
	Updated string `json:"updated"`
	Empty   bool   `json:"empty"`
}

// SearchView is the data of the translations table page. PrevQuery and
// NextQuery are encoded query strings that keep every filter and sort of
// Params while moving one page.
type SearchView struct {
	Params           SearchParams   `json:"params"`
	Rows             []SearchRow    `json:"rows"`
	Meta             PaginationMeta `json:"meta"`
	Filters          []FilterChip   `json:"filters"`
	HasActiveFilters bool           `json:"hasActiveFilters"`
	HasPrev          bool           `json:"hasPrev"`
	HasNext          bool           `json:"hasNext"`
	PrevPage         int            `json:"prevPage,omitempty"`
	NextPage         int            `json:"nextPage,omitempty"`
	PrevQuery        string         `json:"prevQuery,omitempty"`
	NextQuery        string         `json:"nextQuery,omitempty"`
	ExportQuery      string         `json:"exportQuery"`
	Features         []Feature      `json:"features,omitempty"`
}

// BuildSearchView formats a search page requested with params.
func BuildSearchView(page Page[TranslationListItem], params SearchParams, now time.Time) SearchView {
	view := SearchView{
		Params:  params,
		Rows:    make([]SearchRow, 0, len(page.Data)),
		Meta:    page.Meta,
		Filters: []FilterChip{},
	}
	for _, item := range page.Data {
		view.Rows = append(view.Rows, SearchRow{
			TranslationListItem: item,
			Updated:             FormatRelativeTime(item.UpdatedAt, now),
			Empty:               !isFilled(item.Value),
		})
	}
	if params.Q != "" {
		view.Filters = append(view.Filters, FilterChip{Name: "q", Value: params.Q})
	}
	if params.Locale != "" {
		view.Filters = append(view.Filters, FilterChip{Name: "locale", Value: params.Locale})
	}
	if params.FeatureID != "" {
		view.Filters = append(view.Filters, FilterChip{Name: "featureId", Value: params.FeatureID})
	}
	view.HasActiveFilters = len(view.Filters) > 0
	view.HasPrev = page.Meta.Page > 1
	view.HasNext = page.Meta.Page < page.Meta.TotalPages
	if view.HasPrev {
		view.PrevPage = page.Meta.Page - 1
		view.PrevQuery = pageQuery(params, view.PrevPage)
	}
	if view.HasNext {
		view.NextPage = page.Meta.Page + 1
		view.NextQuery = pageQuery(params, view.NextPage)
	}
	export := params
	export.Page, export.Limit = 0, 0
	view.ExportQuery = export.Query().Encode()
	return view
}

func pageQuery(params SearchParams, page int) string {
	params.Page = page
	return params.Query().Encode()
}

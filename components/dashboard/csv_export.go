package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/ettle/strcase"
)

// DefaultExportPrefix names exports when the caller gives no prefix.
const DefaultExportPrefix = "translations"

// CSVContentType is sent with CSV downloads.
const CSVContentType = "text/csv; charset=utf-8"

// GenerateCSV groups items by key name and emits one row per key with a cell
// per locale. Keys keep the order in which they first appear in items, so
// the same input always yields the same bytes.
func GenerateCSV(items []TranslationListItem, locales []string) string {
	order := make([]string, 0, len(items))
	values := map[string]map[string]string{}
	for _, item := range items {
		row, ok := values[item.KeyName]
		if !ok {
			row = map[string]string{}
			values[item.KeyName] = row
			order = append(order, item.KeyName)
		}
		row[item.Locale] = item.Value
	}

	lines := make([]string, 0, len(order)+1)
	header := make([]string, 0, len(locales)+1)
	header = append(header, "Key")
	for _, locale := range locales {
		header = append(header, escapeCSVField(locale))
	}
	lines = append(lines, strings.Join(header, ","))

	for _, key := range order {
		cells := make([]string, 0, len(locales)+1)
		cells = append(cells, escapeCSVField(key))
		for _, locale := range locales {
			cells = append(cells, escapeCSVField(values[key][locale]))
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n")
}

// escapeCSVField quotes values holding a comma, quote or line break. A
// "\r\n" inside a value is read back as "\n" by encoding/csv.
func escapeCSVField(value string) string {
	if !strings.ContainsAny(value, ",\"\r\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// UniqueLocales returns the distinct locales present in items, sorted.
func UniqueLocales(items []TranslationListItem) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, item := range items {
		if _, ok := seen[item.Locale]; ok {
			continue
		}
		seen[item.Locale] = struct{}{}
		out = append(out, item.Locale)
	}
	sort.Strings(out)
	return out
}

// ActiveLocales keeps the locales that have an active language, preserving
// the order of locales.
func ActiveLocales(locales []string, languages []Language) []string {
	active := map[string]bool{}
	for _, lang := range languages {
		if lang.IsActive {
			active[lang.Locale] = true
		}
	}
	out := make([]string, 0, len(locales))
	for _, locale := range locales {
		if active[locale] {
			out = append(out, locale)
		}
	}
	return out
}

// ExportFilename builds "<prefix>_<YYYY-MM-DD>.csv" with the prefix in snake
// case.
func ExportFilename(prefix string, now time.Time) string {
	prefix = strcase.ToSnake(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = DefaultExportPrefix
	}
	return prefix + "_" + now.Format(time.DateOnly) + ".csv"
}

// Export is a generated download.
type Export struct {
	Filename    string
	ContentType string
	Content     []byte
	Rows        int
	Locales     []string
}

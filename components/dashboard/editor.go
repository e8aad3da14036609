package dashboard

import (
	"sort"
	"strings"
)

// DraftFilter selects editor rows by their working value.
type DraftFilter string

const (
	FilterAll    DraftFilter = "all"
	FilterEmpty  DraftFilter = "empty"
	FilterFilled DraftFilter = "filled"
)

// ParseDraftFilter maps user input onto a filter, defaulting to FilterAll.
func ParseDraftFilter(v string) DraftFilter {
	switch DraftFilter(strings.ToLower(strings.TrimSpace(v))) {
	case FilterEmpty:
		return FilterEmpty
	case FilterFilled:
		return FilterFilled
	}
	return FilterAll
}

// RowStatus is the badge shown next to an editor row.
type RowStatus string

const (
	RowModified   RowStatus = "modified"
	RowMissing    RowStatus = "missing"
	RowTranslated RowStatus = "translated"
)

// DraftRow is one locale line of the translation editor.
type DraftRow struct {
	Locale        string    `json:"locale"`
	LanguageName  string    `json:"languageName"`
	TranslationID string    `json:"translationId,omitempty"`
	Value         string    `json:"value"`
	Exists        bool      `json:"exists"`
	Dirty         bool      `json:"dirty"`
	Status        RowStatus `json:"status"`
}

type draftLocale struct {
	locale        string
	languageName  string
	translationID string
}

// TranslationDraft is the local working copy of every active locale value of
// one key. It is owned by a single editor view and is not safe for
// concurrent use.
type TranslationDraft struct {
	keyID    string
	locales  []draftLocale
	original map[string]string
	working  map[string]string
	dirty    map[string]bool
}

// NewTranslationDraft seeds a draft from the key's translations, keeping one
// entry per active language. Locales without a translation start empty.
func NewTranslationDraft(keyID string, translations []Translation, languages []Language) *TranslationDraft {
	d := &TranslationDraft{
		keyID:    keyID,
		original: map[string]string{},
		working:  map[string]string{},
		dirty:    map[string]bool{},
	}
	existing := make(map[string]Translation, len(translations))
	for _, t := range translations {
		existing[t.Locale] = t
	}
	for _, lang := range languages {
		if !lang.IsActive {
			continue
		}
		if _, dup := d.original[lang.Locale]; dup {
			continue
		}
		t := existing[lang.Locale]
		d.locales = append(d.locales, draftLocale{
			locale:        lang.Locale,
			languageName:  lang.Name,
			translationID: t.ID,
		})
		d.original[lang.Locale] = t.Value
		d.working[lang.Locale] = t.Value
	}
	return d
}

func (d *TranslationDraft) KeyID() string { return d.keyID }

// Value returns the working value for locale.
func (d *TranslationDraft) Value(locale string) string { return d.working[locale] }

// Set updates the working value. The locale is dirty only while the value
// differs from the seeded original.
func (d *TranslationDraft) Set(locale, value string) {
	if _, ok := d.original[locale]; !ok {
		return
	}
	d.working[locale] = value
	if value != d.original[locale] {
		d.dirty[locale] = true
	} else {
		delete(d.dirty, locale)
	}
}

// Dirty reports whether locale has unsaved changes.
func (d *TranslationDraft) Dirty(locale string) bool { return d.dirty[locale] }

// DirtyLocales returns the changed locales, sorted.
func (d *TranslationDraft) DirtyLocales() []string {
	out := make([]string, 0, len(d.dirty))
	for locale := range d.dirty {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

func (d *TranslationDraft) HasChanges() bool { return len(d.dirty) > 0 }

// Discard restores every working value and clears dirty state.
func (d *TranslationDraft) Discard() {
	for locale, value := range d.original {
		d.working[locale] = value
	}
	clear(d.dirty)
}

// Changes returns a bulk upsert carrying exactly the dirty locales.
func (d *TranslationDraft) Changes() BulkUpsertInput {
	input := BulkUpsertInput{KeyID: d.keyID}
	for _, locale := range d.DirtyLocales() {
		input.Translations = append(input.Translations, LocaleValue{Locale: locale, Value: d.working[locale]})
	}
	return input
}

// Rebase makes the saved values the new originals. Locales edited again
// since the save stay dirty.
func (d *TranslationDraft) Rebase(saved []Translation) {
	for _, t := range saved {
		if _, ok := d.original[t.Locale]; !ok {
			continue
		}
		d.original[t.Locale] = t.Value
		for i := range d.locales {
			if d.locales[i].locale == t.Locale && t.ID != "" {
				d.locales[i].translationID = t.ID
			}
		}
		if d.working[t.Locale] == t.Value {
			delete(d.dirty, t.Locale)
		}
	}
}

// Rows returns every locale row matching filter, evaluated on working values.
func (d *TranslationDraft) Rows(filter DraftFilter) []DraftRow {
	out := make([]DraftRow, 0, len(d.locales))
	for _, l := range d.locales {
		value := d.working[l.locale]
		filled := isFilled(value)
		switch filter {
		case FilterEmpty:
			if filled {
				continue
			}
		case FilterFilled:
			if !filled {
				continue
			}
		}
		row := DraftRow{
			Locale:        l.locale,
			LanguageName:  l.languageName,
			TranslationID: l.translationID,
			Value:         value,
			Exists:        l.translationID != "",
			Dirty:         d.dirty[l.locale],
		}
		switch {
		case row.Dirty:
			row.Status = RowModified
		case !row.Exists || !filled:
			row.Status = RowMissing
		default:
			row.Status = RowTranslated
		}
		out = append(out, row)
	}
	return out
}

// Progress counts filled working values.
func (d *TranslationDraft) Progress() (filled, total, percent int) {
	total = len(d.locales)
	for _, l := range d.locales {
		if isFilled(d.working[l.locale]) {
			filled++
		}
	}
	if total == 0 {
		return 0, 0, 0
	}
	return filled, total, int(float64(filled)/float64(total)*100 + 0.5)
}

func isFilled(value string) bool {
	return strings.TrimSpace(value) != ""
}

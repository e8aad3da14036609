package dashboard

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatPercentage rounds v and appends a percent sign.
func FormatPercentage(v float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(v)))
}

// NumberFormatter prints grouped integers for a locale.
type NumberFormatter struct {
	printer *message.Printer
}

// NewNumberFormatter builds a formatter for tag. The zero tag falls back to
// English.
func NewNumberFormatter(tag language.Tag) NumberFormatter {
	if tag == language.Und {
		tag = language.English
	}
	return NumberFormatter{printer: message.NewPrinter(tag)}
}

// Format renders v with locale digit grouping.
func (f NumberFormatter) Format(v int) string {
	if f.printer == nil {
		return NewNumberFormatter(language.English).Format(v)
	}
	return f.printer.Sprintf("%d", v)
}

var defaultNumberFormatter = NewNumberFormatter(language.English)

// FormatNumber renders v with English digit grouping, e.g. 1,234.
func FormatNumber(v int) string {
	return defaultNumberFormatter.Format(v)
}

// CompletionLevel buckets a completion percentage for display.
type CompletionLevel string

const (
	CompletionComplete CompletionLevel = "complete"
	CompletionGood     CompletionLevel = "good"
	CompletionFair     CompletionLevel = "fair"
	CompletionPoor     CompletionLevel = "poor"
)

// CompletionLevelFor maps a percentage onto its display bucket.
func CompletionLevelFor(percentage float64) CompletionLevel {
	switch {
	case percentage >= 90:
		return CompletionComplete
	case percentage >= 70:
		return CompletionGood
	case percentage >= 50:
		return CompletionFair
	default:
		return CompletionPoor
	}
}

// Tone is the color name templates use for the level.
func (l CompletionLevel) Tone() string {
	switch l {
	case CompletionComplete:
		return "green"
	case CompletionGood:
		return "blue"
	case CompletionFair:
		return "yellow"
	default:
		return "red"
	}
}

// FormatRelativeTime describes t relative to now ("5m ago"). Anything older
// than a week is printed as a date.
func FormatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))
	switch {
	case minutes < 1:
		return "just now"
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("Jan 2, 2006")
}

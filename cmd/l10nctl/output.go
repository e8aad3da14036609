package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// toneStyle colours a completion tone from dashboard.CompletionLevel.
func toneStyle(tone string) lipgloss.Style {
	switch tone {
	case "green", "blue":
		return successStyle
	case "yellow":
		return warningStyle
	case "red":
		return errorStyle
	default:
		return cellStyle
	}
}

// emit writes payload as json or yaml, or calls table for the table format.
func (r *runtime) emit(payload any, render func() string) error {
	switch r.fmt {
	case "json":
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "yaml":
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(payload)
	default:
		_, err := fmt.Fprintln(r.out, render())
		return err
	}
}

// renderTable draws rows under headers. Headers are Go field names and are
// shown in SCREAMING_SNAKE case.
func renderTable(headers []string, rows [][]string) string {
	titles := make([]string, len(headers))
	for i, h := range headers {
		titles[i] = strings.ToUpper(strcase.ToSnake(h))
	}
	if len(rows) == 0 {
		return mutedStyle.Render("no results")
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(titles...).
		Rows(rows...).
		Render()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func completionBar(row dashboard.CompletionRow) string {
	const width = 20
	filled := int(row.Percentage / 100 * width)
	filled = max(0, min(width, filled))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return toneStyle(row.Tone).Render(bar + " " + row.Formatted)
}

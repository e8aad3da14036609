package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/goliatone/go-l10n-dashboard/components/dashboard"
	"github.com/goliatone/go-l10n-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-l10n-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-l10n-dashboard/components/dashboard/queries"
)

type projectsCmd struct {
	List   projectsListCmd   `cmd:"" default:"1" help:"List projects."`
	Select projectsSelectCmd `cmd:"" help:"Persist the selected project."`
}

type projectsListCmd struct{}

func (cmd *projectsListCmd) Run(ctx context.Context, rt *runtime) error {
	projects, err := rt.app.Executor.Projects.Query(ctx, queries.ProjectsInput{})
	if err != nil {
		return err
	}
	selected := rt.app.Service.SelectedProject()
	return rt.emit(projects, func() string {
		rows := make([][]string, 0, len(projects))
		for _, p := range projects {
			marker := ""
			if p.ID == selected {
				marker = "*"
			}
			rows = append(rows, []string{marker, p.ID, p.Name, yesNo(p.IsActive), p.Description})
		}
		return renderTable([]string{"Selected", "ID", "Name", "IsActive", "Description"}, rows)
	})
}

type projectsSelectCmd struct {
	ID string `arg:"" optional:"" help:"Project id. Omit to clear the selection."`
}

func (cmd *projectsSelectCmd) Run(ctx context.Context, rt *runtime) error {
	if err := rt.app.Executor.SelectProject.Execute(ctx, commands.SelectProjectInput{ProjectID: cmd.ID}); err != nil {
		return err
	}
	if cmd.ID == "" {
		_, err := fmt.Fprintln(rt.out, mutedStyle.Render("project selection cleared"))
		return err
	}
	_, err := fmt.Fprintln(rt.out, successStyle.Render("selected project "+cmd.ID))
	return err
}

type featuresCmd struct {
	Project string `help:"Project id. Defaults to the selected project."`
}

func (cmd *featuresCmd) Run(ctx context.Context, rt *runtime) error {
	features, err := rt.app.Executor.Features.Query(ctx, queries.FeaturesInput{ProjectID: rt.project(cmd.Project)})
	if err != nil {
		return err
	}
	return rt.emit(features, func() string {
		rows := make([][]string, 0, len(features))
		for _, f := range features {
			total := "-"
			if f.TotalKeys != nil {
				total = strconv.Itoa(*f.TotalKeys)
			}
			rows = append(rows, []string{f.ID, f.Name, total, f.Description})
		}
		return renderTable([]string{"ID", "Name", "TotalKeys", "Description"}, rows)
	})
}

type languagesCmd struct {
	Project string `help:"Project id. Defaults to the selected project."`
	Active  bool   `help:"Only list active languages."`
}

func (cmd *languagesCmd) Run(ctx context.Context, rt *runtime) error {
	languages, err := rt.app.Executor.Languages.Query(ctx, queries.LanguagesInput{
		ProjectID:  rt.project(cmd.Project),
		ActiveOnly: cmd.Active,
	})
	if err != nil {
		return err
	}
	return rt.emit(languages, func() string {
		rows := make([][]string, 0, len(languages))
		for _, l := range languages {
			rows = append(rows, []string{l.Locale, l.Name, yesNo(l.IsActive)})
		}
		return renderTable([]string{"Locale", "Name", "IsActive"}, rows)
	})
}

type statsCmd struct {
	Project string `help:"Project id. Defaults to the selected project."`
	Feature string `help:"Narrow statistics to one feature."`
}

func (cmd *statsCmd) Run(ctx context.Context, rt *runtime) error {
	values := url.Values{"featureId": {cmd.Feature}, "projectId": {cmd.Project}}
	filter := rt.app.Executor.StatisticsFilter(values)
	stats, err := rt.app.Executor.Statistics.Query(ctx, filter)
	if err != nil {
		return err
	}
	numbers := dashboard.NewNumberFormatter(language.Make(rt.app.Config.NumberLocale))
	view := dashboard.BuildDashboardView(stats, numbers, time.Now())
	return rt.emit(stats, func() string {
		var b strings.Builder
		metrics := make([][]string, 0, len(view.Metrics))
		for _, m := range view.Metrics {
			metrics = append(metrics, []string{m.Title, m.Value, m.Subtitle})
		}
		b.WriteString(renderTable([]string{"Metric", "Value", "Detail"}, metrics))
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Completion by locale"))
		b.WriteString("\n")
		for _, row := range view.ByLocale {
			fmt.Fprintf(&b, "%-8s %s\n", row.Label, completionBar(row))
		}
		if len(view.ByFeature) > 0 {
			b.WriteString(headerStyle.Render("Completion by feature"))
			b.WriteString("\n")
			for _, row := range view.ByFeature {
				fmt.Fprintf(&b, "%-20s %s\n", row.Label, completionBar(row))
			}
		}
		for _, h := range view.Health {
			style := successStyle
			if !h.OK {
				style = warningStyle
			}
			b.WriteString(style.Render(h.Message))
			b.WriteString("\n")
		}
		return strings.TrimRight(b.String(), "\n")
	})
}

// SearchFilters are the flags shared by search and export.
type SearchFilters struct {
	Q       string `short:"q" help:"Match key names and values."`
	Locale  string `help:"Only this locale."`
	Feature string `help:"Only this feature."`
	Project string `help:"Project id. Defaults to the selected project."`
}

func (f SearchFilters) values() url.Values {
	values := url.Values{}
	set := func(k, v string) {
		if v != "" {
			values.Set(k, v)
		}
	}
	set("q", f.Q)
	set("locale", f.Locale)
	set("featureId", f.Feature)
	set("projectId", f.Project)
	return values
}

type searchCmd struct {
	SearchFilters `embed:""`

	Page      int    `default:"1" help:"Result page."`
	Limit     int    `default:"25" help:"Rows per page."`
	SortBy    string `default:"updatedAt" help:"Sort column."`
	SortOrder string `default:"desc" enum:"asc,desc" help:"Sort direction."`
}

func (cmd *searchCmd) values() url.Values {
	values := cmd.SearchFilters.values()
	values.Set("sortBy", cmd.SortBy)
	values.Set("sortOrder", cmd.SortOrder)
	values.Set("page", strconv.Itoa(cmd.Page))
	values.Set("limit", strconv.Itoa(cmd.Limit))
	return values
}

func (cmd *searchCmd) Run(ctx context.Context, rt *runtime) error {
	params := rt.app.Executor.SearchParams(cmd.values())
	page, err := rt.app.Executor.Search.Query(ctx, params)
	if err != nil {
		return err
	}
	view := dashboard.BuildSearchView(page, params, time.Now())
	return rt.emit(page, func() string {
		rows := make([][]string, 0, len(view.Rows))
		for _, r := range view.Rows {
			value := r.Value
			if r.Empty {
				value = mutedStyle.Render("(empty)")
			}
			rows = append(rows, []string{r.KeyName, r.Locale, value, r.Updated})
		}
		footer := mutedStyle.Render(fmt.Sprintf("page %d of %d, %d total", view.Meta.Page, view.Meta.TotalPages, view.Meta.Total))
		return renderTable([]string{"Key", "Locale", "Value", "Updated"}, rows) + "\n" + footer
	})
}

type exportCmd struct {
	SearchFilters `embed:""`

	Limit int    `default:"1000" help:"Maximum rows to export."`
	Out   string `short:"O" type:"path" help:"Write to this file or directory instead of stdout."`
}

func (cmd *exportCmd) Run(ctx context.Context, rt *runtime) error {
	values := cmd.SearchFilters.values()
	values.Set("limit", strconv.Itoa(cmd.Limit))
	export, err := rt.app.Executor.ExportCSV(ctx, values)
	if err != nil {
		return err
	}
	if cmd.Out == "" {
		_, err := rt.out.Write(export.Content)
		return err
	}
	target := cmd.Out
	if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
		target = filepath.Join(target, export.Filename)
	}
	if err := os.WriteFile(target, export.Content, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	_, err = fmt.Fprintln(rt.out, successStyle.Render(fmt.Sprintf("exported %d rows (%s) to %s",
		export.Rows, strings.Join(export.Locales, ", "), target)))
	return err
}

type importCmd struct {
	File        string            `arg:"" type:"existingfile" help:"CSV file to upload."`
	Feature     string            `required:"" help:"Feature receiving the translations."`
	Project     string            `help:"Project id. Defaults to the selected project."`
	Map         map[string]string `help:"Rename a header before filtering, as Header=locale."`
	MappingFile string            `type:"path" help:"YAML file of header to locale renames."`
	DryRun      bool              `help:"Only report which columns would be uploaded."`
}

func (cmd *importCmd) request() (httpapi.UploadRequest, error) {
	content, err := os.ReadFile(cmd.File)
	if err != nil {
		return httpapi.UploadRequest{}, err
	}
	mapping := map[string]string{}
	if cmd.MappingFile != "" {
		if mapping, err = loadMapping(cmd.MappingFile); err != nil {
			return httpapi.UploadRequest{}, err
		}
	}
	for header, locale := range cmd.Map {
		mapping[header] = locale
	}
	return httpapi.UploadRequest{
		ProjectID: cmd.Project,
		FeatureID: cmd.Feature,
		Filename:  filepath.Base(cmd.File),
		File:      bytes.NewReader(content),
		Mapping:   mapping,
	}, nil
}

func (cmd *importCmd) Run(ctx context.Context, rt *runtime) error {
	req, err := cmd.request()
	if err != nil {
		return err
	}
	if cmd.DryRun {
		preview, err := rt.app.Executor.PreviewUpload(ctx, req)
		if err != nil {
			return err
		}
		return rt.emit(preview, func() string {
			rows := make([][]string, 0, len(preview.Columns))
			for _, c := range preview.Columns {
				kept := successStyle.Render("keep")
				if !c.Kept {
					kept = errorStyle.Render("drop")
				}
				suggestion := preview.Suggestions[c.Index]
				rows = append(rows, []string{c.Original, c.Column, kept, c.Reason, suggestion})
			}
			return renderTable([]string{"Header", "Column", "Action", "Reason", "Suggestion"}, rows)
		})
	}
	result, err := rt.app.Executor.Upload(ctx, req)
	if err != nil {
		return errors.New(dashboard.ErrorMessage(err, dashboard.UploadFailedMessage))
	}
	return rt.emit(result, func() string {
		return successStyle.Render(fmt.Sprintf("created %d, updated %d, skipped %d", result.Created, result.Updated, result.Skipped))
	})
}

type translateCmd struct {
	Key     string   `xor:"target" help:"Translate a single key."`
	Feature string   `xor:"target" help:"Translate every key of a feature."`
	Project string   `help:"Project id for batch runs. Defaults to the selected project."`
	Locales []string `help:"Target locales. Batch runs default to every active language."`
}

func (cmd *translateCmd) Run(ctx context.Context, rt *runtime) error {
	if cmd.Key != "" {
		if len(cmd.Locales) == 0 {
			return errors.New("--locales is required with --key")
		}
		var result dashboard.AITranslateResult
		err := rt.app.Executor.AITranslate.Execute(ctx, commands.AITranslateInput{
			AITranslateInput: dashboard.AITranslateInput{KeyID: cmd.Key, TargetLocales: cmd.Locales},
			Result:           &result,
		})
		if err != nil {
			return err
		}
		return rt.emit(result, func() string {
			return translated(result.TranslatedCount, result.SkippedCount, result.Errors)
		})
	}
	var result dashboard.AITranslateBatchResult
	err := rt.app.Executor.AITranslateBatch.Execute(ctx, commands.AITranslateBatchInput{
		AITranslateBatchInput: dashboard.AITranslateBatchInput{
			FeatureID:     cmd.Feature,
			ProjectID:     cmd.Project,
			TargetLocales: cmd.Locales,
		},
		Result: &result,
	})
	if err != nil {
		return err
	}
	return rt.emit(result, func() string {
		return translated(result.TranslatedCount, result.SkippedCount, result.Errors)
	})
}

func translated(count, skipped int, errs []string) string {
	out := successStyle.Render(fmt.Sprintf("translated %d, skipped %d", count, skipped))
	for _, e := range errs {
		out += "\n" + errorStyle.Render(e)
	}
	return out
}

func (r *runtime) project(id string) string {
	if id != "" {
		return id
	}
	return r.app.Service.SelectedProject()
}

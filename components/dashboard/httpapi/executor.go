package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/url"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-l10n-dashboard/components/dashboard"
	"github.com/goliatone/go-l10n-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-l10n-dashboard/components/dashboard/queries"
)

// Executor groups the commands and queries that transports dispatch to. Both
// the net/http handlers and the go-router routes run through it.
type Executor struct {
	SelectProject gocommand.Commander[commands.SelectProjectInput]
	CreateProject gocommand.Commander[commands.CreateProjectInput]
	UpdateProject gocommand.Commander[commands.UpdateProjectInput]
	DeleteProject gocommand.Commander[commands.DeleteProjectInput]

	CreateFeature gocommand.Commander[commands.CreateFeatureInput]
	UpdateFeature gocommand.Commander[commands.UpdateFeatureInput]
	DeleteFeature gocommand.Commander[commands.DeleteFeatureInput]

	CreateKey gocommand.Commander[commands.CreateKeyInput]
	UpdateKey gocommand.Commander[commands.UpdateKeyInput]
	DeleteKey gocommand.Commander[commands.DeleteKeyInput]

	CreateLanguage gocommand.Commander[commands.CreateLanguageInput]
	UpdateLanguage gocommand.Commander[commands.UpdateLanguageInput]
	DeleteLanguage gocommand.Commander[commands.DeleteLanguageInput]

	CreateTranslation  gocommand.Commander[commands.CreateTranslationInput]
	UpdateTranslation  gocommand.Commander[commands.UpdateTranslationInput]
	DeleteTranslation  gocommand.Commander[commands.DeleteTranslationInput]
	SaveTranslations   gocommand.Commander[commands.SaveTranslationsInput]
	ImportTranslations gocommand.Commander[commands.ImportTranslationsInput]
	AITranslate        gocommand.Commander[commands.AITranslateInput]
	AITranslateBatch   gocommand.Commander[commands.AITranslateBatchInput]

	StartFocus gocommand.Commander[commands.StartFocusInput]
	FocusStep  gocommand.Commander[commands.FocusStepInput]

	Projects      gocommand.Querier[queries.ProjectsInput, []dashboard.Project]
	Features      gocommand.Querier[queries.FeaturesInput, []dashboard.Feature]
	Keys          gocommand.Querier[queries.KeysInput, []dashboard.Key]
	Key           gocommand.Querier[queries.KeyInput, dashboard.KeyWithFeature]
	Languages     gocommand.Querier[queries.LanguagesInput, []dashboard.Language]
	Translations  gocommand.Querier[queries.TranslationsInput, []dashboard.Translation]
	Search        gocommand.Querier[dashboard.SearchParams, dashboard.Page[dashboard.TranslationListItem]]
	Statistics    gocommand.Querier[dashboard.StatisticsFilter, dashboard.Statistics]
	Export        gocommand.Querier[dashboard.SearchParams, dashboard.Export]
	Draft         gocommand.Querier[queries.DraftInput, *dashboard.TranslationDraft]
	ImportPreview gocommand.Querier[queries.ImportPreviewInput, queries.ImportPreview]
	Focus         gocommand.Querier[queries.FocusInput, queries.FocusView]

	// Selected returns the selected project used when a request names none.
	Selected func() string
	// End drops a focus session.
	End func(id string)
}

// NewExecutor wires every command and query to service.
func NewExecutor(service *dashboard.Service, telemetry commands.Telemetry) *Executor {
	return &Executor{
		SelectProject: commands.NewSelectProjectCommand(service, telemetry),
		CreateProject: commands.NewCreateProjectCommand(service, telemetry),
		UpdateProject: commands.NewUpdateProjectCommand(service, telemetry),
		DeleteProject: commands.NewDeleteProjectCommand(service, telemetry),

		CreateFeature: commands.NewCreateFeatureCommand(service, telemetry),
		UpdateFeature: commands.NewUpdateFeatureCommand(service, telemetry),
		DeleteFeature: commands.NewDeleteFeatureCommand(service, telemetry),

		CreateKey: commands.NewCreateKeyCommand(service, telemetry),
		UpdateKey: commands.NewUpdateKeyCommand(service, telemetry),
		DeleteKey: commands.NewDeleteKeyCommand(service, telemetry),

		CreateLanguage: commands.NewCreateLanguageCommand(service, telemetry),
		UpdateLanguage: commands.NewUpdateLanguageCommand(service, telemetry),
		DeleteLanguage: commands.NewDeleteLanguageCommand(service, telemetry),

		CreateTranslation:  commands.NewCreateTranslationCommand(service, telemetry),
		UpdateTranslation:  commands.NewUpdateTranslationCommand(service, telemetry),
		DeleteTranslation:  commands.NewDeleteTranslationCommand(service, telemetry),
		SaveTranslations:   commands.NewSaveTranslationsCommand(service, telemetry),
		ImportTranslations: commands.NewImportTranslationsCommand(service, telemetry),
		AITranslate:        commands.NewAITranslateCommand(service, telemetry),
		AITranslateBatch:   commands.NewAITranslateBatchCommand(service, telemetry),

		StartFocus: commands.NewStartFocusCommand(service, telemetry),
		FocusStep:  commands.NewFocusStepCommand(service, telemetry),

		Projects:      queries.NewProjectsQuery(service),
		Features:      queries.NewFeaturesQuery(service),
		Keys:          queries.NewKeysQuery(service),
		Key:           queries.NewKeyQuery(service),
		Languages:     queries.NewLanguagesQuery(service),
		Translations:  queries.NewTranslationsQuery(service),
		Search:        queries.NewSearchQuery(service),
		Statistics:    queries.NewStatisticsQuery(service),
		Export:        queries.NewExportQuery(service),
		Draft:         queries.NewDraftQuery(service),
		ImportPreview: queries.NewImportPreviewQuery(service),
		Focus:         queries.NewFocusQuery(service),

		Selected: service.SelectedProject,
		End:      service.EndFocus,
	}
}

// EndFocus drops the focus session with id.
func (e *Executor) EndFocus(id string) {
	if e.End != nil {
		e.End(id)
	}
}

func (e *Executor) project(id string) string {
	if id != "" || e.Selected == nil {
		return id
	}
	return e.Selected()
}

// DraftSaveResult reports an editor save.
type DraftSaveResult struct {
	KeyID   string                  `json:"keyId"`
	Saved   []dashboard.Translation `json:"saved"`
	Locales []string                `json:"locales"`
	Message string                  `json:"message,omitempty"`
}

// NoChangesMessage is returned when an editor save carries no edits.
const NoChangesMessage = "No changes to save"

// SaveDraft opens a fresh draft of keyID, applies values over it and sends
// only the locales that differ from the stored translations. Values for
// inactive or unknown locales are ignored.
func (e *Executor) SaveDraft(ctx context.Context, projectID, keyID string, values map[string]string) (DraftSaveResult, error) {
	draft, err := e.Draft.Query(ctx, queries.DraftInput{ProjectID: e.project(projectID), KeyID: keyID})
	if err != nil {
		return DraftSaveResult{}, err
	}
	for locale, value := range values {
		draft.Set(locale, value)
	}
	result := DraftSaveResult{KeyID: keyID, Saved: []dashboard.Translation{}, Locales: draft.DirtyLocales()}
	if !draft.HasChanges() {
		result.Message = NoChangesMessage
		return result, nil
	}
	var saved []dashboard.Translation
	if err := e.SaveTranslations.Execute(ctx, commands.SaveTranslationsInput{
		BulkUpsertInput: draft.Changes(),
		Result:          &saved,
	}); err != nil {
		return DraftSaveResult{}, err
	}
	result.Saved = saved
	return result, nil
}

// UploadRequest is a CSV file posted by the import page. Mapping renames
// original headers before the column filter runs.
type UploadRequest struct {
	ProjectID string
	FeatureID string
	Filename  string
	File      io.Reader
	Mapping   map[string]string
}

func (e *Executor) session(file io.Reader, mapping map[string]string) (*dashboard.ImportSession, error) {
	if file == nil {
		return nil, dashboard.ErrCSVEmpty
	}
	doc, err := dashboard.ParseCSV(file)
	if err != nil {
		return nil, err
	}
	session := dashboard.NewImportSession(doc)
	session.ApplyMapping(mapping)
	return session, nil
}

// PreviewUpload parses req and reports what an upload would send.
func (e *Executor) PreviewUpload(ctx context.Context, req UploadRequest) (queries.ImportPreview, error) {
	session, err := e.session(req.File, req.Mapping)
	if err != nil {
		return queries.ImportPreview{}, err
	}
	return e.ImportPreview.Query(ctx, queries.ImportPreviewInput{ProjectID: e.project(req.ProjectID), Session: session})
}

// Upload parses req, keeps the key column and known locales and uploads the
// result to the feature.
func (e *Executor) Upload(ctx context.Context, req UploadRequest) (dashboard.BulkUploadResult, error) {
	session, err := e.session(req.File, req.Mapping)
	if err != nil {
		return dashboard.BulkUploadResult{}, err
	}
	var result dashboard.BulkUploadResult
	err = e.ImportTranslations.Execute(ctx, commands.ImportTranslationsInput{
		ImportRequest: dashboard.ImportRequest{
			ProjectID: e.project(req.ProjectID),
			FeatureID: req.FeatureID,
			Filename:  req.Filename,
			Session:   session,
		},
		Result: &result,
	})
	return result, err
}

// SearchParams decodes a translations query string, scoped to the selected
// project when none is given.
func (e *Executor) SearchParams(values url.Values) dashboard.SearchParams {
	state := dashboard.SearchStateFromQuery(values)
	defer state.Stop()
	params := state.Params()
	params.ProjectID = e.project(params.ProjectID)
	return params
}

// ExportCSV renders the download for a translations query string.
func (e *Executor) ExportCSV(ctx context.Context, values url.Values) (dashboard.Export, error) {
	return e.Export.Query(ctx, e.SearchParams(values))
}

// StatisticsFilter reads featureId and projectId, dropping the "all"
// sentinel.
func (e *Executor) StatisticsFilter(values url.Values) dashboard.StatisticsFilter {
	feature := values.Get("featureId")
	if feature == dashboard.AllFilter {
		feature = ""
	}
	return dashboard.StatisticsFilter{FeatureID: feature, ProjectID: e.project(values.Get("projectId"))}
}

// ContentDisposition is the attachment header for a download named filename.
func ContentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}

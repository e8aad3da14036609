package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-l10n-dashboard/components/dashboard"
	"github.com/goliatone/go-l10n-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-l10n-dashboard/components/dashboard/queries"
)

// MaxUploadSize bounds the multipart body of a CSV import.
const MaxUploadSize = 32 << 20

// Headers read into the command actor.
const (
	HeaderActorID  = "X-Actor-ID"
	HeaderUserID   = "X-User-ID"
	HeaderTenantID = "X-Tenant-ID"
)

// Handlers exposes the executor as a JSON API over net/http.
type Handlers struct {
	Executor *Executor
	// Events streams invalidation events; /events is not mounted when nil.
	Events http.Handler
	Logger *slog.Logger
}

// Mount registers every route under prefix on mux.
func (h *Handlers) Mount(mux *http.ServeMux, prefix string) {
	prefix = strings.TrimRight(prefix, "/")
	route := func(pattern string, fn http.HandlerFunc) {
		method, path, _ := strings.Cut(pattern, " ")
		mux.HandleFunc(method+" "+prefix+path, fn)
	}

	route("GET /projects", h.listProjects)
	route("POST /projects", h.createProject)
	route("PATCH /projects/{id}", h.updateProject)
	route("DELETE /projects/{id}", h.deleteProject)
	route("GET /selection", h.selection)
	route("PUT /selection", h.selectProject)
	route("POST /selection", h.selectProject)

	route("GET /features", h.listFeatures)
	route("POST /features", h.createFeature)
	route("PATCH /features/{id}", h.updateFeature)
	route("DELETE /features/{id}", h.deleteFeature)

	route("GET /keys", h.listKeys)
	route("GET /keys/{id}", h.getKey)
	route("POST /keys", h.createKey)
	route("PATCH /keys/{id}", h.updateKey)
	route("DELETE /keys/{id}", h.deleteKey)
	route("GET /keys/{id}/translations", h.keyTranslations)
	route("POST /keys/{id}/translations", h.saveDraft)

	route("GET /languages", h.listLanguages)
	route("POST /languages", h.createLanguage)
	route("PATCH /languages/{id}", h.updateLanguage)
	route("DELETE /languages/{id}", h.deleteLanguage)

	route("GET /translations", h.search)
	route("POST /translations", h.createTranslation)
	route("PATCH /translations/{id}", h.updateTranslation)
	route("DELETE /translations/{id}", h.deleteTranslation)
	route("GET /translations/export", h.export)
	route("POST /translations/import", h.upload)
	route("POST /translations/import/preview", h.previewUpload)
	route("POST /translations/ai-translate", h.aiTranslate)
	route("POST /translations/ai-translate-batch", h.aiTranslateBatch)

	route("GET /statistics", h.statistics)

	route("POST /focus", h.startFocus)
	route("GET /focus/{id}", h.focus)
	route("POST /focus/{id}", h.focusStep)
	route("DELETE /focus/{id}", h.endFocus)

	if h.Events != nil {
		route("GET /events", h.Events.ServeHTTP)
	}
}

func (h *Handlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func actorFrom(r *http.Request) commands.Actor {
	return commands.Actor{
		ActorID:  r.Header.Get(HeaderActorID),
		UserID:   r.Header.Get(HeaderUserID),
		TenantID: r.Header.Get(HeaderTenantID),
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger().Warn("encode response failed", slog.String("error", err.Error()))
	}
}

// respond answers url-encoded page forms with a redirect back to the page and
// every other call with JSON.
func (h *Handlers) respond(w http.ResponseWriter, r *http.Request, status int, payload any) {
	h.respondWith(w, r, nil, status, payload)
}

// respondWith is respond with query values added to the redirect target.
func (h *Handlers) respondWith(w http.ResponseWriter, r *http.Request, set url.Values, status int, payload any) {
	if IsPageForm(r.Header.Get("Content-Type")) {
		http.Redirect(w, r, RedirectTarget(r.Referer(), set), http.StatusSeeOther)
		return
	}
	h.writeJSON(w, status, payload)
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	body := NewErrorResponse(err, fallback)
	if body.Status >= http.StatusInternalServerError {
		h.logger().ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	h.writeJSON(w, body.Status, body)
}

// decode reads a JSON body into dst. An empty body leaves dst untouched.
func decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return &dashboard.ValidationError{Form: "request", Reason: "invalid JSON body"}
	}
	return nil
}

func (h *Handlers) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Executor.Projects.Query(r.Context(), queries.ProjectsInput{})
	if err != nil {
		h.fail(w, r, err, "Failed to load projects")
		return
	}
	h.writeJSON(w, http.StatusOK, projects)
}

func (h *Handlers) createProject(w http.ResponseWriter, r *http.Request) {
	var input dashboard.CreateProjectInput
	if err := decode(r, &input); err != nil {
		h.fail(w, r, err, "")
		return
	}
	var project dashboard.Project
	err := h.Executor.CreateProject.Execute(r.Context(), commands.CreateProjectInput{
		CreateProjectInput: input, Actor: actorFrom(r), Result: &project,
	})
	if err != nil {
		h.fail(w, r, err, "Failed to create project")
		return
	}
	h.writeJSON(w, http.StatusCreated, project)
}

func (h *Handlers) updateProject(w http.ResponseWriter, r *http.Request) {
	var input dashboard.UpdateProjectInput
	if err := decode(r, &input); err != nil {
		h.fail(w, r, err, "")
		return
	}
	err := h.Executor.UpdateProject.Execute(r.Context(), commands.UpdateProjectInput{
		ID: r.PathValue("id"), UpdateProjectInput: input, Actor: actorFrom(r),
	})
	if err != nil {
		h.fail(w, r, err, "Failed to update project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteProject(w http.ResponseWriter, r *http.Request) {
	err := h.Executor.DeleteProject.Execute(r.Context(), commands.DeleteProjectInput{
		ID: r.PathValue("id"), Actor: actorFrom(r),
	})
	if err != nil {
		h.fail(w, r, err, "Failed to delete project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type selectionBody struct {
	ProjectID string `json:"projectId"`
}

func (h *Handlers) selection(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, selectionBody{ProjectID: h.Executor.project("")})
}

func (h *Handlers) selectProject(w http.ResponseWriter, r *http.Request) {
	var body selectionBody
	if IsForm(r.Header.Get("Content-Type")) {
		body.ProjectID = r.FormValue("projectId")
	} else if err := decode(r, &body); err != nil {
		h.fail(w, r, err, "")
		return
	}
	if err := h.Executor.SelectProject.Execute(r.Context(), commands.SelectProjectInput{ProjectID: body.ProjectID}); err != nil {
		h.fail(w, r, err, "Failed to select project")
		return
	}
	h.respond(w, r, http.StatusOK, body)
}

func (h *Handlers) listFeatures(w http.ResponseWriter, r *http.Request) {
	features, err := h.Executor.Features.Query(r.Context(), queries.FeaturesInput{
		ProjectID: h.Executor.project(r.URL.Query().Get("projectId")),
	})
	if err != nil {
		h.fail(w, r, err, "Failed to load features")
		return
	}
	h.writeJSON(w, http.StatusOK, features)
}

func (h *Handlers) createFeature(w http.ResponseWriter, r *http.Request) {
	var input dashboard.CreateFeatureInput
	if err := decode(r, &input); err != nil {
		h.fail(w, r, err, "")
		return
	}
	input.ProjectID = h.Executor.project(input.ProjectID)
	var feature dashboard.Feature
	err := h.Executor.CreateFeature.Execute(r.Context(), commands.CreateFeatureInput{
		CreateFeatureInput: input, Actor: actorFrom(r), Result: &feature,
	})
	if err != nil {
		h.fail(w, r, err, "Failed to create feature")
		return
	}
	h.writeJSON(w, http.StatusCreated, feature)
}

func (h *Handlers) updateFeature(w http.ResponseWriter, r *http.Request) {
	var input dashboard.UpdateFeatureInput
	if err := decode(r, &input); err != nil {
		h.fail(w, r, err, "")
		return
	}
	err := h.Executor.UpdateFeature.Execute(r.Context(), commands.UpdateFeatureInput{
		ID: r.PathValue("id"), UpdateFeatureInput: input, Actor: actorFrom(r),
	})
	if err != nil {
		h.fail(w, r, err, "Failed to update feature")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteFeature(w http.ResponseWriter, r *http.Request) {
	err := h.Executor.DeleteFeature.Execute(r.Context(), commands.DeleteFeatureInput{
		ID: r.PathValue("id"), Actor: actorFrom(r),
	})
	if err != nil {
		h.fail(w, r, err, "Failed to delete feature")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.Executor.Keys.Query(r.Context(), queries.KeysInput{FeatureID: r.URL.Query().Get("featureId")})
	if err != nil {
		h.fail(w, r, err, "Failed to load keys")
		return
	}
	h.writeJSON(w, http.StatusOK, keys)
}

func (h *Handlers) getKey(w http.ResponseWriter, r *http.Request) {
	key, err := h.Executor.Key.Query(r.Context(), queries.KeyInput{ID: r.PathValue("id")})
	if err != nil {
		h.fail(w, r, err, "Failed to load key")
		return
	}
	h.writeJSON(w, http.StatusOK, key)
}

func (h *Handlers) createKey(w http.ResponseWriter, r *http.Request) {
	var input dashboard.CreateKeyInput
	if err := decode(r, &input); err != nil {
		h.fail(w, r, err, "")
		return
	}
	var key dashboard.Key
	err := h.Executor.CreateKey.Execute(r.Context(), commands.CreateKeyInput{
		CreateKeyInput: input, Actor: actorFrom(r), Result: &key,
	})
	if err != nil {
		h.fail(w, r, err, "Failed to create key")
		return
	}
	h.writeJSON(w, http.StatusCreated, key)
}

func (h *Handlers) updateKey(w http.ResponseWriter, r *http.Request) {
	var input dashboard.UpdateKeyInput
	if err := decode(r, &input); err != nil {
		h.fail(w, r, err, "")
		return
	}
	err := h.Executor.UpdateKey.Execute(r.Context(), commands.UpdateKeyInput{
		ID: r.PathValue("id"), UpdateKeyInput: input, Actor: actorFrom(r),
	})
	if err != nil {
		h.fail(w, r, err, "Failed to update key")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteKey(w http.ResponseWriter, r *http.Request) {
	err := h.Executor.DeleteKey.Execute(r.Context(), commands.DeleteKeyInput{
		ID: r.PathValue("id"), FeatureID: r.URL.Query().Get("featureId"), Actor: actorFrom(r),
	})
	if err != nil {
		h.fail(w, r, err, "Failed to delete key")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) keyTranslations(w http.ResponseWriter, r *http.Request) {
	translations, err := h.Executor.Translations.Query(r.Context(), queries.TranslationsInput{KeyID: r.PathValue("id")})
	if err != nil {
		h.fail(w, r, err, "Failed to load translations")
		return
	}
	h.writeJSON(w, http.StatusOK, translations)
}

type draftBody struct {
	ProjectID string            `json:"projectId,omitempty"`
	Values    map[string]string `json:"values"`
}

func (h *Handlers) saveDraft(w http.ResponseWriter, r *http.Request) {
	var body draftBody
	if IsForm(r.Header.Get("Content-Type")) {
		if err := r.ParseForm(); err != nil {
			h.fail(w, r, &dashboard.ValidationError{Form: "editor", Reason: "malformed form"}, "")
			return
		}
		body.ProjectID, body.Values = DraftValues(r.PostForm)
	} else if err := decode(r, &body); err != nil {
		h.fail(w, r, err, "")
		return
	}
	result, err := h.Executor.SaveDraft(r.Context(), body.ProjectID, r.PathValue("id"), body.Values)
	if err != nil {
		h.fail(w, r, err, "Failed to save translations")
		return
	}
	h.respond(w, r, http.StatusOK, result)
}

func (h *Handlers) listLanguages(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	languages, err := h.Executor.Languages.Query(r.Context(), queries.LanguagesInput{
		ProjectID:  h.Executor.project(query.Get("projectId")),
		ActiveOnly: query.Get("active") == "true",
	})
	if err != nil {
		h.fail(w, r, err, "Failed to load languages")
		return
	}
	h.writeJSON(w, http.StatusOK, languages)
}

func (h *Handlers) createLanguage(w http.ResponseWriter, r *http.Request) {
	var input dashboard.CreateLanguageInput
	if err := decode(r, &input); err != nil {
		h.fail(w, r, err, "")
		return
	}
	input.ProjectID = h.Executor.project(input.ProjectID)
	var language dashboard.Language
	err := h.Executor.CreateLanguage.Execute(r.Context(), commands.CreateLanguageInput{
		CreateLanguageInput: input, Actor: actorFrom(r), Result: &language,
	})
	if err != nil {
		h.fail(w, r, err, "Failed to create language")
		return
	}
	h.writeJSON(w, http.StatusCreated, language)
}

func (h *Handlers) updateLanguage(w http.ResponseWriter, r *http.Request) {
	var input dashboard.UpdateLanguageInput
	if err := decode(r, &input); err != nil {
		h.fail(w, r, err, "")
		return
	}
	err := h.Executor.UpdateLanguage.Execute(r.Context(), commands.UpdateLanguageInput{
		ID: r.PathValue("id"), UpdateLanguageInput: input, Actor: actorFrom(r),
	})
	if err != nil {
		h.fail(w, r, err, "Failed to update language")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteLanguage(w http.ResponseWriter, r *http.Request) {
	err := h.Executor.DeleteLanguage.Execute(r.Context(), commands.DeleteLanguageInput{
		ID: r.PathValue("id"), Actor: actorFrom(r),
	})
	if err != nil {
		h.fail(w, r, err, "Failed to delete language")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	page, err := h.Executor.Search.Query(r.Context(), h.Executor.SearchParams(r.URL.Query()))
	if err != nil {
		h.fail(w, r, err, "Failed to search translations")
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) createTranslation(w http.ResponseWriter, r *http.Request) {
	var input dashboard.CreateTranslationInput
	if err := decode(r, &input); err != nil {
		h.fail(w, r, err, "")
		return
	}
	var translation dashboard.Translation
	err := h.Executor.CreateTranslation.Execute(r.Context(), commands.CreateTranslationInput{
		CreateTranslationInput: input, Actor: actorFrom(r), Result: &translation,
	})
	if err != nil {
		h.fail(w, r, err, "Failed to create translation")
		return
	}
	h.writeJSON(w, http.StatusCreated, translation)
}

type valueBody struct {
	Value string `json:"value"`
}

func (h *Handlers) updateTranslation(w http.ResponseWriter, r *http.Request) {
	var body valueBody
	if err := decode(r, &body); err != nil {
		h.fail(w, r, err, "")
		return
	}
	err := h.Executor.UpdateTranslation.Execute(r.Context(), commands.UpdateTranslationInput{
		ID: r.PathValue("id"), Value: body.Value, Actor: actorFrom(r),
	})
	if err != nil {
		h.fail(w, r, err, "Failed to update translation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteTranslation(w http.ResponseWriter, r *http.Request) {
	err := h.Executor.DeleteTranslation.Execute(r.Context(), commands.DeleteTranslationInput{
		ID: r.PathValue("id"), KeyID: r.URL.Query().Get("keyId"), Actor: actorFrom(r),
	})
	if err != nil {
		h.fail(w, r, err, "Failed to delete translation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) export(w http.ResponseWriter, r *http.Request) {
	export, err := h.Executor.ExportCSV(r.Context(), r.URL.Query())
	if err != nil {
		h.fail(w, r, err, "Export failed")
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", ContentDisposition(export.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Content)
}

func uploadFrom(r *http.Request) (UploadRequest, func(), error) {
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		return UploadRequest{}, func() {}, &dashboard.ValidationError{Form: "upload", Reason: "expected a multipart form with a csv file"}
	}
	return UploadFromForm(r.MultipartForm)
}

func (h *Handlers) upload(w http.ResponseWriter, r *http.Request) {
	req, done, err := uploadFrom(r)
	defer done()
	if err != nil {
		h.fail(w, r, err, dashboard.UploadFailedMessage)
		return
	}
	result, err := h.Executor.Upload(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, dashboard.UploadFailedMessage)
		return
	}
	h.respond(w, r, http.StatusOK, result)
}

func (h *Handlers) previewUpload(w http.ResponseWriter, r *http.Request) {
	req, done, err := uploadFrom(r)
	defer done()
	if err != nil {
		h.fail(w, r, err, dashboard.UploadFailedMessage)
		return
	}
	preview, err := h.Executor.PreviewUpload(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, dashboard.UploadFailedMessage)
		return
	}
	h.writeJSON(w, http.StatusOK, preview)
}

func (h *Handlers) aiTranslate(w http.ResponseWriter, r *http.Request) {
	var input dashboard.AITranslateInput
	if err := decode(r, &input); err != nil {
		h.fail(w, r, err, "")
		return
	}
	var result dashboard.AITranslateResult
	err := h.Executor.AITranslate.Execute(r.Context(), commands.AITranslateInput{
		AITranslateInput: input, Actor: actorFrom(r), Result: &result,
	})
	if err != nil {
		h.fail(w, r, err, "Translation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) aiTranslateBatch(w http.ResponseWriter, r *http.Request) {
	var input dashboard.AITranslateBatchInput
	if err := decode(r, &input); err != nil {
		h.fail(w, r, err, "")
		return
	}
	if input.FeatureID == "" {
		input.ProjectID = h.Executor.project(input.ProjectID)
	}
	var result dashboard.AITranslateBatchResult
	err := h.Executor.AITranslateBatch.Execute(r.Context(), commands.AITranslateBatchInput{
		AITranslateBatchInput: input, Actor: actorFrom(r), Result: &result,
	})
	if err != nil {
		h.fail(w, r, err, "Translation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Executor.Statistics.Query(r.Context(), h.Executor.StatisticsFilter(r.URL.Query()))
	if err != nil {
		h.fail(w, r, err, "Failed to load statistics")
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) startFocus(w http.ResponseWriter, r *http.Request) {
	var req dashboard.FocusRequest
	if IsForm(r.Header.Get("Content-Type")) {
		req = dashboard.FocusRequest{
			ProjectID: r.FormValue("projectId"),
			FeatureID: r.FormValue("featureId"),
			Locale:    r.FormValue("locale"),
		}
	} else if err := decode(r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	var summary dashboard.FocusSummary
	if err := h.Executor.StartFocus.Execute(r.Context(), commands.StartFocusInput{FocusRequest: req, Result: &summary}); err != nil {
		h.fail(w, r, err, "Failed to start focus mode")
		return
	}
	h.respondWith(w, r, url.Values{"session": {summary.ID}}, http.StatusCreated, summary)
}

func (h *Handlers) focus(w http.ResponseWriter, r *http.Request) {
	view, err := h.Executor.Focus.Query(r.Context(), queries.FocusInput{SessionID: r.PathValue("id")})
	if err != nil {
		h.fail(w, r, err, "Failed to load focus session")
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

type focusStepBody struct {
	Action dashboard.FocusAction `json:"action"`
	Value  string                `json:"value"`
}

func (h *Handlers) focusStep(w http.ResponseWriter, r *http.Request) {
	var body focusStepBody
	if IsPageForm(r.Header.Get("Content-Type")) {
		body.Action = dashboard.FocusAction(r.FormValue("action"))
		body.Value = r.FormValue("value")
	} else if err := decode(r, &body); err != nil {
		h.fail(w, r, err, "")
		return
	}
	var summary dashboard.FocusSummary
	err := h.Executor.FocusStep.Execute(r.Context(), commands.FocusStepInput{
		SessionID: r.PathValue("id"),
		Action:    body.Action,
		Value:     body.Value,
		Actor:     actorFrom(r),
		Result:    &summary,
	})
	if err != nil {
		h.fail(w, r, err, "Failed to save translation")
		return
	}
	h.respond(w, r, http.StatusOK, summary)
}

func (h *Handlers) endFocus(w http.ResponseWriter, r *http.Request) {
	h.Executor.EndFocus(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

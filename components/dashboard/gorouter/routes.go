package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-l10n-dashboard/components/dashboard"
	"github.com/goliatone/go-l10n-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-l10n-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-l10n-dashboard/components/dashboard/queries"
)

// ViewerResolver converts a router.Context into a dashboard.ViewerContext.
type ViewerResolver func(router.Context) dashboard.ViewerContext

// Config wires go-router with the dashboard controller, API executor and
// refresh broadcasts.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *dashboard.Controller
	API            *httpapi.Executor
	Broadcast      *dashboard.BroadcastHook
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	Dashboard    string
	Projects     string
	Project      string
	Features     string
	Feature      string
	Languages    string
	Translations string
	Editor       string
	Focus        string
	Import       string
	API          string
	WebSocket    string
}

// queryParams are the query string fields pages and API reads understand.
var queryParams = []string{
	"q", "locale", "featureId", "projectId", "page", "limit",
	"sortBy", "sortOrder", "filter", "keyId", "active", "id", "session",
}

// Register mounts the HTML pages, the JSON API and the refresh WebSocket on a
// go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	pages := map[string]dashboard.PageName{
		routes.Dashboard:    dashboard.PageDashboard,
		routes.Projects:     dashboard.PageProjects,
		routes.Project:      dashboard.PageProject,
		routes.Features:     dashboard.PageFeatures,
		routes.Feature:      dashboard.PageFeature,
		routes.Languages:    dashboard.PageLanguages,
		routes.Translations: dashboard.PageTranslations,
		routes.Editor:       dashboard.PageEditor,
		routes.Focus:        dashboard.PageFocus,
		routes.Import:       dashboard.PageImport,
	}
	for path, page := range pages {
		group.Get(path, pageHandler(cfg.Controller, page, viewerResolver))
	}
	group.Post(routes.Import, importStepHandler(cfg.Controller, viewerResolver))

	if cfg.API != nil {
		group.Get(routes.Translations+"/export", exportHandler(cfg.API))
		registerAPI(group.Group(routes.API), cfg.API)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func pageHandler(controller *dashboard.Controller, page dashboard.PageName, resolver ViewerResolver) router.HandlerFunc {
	return router.WrapHandler(func(ctx router.Context) error {
		viewer := resolver(ctx)
		query := queryValues(ctx)
		var buf bytes.Buffer
		if err := controller.RenderPage(ctx.Context(), page, viewer, query, &buf); err != nil {
			return respondError(ctx, err, "Failed to load page")
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	})
}

// importStepHandler renders the preview, or the upload result, of an import
// page post.
func importStepHandler(controller *dashboard.Controller, resolver ViewerResolver) router.HandlerFunc {
	return router.WrapHandler(func(ctx router.Context) error {
		form, err := httpapi.ParseMultipart(ctx.Header("Content-Type"), ctx.Body())
		if err != nil {
			return respondError(ctx, err, dashboard.UploadFailedMessage)
		}
		defer func() { _ = form.RemoveAll() }()
		upload, err := httpapi.ImportStepFromForm(form)
		if err != nil {
			return respondError(ctx, err, dashboard.UploadFailedMessage)
		}
		var buf bytes.Buffer
		if err := controller.RenderImport(ctx.Context(), resolver(ctx), upload, &buf); err != nil {
			return respondError(ctx, err, "Failed to load page")
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	})
}

func registerAPI[T any](r router.Router[T], api *httpapi.Executor) {
	r.Get("/projects", router.WrapHandler(func(ctx router.Context) error {
		projects, err := api.Projects.Query(ctx.Context(), queries.ProjectsInput{})
		if err != nil {
			return respondError(ctx, err, "Failed to load projects")
		}
		return ctx.JSON(http.StatusOK, projects)
	}))

	r.Post("/projects", router.WrapHandler(func(ctx router.Context) error {
		var project dashboard.Project
		msg := commands.CreateProjectInput{Actor: actorFrom(ctx), Result: &project}
		if err := decode(ctx, &msg.CreateProjectInput); err != nil {
			return respondError(ctx, err, "")
		}
		if err := api.CreateProject.Execute(ctx.Context(), msg); err != nil {
			return respondError(ctx, err, "Failed to create project")
		}
		return ctx.JSON(http.StatusCreated, project)
	}))

	r.Get("/selection", router.WrapHandler(func(ctx router.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"projectId": project(api, "")})
	}))

	r.Post("/selection", router.WrapHandler(func(ctx router.Context) error {
		var body struct {
			ProjectID string `json:"projectId"`
		}
		if form, ok := formValues(ctx); ok {
			body.ProjectID = form.Get("projectId")
		} else if err := decode(ctx, &body); err != nil {
			return respondError(ctx, err, "")
		}
		if err := api.SelectProject.Execute(ctx.Context(), commands.SelectProjectInput{ProjectID: body.ProjectID}); err != nil {
			return respondError(ctx, err, "Failed to select project")
		}
		return respond(ctx, http.StatusOK, body)
	}))

	r.Delete("/projects/:id", router.WrapHandler(func(ctx router.Context) error {
		err := api.DeleteProject.Execute(ctx.Context(), commands.DeleteProjectInput{ID: ctx.Param("id"), Actor: actorFrom(ctx)})
		if err != nil {
			return respondError(ctx, err, "Failed to delete project")
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "deleted"})
	}))

	r.Get("/features", router.WrapHandler(func(ctx router.Context) error {
		features, err := api.Features.Query(ctx.Context(), queries.FeaturesInput{ProjectID: project(api, ctx.Query("projectId"))})
		if err != nil {
			return respondError(ctx, err, "Failed to load features")
		}
		return ctx.JSON(http.StatusOK, features)
	}))

	r.Post("/features", router.WrapHandler(func(ctx router.Context) error {
		var feature dashboard.Feature
		msg := commands.CreateFeatureInput{Actor: actorFrom(ctx), Result: &feature}
		if err := decode(ctx, &msg.CreateFeatureInput); err != nil {
			return respondError(ctx, err, "")
		}
		msg.ProjectID = project(api, msg.ProjectID)
		if err := api.CreateFeature.Execute(ctx.Context(), msg); err != nil {
			return respondError(ctx, err, "Failed to create feature")
		}
		return ctx.JSON(http.StatusCreated, feature)
	}))

	r.Delete("/features/:id", router.WrapHandler(func(ctx router.Context) error {
		err := api.DeleteFeature.Execute(ctx.Context(), commands.DeleteFeatureInput{ID: ctx.Param("id"), Actor: actorFrom(ctx)})
		if err != nil {
			return respondError(ctx, err, "Failed to delete feature")
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "deleted"})
	}))

	r.Get("/keys", router.WrapHandler(func(ctx router.Context) error {
		keys, err := api.Keys.Query(ctx.Context(), queries.KeysInput{FeatureID: ctx.Query("featureId")})
		if err != nil {
			return respondError(ctx, err, "Failed to load keys")
		}
		return ctx.JSON(http.StatusOK, keys)
	}))

	r.Post("/keys", router.WrapHandler(func(ctx router.Context) error {
		var key dashboard.Key
		msg := commands.CreateKeyInput{Actor: actorFrom(ctx), Result: &key}
		if err := decode(ctx, &msg.CreateKeyInput); err != nil {
			return respondError(ctx, err, "")
		}
		if err := api.CreateKey.Execute(ctx.Context(), msg); err != nil {
			return respondError(ctx, err, "Failed to create key")
		}
		return ctx.JSON(http.StatusCreated, key)
	}))

	r.Delete("/keys/:id", router.WrapHandler(func(ctx router.Context) error {
		err := api.DeleteKey.Execute(ctx.Context(), commands.DeleteKeyInput{
			ID: ctx.Param("id"), FeatureID: ctx.Query("featureId"), Actor: actorFrom(ctx),
		})
		if err != nil {
			return respondError(ctx, err, "Failed to delete key")
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "deleted"})
	}))

	r.Post("/keys/:id/translations", router.WrapHandler(func(ctx router.Context) error {
		var body struct {
			ProjectID string            `json:"projectId"`
			Values    map[string]string `json:"values"`
		}
		if form, ok := formValues(ctx); ok {
			body.ProjectID, body.Values = httpapi.DraftValues(form)
		} else if err := decode(ctx, &body); err != nil {
			return respondError(ctx, err, "")
		}
		result, err := api.SaveDraft(ctx.Context(), body.ProjectID, ctx.Param("id"), body.Values)
		if err != nil {
			return respondError(ctx, err, "Failed to save translations")
		}
		return respond(ctx, http.StatusOK, result)
	}))

	r.Get("/languages", router.WrapHandler(func(ctx router.Context) error {
		languages, err := api.Languages.Query(ctx.Context(), queries.LanguagesInput{
			ProjectID:  project(api, ctx.Query("projectId")),
			ActiveOnly: ctx.Query("active") == "true",
		})
		if err != nil {
			return respondError(ctx, err, "Failed to load languages")
		}
		return ctx.JSON(http.StatusOK, languages)
	}))

	r.Post("/languages", router.WrapHandler(func(ctx router.Context) error {
		var language dashboard.Language
		msg := commands.CreateLanguageInput{Actor: actorFrom(ctx), Result: &language}
		if err := decode(ctx, &msg.CreateLanguageInput); err != nil {
			return respondError(ctx, err, "")
		}
		msg.ProjectID = project(api, msg.ProjectID)
		if err := api.CreateLanguage.Execute(ctx.Context(), msg); err != nil {
			return respondError(ctx, err, "Failed to create language")
		}
		return ctx.JSON(http.StatusCreated, language)
	}))

	r.Post("/languages/:id/toggle", router.WrapHandler(func(ctx router.Context) error {
		var body struct {
			IsActive bool `json:"isActive"`
		}
		if err := decode(ctx, &body); err != nil {
			return respondError(ctx, err, "")
		}
		msg := commands.UpdateLanguageInput{ID: ctx.Param("id"), Actor: actorFrom(ctx)}
		msg.IsActive = &body.IsActive
		if err := api.UpdateLanguage.Execute(ctx.Context(), msg); err != nil {
			return respondError(ctx, err, "Failed to update language")
		}
		return ctx.JSON(http.StatusOK, map[string]bool{"isActive": body.IsActive})
	}))

	r.Delete("/languages/:id", router.WrapHandler(func(ctx router.Context) error {
		err := api.DeleteLanguage.Execute(ctx.Context(), commands.DeleteLanguageInput{ID: ctx.Param("id"), Actor: actorFrom(ctx)})
		if err != nil {
			return respondError(ctx, err, "Failed to delete language")
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "deleted"})
	}))

	// Accepts the import page's multipart form or a raw CSV body with
	// map=Header:locale pairs separated by commas.
	r.Post("/translations/import", router.WrapHandler(func(ctx router.Context) error {
		req, done, err := uploadFrom(ctx)
		defer done()
		if err != nil {
			return respondError(ctx, err, dashboard.UploadFailedMessage)
		}
		result, err := api.Upload(ctx.Context(), req)
		if err != nil {
			return respondError(ctx, err, dashboard.UploadFailedMessage)
		}
		return respond(ctx, http.StatusOK, result)
	}))

	r.Post("/translations/import/preview", router.WrapHandler(func(ctx router.Context) error {
		req, done, err := uploadFrom(ctx)
		defer done()
		if err != nil {
			return respondError(ctx, err, dashboard.UploadFailedMessage)
		}
		preview, err := api.PreviewUpload(ctx.Context(), req)
		if err != nil {
			return respondError(ctx, err, dashboard.UploadFailedMessage)
		}
		return ctx.JSON(http.StatusOK, preview)
	}))

	r.Post("/translations/ai-translate", router.WrapHandler(func(ctx router.Context) error {
		var result dashboard.AITranslateResult
		msg := commands.AITranslateInput{Actor: actorFrom(ctx), Result: &result}
		if err := decode(ctx, &msg.AITranslateInput); err != nil {
			return respondError(ctx, err, "")
		}
		if err := api.AITranslate.Execute(ctx.Context(), msg); err != nil {
			return respondError(ctx, err, "Translation failed")
		}
		return ctx.JSON(http.StatusOK, result)
	}))

	r.Post("/translations/ai-translate-batch", router.WrapHandler(func(ctx router.Context) error {
		var result dashboard.AITranslateBatchResult
		msg := commands.AITranslateBatchInput{Actor: actorFrom(ctx), Result: &result}
		if err := decode(ctx, &msg.AITranslateBatchInput); err != nil {
			return respondError(ctx, err, "")
		}
		if msg.FeatureID == "" {
			msg.ProjectID = project(api, msg.ProjectID)
		}
		if err := api.AITranslateBatch.Execute(ctx.Context(), msg); err != nil {
			return respondError(ctx, err, "Translation failed")
		}
		return ctx.JSON(http.StatusOK, result)
	}))

	r.Get("/translations", router.WrapHandler(func(ctx router.Context) error {
		page, err := api.Search.Query(ctx.Context(), api.SearchParams(queryValues(ctx)))
		if err != nil {
			return respondError(ctx, err, "Failed to search translations")
		}
		return ctx.JSON(http.StatusOK, page)
	}))

	r.Post("/translations", router.WrapHandler(func(ctx router.Context) error {
		var translation dashboard.Translation
		msg := commands.CreateTranslationInput{Actor: actorFrom(ctx), Result: &translation}
		if err := decode(ctx, &msg.CreateTranslationInput); err != nil {
			return respondError(ctx, err, "")
		}
		if err := api.CreateTranslation.Execute(ctx.Context(), msg); err != nil {
			return respondError(ctx, err, "Failed to create translation")
		}
		return ctx.JSON(http.StatusCreated, translation)
	}))

	r.Put("/translations/:id", router.WrapHandler(func(ctx router.Context) error {
		msg := commands.UpdateTranslationInput{ID: ctx.Param("id"), Actor: actorFrom(ctx)}
		if err := decode(ctx, &msg); err != nil {
			return respondError(ctx, err, "")
		}
		msg.ID = ctx.Param("id")
		if err := api.UpdateTranslation.Execute(ctx.Context(), msg); err != nil {
			return respondError(ctx, err, "Failed to update translation")
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))

	r.Delete("/translations/:id", router.WrapHandler(func(ctx router.Context) error {
		err := api.DeleteTranslation.Execute(ctx.Context(), commands.DeleteTranslationInput{
			ID: ctx.Param("id"), KeyID: ctx.Query("keyId"), Actor: actorFrom(ctx),
		})
		if err != nil {
			return respondError(ctx, err, "Failed to delete translation")
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "deleted"})
	}))

	r.Get("/statistics", router.WrapHandler(func(ctx router.Context) error {
		stats, err := api.Statistics.Query(ctx.Context(), api.StatisticsFilter(queryValues(ctx)))
		if err != nil {
			return respondError(ctx, err, "Failed to load statistics")
		}
		return ctx.JSON(http.StatusOK, stats)
	}))

	r.Post("/focus", router.WrapHandler(func(ctx router.Context) error {
		var summary dashboard.FocusSummary
		msg := commands.StartFocusInput{Result: &summary}
		if form, ok := formValues(ctx); ok {
			msg.FocusRequest = dashboard.FocusRequest{
				ProjectID: form.Get("projectId"),
				FeatureID: form.Get("featureId"),
				Locale:    form.Get("locale"),
			}
		} else if err := decode(ctx, &msg.FocusRequest); err != nil {
			return respondError(ctx, err, "")
		}
		if err := api.StartFocus.Execute(ctx.Context(), msg); err != nil {
			return respondError(ctx, err, "Failed to start focus mode")
		}
		return respondWith(ctx, url.Values{"session": {summary.ID}}, http.StatusCreated, summary)
	}))

	r.Get("/focus/:id", router.WrapHandler(func(ctx router.Context) error {
		view, err := api.Focus.Query(ctx.Context(), queries.FocusInput{SessionID: ctx.Param("id")})
		if err != nil {
			return respondError(ctx, err, "Failed to load focus session")
		}
		return ctx.JSON(http.StatusOK, view)
	}))

	r.Post("/focus/:id", router.WrapHandler(func(ctx router.Context) error {
		var summary dashboard.FocusSummary
		msg := commands.FocusStepInput{Actor: actorFrom(ctx), Result: &summary}
		if form, ok := formValues(ctx); ok {
			msg.Action = dashboard.FocusAction(form.Get("action"))
			msg.Value = form.Get("value")
		} else if err := decode(ctx, &msg); err != nil {
			return respondError(ctx, err, "")
		}
		msg.SessionID = ctx.Param("id")
		if err := api.FocusStep.Execute(ctx.Context(), msg); err != nil {
			return respondError(ctx, err, "Failed to save translation")
		}
		return respond(ctx, http.StatusOK, summary)
	}))

	r.Delete("/focus/:id", router.WrapHandler(func(ctx router.Context) error {
		api.EndFocus(ctx.Param("id"))
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "ended"})
	}))
}

func exportHandler(api *httpapi.Executor) router.HandlerFunc {
	return router.WrapHandler(func(ctx router.Context) error {
		export, err := api.ExportCSV(ctx.Context(), queryValues(ctx))
		if err != nil {
			return respondError(ctx, err, "Export failed")
		}
		ctx.SetHeader("Content-Type", export.ContentType)
		ctx.SetHeader("Content-Disposition", httpapi.ContentDisposition(export.Filename))
		return ctx.Send(export.Content)
	})
}

func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func project(api *httpapi.Executor, id string) string {
	if id != "" || api.Selected == nil {
		return id
	}
	return api.Selected()
}

func queryValues(ctx router.Context) url.Values {
	values := url.Values{}
	for _, name := range queryParams {
		if v := ctx.Query(name); v != "" {
			values.Set(name, v)
		}
	}
	return values
}

func decode(ctx router.Context, dst any) error {
	body := ctx.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &dashboard.ValidationError{Form: "request", Reason: "invalid JSON body"}
	}
	return nil
}

func uploadFrom(ctx router.Context) (httpapi.UploadRequest, func(), error) {
	contentType := ctx.Header("Content-Type")
	if httpapi.IsForm(contentType) {
		form, err := httpapi.ParseMultipart(contentType, ctx.Body())
		if err != nil {
			return httpapi.UploadRequest{}, func() {}, err
		}
		req, done, err := httpapi.UploadFromForm(form)
		return req, func() { done(); _ = form.RemoveAll() }, err
	}
	req := httpapi.UploadRequest{
		ProjectID: ctx.Query("projectId"),
		FeatureID: ctx.Query("featureId"),
		Filename:  ctx.Query("filename"),
		Mapping:   parseMapping(ctx.Query("map")),
	}
	if body := ctx.Body(); len(body) > 0 {
		req.File = bytes.NewReader(body)
	}
	return req, func() {}, nil
}

// formValues decodes a url-encoded form body.
func formValues(ctx router.Context) (url.Values, bool) {
	if !strings.HasPrefix(ctx.Header("Content-Type"), "application/x-www-form-urlencoded") {
		return nil, false
	}
	values, err := url.ParseQuery(string(ctx.Body()))
	if err != nil {
		return nil, false
	}
	return values, true
}

// respond redirects url-encoded page forms back to the page they came from.
// Everything else, multipart uploads included, gets JSON.
func respond(ctx router.Context, status int, payload any) error {
	return respondWith(ctx, nil, status, payload)
}

func respondWith(ctx router.Context, set url.Values, status int, payload any) error {
	if httpapi.IsPageForm(ctx.Header("Content-Type")) {
		ctx.SetHeader("Location", httpapi.RedirectTarget(ctx.Header("Referer"), set))
		return ctx.JSON(http.StatusSeeOther, payload)
	}
	return ctx.JSON(status, payload)
}

// parseMapping reads "English:en,Spanish:es" into header renames.
func parseMapping(raw string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		header, locale, ok := strings.Cut(pair, ":")
		if !ok || strings.TrimSpace(header) == "" {
			continue
		}
		out[strings.TrimSpace(header)] = strings.TrimSpace(locale)
	}
	return out
}

func actorFrom(ctx router.Context) commands.Actor {
	actor := commands.Actor{
		ActorID:  ctx.Header(httpapi.HeaderActorID),
		UserID:   ctx.Header(httpapi.HeaderUserID),
		TenantID: ctx.Header(httpapi.HeaderTenantID),
	}
	if v, ok := ctx.Locals("user_id").(string); ok && actor.UserID == "" {
		actor.UserID = v
	}
	return actor
}

func defaultViewerResolver(ctx router.Context) dashboard.ViewerContext {
	var viewer dashboard.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	if roles, ok := ctx.Locals("roles").([]string); ok {
		viewer.Roles = roles
	}
	viewer.ProjectID = ctx.Query("projectId")
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		if lang := parseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func respondError(ctx router.Context, err error, fallback string) error {
	body := httpapi.NewErrorResponse(err, fallback)
	return ctx.JSON(body.Status, body)
}

func (cfg Config[T]) routes() RouteConfig {
	routes := defaultRouteConfig(cfg.Routes)
	return routes
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	defaults := map[*string]string{
		&routes.Dashboard:    "/dashboard",
		&routes.Projects:     "/projects",
		&routes.Project:      "/project",
		&routes.Features:     "/features",
		&routes.Feature:      "/feature",
		&routes.Languages:    "/languages",
		&routes.Translations: "/translations",
		&routes.Editor:       "/editor",
		&routes.Focus:        "/focus",
		&routes.Import:       "/import",
		&routes.API:          "/api",
		&routes.WebSocket:    "/ws",
	}
	for field, value := range defaults {
		if *field == "" {
			*field = value
		}
	}
	return routes
}

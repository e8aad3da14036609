package httpapi

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

// PageRoutes maps paths under the base path to the page rendered there.
var PageRoutes = map[string]dashboard.PageName{
	"/dashboard":    dashboard.PageDashboard,
	"/projects":     dashboard.PageProjects,
	"/project":      dashboard.PageProject,
	"/features":     dashboard.PageFeatures,
	"/feature":      dashboard.PageFeature,
	"/languages":    dashboard.PageLanguages,
	"/translations": dashboard.PageTranslations,
	"/editor":       dashboard.PageEditor,
	"/focus":        dashboard.PageFocus,
	"/import":       dashboard.PageImport,
}

// Pages renders the dashboard's HTML pages over net/http.
type Pages struct {
	Controller *dashboard.Controller
	Logger     *slog.Logger
}

// Mount registers a GET route per page under prefix, the import page's
// preview and upload steps, and the translations CSV download the table page
// links to.
func (p *Pages) Mount(mux *http.ServeMux, prefix string, api *Executor) {
	prefix = strings.TrimRight(prefix, "/")
	for path, page := range PageRoutes {
		mux.Handle("GET "+prefix+path, p.Page(page))
	}
	mux.Handle("POST "+prefix+"/import", p.ImportStep())
	if api != nil {
		h := &Handlers{Executor: api, Logger: p.Logger}
		mux.HandleFunc("GET "+prefix+"/translations/export", h.export)
	}
}

func viewerFrom(r *http.Request) dashboard.ViewerContext {
	return dashboard.ViewerContext{
		UserID:    r.Header.Get(HeaderUserID),
		ProjectID: r.URL.Query().Get("projectId"),
	}
}

// Page renders page with the request's query string.
func (p *Pages) Page(page dashboard.PageName) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.render(w, r, page, func(out io.Writer) error {
			return p.Controller.RenderPage(r.Context(), page, viewerFrom(r), r.URL.Query(), out)
		})
	})
}

// ImportStep renders the preview, or the upload result, of an import page
// post.
func (p *Pages) ImportStep() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.render(w, r, dashboard.PageImport, func(out io.Writer) error {
			if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
				return &dashboard.ValidationError{Form: "upload", Reason: "expected a multipart form with a csv file"}
			}
			defer func() { _ = r.MultipartForm.RemoveAll() }()
			upload, err := ImportStepFromForm(r.MultipartForm)
			if err != nil {
				return err
			}
			return p.Controller.RenderImport(r.Context(), viewerFrom(r), upload, out)
		})
	})
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, page dashboard.PageName, fn func(io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		body := NewErrorResponse(err, "Failed to load page")
		logger := p.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.WarnContext(r.Context(), "render page failed",
			slog.String("page", string(page)),
			slog.String("error", err.Error()),
		)
		http.Error(w, body.Error, body.Status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

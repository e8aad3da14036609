package dashboard

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"

	template "github.com/goliatone/go-template"
)

// Renderer executes a page template. Controller passes the page payload as
// data and streams into the first writer when one is given.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

//go:embed templates/*.html templates/partials/*.html
var embeddedTemplates embed.FS

// NewTemplateRenderer builds the go-template renderer over the embedded
// pages. A non-empty dir serves the pages from disk instead, so templates can
// be edited without rebuilding; it must hold the same layout as templates/.
// Templates are always resolved through an fs.FS, never the working
// directory.
func NewTemplateRenderer(dir string) (Renderer, error) {
	source, err := templateSource(dir)
	if err != nil {
		return nil, err
	}
	return template.NewRenderer(
		template.WithFS(source),
		template.WithExtension(".html"),
	)
}

func templateSource(dir string) (fs.FS, error) {
	if dir != "" {
		return os.DirFS(dir), nil
	}
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("dashboard: embedded templates: %w", err)
	}
	return sub, nil
}

package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer turns a named view and its payload into a response body.
type Renderer interface {
	Render(w io.Writer, view string, data any) error
}

// TemplateRenderer renders the embedded html/template views.
type TemplateRenderer struct {
	views map[string]*template.Template
}

// NewTemplateRenderer parses every view against the shared layout.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	names := []string{"welcome", "trivia"}
	views := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		views[name] = t
	}
	return &TemplateRenderer{views: views}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, view string, data any) error {
	t, ok := r.views[view]
	if !ok {
		return fmt.Errorf("unknown view %q", view)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

func staticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

package httpx

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
)

// TemplateRenderer renders full pages and htmx fragments from an embedded
// template tree: layout.tmpl plus one file per page under pages/, each
// defining a "content" block and any fragment blocks it needs.
type TemplateRenderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// NewTemplateRenderer parses the template tree.
func NewTemplateRenderer(fsys fs.FS, logger *slog.Logger) (*TemplateRenderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	base, err := template.New("layout").ParseFS(fsys, "layout.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pageFiles, err := fs.Glob(fsys, "pages/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("glob pages: %w", err)
	}
	if len(pageFiles) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, file := range pageFiles {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout: %w", err)
		}
		t, err := clone.ParseFS(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".tmpl")] = t
	}
	return &TemplateRenderer{pages: pages, logger: logger}, nil
}

// RenderPage renders a full page through the layout. The output is buffered
// so a template failure yields a clean 500 instead of a torn page.
func (tr *TemplateRenderer) RenderPage(w http.ResponseWriter, status int, page string, data any) {
	tr.render(w, status, page, "layout", data, nil)
}

// RenderFragment renders one named block of a page for htmx swaps. Fragments
// refresh constantly, so responses are marked uncacheable.
func (tr *TemplateRenderer) RenderFragment(w http.ResponseWriter, status int, page, fragment string, data any) {
	headers := map[string]string{
		"Cache-Control": "no-store",
		"Vary":          "Hx-Request",
	}
	tr.render(w, status, page, fragment, data, headers)
}

func (tr *TemplateRenderer) render(w http.ResponseWriter, status int, page, name string, data any, headers map[string]string) {
	t, ok := tr.pages[page]
	if !ok {
		tr.logger.Error("unknown page template", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		tr.logger.Error("execute template", "page", page, "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	for k, v := range headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		// Client went away mid-write; nothing to recover.
		return
	}
}

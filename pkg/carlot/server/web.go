package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

// assetsFS holds the static files served under /assets/, such as the
// storefront image placeholder.
//
//go:embed assets
var assetsFS embed.FS

const baseTemplate = "templates/base.html"

// renderer holds one template set per page: the base layout with the page's
// "content" block parsed into a clone of it.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	base, err := template.ParseFS(templatesFS, baseTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse base template: %w", err)
	}

	files, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == baseTemplate {
			continue
		}
		tmpl, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone template: %w", err)
		}
		if _, err := tmpl.ParseFS(templatesFS, file); err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", file, err)
		}
		pages[path.Base(file)] = tmpl
	}
	return &renderer{pages: pages}, nil
}

// PageData contains common data for all pages.
type PageData struct {
	Title string
	Page  string
	Year  int
	Flash *FlashMessage
	Data  any
}

// FlashMessage is the toast shown at the top of a page.
type FlashMessage struct {
	Type    string // "success" or "error"
	Message string
}

// render executes the page into a buffer so that a template error leaves the
// response untouched for the caller to report.
func (r *renderer) render(w http.ResponseWriter, status int, name string, page PageData) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page template %s", name)
	}
	page.Year = time.Now().Year()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", page); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	// The status is sent; a failed write means the client went away.
	buf.WriteTo(w)
	return nil
}

// flashFrom reads a flash carried across a redirect.
func flashFrom(r *http.Request) *FlashMessage {
	q := r.URL.Query()
	if msg := q.Get("error"); msg != "" {
		return &FlashMessage{Type: "error", Message: msg}
	}
	if msg := q.Get("notice"); msg != "" {
		return &FlashMessage{Type: "success", Message: msg}
	}
	return nil
}

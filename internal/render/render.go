// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the recipe pages.
// Every page template is paired with the shared base layout.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"recipebox/internal/catalog"
	"recipebox/internal/markdown"
	"recipebox/internal/middleware"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PageData holds all data passed to page templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	CSRFToken string         // CSRF token for forms
	Data      map[string]any // Page-specific data
	Flashes   []Flash        // One-time notification messages
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error"
	Message string
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
}

// funcMap holds the helpers available to every template.
var funcMap = template.FuncMap{
	"markdown":   markdown.Render,
	"pathEscape": url.PathEscape,
	// inc turns a zero-based index into a step number.
	"inc": func(i int) int { return i + 1 },
	// filterURL builds the catalog link for a search text and category,
	// leaving out parameters that hold their defaults.
	"filterURL": func(search, category string) string {
		return FilterURL(catalog.Query{Search: search, Category: category})
	},
}

// New parses all page templates from the embedded filesystem.
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	pages, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	for _, page := range pages {
		name := strings.TrimSuffix(strings.TrimPrefix(page, "templates/"), ".html")
		if name == "base" {
			continue
		}

		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(
			templatesFS, "templates/base.html", page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}

	return r, nil
}

// Has reports whether a page template with the given name exists.
func (rn *Renderer) Has(name string) bool {
	_, ok := rn.templates[name]
	return ok
}

// Page renders a full page with the given status code. The template is
// executed into a buffer first so a failure still yields a clean 500.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	if data.CSRFToken == "" {
		data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		slog.Error("render template", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// FilterURL returns the catalog URL that shows the results of q.
func FilterURL(q catalog.Query) string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Category != "" && q.Category != catalog.AllCategories {
		v.Set("category", q.Category)
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

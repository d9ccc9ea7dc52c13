package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gaayatricouture/couture/internal/content"
	"github.com/gaayatricouture/couture/internal/notify"
	webembed "github.com/gaayatricouture/couture/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
	logger    zerolog.Logger
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"year": func() int { return time.Now().Year() },
		"active": func(current, path string) bool {
			if path == "/" {
				return current == "/"
			}
			return current == path || strings.HasPrefix(current, path+"/")
		},
		"query": func(path string, kv ...string) string {
			q := url.Values{}
			for i := 0; i+1 < len(kv); i += 2 {
				if kv[i+1] != "" {
					q.Set(kv[i], kv[i+1])
				}
			}
			if len(q) == 0 {
				return path
			}
			return path + "?" + q.Encode()
		},
		"telHref": func(phone string) string {
			return "tel:" + strings.ReplaceAll(phone, " ", "")
		},
		"toastClass": func(k notify.Kind) string {
			if k == notify.Error {
				return "toast toast-error"
			}
			return "toast toast-success"
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates(logger zerolog.Logger) (*Templates, error) {
	tfs := webembed.TemplatesFS()

	// Read layout.
	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"home.html",
		"listing.html",
		"services.html",
		"contact.html",
		"login.html",
		"admin.html",
		"edit.html",
		"delete.html",
		"not_found.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template), logger: logger}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	ts.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus renders a template with an explicit status code.
func (ts *Templates) RenderStatus(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		ts.logger.Error().Err(err).Str("template", name).Msg("failed to render template")
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	Path    string
	Site    *content.Site
	IsAdmin bool
	Email   string
	Toasts  []notify.Toast
}

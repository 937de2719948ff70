package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/erazemk/milams/internal/auth"
	"github.com/erazemk/milams/internal/backend"
	"github.com/erazemk/milams/internal/model"
	webembed "github.com/erazemk/milams/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"hasRole": model.HasRole,
		"withFilter": func(path string, f model.Filter) string {
			if q := f.Values().Encode(); q != "" {
				return path + "?" + q
			}
			return path
		},
		"money": func(d decimal.Decimal) string {
			return d.StringFixed(2)
		},
		"date": func(t model.Timestamp) string {
			return t.Format("2006-01-02")
		},
		"datetime": func(t model.Timestamp) string {
			return t.Format("2006-01-02 15:04")
		},
		"orDash": func(s string) string {
			if s == "" {
				return "-"
			}
			return s
		},
		"statusClass": func(status string) string {
			switch status {
			case model.AssetStatusAvailable, model.TransferStatusCompleted, model.AssignmentStatusActive:
				return "badge ok"
			case model.TransferStatusPending, model.AssetStatusMaintenance:
				return "badge warn"
			case model.TransferStatusRejected, model.AssetStatusRetired:
				return "badge bad"
			default:
				return "badge"
			}
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"login.html",
		"pending.html",
		"dashboard.html",
		"net_movement.html",
		"purchases.html",
		"transfers.html",
		"transfer_new.html",
		"assignments.html",
		"assets.html",
		"users.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

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

// Render renders a template with the given data and a 200 status.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	ts.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus renders a template with the given data and status code.
func (ts *Templates) RenderStatus(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	Path    string
	User    *model.User
	Menu    []MenuItem
	Error   string
	Success string
}

// Server holds all dependencies for page handlers.
type Server struct {
	Backend   *backend.Client
	Gateway   *auth.Gateway
	Templates *Templates
}

// pageData builds the base data for an authenticated page.
func (s *Server) pageData(r *http.Request, sess *auth.Session, title string) PageData {
	pd := PageData{Title: title, Path: r.URL.Path, User: sess.User, Menu: VisibleMenu(sess.User)}
	if r.URL.Query().Get("saved") != "" {
		pd.Success = "Saved."
	}
	return pd
}

// client returns a backend client acting as the session's user.
func (s *Server) client(sess *auth.Session) *backend.Client {
	return s.Backend.WithToken(sess.Token)
}

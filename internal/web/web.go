// Package web serves the single-page gallery viewer.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/index.html
var templates embed.FS

//go:embed static
var assets embed.FS

// Shell renders the viewer page and its static assets.
type Shell struct {
	index  *template.Template
	data   pageData
	logger *slog.Logger
}

type pageData struct {
	Title string
	Page  string
}

// New parses the embedded page template. page is the upstream page name
// shown in the sidebar.
func New(page string, logger *slog.Logger) (*Shell, error) {
	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse index template: %w", err)
	}
	return &Shell{
		index:  tmpl,
		data:   pageData{Title: "Terra Station Gallery", Page: page},
		logger: logger,
	}, nil
}

// RegisterRoutes attaches the page and asset handlers to the given mux.
func (s *Shell) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("GET /static/", http.FileServerFS(assets))
}

func (s *Shell) handleIndex(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := s.index.Execute(&buf, s.data); err != nil {
		s.logger.Error("failed to render template", "error", err)
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/terrastation/gallery-reader/backend/internal/model"
)

// SourceHeader reports whether a list was scraped live or is placeholder data.
const SourceHeader = "X-Gallery-Source"

// Transport handles HTTP requests for the gallery API.
type Transport struct {
	service *Service
	logger  *slog.Logger
}

// NewTransport creates an HTTP transport backed by the given service.
func NewTransport(service *Service, logger *slog.Logger) *Transport {
	return &Transport{service: service, logger: logger}
}

// RegisterRoutes attaches the transport's handlers to the given mux.
func (t *Transport) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/albums", t.handleAlbums)
	mux.HandleFunc("GET /api/album/{id}/photos", t.handleAlbumPhotos)
	mux.HandleFunc("GET /health", t.handleHealth)
}

// Upstream failures are reported in-band with status 200 and an empty list.
func (t *Transport) handleAlbums(w http.ResponseWriter, r *http.Request) {
	set, err := t.service.Albums(r.Context())
	if err != nil {
		t.renderJSON(w, http.StatusOK, model.AlbumsResponse{
			Albums: []model.Album{},
			Error:  fmt.Sprintf("Unable to fetch albums. Facebook page may have changed structure: %v", err),
		})
		return
	}

	w.Header().Set(SourceHeader, string(set.Source))
	t.renderJSON(w, http.StatusOK, model.AlbumsResponse{Albums: set.Albums})
}

func (t *Transport) handleAlbumPhotos(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")

	set, err := t.service.AlbumPhotos(r.Context(), albumID)
	if err != nil {
		t.renderJSON(w, http.StatusOK, model.PhotosResponse{
			Photos: []model.Photo{},
			Error:  fmt.Sprintf("Unable to fetch photos: %v", err),
		})
		return
	}

	w.Header().Set(SourceHeader, string(set.Source))
	t.renderJSON(w, http.StatusOK, model.PhotosResponse{Photos: set.Photos})
}

func (t *Transport) handleHealth(w http.ResponseWriter, _ *http.Request) {
	t.renderJSON(w, http.StatusOK, model.HealthResponse{Status: "ok"})
}

func (t *Transport) renderJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		t.logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Metadata     MetadataProvider
	MaxBodyBytes int64
}

// DownloadHandler builds the download endpoint from the dependencies.
func (d Dependencies) DownloadHandler() DownloadHandler {
	return DownloadHandler{Metadata: d.Metadata, MaxBodyBytes: d.MaxBodyBytes}
}

// RegisterRoutes wires HTTP handlers into the provided router. The download
// endpoint accepts every method so that non-POST requests get its JSON 405.
func RegisterRoutes(r chi.Router, deps Dependencies) {
	health := HealthHandler{}
	download := deps.DownloadHandler()

	r.HandleFunc("/healthz", health.Handle)
	r.Handle("/api/download", download)
	r.Handle("/.netlify/functions/download", download)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(r.Context(), w, http.StatusNotFound, errorResponse{Error: "Not found"})
	})
}

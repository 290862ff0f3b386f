package handlers

import (
	"net/http"

	"fake-news-detector/cache"
	"fake-news-detector/database"
	"fake-news-detector/format"
	"fake-news-detector/models"
	"fake-news-detector/services"
)

// CatalogHandler serves the read-only data shown next to the analyzer.
type CatalogHandler struct {
	store *services.SessionStore
}

func NewCatalogHandler(store *services.SessionStore) *CatalogHandler {
	return &CatalogHandler{store: store}
}

type modelsResponse struct {
	Models      []models.ModelMetadata `json:"models"`
	Best        models.ModelID         `json:"best"`
	KeyFindings string                 `json:"key_findings"`
}

// Models handles GET /api/models[?format=table]
func (h *CatalogHandler) Models(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "table" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(services.RenderComparison(format.ASCII) + "\n\n" + services.KeyFindings() + "\n"))
		return
	}
	writeJSON(w, http.StatusOK, modelsResponse{
		Models:      services.Models(),
		Best:        services.Best().ID,
		KeyFindings: services.KeyFindings(),
	})
}

// Examples handles GET /api/examples
func (h *CatalogHandler) Examples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"examples": services.Examples()})
}

// Health handles GET /api/health
func (h *CatalogHandler) Health(w http.ResponseWriter, r *http.Request) {
	sessions := 0
	if h.store != nil {
		sessions = h.store.Len()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": sessions,
		"cache":    cache.Enabled(),
		"database": database.DB != nil,
		"upstream": services.UpstreamStatuses(),
	})
}

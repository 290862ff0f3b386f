package handlers

import (
	"net/http"

	"fake-news-detector/config"
	"fake-news-detector/services"
)

// NewRouter registers every API route on a fresh mux.
func NewRouter(cfg *config.Config, store *services.SessionStore, fetcher *services.ContentFetcher) http.Handler {
	sessionHandler := NewSessionHandler(store, fetcher)
	catalogHandler := NewCatalogHandler(store)
	adminHandler := NewAdminHandler(cfg, sessionHandler, store)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", catalogHandler.Health)
	mux.HandleFunc("GET /api/models", catalogHandler.Models)
	mux.HandleFunc("GET /api/examples", catalogHandler.Examples)

	mux.HandleFunc("POST /api/sessions", sessionHandler.Create)
	mux.HandleFunc("GET /api/sessions/{id}", sessionHandler.Get)
	mux.HandleFunc("DELETE /api/sessions/{id}", sessionHandler.Delete)
	mux.HandleFunc("PUT /api/sessions/{id}/text", sessionHandler.SetText)
	mux.HandleFunc("PUT /api/sessions/{id}/model", sessionHandler.SelectModel)
	mux.HandleFunc("POST /api/sessions/{id}/submit", sessionHandler.Submit)

	// Admin API
	mux.HandleFunc("GET /api/admin/stats", adminHandler.AuthMiddleware(adminHandler.GetStats))
	mux.HandleFunc("GET /api/admin/status", adminHandler.AuthMiddleware(adminHandler.GetStatus))
	mux.HandleFunc("POST /api/admin/pause", adminHandler.AuthMiddleware(adminHandler.Pause))
	mux.HandleFunc("POST /api/admin/resume", adminHandler.AuthMiddleware(adminHandler.Resume))
	mux.HandleFunc("/api/admin/logs", adminHandler.StreamLogs)

	return WithCORS(mux)
}

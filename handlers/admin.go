package handlers

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"fake-news-detector/config"
	"fake-news-detector/logger"
	"fake-news-detector/models"
	"fake-news-detector/services"
)

type AdminHandler struct {
	cfg      *config.Config
	sessions *SessionHandler
	store    *services.SessionStore
}

func NewAdminHandler(cfg *config.Config, sessions *SessionHandler, store *services.SessionStore) *AdminHandler {
	return &AdminHandler{cfg: cfg, sessions: sessions, store: store}
}

// Pause stops new submissions; sessions can still be edited and read.
func (h *AdminHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.sessions.IsPaused.Store(true)
	log.Println("[ADMIN] ⏸ submissions paused by admin")
	w.WriteHeader(http.StatusOK)
}

func (h *AdminHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.sessions.IsPaused.Store(false)
	log.Println("[ADMIN] ▶ submissions resumed by admin")
	w.WriteHeader(http.StatusOK)
}

func (h *AdminHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"is_paused": h.sessions.IsPaused.Load(),
		"sessions":  h.store.Len(),
	})
}

func (h *AdminHandler) authorized(token string) bool {
	if h.cfg.AdminToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.cfg.AdminToken)) == 1
}

// AuthMiddleware checks the admin token header. Admin routes are closed
// when no token is configured.
func (h *AdminHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorized(r.Header.Get("X-Admin-Token")) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

type AdminStats struct {
	ActiveSessions int                    `json:"active_sessions"`
	TotalVerdicts  int                    `json:"total_verdicts"`
	FakeCount      int                    `json:"fake_count"`
	RealCount      int                    `json:"real_count"`
	ByModel        []services.VerdictStat `json:"by_model"`
}

func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	list, err := services.VerdictStats(r.Context())
	if err != nil {
		log.Printf("[ADMIN] ❌ stats: %v", err)
		writeError(w, http.StatusInternalServerError, "stats unavailable")
		return
	}

	stats := AdminStats{ActiveSessions: h.store.Len(), ByModel: list}
	for _, s := range list {
		stats.TotalVerdicts += s.Total
		switch s.Verdict {
		case models.VerdictFake:
			stats.FakeCount += s.Total
		case models.VerdictReal:
			stats.RealCount += s.Total
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamLogs pushes every log line to the admin over a websocket. Browsers
// cannot set headers on websocket requests, so the token comes as ?token=.
func (h *AdminHandler) StreamLogs(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r.URL.Query().Get("token")) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ADMIN] WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	logsChan := logger.Instance.Subscribe()
	defer logger.Instance.Unsubscribe(logsChan)

	done := make(chan struct{})
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(done)
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-logsChan:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

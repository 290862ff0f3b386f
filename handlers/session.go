package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"fake-news-detector/models"
	"fake-news-detector/services"
)

type SessionHandler struct {
	store   *services.SessionStore
	fetcher *services.ContentFetcher

	IsPaused atomic.Bool
}

func NewSessionHandler(store *services.SessionStore, fetcher *services.ContentFetcher) *SessionHandler {
	return &SessionHandler{store: store, fetcher: fetcher}
}

type sessionResponse struct {
	ID           string                 `json:"id"`
	State        models.SessionState    `json:"state"`
	Presentation *services.Presentation `json:"presentation,omitempty"`
	Error        string                 `json:"error,omitempty"`
}

func snapshot(id string, ctrl *services.SessionController) sessionResponse {
	resp := sessionResponse{ID: id, State: ctrl.State()}
	if resp.State.Phase == models.PhaseSucceeded && resp.State.Result != nil {
		p := services.Present(*resp.State.Result)
		resp.Presentation = &p
	}
	return resp
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (string, *services.SessionController, bool) {
	id := r.PathValue("id")
	ctrl, err := h.store.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return "", nil, false
	}
	return id, ctrl, true
}

// Create handles POST /api/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ctrl := h.store.Create()
	writeJSON(w, http.StatusCreated, snapshot(id, ctrl))
}

// Get handles GET /api/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snapshot(id, ctrl))
}

// Delete handles DELETE /api/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetText handles PUT /api/sessions/{id}/text with {"text": "..."} or {"url": "..."}
func (h *SessionHandler) SetText(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req struct {
		Text *string `json:"text"`
		URL  string  `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch {
	case req.URL != "":
		if h.fetcher == nil {
			writeError(w, http.StatusNotImplemented, "url input is disabled")
			return
		}
		text, err := h.fetcher.FetchURL(r.Context(), strings.TrimSpace(req.URL))
		if err != nil {
			log.Printf("[HANDLER] ⚠ fetch %s: %v", req.URL, err)
			writeError(w, http.StatusUnprocessableEntity, "could not load article: "+err.Error())
			return
		}
		ctrl.SetInputText(text)
	case req.Text != nil:
		ctrl.SetInputText(*req.Text)
	default:
		writeError(w, http.StatusBadRequest, "either 'text' or 'url' is required")
		return
	}
	writeJSON(w, http.StatusOK, snapshot(id, ctrl))
}

// SelectModel handles PUT /api/sessions/{id}/model with {"model": "roberta"}
func (h *SessionHandler) SelectModel(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req struct {
		Model string `json:"model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	model, err := models.ParseModelID(req.Model)
	if err == nil {
		err = ctrl.SelectModel(model)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snapshot(id, ctrl))
}

// Submit handles POST /api/sessions/{id}/submit. Blocks until the classifier
// answers; the request context only contributes values, so a client
// disconnect does not abort the classification.
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	id, ctrl, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if h.IsPaused.Load() {
		writeError(w, http.StatusServiceUnavailable, "submissions are paused")
		return
	}
	log.Printf("[HANDLER] 📥 submit %s from %s", id, r.RemoteAddr)

	err := ctrl.Submit(context.WithoutCancel(r.Context()))
	resp := snapshot(id, ctrl)

	switch {
	case err == nil:
		log.Printf("[HANDLER] ✅ done in %v", time.Since(startTime))
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, services.ErrSubmitInFlight):
		resp.Error = err.Error()
		writeJSON(w, http.StatusConflict, resp)
	case errors.Is(err, services.ErrBlankInput):
		resp.Error = models.ErrorValidation.Message()
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	default:
		resp.Error = resp.State.LastErrorMessage
		status := http.StatusBadGateway
		if services.KindOf(err) == models.ErrorTimeout {
			status = http.StatusGatewayTimeout
		}
		writeJSON(w, status, resp)
	}
}

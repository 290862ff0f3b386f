package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"fake-news-detector/models"
)

var ErrSessionNotFound = errors.New("session not found")

type sessionEntry struct {
	ctrl     *SessionController
	lastUsed time.Time
}

// SessionStore keeps live sessions in memory, one SessionController each.
// Sessions are discarded when deleted or idle for longer than the TTL.
type SessionStore struct {
	newSession func() *SessionController
	idleTTL    time.Duration
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

func NewSessionStore(newSession func() *SessionController, idleTTL time.Duration) *SessionStore {
	return &SessionStore{
		newSession: newSession,
		idleTTL:    idleTTL,
		now:        time.Now,
		sessions:   map[string]*sessionEntry{},
	}
}

func (s *SessionStore) Create() (string, *SessionController) {
	id := uuid.NewString()
	ctrl := s.newSession()

	s.mu.Lock()
	s.sessions[id] = &sessionEntry{ctrl: ctrl, lastUsed: s.now()}
	s.mu.Unlock()

	log.Printf("[SESSION] ✓ created %s", id)
	return id, ctrl
}

// Get returns the session and marks it as used.
func (s *SessionStore) Get(id string) (*SessionController, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastUsed = s.now()
	return e.ctrl, nil
}

// GetOrCreate returns the session stored under a caller-chosen key such as
// a chat id, creating it on first use.
func (s *SessionStore) GetOrCreate(id string) *SessionController {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[id]; ok {
		e.lastUsed = s.now()
		return e.ctrl
	}
	ctrl := s.newSession()
	s.sessions[id] = &sessionEntry{ctrl: ctrl, lastUsed: s.now()}
	log.Printf("[SESSION] ✓ created %s", id)
	return ctrl
}

func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	log.Printf("[SESSION] 🗑 ended %s", id)
	return nil
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops idle sessions and returns how many were removed. A session
// with a request in flight is never dropped.
func (s *SessionStore) Sweep() int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.sessions {
		if e.lastUsed.After(cutoff) || e.ctrl.State().Phase == models.PhaseSubmitting {
			continue
		}
		delete(s.sessions, id)
		removed++
	}
	if removed > 0 {
		log.Printf("[SESSION] 🧹 evicted %d idle session(s)", removed)
	}
	return removed
}

// RunJanitor sweeps every interval until ctx is done.
func (s *SessionStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

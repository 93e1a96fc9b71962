// Package session tracks anonymous API sessions and the history each owns.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vaultpass/passgen-go/internal/history"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one caller's state.
type Session struct {
	ID       uuid.UUID
	History  *history.History
	lastSeen time.Time
}

// Store is an in-memory session registry.
type Store struct {
	mu          sync.Mutex
	sessions    map[uuid.UUID]*Session
	ttl         time.Duration
	historySize int
	now         func() time.Time
}

// NewStore creates a Store whose sessions expire after ttl of inactivity.
func NewStore(ttl time.Duration, historySize int) *Store {
	return &Store{
		sessions:    make(map[uuid.UUID]*Session),
		ttl:         ttl,
		historySize: historySize,
		now:         time.Now,
	}
}

// Create registers a new session.
func (s *Store) Create() *Session {
	sess := &Session{
		ID:       uuid.New(),
		History:  history.New(s.historySize),
		lastSeen: s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns a live session and marks it as seen.
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || s.expired(sess) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = s.now()
	return sess, nil
}

// HistorySize returns the capacity of the history each session gets.
func (s *Store) HistorySize() int {
	if s.historySize <= 0 {
		return history.DefaultCapacity
	}
	return s.historySize
}

// Len returns the number of tracked sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Debug("expired sessions removed", "count", n, "active", s.Len())
			}
		}
	}
}

func (s *Store) expired(sess *Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.lastSeen) > s.ttl
}

// Package memory holds live screening sessions in process memory.
// A restart ends them; the candidate record on disk is the durable
// artifact.
package memory

import (
	"context"
	"sync"
	"time"

	"go-screening-backend/internal/domain"
)

const sweepInterval = 1 * time.Minute

type sessionEntry struct {
	session   *domain.Session
	expiresAt time.Time
}

type sessionStore struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]*sessionEntry
}

// NewSessionStore keeps sessions for ttl past their last update. A
// background sweeper reclaims expired entries.
func NewSessionStore(ttl time.Duration) domain.SessionRepository {
	s := &sessionStore{
		ttl:  ttl,
		data: make(map[string]*sessionEntry),
	}
	go s.sweep()
	return s
}

func (s *sessionStore) Create(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[session.ID] = &sessionEntry{
		session:   session,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Get returns (nil, nil) for unknown or expired sessions.
func (s *sessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	entry, ok := s.data[id]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.data, id)
		s.mu.Unlock()
		return nil, nil
	}
	return entry.session, nil
}

// Update refreshes the expiry, so the TTL measures inactivity rather
// than total session age.
func (s *sessionStore) Update(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[session.ID] = &sessionEntry{
		session:   session,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *sessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

func (s *sessionStore) sweep() {
	ticker := time.NewTicker(sweepInterval)
	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for id, entry := range s.data {
			if now.After(entry.expiresAt) {
				delete(s.data, id)
			}
		}
		s.mu.Unlock()
	}
}

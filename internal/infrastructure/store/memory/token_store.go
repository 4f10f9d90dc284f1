// Package memory is an in-process session.Store, used when no Redis address
// is configured and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/loccar/loccar-web/internal/core/domain"
	"github.com/loccar/loccar-web/internal/core/session"
)

// Backend holds the sessions of every client.
type Backend struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewBackend returns an empty Backend.
func NewBackend() *Backend {
	return &Backend{sessions: make(map[string]domain.Session)}
}

// Factory returns a session.StoreFactory over b.
func (b *Backend) Factory() session.StoreFactory {
	return func(clientID string) session.Store {
		return &TokenStore{backend: b, clientID: clientID}
	}
}

// TokenStore is one client's view of a Backend.
type TokenStore struct {
	backend  *Backend
	clientID string
}

func (s *TokenStore) Save(_ context.Context, token string, user *domain.User) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	s.backend.sessions[s.clientID] = domain.Session{Token: token, User: user.Clone()}.Normalize()
	return nil
}

func (s *TokenStore) Read(_ context.Context) (domain.Session, error) {
	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()
	sess := s.backend.sessions[s.clientID]
	sess.User = sess.User.Clone()
	return sess, nil
}

func (s *TokenStore) Clear(_ context.Context) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	delete(s.backend.sessions, s.clientID)
	return nil
}

package session

import (
	"context"
	"sync"

	"github.com/loccar/loccar-web/internal/core/domain"
)

type fakeStore struct {
	mu       sync.Mutex
	sess     domain.Session
	saveErr  error
	readErr  error
	clearErr error
	saves    int
	clears   int
}

func (f *fakeStore) Save(_ context.Context, token string, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.sess = domain.Session{Token: token, User: user.Clone()}
	return nil
}

func (f *fakeStore) Read(context.Context) (domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return domain.Session{}, f.readErr
	}
	return domain.Session{Token: f.sess.Token, User: f.sess.User.Clone()}, nil
}

func (f *fakeStore) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	f.sess = domain.Session{}
	return f.clearErr
}

func (f *fakeStore) stored() domain.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sess
}

package session

import (
	"context"

	"github.com/loccar/loccar-web/internal/core/domain"
)

// Store is durable storage for one client's token and cached profile.
type Store interface {
	// Save writes token and user together, replacing anything stored before.
	Save(ctx context.Context, token string, user *domain.User) error
	// Read returns whatever is persisted. Nothing stored is not an error.
	Read(ctx context.Context) (domain.Session, error)
	// Clear removes every authentication key, legacy names included.
	Clear(ctx context.Context) error
}

// StoreFactory returns the Store that belongs to a client id.
type StoreFactory func(clientID string) Store

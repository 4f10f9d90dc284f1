package ports

import (
	"context"

	"github.com/loccar/loccar-web/internal/core/domain"
)

// LoginResult is what the backend returns for a successful login. User is nil
// when the response carried only a token.
type LoginResult struct {
	Token string
	User  *domain.User
}

// RegisterResult is the backend's answer to a registration.
type RegisterResult struct {
	User    *domain.User
	Message string
}

// AuthBackend is the authentication part of the rental REST API. Requests
// made with a context carrying a session are authenticated with its token.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)
	Logout(ctx context.Context) error
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

package ports

import (
	"context"

	"github.com/loccar/loccar-web/internal/core/domain"
	"github.com/loccar/loccar-web/internal/core/session"
)

// LoginInput carries the login form.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Username        string `json:"username"        validate:"required,min=2"`
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required,min=4"`
	ConfirmPassword string `json:"confirmPassword,omitempty" validate:"omitempty,eqfield=Password"`
	DriverLicense   string `json:"driverLicense"   validate:"required,min=11"`
	CellPhone       string `json:"cellPhone"       validate:"required,numeric,min=10,max=11"`
}

// AuthService runs the login, register and logout flows for one client.
type AuthService interface {
	Login(ctx context.Context, st *session.State, in LoginInput) (*domain.User, error)
	Register(ctx context.Context, st *session.State, in RegisterInput) (*RegisterResult, error)
	// Logout never fails from the caller's point of view.
	Logout(ctx context.Context, st *session.State)
	RefreshProfile(ctx context.Context, st *session.State) error
}

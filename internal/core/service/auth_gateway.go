package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/loccar/loccar-web/internal/api/metrics"
	"github.com/loccar/loccar-web/internal/core/domain"
	"github.com/loccar/loccar-web/internal/core/ports"
	"github.com/loccar/loccar-web/internal/core/session"
)

// AuthGateway performs login, registration and logout against the backend
// and keeps each client's session.State in step with the outcome.
type AuthGateway struct {
	backend  ports.AuthBackend
	events   ports.AuthEventRecorder
	validate *validator.Validate
	log      zerolog.Logger
	now      func() time.Time
}

// NewAuthGateway returns an AuthGateway. events may be nil.
func NewAuthGateway(backend ports.AuthBackend, events ports.AuthEventRecorder, log zerolog.Logger) *AuthGateway {
	if events == nil {
		events = nopRecorder{}
	}
	return &AuthGateway{
		backend:  backend,
		events:   events,
		validate: validator.New(),
		log:      log,
		now:      time.Now,
	}
}

// Login authenticates the client. The session becomes authenticated as soon
// as the token is persisted; the profile is hydrated afterwards and a failed
// lookup falls back to a placeholder user instead of failing the login.
func (g *AuthGateway) Login(ctx context.Context, st *session.State, in ports.LoginInput) (*domain.User, error) {
	if !st.BeginSubmit() {
		return nil, domain.ErrSubmitInProgress
	}
	defer st.EndSubmit()

	ctx = session.WithState(ctx, st)
	in.Email = strings.TrimSpace(in.Email)

	if err := g.check(in); err != nil {
		g.loginFailed(st, in.Email, err)
		return nil, err
	}

	res, err := g.backend.Login(ctx, in.Email, in.Password)
	if err != nil {
		g.loginFailed(st, in.Email, err)
		return nil, err
	}

	if err := st.SetSession(ctx, res.Token, res.User); err != nil {
		g.loginFailed(st, in.Email, err)
		return nil, fmt.Errorf("login: %w", err)
	}

	profile := res.User
	if profile == nil {
		epoch := st.Epoch()
		profile = g.hydrate(ctx, st, in.Email)
		if _, err := st.ApplyProfile(ctx, epoch, profile); err != nil {
			// The token is persisted; keep the profile in memory only.
			g.log.Warn().Err(err).Str("client_id", st.ID()).Msg("failed to persist hydrated profile")
			st.KeepProfile(epoch, profile)
		}
	}

	// A 401 during hydration clears the session through the interceptor,
	// and a concurrent logout clears it too.
	snap := st.Snapshot()
	if !snap.Authenticated {
		err := domain.NewStatusError(http.StatusUnauthorized, "session cleared during profile lookup", nil)
		g.loginFailed(st, in.Email, err)
		return nil, err
	}

	user := snap.User
	if user == nil {
		user = profile.Clone()
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	g.record(ports.EventLoginSucceeded, st, user.Email, user.Role, "")
	g.log.Info().
		Str("client_id", st.ID()).
		Str("email", user.Email).
		Str("role", user.Role.String()).
		Msg("login succeeded")

	return user, nil
}

// hydrate looks the profile up by email. It never fails: on any error the
// placeholder user is returned.
func (g *AuthGateway) hydrate(ctx context.Context, st *session.State, email string) *domain.User {
	user, err := g.backend.FindUserByEmail(ctx, email)
	if err == nil && user != nil {
		if user.Email == "" {
			user.Email = email
		}
		return user
	}

	if err == nil {
		err = domain.ErrNotFound
	}
	cause := &domain.AuthError{Kind: domain.KindProfileHydration, Message: domain.ErrProfileHydration.Message, Err: err}
	g.log.Warn().Err(cause).Str("client_id", st.ID()).Str("email", email).Msg("using placeholder profile")
	metrics.ProfileFallbacksTotal.Inc()
	g.record(ports.EventProfileFallback, st, email, domain.RoleCliente, err.Error())
	return domain.PlaceholderUser(email)
}

// Register creates an account. It does not log the client in.
func (g *AuthGateway) Register(ctx context.Context, st *session.State, in ports.RegisterInput) (*ports.RegisterResult, error) {
	if !st.BeginSubmit() {
		return nil, domain.ErrSubmitInProgress
	}
	defer st.EndSubmit()

	ctx = session.WithState(ctx, st)
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)

	if err := g.check(in); err != nil {
		g.registerFailed(st, in.Email, err)
		return nil, err
	}

	res, err := g.backend.Register(ctx, in)
	if err != nil {
		g.registerFailed(st, in.Email, err)
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	g.record(ports.EventRegistered, st, in.Email, domain.RoleUnknown, "")
	g.log.Info().Str("client_id", st.ID()).Str("email", in.Email).Msg("registration succeeded")
	return res, nil
}

// Logout revokes the token on the backend when there is one and always
// clears the local session. Backend failures are logged and swallowed.
func (g *AuthGateway) Logout(ctx context.Context, st *session.State) {
	ctx = session.WithState(ctx, st)
	user := st.CurrentUser()

	outcome := "skipped"
	if st.IsAuthenticated() {
		outcome = "ok"
		if err := g.backend.Logout(ctx); err != nil {
			outcome = "failed"
			g.log.Warn().Err(err).Str("client_id", st.ID()).Msg("backend logout failed, clearing local session anyway")
		}
	}

	// The request may already be cancelled; clearing must still happen.
	if err := st.ClearSession(context.WithoutCancel(ctx)); err != nil {
		g.log.Error().Err(err).Str("client_id", st.ID()).Msg("failed to clear session store")
	}

	metrics.LogoutsTotal.WithLabelValues(outcome).Inc()
	email, role := userFields(user)
	g.record(ports.EventLogout, st, email, role, outcome)
}

// RefreshProfile refetches the profile of the current user. A response that
// arrives after the session was cleared or replaced is discarded.
func (g *AuthGateway) RefreshProfile(ctx context.Context, st *session.State) error {
	ctx = session.WithState(ctx, st)

	epoch := st.Epoch()
	current := st.CurrentUser()
	if !st.IsAuthenticated() || current == nil || current.Email == "" {
		return nil
	}

	user, err := g.backend.FindUserByEmail(ctx, current.Email)
	if err != nil {
		return fmt.Errorf("refresh profile: %w", err)
	}

	applied, err := st.ApplyProfile(ctx, epoch, user)
	if err != nil {
		return fmt.Errorf("refresh profile: %w", err)
	}
	if !applied {
		g.log.Debug().Str("client_id", st.ID()).Msg("stale profile refresh discarded")
	}
	return nil
}

// HandleUnauthorized drops the session after the backend rejected its token.
func (g *AuthGateway) HandleUnauthorized(ctx context.Context, st *session.State) {
	if !st.IsAuthenticated() {
		return
	}
	user := st.CurrentUser()
	if err := st.ClearSession(context.WithoutCancel(ctx)); err != nil {
		g.log.Error().Err(err).Str("client_id", st.ID()).Msg("failed to clear session store")
	}

	metrics.ForcedLogoutsTotal.Inc()
	email, role := userFields(user)
	g.record(ports.EventForcedLogout, st, email, role, "token rejected by backend")
	g.log.Warn().Str("client_id", st.ID()).Str("email", email).Msg("token rejected, session cleared")
}

func (g *AuthGateway) check(in any) error {
	if err := g.validate.Struct(in); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return domain.NewValidationError(fieldMessage(ve[0]))
		}
		return domain.NewValidationError(err.Error())
	}
	return nil
}

func (g *AuthGateway) loginFailed(st *session.State, email string, err error) {
	metrics.LoginsTotal.WithLabelValues(errorKind(err)).Inc()
	g.record(ports.EventLoginFailed, st, email, domain.RoleUnknown, errorKind(err))
	g.log.Info().Err(err).Str("client_id", st.ID()).Str("email", email).Msg("login failed")
}

func (g *AuthGateway) registerFailed(st *session.State, email string, err error) {
	metrics.RegistrationsTotal.WithLabelValues(errorKind(err)).Inc()
	g.record(ports.EventRegisterFailed, st, email, domain.RoleUnknown, errorKind(err))
	g.log.Info().Err(err).Str("client_id", st.ID()).Str("email", email).Msg("registration failed")
}

func (g *AuthGateway) record(typ ports.AuthEventType, st *session.State, email string, role domain.Role, reason string) {
	g.events.Record(ports.AuthEvent{
		Type:      typ,
		ClientID:  st.ID(),
		Email:     email,
		Role:      role.String(),
		Reason:    reason,
		Timestamp: g.now().UTC(),
	})
}

func errorKind(err error) string {
	var ae *domain.AuthError
	if errors.As(err, &ae) {
		return ae.Kind.String()
	}
	return domain.KindUnexpected.String()
}

func userFields(u *domain.User) (string, domain.Role) {
	if u == nil {
		return "", domain.RoleUnknown
	}
	return u.Email, u.Role
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "numeric":
		return field + " must contain only digits"
	case "eqfield":
		return field + " must match " + fe.Param()
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

type nopRecorder struct{}

func (nopRecorder) Record(ports.AuthEvent) {}

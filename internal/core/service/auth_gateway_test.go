package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/loccar/loccar-web/internal/core/domain"
	"github.com/loccar/loccar-web/internal/core/ports"
	"github.com/loccar/loccar-web/internal/core/session"
	"github.com/loccar/loccar-web/internal/infrastructure/store/memory"
)

type stubAuthBackend struct {
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error)
	logoutFn   func(ctx context.Context) error
	findFn     func(ctx context.Context, email string) (*domain.User, error)
}

func (s *stubAuthBackend) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthBackend) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthBackend) Logout(ctx context.Context) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx)
}

func (s *stubAuthBackend) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findFn(ctx, email)
}

type recordedEvents struct {
	mu     sync.Mutex
	events []ports.AuthEvent
}

func (r *recordedEvents) Record(e ports.AuthEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordedEvents) types() []ports.AuthEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.AuthEventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func newTestState(t *testing.T) *session.State {
	t.Helper()
	store := memory.NewBackend().Factory()("client-1")
	return session.New(context.Background(), "client-1", store, zerolog.Nop())
}

func tokenOnly(token string) func(context.Context, string, string) (*ports.LoginResult, error) {
	return func(context.Context, string, string) (*ports.LoginResult, error) {
		return &ports.LoginResult{Token: token}, nil
	}
}

var validLogin = ports.LoginInput{Email: "a@b.com", Password: "x"}

func TestLogin_HydratesProfile(t *testing.T) {
	backend := &stubAuthBackend{
		loginFn: tokenOnly("jwt"),
		findFn: func(ctx context.Context, email string) (*domain.User, error) {
			st, ok := session.FromContext(ctx)
			if !ok || st.Token() != "jwt" {
				t.Error("profile lookup must run with the new session's token")
			}
			return &domain.User{Username: "ana", Email: email, Role: domain.RoleAdmin, DriverLicense: "12345678901"}, nil
		},
	}
	events := &recordedEvents{}
	g := NewAuthGateway(backend, events, zerolog.Nop())
	st := newTestState(t)

	user, err := g.Login(context.Background(), st, validLogin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleAdmin || st.CurrentUser().Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
	if got := events.types(); len(got) != 1 || got[0] != ports.EventLoginSucceeded {
		t.Fatalf("unexpected events: %v", got)
	}
}

func TestLogin_NoProfileEndpointFallsBackToCliente(t *testing.T) {
	backend := &stubAuthBackend{
		loginFn: tokenOnly("jwt"),
		findFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.NewStatusError(http.StatusNotFound, "", nil)
		},
	}
	g := NewAuthGateway(backend, nil, zerolog.Nop())
	st := newTestState(t)

	user, err := g.Login(context.Background(), st, validLogin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.IsAuthenticated() {
		t.Fatal("expected authenticated session")
	}
	if user.Role != domain.RoleCliente || st.CurrentUser().Role != domain.RoleCliente {
		t.Fatalf("expected placeholder Cliente role, got %q", user.Role)
	}
}

func TestLogin_ProfileNetworkErrorKeepsMinimalUser(t *testing.T) {
	backend := &stubAuthBackend{
		loginFn: tokenOnly("jwt"),
		findFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.NewStatusError(0, "", errors.New("connection reset"))
		},
	}
	events := &recordedEvents{}
	g := NewAuthGateway(backend, events, zerolog.Nop())
	st := newTestState(t)

	if _, err := g.Login(context.Background(), st, validLogin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u := st.CurrentUser()
	if !st.IsAuthenticated() || u == nil {
		t.Fatal("session must stay authenticated")
	}
	if u.DriverLicense != "" || u.CellPhone != "" || u.Role != domain.RoleCliente || u.Email != "a@b.com" {
		t.Fatalf("unexpected placeholder: %+v", u)
	}
	want := []ports.AuthEventType{ports.EventProfileFallback, ports.EventLoginSucceeded}
	got := events.types()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("unexpected events: %v", got)
	}
}

func TestLogin_UserInResponseSkipsLookup(t *testing.T) {
	backend := &stubAuthBackend{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return &ports.LoginResult{Token: "jwt", User: &domain.User{Email: "a@b.com", Role: domain.RoleFuncionario}}, nil
		},
		findFn: func(context.Context, string) (*domain.User, error) {
			t.Error("profile lookup must not run when login returned the user")
			return nil, nil
		},
	}
	g := NewAuthGateway(backend, nil, zerolog.Nop())
	st := newTestState(t)

	user, err := g.Login(context.Background(), st, validLogin)
	if err != nil || user.Role != domain.RoleFuncionario {
		t.Fatalf("unexpected result: %+v, %v", user, err)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	backend := &stubAuthBackend{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.NewStatusError(http.StatusUnauthorized, "Bad credentials", nil)
		},
	}
	events := &recordedEvents{}
	g := NewAuthGateway(backend, events, zerolog.Nop())
	st := newTestState(t)

	_, err := g.Login(context.Background(), st, validLogin)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if domain.DisplayMessage(err) != "invalid email or password" {
		t.Fatalf("unexpected message: %q", domain.DisplayMessage(err))
	}
	if st.IsAuthenticated() {
		t.Fatal("failed login must not authenticate")
	}
	if got := events.types(); len(got) != 1 || got[0] != ports.EventLoginFailed {
		t.Fatalf("unexpected events: %v", got)
	}
}

func TestLogin_ValidationRejectedLocally(t *testing.T) {
	backend := &stubAuthBackend{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			t.Error("backend must not be called for an invalid form")
			return nil, nil
		},
	}
	g := NewAuthGateway(backend, nil, zerolog.Nop())

	_, err := g.Login(context.Background(), newTestState(t), ports.LoginInput{Email: "not-an-email", Password: "x"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if domain.DisplayMessage(err) != "Email must be a valid email" {
		t.Fatalf("unexpected message: %q", domain.DisplayMessage(err))
	}
}

func TestLogin_DoubleSubmitRejected(t *testing.T) {
	g := NewAuthGateway(&stubAuthBackend{}, nil, zerolog.Nop())
	st := newTestState(t)
	st.BeginSubmit()
	defer st.EndSubmit()

	if _, err := g.Login(context.Background(), st, validLogin); !errors.Is(err, domain.ErrSubmitInProgress) {
		t.Fatalf("expected ErrSubmitInProgress, got %v", err)
	}
}

func TestLogin_UnauthorizedDuringHydrationFailsLogin(t *testing.T) {
	var g *AuthGateway
	backend := &stubAuthBackend{
		loginFn: tokenOnly("jwt"),
		findFn: func(ctx context.Context, _ string) (*domain.User, error) {
			st, _ := session.FromContext(ctx)
			g.HandleUnauthorized(ctx, st)
			return nil, domain.NewStatusError(http.StatusUnauthorized, "", nil)
		},
	}
	g = NewAuthGateway(backend, nil, zerolog.Nop())
	st := newTestState(t)

	if _, err := g.Login(context.Background(), st, validLogin); err == nil {
		t.Fatal("expected login to fail once the token was rejected")
	}
	if st.IsAuthenticated() || st.CurrentUser() != nil {
		t.Fatal("rejected token must leave the session cleared")
	}
}

// saveOnceStore accepts the first Save and fails every later one.
type saveOnceStore struct {
	mu    sync.Mutex
	saves int
	sess  domain.Session
}

func (s *saveOnceStore) Save(_ context.Context, token string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saves > 1 {
		return errors.New("store unavailable")
	}
	s.sess = domain.Session{Token: token, User: user.Clone()}
	return nil
}

func (s *saveOnceStore) Read(context.Context) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess, nil
}

func (s *saveOnceStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = domain.Session{}
	return nil
}

func TestLogin_ProfileSaveFailureKeepsProfileInMemory(t *testing.T) {
	backend := &stubAuthBackend{
		loginFn: tokenOnly("jwt"),
		findFn: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{Username: "ana", Email: email, Role: domain.RoleAdmin}, nil
		},
	}
	store := &saveOnceStore{}
	g := NewAuthGateway(backend, nil, zerolog.Nop())
	st := session.New(context.Background(), "client-1", store, zerolog.Nop())

	user, err := g.Login(context.Background(), st, validLogin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user == nil || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
	if cur := st.CurrentUser(); cur == nil || cur.Role != domain.RoleAdmin {
		t.Fatalf("profile must be kept in memory, got %+v", cur)
	}
	if store.saves != 2 {
		t.Fatalf("expected token save and a failed profile save, got %d saves", store.saves)
	}
}

func TestLogin_LogoutDuringHydrationFailsLogin(t *testing.T) {
	var g *AuthGateway
	backend := &stubAuthBackend{
		loginFn: tokenOnly("jwt"),
		findFn: func(ctx context.Context, email string) (*domain.User, error) {
			st, _ := session.FromContext(ctx)
			g.Logout(ctx, st)
			return &domain.User{Email: email, Role: domain.RoleAdmin}, nil
		},
	}
	g = NewAuthGateway(backend, nil, zerolog.Nop())
	st := newTestState(t)

	user, err := g.Login(context.Background(), st, validLogin)
	if err == nil || user != nil {
		t.Fatalf("expected login to fail after logout, got %+v, %v", user, err)
	}
	if st.IsAuthenticated() || st.CurrentUser() != nil {
		t.Fatal("late profile resurrected the session")
	}
}

func TestLogout_ClearsEvenWhenBackendFails(t *testing.T) {
	for _, backendErr := range []error{nil, errors.New("boom"), domain.NewStatusError(0, "", errors.New("refused"))} {
		backend := &stubAuthBackend{
			loginFn:  tokenOnly("jwt"),
			findFn:   func(context.Context, string) (*domain.User, error) { return &domain.User{Role: domain.RoleAdmin}, nil },
			logoutFn: func(context.Context) error { return backendErr },
		}
		g := NewAuthGateway(backend, nil, zerolog.Nop())
		st := newTestState(t)

		if _, err := g.Login(context.Background(), st, validLogin); err != nil {
			t.Fatalf("login: %v", err)
		}
		g.Logout(context.Background(), st)

		if st.IsAuthenticated() || st.Token() != "" || st.CurrentUser() != nil {
			t.Fatalf("backend error %v: session not cleared", backendErr)
		}
	}
}

func TestLogout_WithoutSessionSkipsBackend(t *testing.T) {
	backend := &stubAuthBackend{
		logoutFn: func(context.Context) error {
			t.Error("backend logout must not be called without a token")
			return nil
		},
	}
	events := &recordedEvents{}
	g := NewAuthGateway(backend, events, zerolog.Nop())

	g.Logout(context.Background(), newTestState(t))

	if len(events.events) != 1 || events.events[0].Reason != "skipped" {
		t.Fatalf("unexpected events: %+v", events.events)
	}
}

func TestLogout_CancelledRequestStillClears(t *testing.T) {
	backend := &stubAuthBackend{
		loginFn:  tokenOnly("jwt"),
		findFn:   func(context.Context, string) (*domain.User, error) { return &domain.User{Role: domain.RoleAdmin}, nil },
		logoutFn: func(ctx context.Context) error { return ctx.Err() },
	}
	g := NewAuthGateway(backend, nil, zerolog.Nop())
	st := newTestState(t)
	_, _ = g.Login(context.Background(), st, validLogin)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g.Logout(ctx, st)

	if st.IsAuthenticated() {
		t.Fatal("cancelled logout must still clear the session")
	}
}

func TestHandleUnauthorized(t *testing.T) {
	events := &recordedEvents{}
	g := NewAuthGateway(&stubAuthBackend{}, events, zerolog.Nop())
	st := newTestState(t)
	if err := st.SetSession(context.Background(), "jwt", &domain.User{Email: "a@b.com", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("set session: %v", err)
	}

	g.HandleUnauthorized(context.Background(), st)
	g.HandleUnauthorized(context.Background(), st)

	if st.IsAuthenticated() {
		t.Fatal("401 must clear the session")
	}
	if got := events.types(); len(got) != 1 || got[0] != ports.EventForcedLogout {
		t.Fatalf("expected a single forced logout event, got %v", got)
	}
}

func TestRegister_DoesNotLogIn(t *testing.T) {
	backend := &stubAuthBackend{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
			return &ports.RegisterResult{User: &domain.User{Email: in.Email}, Message: "created"}, nil
		},
	}
	g := NewAuthGateway(backend, nil, zerolog.Nop())
	st := newTestState(t)

	res, err := g.Register(context.Background(), st, ports.RegisterInput{
		Username:      "caio",
		Email:         " caio@loccar.com ",
		Password:      "secret",
		DriverLicense: "12345678901",
		CellPhone:     "11987654321",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Message != "created" || res.User.Email != "caio@loccar.com" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if st.IsAuthenticated() {
		t.Fatal("registration must not authenticate the session")
	}
}

func TestRegister_Validation(t *testing.T) {
	g := NewAuthGateway(&stubAuthBackend{}, nil, zerolog.Nop())

	_, err := g.Register(context.Background(), newTestState(t), ports.RegisterInput{
		Username:      "caio",
		Email:         "caio@loccar.com",
		Password:      "secret",
		DriverLicense: "123",
		CellPhone:     "11987654321",
	})
	if domain.DisplayMessage(err) != "DriverLicense must be at least 11 characters" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRefreshProfile_DiscardedAfterLogout(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	backend := &stubAuthBackend{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return &ports.LoginResult{Token: "jwt", User: &domain.User{Email: "a@b.com", Role: domain.RoleCliente}}, nil
		},
		findFn: func(context.Context, string) (*domain.User, error) {
			close(started)
			<-release
			return &domain.User{Email: "a@b.com", Role: domain.RoleAdmin}, nil
		},
	}
	g := NewAuthGateway(backend, nil, zerolog.Nop())
	st := newTestState(t)
	if _, err := g.Login(context.Background(), st, validLogin); err != nil {
		t.Fatalf("login: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- g.RefreshProfile(context.Background(), st) }()

	<-started
	g.Logout(context.Background(), st)
	close(release)

	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.IsAuthenticated() || st.CurrentUser() != nil {
		t.Fatal("late profile refresh resurrected the session")
	}
}

func TestRefreshProfile_Applies(t *testing.T) {
	backend := &stubAuthBackend{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return &ports.LoginResult{Token: "jwt", User: &domain.User{Email: "a@b.com", Role: domain.RoleCliente}}, nil
		},
		findFn: func(context.Context, string) (*domain.User, error) {
			return &domain.User{Email: "a@b.com", Username: "ana", Role: domain.RoleCliente, CellPhone: "11987654321"}, nil
		},
	}
	g := NewAuthGateway(backend, nil, zerolog.Nop())
	st := newTestState(t)
	_, _ = g.Login(context.Background(), st, validLogin)

	if err := g.RefreshProfile(context.Background(), st); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.CurrentUser().CellPhone != "11987654321" {
		t.Fatalf("profile not refreshed: %+v", st.CurrentUser())
	}
}

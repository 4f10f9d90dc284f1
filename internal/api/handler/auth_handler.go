package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/loccar/loccar-web/internal/core/domain"
	"github.com/loccar/loccar-web/internal/core/guard"
	"github.com/loccar/loccar-web/internal/core/ports"
	"github.com/loccar/loccar-web/internal/core/session"
)

const (
	registeredMessage = "Registration successful. Please sign in."
	streamBuffer      = 16
)

type AuthHandler struct {
	auth ports.AuthService
	log  zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

type loginRequest struct {
	ports.LoginInput
	ReturnURL string `json:"returnUrl,omitempty"`
}

type loginResponse struct {
	User     *domain.User `json:"user"`
	Redirect string       `json:"redirect"`
}

type registerResponse struct {
	Message  string       `json:"message"`
	User     *domain.User `json:"user,omitempty"`
	Redirect string       `json:"redirect"`
}

type logoutResponse struct {
	Redirect string `json:"redirect"`
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
	Role          string       `json:"role,omitempty"`
	Home          string       `json:"home"`
}

func newSessionResponse(snap session.Snapshot) sessionResponse {
	resp := sessionResponse{
		Authenticated: snap.Authenticated,
		User:          snap.User,
		Home:          guard.Landing(snap.Authenticated, snap.Role()),
	}
	if snap.User != nil {
		resp.Role = snap.Role().String()
	}
	return resp
}

// Login authenticates the browser's session against the backend.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body       body      loginRequest  true   "Login credentials"
// @Param        returnUrl  query     string        false  "Page to return to after login"
// @Success      200        {object}  loginResponse
// @Failure      400        {object}  map[string]string
// @Failure      401        {object}  map[string]string
// @Failure      409        {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	st, err := sessionState(c)
	if err != nil {
		return err
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.ReturnURL == "" {
		req.ReturnURL = c.QueryParam("returnUrl")
	}

	user, err := h.auth.Login(c.Request().Context(), st, req.LoginInput)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		User:     user,
		Redirect: guard.AfterLogin(st.Snapshot(), req.ReturnURL),
	})
}

// Register creates an account. The browser stays logged out.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ports.RegisterInput  true  "Registration form"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	st, err := sessionState(c)
	if err != nil {
		return err
	}

	var in ports.RegisterInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.auth.Register(c.Request().Context(), st, in)
	if err != nil {
		return err
	}

	msg := res.Message
	if msg == "" {
		msg = registeredMessage
	}
	return c.JSON(http.StatusCreated, registerResponse{Message: msg, User: res.User, Redirect: guard.LoginPath})
}

// Logout ends the session. It always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	st, err := sessionState(c)
	if err != nil {
		return err
	}
	h.auth.Logout(c.Request().Context(), st)
	return c.JSON(http.StatusOK, logoutResponse{Redirect: guard.LoginPath})
}

// Session reports the current authentication state.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	st, err := sessionState(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSessionResponse(st.Snapshot()))
}

// RefreshSession refetches the profile of the logged-in user.
//
// @Summary      Refresh the session profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      502  {object}  map[string]string
// @Router       /auth/session/refresh [post]
func (h *AuthHandler) RefreshSession(c echo.Context) error {
	st, err := sessionState(c)
	if err != nil {
		return err
	}
	if err := h.auth.RefreshProfile(c.Request().Context(), st); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSessionResponse(st.Snapshot()))
}

// SessionStream pushes the session as server-sent events: the current value
// first, then every change until the client goes away.
//
// @Summary      Session change stream
// @Tags         auth
// @Produce      text/event-stream
// @Success      200  {object}  sessionResponse
// @Router       /auth/session/stream [get]
func (h *AuthHandler) SessionStream(c echo.Context) error {
	st, err := sessionState(c)
	if err != nil {
		return err
	}

	updates := make(chan session.Snapshot, streamBuffer)
	cancel := st.Subscribe(func(snap session.Snapshot) {
		select {
		case updates <- snap:
		default:
			h.log.Warn().Str("client_id", st.ID()).Msg("session stream lagging, update dropped")
		}
	})
	defer cancel()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, st.Snapshot()); err != nil {
		return nil
	}

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap := <-updates:
			if err := writeEvent(w, snap); err != nil {
				return nil
			}
		}
	}
}

func writeEvent(w *echo.Response, snap session.Snapshot) error {
	data, err := json.Marshal(newSessionResponse(snap))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: session\ndata: %s\n\n", data); err != nil {
		return err
	}
	w.Flush()
	return nil
}

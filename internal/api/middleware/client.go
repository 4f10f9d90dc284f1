package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/loccar/loccar-web/internal/core/session"
)

const (
	// ClientCookie identifies a browser across requests.
	ClientCookie = "loccar_client"
	stateKey     = "session_state"

	clientCookieMaxAge = 365 * 24 * time.Hour
)

// ClientOptions configures the Client middleware.
type ClientOptions struct {
	Secure bool
}

// Client resolves the browser's client id cookie, minting one when absent,
// and attaches its session.State to both the echo context and the request
// context.
func Client(reg *session.Registry, opts ClientOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := clientID(c)
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     ClientCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(clientCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			req := c.Request()
			st := reg.Get(req.Context(), id)
			c.Set(stateKey, st)
			c.SetRequest(req.WithContext(session.WithState(req.Context(), st)))

			return next(c)
		}
	}
}

// clientID returns the cookie value when it is a well-formed UUID.
func clientID(c echo.Context) string {
	ck, err := c.Cookie(ClientCookie)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(ck.Value); err != nil {
		return ""
	}
	return ck.Value
}

// State returns the session attached by Client.
func State(c echo.Context) *session.State {
	st, _ := c.Get(stateKey).(*session.State)
	return st
}

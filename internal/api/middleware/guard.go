package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/loccar/loccar-web/internal/api/metrics"
	"github.com/loccar/loccar-web/internal/core/guard"
	"github.com/loccar/loccar-web/internal/core/session"
)

// Guard runs the authentication and role guards for protected pages and
// redirects with 302 when navigation is refused. It must run after Client.
func Guard(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var snap session.Snapshot
			if st := State(c); st != nil {
				snap = st.Snapshot()
			}

			requested := c.Request().URL.RequestURI()
			d := guard.Check(snap, requested)

			section := "other"
			if r, ok := guard.Lookup(requested); ok {
				section = r.Path
			}
			metrics.GuardDecisionsTotal.WithLabelValues(section, d.Outcome.String()).Inc()

			if d.Allowed() {
				return next(c)
			}

			log.Debug().
				Str("path", requested).
				Str("role", snap.Role().String()).
				Str("outcome", d.Outcome.String()).
				Str("reason", d.Reason).
				Msg("navigation refused")
			return c.Redirect(http.StatusFound, d.Location)
		}
	}
}

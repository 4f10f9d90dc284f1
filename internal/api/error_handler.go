package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/loccar/loccar-web/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps AuthError kinds to their HTTP status and display message.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrSubmitInProgress):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidReservation):
		return http.StatusUnprocessableEntity, err.Error()
	}

	var ae *domain.AuthError
	if errors.As(err, &ae) {
		code := statusForKind(ae)
		if code >= http.StatusInternalServerError {
			log.Warn().Err(err).Str("method", c.Request().Method).Str("path", c.Path()).Msg("backend failure")
		}
		return code, ae.Message
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, domain.ErrServer.Message
}

// statusForKind picks the status shown to the browser. Backend statuses pass
// through; a missing backend becomes 502.
func statusForKind(ae *domain.AuthError) int {
	switch ae.Kind {
	case domain.KindNetwork:
		return http.StatusBadGateway
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindInvalidCredentials:
		return http.StatusUnauthorized
	case domain.KindUnauthorized:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindProfileHydration:
		return http.StatusBadGateway
	}
	if ae.Status >= http.StatusBadRequest {
		return ae.Status
	}
	return http.StatusInternalServerError
}

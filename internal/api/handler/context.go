package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/loccar/loccar-web/internal/api/middleware"
	"github.com/loccar/loccar-web/internal/core/session"
)

// sessionState returns the client's session. Its absence means the Client
// middleware is not mounted, which is a wiring bug rather than a user error.
func sessionState(c echo.Context) (*session.State, error) {
	st := middleware.State(c)
	if st == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session middleware not configured")
	}
	return st, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return id, nil
}

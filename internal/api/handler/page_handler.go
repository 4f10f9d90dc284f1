package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/loccar/loccar-web/internal/core/guard"
)

// page is the view model of a page with no backend data.
type page struct {
	Page      string `json:"page"`
	ReturnURL string `json:"returnUrl,omitempty"`
}

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Root sends the browser to the landing page of its role.
//
// @Summary      Role-based landing redirect
// @Tags         pages
// @Success      302
// @Router       / [get]
func (h *PageHandler) Root(c echo.Context) error {
	st, err := sessionState(c)
	if err != nil {
		return err
	}
	snap := st.Snapshot()
	return c.Redirect(http.StatusFound, guard.Landing(snap.Authenticated, snap.Role()))
}

// Login describes the login page.
//
// @Summary      Login page
// @Tags         pages
// @Produce      json
// @Success      200  {object}  page
// @Router       /login [get]
func (h *PageHandler) Login(c echo.Context) error {
	return c.JSON(http.StatusOK, page{Page: "login", ReturnURL: c.QueryParam("returnUrl")})
}

// Register describes the registration page.
//
// @Summary      Registration page
// @Tags         pages
// @Produce      json
// @Success      200  {object}  page
// @Router       /cadastro [get]
func (h *PageHandler) Register(c echo.Context) error {
	return c.JSON(http.StatusOK, page{Page: "register"})
}

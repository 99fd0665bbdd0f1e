package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/chat/internal/auth"
	"github.com/xiaot623/gogo/chat/internal/domain"
)

// RegisterUser creates an account and returns it with a token.
// POST /v1/users
func (h *Handler) RegisterUser(c echo.Context) error {
	var req domain.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	resp, err := h.service.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login exchanges credentials for a token.
// POST /v1/users/login
func (h *Handler) Login(c echo.Context) error {
	var req domain.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	resp, err := h.service.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// SearchUsers finds other users by name or email.
// GET /v1/users?search=
func (h *Handler) SearchUsers(c echo.Context) error {
	users, err := h.service.SearchUsers(c.Request().Context(), auth.ActingUser(c), c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Me returns the authenticated user.
// GET /v1/users/me
func (h *Handler) Me(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), auth.ActingUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

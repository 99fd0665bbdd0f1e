// Package v1 provides the HTTP handlers of the chat API.
package v1

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/chat/internal/domain"
	"github.com/xiaot623/gogo/chat/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server. Every route except
// health, register and login goes through authMW.
func (h *Handler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	// Identity API
	e.POST("/v1/users", h.RegisterUser)
	e.POST("/v1/users/login", h.Login)
	e.GET("/v1/users", h.SearchUsers, authMW)
	e.GET("/v1/users/me", h.Me, authMW)

	// Chat API
	e.POST("/v1/chats", h.AccessChat, authMW)
	e.GET("/v1/chats", h.ListChats, authMW)
	e.POST("/v1/chats/group", h.CreateGroup, authMW)
	e.PUT("/v1/chats/:chat_id/name", h.RenameChat, authMW)
	e.POST("/v1/chats/:chat_id/members", h.AddMember, authMW)
	e.DELETE("/v1/chats/:chat_id/members/:user_id", h.RemoveMember, authMW)
	e.GET("/v1/chats/:chat_id/events", h.GetChatEvents, authMW)

	// Message API
	e.POST("/v1/chats/:chat_id/messages", h.SendMessage, authMW)
	e.GET("/v1/chats/:chat_id/messages", h.ListMessages, authMW)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	if err := h.service.Ping(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// bind decodes the request body into req and validates it.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidArgument)
	}
	return c.Validate(req)
}

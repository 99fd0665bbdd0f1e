package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/chat/internal/auth"
	"github.com/xiaot623/gogo/chat/internal/domain"
)

// SendMessage appends a message to a chat.
// POST /v1/chats/:chat_id/messages
func (h *Handler) SendMessage(c echo.Context) error {
	var req domain.SendMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	message, err := h.service.SendMessage(c.Request().Context(), auth.ActingUser(c), c.Param("chat_id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message)
}

// ListMessages lists the messages of a chat in chronological order.
// GET /v1/chats/:chat_id/messages
func (h *Handler) ListMessages(c echo.Context) error {
	messages, err := h.service.ListMessages(c.Request().Context(), c.Param("chat_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messages)
}

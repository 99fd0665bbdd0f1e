package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/chat/internal/auth"
	"github.com/xiaot623/gogo/chat/internal/domain"
)

// AccessChat returns the direct chat with another user, creating it if needed.
// POST /v1/chats
func (h *Handler) AccessChat(c echo.Context) error {
	var req domain.AccessChatRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	chat, err := h.service.ResolveOrCreateDirect(c.Request().Context(), auth.ActingUser(c), req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chat)
}

// ListChats lists the caller's chats, most recently active first.
// GET /v1/chats
func (h *Handler) ListChats(c echo.Context) error {
	chats, err := h.service.ListChats(c.Request().Context(), auth.ActingUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chats)
}

// CreateGroup creates a group chat administered by the caller.
// POST /v1/chats/group
func (h *Handler) CreateGroup(c echo.Context) error {
	var req domain.CreateGroupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	chat, err := h.service.CreateGroup(c.Request().Context(), auth.ActingUser(c), req.Name, req.Users)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chat)
}

// RenameChat renames a chat.
// PUT /v1/chats/:chat_id/name
func (h *Handler) RenameChat(c echo.Context) error {
	var req domain.RenameChatRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	chat, err := h.service.Rename(c.Request().Context(), auth.ActingUser(c), c.Param("chat_id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chat)
}

// AddMember adds a user to a group chat.
// POST /v1/chats/:chat_id/members
func (h *Handler) AddMember(c echo.Context) error {
	var req domain.MemberRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	chat, err := h.service.AddMember(c.Request().Context(), auth.ActingUser(c), c.Param("chat_id"), req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chat)
}

// RemoveMember removes a user from a group chat.
// DELETE /v1/chats/:chat_id/members/:user_id
func (h *Handler) RemoveMember(c echo.Context) error {
	chat, err := h.service.RemoveMember(c.Request().Context(), auth.ActingUser(c), c.Param("chat_id"), c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chat)
}

package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/xiaot623/gogo/chat/internal/auth"
	"github.com/xiaot623/gogo/chat/internal/domain"
)

// GetChatEvents retrieves the activity log of a chat.
// GET /v1/chats/:chat_id/events
func (h *Handler) GetChatEvents(c echo.Context) error {
	chatID := c.Param("chat_id")
	limit := 100
	if l := c.QueryParam("limit"); l != "" {
		val, err := strconv.Atoi(l)
		if err != nil || val < 0 {
			return fmt.Errorf("%w: limit must be a non-negative integer", domain.ErrInvalidArgument)
		}
		limit = val
	}
	afterTs := int64(0)
	if t := c.QueryParam("after_ts"); t != "" {
		val, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: after_ts must be an integer", domain.ErrInvalidArgument)
		}
		afterTs = val
	}
	var types []string
	if raw := c.QueryParam("types"); raw != "" {
		types = lo.Compact(lo.Map(strings.Split(raw, ","), func(s string, _ int) string {
			return strings.TrimSpace(s)
		}))
	}

	events, err := h.service.ListChatEvents(c.Request().Context(), auth.ActingUser(c), chatID, afterTs, types, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"events": events,
	})
}

package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/gogo/chat/internal/domain"
)

func TestSendAndListMessages(t *testing.T) {
	ctx := context.Background()
	e := echo.New()
	e.Validator = passValidator{}
	h, _ := newTestHandler(t, "A", "B")

	chat, err := h.service.ResolveOrCreateDirect(ctx, "A", "B")
	require.NoError(t, err)

	c, rec := newContext(e, http.MethodPost, "/v1/chats/"+chat.ChatID+"/messages", `{"content":"hello"}`, "B")
	c.SetParamNames("chat_id")
	c.SetParamValues(chat.ChatID)
	require.NoError(t, h.SendMessage(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var sent domain.MessageView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sent))
	assert.Equal(t, "hello", sent.Content)
	assert.Equal(t, "B", sent.Sender.UserID)

	c, rec = newContext(e, http.MethodGet, "/v1/chats/"+chat.ChatID+"/messages", "", "A")
	c.SetParamNames("chat_id")
	c.SetParamValues(chat.ChatID)
	require.NoError(t, h.ListMessages(c))

	var messages []domain.MessageView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, sent.MessageID, messages[0].MessageID)
}

func TestListMessagesUnknownChat(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t, "A")

	c, _ := newContext(e, http.MethodGet, "/v1/chats/missing/messages", "", "A")
	c.SetParamNames("chat_id")
	c.SetParamValues("missing")

	assert.ErrorIs(t, h.ListMessages(c), domain.ErrNotFound)
}

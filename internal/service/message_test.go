package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/xiaot623/gogo/chat/internal/domain"
	"github.com/xiaot623/gogo/chat/mocks"
)

func TestSendMessageAdvancesLatestMessage(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t, "A", "B", "C")

	group, err := svc.CreateGroup(ctx, "A", "Trip", []string{"B", "C"})
	require.NoError(t, err)

	sent, err := svc.SendMessage(ctx, "B", group.ChatID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", sent.Content)
	assert.Equal(t, "B", sent.Sender.UserID)
	assert.Equal(t, "User B", sent.Sender.Name)
	assert.Equal(t, group.ChatID, sent.ChatID)
	require.NotNil(t, sent.Chat)
	assert.Equal(t, group.ChatID, sent.Chat.ChatID)

	stored, err := db.GetChat(ctx, group.ChatID)
	require.NoError(t, err)
	assert.Equal(t, sent.MessageID, stored.LatestMessageID)

	messages, err := svc.ListMessages(ctx, group.ChatID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, "B", messages[0].Sender.UserID)

	chats, err := svc.ListChats(ctx, "A")
	require.NoError(t, err)
	require.Len(t, chats, 1)
	require.NotNil(t, chats[0].LatestMessage)
	assert.Equal(t, sent.MessageID, chats[0].LatestMessage.MessageID)
	assert.Equal(t, chats[0].ChatID, chats[0].LatestMessage.ChatID)
}

func TestSendMessageValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "A", "B")

	chat, err := svc.ResolveOrCreateDirect(ctx, "A", "B")
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, "A", chat.ChatID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.SendMessage(ctx, "A", "", "hi")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.SendMessage(ctx, "A", "missing", "hi")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.ListMessages(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMessagesIsChronological(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t, "A", "B")

	chat, err := svc.ResolveOrCreateDirect(ctx, "A", "B")
	require.NoError(t, err)

	// Appends complete out of timestamp order.
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for _, m := range []struct {
		id     string
		offset time.Duration
	}{
		{"m3", 3 * time.Second},
		{"m1", 1 * time.Second},
		{"m2", 2 * time.Second},
	} {
		require.NoError(t, db.CreateMessage(ctx, &domain.Message{
			MessageID: m.id,
			ChatID:    chat.ChatID,
			SenderID:  "A",
			Content:   m.id,
			CreatedAt: base.Add(m.offset),
		}))
	}

	messages, err := svc.ListMessages(ctx, chat.ChatID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i].CreatedAt.Before(messages[i-1].CreatedAt))
	}
	assert.Equal(t, "m1", messages[0].MessageID)
	assert.Equal(t, "m3", messages[2].MessageID)
}

func TestResolutionIsOneLevelDeep(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "A", "B")

	chat, err := svc.ResolveOrCreateDirect(ctx, "A", "B")
	require.NoError(t, err)
	sent, err := svc.SendMessage(ctx, "A", chat.ChatID, "hi")
	require.NoError(t, err)

	require.NotNil(t, sent.Chat)
	assert.Nil(t, sent.Chat.LatestMessage)
	assert.Equal(t, sent.MessageID, sent.Chat.LatestMessageID)

	chats, err := svc.ListChats(ctx, "A")
	require.NoError(t, err)
	require.NotNil(t, chats[0].LatestMessage)
	assert.Nil(t, chats[0].LatestMessage.Chat)

	// Encoding terminates and carries no password hashes.
	raw, err := json.Marshal(chats)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	_, err = json.Marshal(sent)
	require.NoError(t, err)
}

func TestSendMessagePartialFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	svc := New(store, nil, nil, nil, nil, discardLogger())

	chat := &domain.Chat{ChatID: "c1", Participants: []string{"A", "B"}}
	var appended string

	store.EXPECT().GetChat(gomock.Any(), "c1").Return(chat, nil)
	store.EXPECT().CreateMessage(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg *domain.Message) error {
			appended = msg.MessageID
			return nil
		})
	store.EXPECT().SetLatestMessage(gomock.Any(), "c1", gomock.Any(), gomock.Any()).
		Return(false, errors.New("database is locked"))
	store.EXPECT().CreateChatEvent(gomock.Any(), gomock.Any()).Return(nil)

	view, err := svc.SendMessage(ctx, "A", "c1", "hello")
	assert.Nil(t, view)
	require.ErrorIs(t, err, domain.ErrPartialFailure)
	assert.Equal(t, domain.KindPartialFailure, domain.KindOf(err))

	var pf *domain.PartialFailureError
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, "c1", pf.ChatID)
	assert.Equal(t, appended, pf.MessageID)
}

func TestSendMessageStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	svc := New(store, nil, nil, nil, nil, discardLogger())

	store.EXPECT().GetChat(gomock.Any(), "c1").Return(nil, errors.New("connection refused"))

	_, err := svc.SendMessage(ctx, "A", "c1", "hello")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Equal(t, domain.KindStoreUnavailable, domain.KindOf(err))
}

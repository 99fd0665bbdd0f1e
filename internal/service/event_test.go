package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/gogo/chat/internal/domain"
)

func TestChatActivityLog(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "A", "B", "C", "D")

	group, err := svc.CreateGroup(ctx, "A", "Trip", []string{"B", "C"})
	require.NoError(t, err)
	_, err = svc.Rename(ctx, "A", group.ChatID, "Road trip")
	require.NoError(t, err)
	_, err = svc.AddMember(ctx, "A", group.ChatID, "D")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, "D", group.ChatID, "hi all")
	require.NoError(t, err)

	events, err := svc.ListChatEvents(ctx, "B", group.ChatID, 0, nil, 0)
	require.NoError(t, err)

	var types []domain.EventType
	for _, e := range events {
		types = append(types, e.Type)
	}
	assert.Equal(t, []domain.EventType{
		domain.EventTypeChatCreated,
		domain.EventTypeChatRenamed,
		domain.EventTypeMemberAdded,
		domain.EventTypeMessageSent,
	}, types)

	seen := map[string]bool{}
	for _, e := range events {
		require.True(t, strings.HasPrefix(e.EventID, "evt_"), e.EventID)
		_, err := uuid.Parse(strings.TrimPrefix(e.EventID, "evt_"))
		assert.NoError(t, err, e.EventID)
		assert.False(t, seen[e.EventID])
		seen[e.EventID] = true
	}

	_, err = svc.ListChatEvents(ctx, "outsider", group.ChatID, 0, nil, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.ListChatEvents(ctx, "A", "missing", 0, nil, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/gogo/chat/internal/domain"
	"github.com/xiaot623/gogo/chat/policy"
)

func participantIDs(view *domain.ChatView) []string {
	return lo.Map(view.Participants, func(u domain.PublicUser, _ int) string { return u.UserID })
}

func TestResolveOrCreateDirectIsSymmetric(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "A", "B")

	first, err := svc.ResolveOrCreateDirect(ctx, "A", "B")
	require.NoError(t, err)
	assert.False(t, first.IsGroup)
	assert.Equal(t, domain.DirectChatName, first.Name)
	assert.ElementsMatch(t, []string{"A", "B"}, participantIDs(first))
	assert.Nil(t, first.GroupAdmin)

	again, err := svc.ResolveOrCreateDirect(ctx, "A", "B")
	require.NoError(t, err)
	reversed, err := svc.ResolveOrCreateDirect(ctx, "B", "A")
	require.NoError(t, err)

	assert.Equal(t, first.ChatID, again.ChatID)
	assert.Equal(t, first.ChatID, reversed.ChatID)

	chats, err := svc.ListChats(ctx, "A")
	require.NoError(t, err)
	assert.Len(t, chats, 1)
}

func TestResolveOrCreateDirectConcurrentFirstContact(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "A", "B")

	const callers = 10
	var wg sync.WaitGroup
	ids := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			acting, other := "A", "B"
			if i%2 == 1 {
				acting, other = other, acting
			}
			view, err := svc.ResolveOrCreateDirect(ctx, acting, other)
			errs[i] = err
			if view != nil {
				ids[i] = view.ChatID
			}
		}(i)
	}
	wg.Wait()

	for i := range ids {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}

	chats, err := svc.ListChats(ctx, "B")
	require.NoError(t, err)
	assert.Len(t, chats, 1)
}

func TestResolveOrCreateDirectValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "A")

	_, err := svc.ResolveOrCreateDirect(ctx, "A", "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.ResolveOrCreateDirect(ctx, "A", "A")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.ResolveOrCreateDirect(ctx, "A", "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateGroup(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "A", "B", "C")

	_, err := svc.CreateGroup(ctx, "A", "Trip", []string{"B"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	// The creator and duplicates do not count towards the two members.
	_, err = svc.CreateGroup(ctx, "A", "Trip", []string{"B", "B", "A"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.CreateGroup(ctx, "A", "  ", []string{"B", "C"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.CreateGroup(ctx, "A", "Trip", []string{"B", "ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	group, err := svc.CreateGroup(ctx, "A", "Trip", []string{"B", "C"})
	require.NoError(t, err)
	assert.True(t, group.IsGroup)
	assert.Equal(t, "Trip", group.Name)
	assert.ElementsMatch(t, []string{"A", "B", "C"}, participantIDs(group))
	require.NotNil(t, group.GroupAdmin)
	assert.Equal(t, "A", group.GroupAdmin.UserID)
}

func TestMembership(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "A", "B", "C", "D")

	direct, err := svc.ResolveOrCreateDirect(ctx, "A", "B")
	require.NoError(t, err)
	_, err = svc.AddMember(ctx, "A", direct.ChatID, "C")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = svc.RemoveMember(ctx, "A", direct.ChatID, "B")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	group, err := svc.CreateGroup(ctx, "A", "Trip", []string{"B", "C"})
	require.NoError(t, err)
	initial := participantIDs(group)

	_, err = svc.AddMember(ctx, "A", "missing", "D")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.AddMember(ctx, "A", group.ChatID, "B")
	assert.ErrorIs(t, err, domain.ErrAlreadyMember)
	_, err = svc.AddMember(ctx, "A", group.ChatID, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.RemoveMember(ctx, "A", group.ChatID, "D")
	assert.ErrorIs(t, err, domain.ErrNotMember)

	removed, err := svc.RemoveMember(ctx, "A", group.ChatID, "C")
	require.NoError(t, err)
	assert.NotContains(t, participantIDs(removed), "C")

	added, err := svc.AddMember(ctx, "A", group.ChatID, "C")
	require.NoError(t, err)
	assert.Contains(t, participantIDs(added), "C")
	assert.ElementsMatch(t, initial, participantIDs(added))
	assert.Len(t, added.Participants, 3)
}

func TestRemoveMemberBumpsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "A", "B", "C")
	svc.now = steppingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	group, err := svc.CreateGroup(ctx, "A", "Trip", []string{"B", "C"})
	require.NoError(t, err)

	after, err := svc.RemoveMember(ctx, "A", group.ChatID, "B")
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.After(group.UpdatedAt))
}

func TestRemovingAdminLeavesGroupWithoutAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "A", "B", "C")

	group, err := svc.CreateGroup(ctx, "A", "Trip", []string{"B", "C"})
	require.NoError(t, err)

	view, err := svc.RemoveMember(ctx, "B", group.ChatID, "A")
	require.NoError(t, err)
	assert.Nil(t, view.GroupAdmin)
	assert.ElementsMatch(t, []string{"B", "C"}, participantIDs(view))

	events, err := svc.ListChatEvents(ctx, "B", group.ChatID, 0, []string{string(domain.EventTypeAdminCleared)}, 0)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestRemoveLastParticipantFails(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "A", "B", "C")

	group, err := svc.CreateGroup(ctx, "A", "Trip", []string{"B", "C"})
	require.NoError(t, err)

	_, err = svc.RemoveMember(ctx, "A", group.ChatID, "A")
	require.NoError(t, err)
	_, err = svc.RemoveMember(ctx, "B", group.ChatID, "B")
	require.NoError(t, err)

	_, err = svc.RemoveMember(ctx, "C", group.ChatID, "C")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "A", "B", "C")
	svc.now = steppingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Rename(ctx, "A", "missing", "New")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	group, err := svc.CreateGroup(ctx, "A", "Trip", []string{"B", "C"})
	require.NoError(t, err)

	_, err = svc.Rename(ctx, "A", group.ChatID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	// Any participant may rename under the default policy.
	renamed, err := svc.Rename(ctx, "B", group.ChatID, "Road trip")
	require.NoError(t, err)
	assert.Equal(t, "Road trip", renamed.Name)
	assert.True(t, renamed.UpdatedAt.After(group.UpdatedAt))
}

func TestAdminOnlyGroupPolicy(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "A", "B", "C", "D")
	engine, err := policy.NewEngineForMode(ctx, "admin_only")
	require.NoError(t, err)
	svc.policyEngine = engine

	group, err := svc.CreateGroup(ctx, "A", "Trip", []string{"B", "C"})
	require.NoError(t, err)

	_, err = svc.Rename(ctx, "B", group.ChatID, "Mine now")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.AddMember(ctx, "B", group.ChatID, "D")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.RemoveMember(ctx, "B", group.ChatID, "C")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.RemoveMember(ctx, "B", group.ChatID, "B")
	assert.NoError(t, err)
	_, err = svc.AddMember(ctx, "A", group.ChatID, "D")
	assert.NoError(t, err)
}

func TestListChatsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, "A", "B", "C")
	svc.now = steppingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	ab, err := svc.ResolveOrCreateDirect(ctx, "A", "B")
	require.NoError(t, err)
	ac, err := svc.ResolveOrCreateDirect(ctx, "A", "C")
	require.NoError(t, err)

	chats, err := svc.ListChats(ctx, "A")
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, ac.ChatID, chats[0].ChatID)

	_, err = svc.SendMessage(ctx, "B", ab.ChatID, "ping")
	require.NoError(t, err)

	chats, err = svc.ListChats(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, ab.ChatID, chats[0].ChatID)
	require.NotNil(t, chats[0].LatestMessage)
	assert.Equal(t, "ping", chats[0].LatestMessage.Content)

	none, err := svc.ListChats(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

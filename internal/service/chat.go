package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/xiaot623/gogo/chat/internal/domain"
)

// ResolveOrCreateDirect returns the direct chat between actingUser and
// otherUser, creating it on first contact.
func (s *Service) ResolveOrCreateDirect(ctx context.Context, actingUser, otherUser string) (*domain.ChatView, error) {
	if actingUser == "" || otherUser == "" {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidArgument)
	}
	if otherUser == actingUser {
		return nil, fmt.Errorf("%w: cannot open a direct chat with yourself", domain.ErrInvalidArgument)
	}

	existing, err := s.store.FindDirectChat(ctx, actingUser, otherUser)
	if err != nil {
		return nil, domain.StoreError("find direct chat", err)
	}
	if existing != nil {
		return s.resolveChat(ctx, existing)
	}

	if err := s.requireUsers(ctx, otherUser); err != nil {
		return nil, err
	}

	now := s.now()
	chat, created, err := s.store.GetOrCreateDirectChat(ctx, &domain.Chat{
		ChatID:       "chat_" + uuid.New().String(),
		Name:         domain.DirectChatName,
		Participants: []string{actingUser, otherUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, domain.StoreError("create direct chat", err)
	}
	if created {
		s.logEvent(ctx, chat.ChatID, actingUser, domain.EventTypeChatCreated, domain.ChatCreatedPayload{
			Participants: chat.Participants,
		})
	}

	return s.resolveChat(ctx, chat)
}

// CreateGroup creates a group chat administered by actingUser. At least two
// distinct members besides actingUser are required.
func (s *Service) CreateGroup(ctx context.Context, actingUser, name string, members []string) (*domain.ChatView, error) {
	name = strings.TrimSpace(name)
	if actingUser == "" || name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidArgument)
	}

	others := lo.Without(lo.Uniq(lo.Compact(members)), actingUser)
	if len(others) < 2 {
		return nil, fmt.Errorf("%w: more than 2 users are required to form a group chat", domain.ErrInvalidArgument)
	}
	if err := s.requireUsers(ctx, others...); err != nil {
		return nil, err
	}

	now := s.now()
	chat := &domain.Chat{
		ChatID:       "chat_" + uuid.New().String(),
		Name:         name,
		IsGroup:      true,
		Participants: append(others, actingUser),
		GroupAdmin:   actingUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateGroupChat(ctx, chat); err != nil {
		return nil, domain.StoreError("create group chat", err)
	}

	s.logEvent(ctx, chat.ChatID, actingUser, domain.EventTypeChatCreated, domain.ChatCreatedPayload{
		IsGroup:      true,
		Name:         name,
		Participants: chat.Participants,
	})

	return s.resolveChat(ctx, chat)
}

// Rename changes the name of a chat.
func (s *Service) Rename(ctx context.Context, actingUser, chatID, name string) (*domain.ChatView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidArgument)
	}

	chat, err := s.loadChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, domain.PolicyActionRename, actingUser, "", chat); err != nil {
		return nil, err
	}

	renamed, err := s.store.RenameChat(ctx, chatID, name, s.now())
	if err != nil {
		return nil, domain.StoreError("rename chat", err)
	}
	if !renamed {
		return nil, fmt.Errorf("%w: chat %s", domain.ErrNotFound, chatID)
	}

	s.logEvent(ctx, chatID, actingUser, domain.EventTypeChatRenamed, domain.ChatRenamedPayload{
		OldName: chat.Name,
		NewName: name,
	})

	return s.reloadChat(ctx, chatID)
}

// AddMember adds userID to a group chat.
func (s *Service) AddMember(ctx context.Context, actingUser, chatID, userID string) (*domain.ChatView, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidArgument)
	}

	chat, err := s.loadChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.IsGroup {
		return nil, fmt.Errorf("%w: chat %s is not a group", domain.ErrInvalidState, chatID)
	}
	if chat.HasParticipant(userID) {
		return nil, fmt.Errorf("%w: user %s in chat %s", domain.ErrAlreadyMember, userID, chatID)
	}
	if err := s.requireUsers(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, domain.PolicyActionAddMember, actingUser, userID, chat); err != nil {
		return nil, err
	}

	added, err := s.store.AddChatMember(ctx, chatID, userID, s.now())
	if err != nil {
		return nil, domain.StoreError("add chat member", err)
	}
	if !added {
		// Lost a race with a concurrent add of the same user.
		return nil, fmt.Errorf("%w: user %s in chat %s", domain.ErrAlreadyMember, userID, chatID)
	}

	s.logEvent(ctx, chatID, actingUser, domain.EventTypeMemberAdded, domain.MemberPayload{UserID: userID})

	return s.reloadChat(ctx, chatID)
}

// RemoveMember removes userID from a group chat. Removing the admin leaves the
// group without one.
func (s *Service) RemoveMember(ctx context.Context, actingUser, chatID, userID string) (*domain.ChatView, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidArgument)
	}

	chat, err := s.loadChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.IsGroup {
		return nil, fmt.Errorf("%w: chat %s is not a group", domain.ErrInvalidState, chatID)
	}
	if !chat.HasParticipant(userID) {
		return nil, fmt.Errorf("%w: user %s in chat %s", domain.ErrNotMember, userID, chatID)
	}
	if err := s.authorize(ctx, domain.PolicyActionRemoveMember, actingUser, userID, chat); err != nil {
		return nil, err
	}
	if len(chat.Participants) == 1 {
		return nil, fmt.Errorf("%w: cannot remove the last participant of chat %s", domain.ErrInvalidState, chatID)
	}

	removed, err := s.store.RemoveChatMember(ctx, chatID, userID, s.now())
	if err != nil {
		return nil, domain.StoreError("remove chat member", err)
	}
	if !removed {
		current, err := s.loadChat(ctx, chatID)
		if err != nil {
			return nil, err
		}
		if !current.HasParticipant(userID) {
			return nil, fmt.Errorf("%w: user %s in chat %s", domain.ErrNotMember, userID, chatID)
		}
		return nil, fmt.Errorf("%w: cannot remove the last participant of chat %s", domain.ErrInvalidState, chatID)
	}

	s.logEvent(ctx, chatID, actingUser, domain.EventTypeMemberRemoved, domain.MemberPayload{UserID: userID})
	if chat.GroupAdmin == userID {
		s.logger.Warn("group admin removed, chat has no admin", "chat_id", chatID, "user_id", userID)
		s.logEvent(ctx, chatID, actingUser, domain.EventTypeAdminCleared, domain.MemberPayload{UserID: userID})
	}

	return s.reloadChat(ctx, chatID)
}

// ListChats returns the chats of userID, most recently active first.
func (s *Service) ListChats(ctx context.Context, userID string) ([]domain.ChatView, error) {
	chats, err := s.store.ListChatsForUser(ctx, userID)
	if err != nil {
		return nil, domain.StoreError("list chats", err)
	}
	return s.resolveChats(ctx, chats)
}

// loadChat fetches a chat, mapping absence to ErrNotFound.
func (s *Service) loadChat(ctx context.Context, chatID string) (*domain.Chat, error) {
	if chatID == "" {
		return nil, fmt.Errorf("%w: chat_id is required", domain.ErrInvalidArgument)
	}
	chat, err := s.store.GetChat(ctx, chatID)
	if err != nil {
		return nil, domain.StoreError("get chat", err)
	}
	if chat == nil {
		return nil, fmt.Errorf("%w: chat %s", domain.ErrNotFound, chatID)
	}
	return chat, nil
}

func (s *Service) reloadChat(ctx context.Context, chatID string) (*domain.ChatView, error) {
	chat, err := s.loadChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return s.resolveChat(ctx, chat)
}

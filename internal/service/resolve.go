package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/xiaot623/gogo/chat/internal/domain"
)

// Resolution turns stored ids into response objects. It goes one level deep:
// a chat's latest message carries no chat, and a message's chat carries only
// the id of its latest message.

func (s *Service) resolveChat(ctx context.Context, chat *domain.Chat) (*domain.ChatView, error) {
	views, err := s.resolveChats(ctx, []domain.Chat{*chat})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Service) resolveChats(ctx context.Context, chats []domain.Chat) ([]domain.ChatView, error) {
	views := make([]domain.ChatView, 0, len(chats))
	if len(chats) == 0 {
		return views, nil
	}

	latestIDs := lo.FilterMap(chats, func(c domain.Chat, _ int) (string, bool) {
		return c.LatestMessageID, c.LatestMessageID != ""
	})
	var latest []domain.Message
	if len(latestIDs) > 0 {
		var err error
		latest, err = s.store.GetMessages(ctx, latestIDs)
		if err != nil {
			return nil, domain.StoreError("get latest messages", err)
		}
	}
	latestByID := lo.KeyBy(latest, func(m domain.Message) string { return m.MessageID })

	var userIDs []string
	for _, c := range chats {
		userIDs = append(userIDs, c.Participants...)
		if c.GroupAdmin != "" {
			userIDs = append(userIDs, c.GroupAdmin)
		}
	}
	for _, m := range latest {
		userIDs = append(userIDs, m.SenderID)
	}
	users, err := s.getUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	for _, c := range chats {
		view := chatView(c, users)
		if m, ok := latestByID[c.LatestMessageID]; ok && m.ChatID == c.ChatID {
			mv := messageView(m, users)
			view.LatestMessage = &mv
		}
		views = append(views, view)
	}
	return views, nil
}

// resolveMessages resolves messages that all belong to chat.
func (s *Service) resolveMessages(ctx context.Context, messages []domain.Message, chat *domain.Chat) ([]domain.MessageView, error) {
	views := make([]domain.MessageView, 0, len(messages))
	if len(messages) == 0 {
		return views, nil
	}

	userIDs := lo.Map(messages, func(m domain.Message, _ int) string { return m.SenderID })
	userIDs = append(userIDs, chat.Participants...)
	if chat.GroupAdmin != "" {
		userIDs = append(userIDs, chat.GroupAdmin)
	}
	users, err := s.getUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	cv := chatView(*chat, users)
	for _, m := range messages {
		mv := messageView(m, users)
		mv.Chat = &cv
		views = append(views, mv)
	}
	return views, nil
}

func chatView(c domain.Chat, users map[string]domain.PublicUser) domain.ChatView {
	view := domain.ChatView{
		ChatID:  c.ChatID,
		Name:    c.Name,
		IsGroup: c.IsGroup,
		Participants: lo.FilterMap(c.Participants, func(id string, _ int) (domain.PublicUser, bool) {
			u, ok := users[id]
			return u, ok
		}),
		LatestMessageID: c.LatestMessageID,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if admin, ok := users[c.GroupAdmin]; ok && c.GroupAdmin != "" {
		view.GroupAdmin = &admin
	}
	return view
}

func messageView(m domain.Message, users map[string]domain.PublicUser) domain.MessageView {
	sender := domain.UserSummary{UserID: m.SenderID}
	if u, ok := users[m.SenderID]; ok {
		sender = u.Summary()
	}
	return domain.MessageView{
		MessageID: m.MessageID,
		Sender:    sender,
		Content:   m.Content,
		ChatID:    m.ChatID,
		CreatedAt: m.CreatedAt,
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/xiaot623/gogo/chat/internal/domain"
	"github.com/xiaot623/gogo/chat/internal/repository"
)

// SendMessage appends a message to a chat and advances the chat's latest
// message pointer. If the message is stored but the pointer cannot be
// advanced the result is a *domain.PartialFailureError; the message is kept.
func (s *Service) SendMessage(ctx context.Context, actingUser, chatID, content string) (*domain.MessageView, error) {
	if actingUser == "" || chatID == "" || content == "" {
		return nil, fmt.Errorf("%w: chat_id and content are required", domain.ErrInvalidArgument)
	}

	chat, err := s.loadChat(ctx, chatID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		MessageID: "msg_" + uuid.New().String(),
		ChatID:    chatID,
		SenderID:  actingUser,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return nil, fmt.Errorf("%w: chat %s", domain.ErrNotFound, chatID)
		}
		return nil, domain.StoreError("create message", err)
	}

	updated, err := s.store.SetLatestMessage(ctx, chatID, msg.MessageID, msg.CreatedAt)
	if err == nil && !updated {
		err = errors.New("chat row not updated")
	}
	if err != nil {
		pf := &domain.PartialFailureError{ChatID: chatID, MessageID: msg.MessageID, Err: err}
		s.logger.Error("latest message pointer not advanced",
			"chat_id", chatID,
			"message_id", msg.MessageID,
			"error", err,
		)
		s.logEvent(ctx, chatID, actingUser, domain.EventTypeMessageSent, domain.MessageSentPayload{
			MessageID:      msg.MessageID,
			PointerUpdated: false,
		})
		return nil, pf
	}

	s.logEvent(ctx, chatID, actingUser, domain.EventTypeMessageSent, domain.MessageSentPayload{
		MessageID:      msg.MessageID,
		PointerUpdated: true,
	})

	chat.LatestMessageID = msg.MessageID
	chat.UpdatedAt = msg.CreatedAt
	views, err := s.resolveMessages(ctx, []domain.Message{*msg}, chat)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListMessages returns the messages of a chat in chronological order.
func (s *Service) ListMessages(ctx context.Context, chatID string) ([]domain.MessageView, error) {
	chat, err := s.loadChat(ctx, chatID)
	if err != nil {
		return nil, err
	}

	messages, err := s.store.ListMessages(ctx, chatID)
	if err != nil {
		return nil, domain.StoreError("list messages", err)
	}
	return s.resolveMessages(ctx, messages, chat)
}

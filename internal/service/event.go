package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/xiaot623/gogo/chat/internal/domain"
)

// recordEvent records an event to the store.
func (s *Service) recordEvent(ctx context.Context, chatID, actorID string, eventType domain.EventType, payload interface{}) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	event := &domain.ChatEvent{
		EventID: "evt_" + uuid.New().String(),
		ChatID:  chatID,
		Ts:      s.now().UnixMilli(),
		Type:    eventType,
		ActorID: actorID,
		Payload: payloadBytes,
	}

	return s.store.CreateChatEvent(ctx, event)
}

// logEvent records an event and only logs a failure; the activity log never
// fails the operation that produced it.
func (s *Service) logEvent(ctx context.Context, chatID, actorID string, eventType domain.EventType, payload interface{}) {
	if err := s.recordEvent(ctx, chatID, actorID, eventType, payload); err != nil {
		s.logger.Error("failed to record chat event",
			"chat_id", chatID,
			"type", eventType,
			"error", err,
		)
	}
}

// ListChatEvents returns the activity log of a chat to one of its participants.
func (s *Service) ListChatEvents(ctx context.Context, actingUser, chatID string, afterTs int64, types []string, limit int) ([]domain.ChatEvent, error) {
	chat, err := s.loadChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(actingUser) {
		return nil, fmt.Errorf("%w: user %s is not in chat %s", domain.ErrForbidden, actingUser, chatID)
	}

	events, err := s.store.ListChatEvents(ctx, chatID, afterTs, types, limit)
	if err != nil {
		return nil, domain.StoreError("list chat events", err)
	}
	if events == nil {
		events = []domain.ChatEvent{}
	}
	return events, nil
}

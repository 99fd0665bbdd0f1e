package domain

import (
	"encoding/json"
	"time"

	"github.com/samber/lo"
)

// User is an identity record. PasswordHash never leaves the service.
type User struct {
	UserID       string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Pic          string    `json:"pic"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Chat is a stored chat session with its references still as ids.
type Chat struct {
	ChatID          string    `json:"id"`
	Name            string    `json:"name"`
	IsGroup         bool      `json:"is_group"`
	Participants    []string  `json:"participants"`
	GroupAdmin      string    `json:"group_admin,omitempty"`
	LatestMessageID string    `json:"latest_message_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HasParticipant reports whether userID is a member of the chat.
func (c *Chat) HasParticipant(userID string) bool {
	return lo.Contains(c.Participants, userID)
}

// Message is a stored chat message. It is never mutated after creation.
type Message struct {
	MessageID string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatEvent is an entry of the per-chat activity log.
type ChatEvent struct {
	EventID string          `json:"event_id"`
	ChatID  string          `json:"chat_id"`
	Ts      int64           `json:"ts"` // Unix milliseconds
	Type    EventType       `json:"type"`
	ActorID string          `json:"actor_id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// StalePointer is a chat whose latest message pointer lags its newest message.
type StalePointer struct {
	ChatID          string
	LatestMessageID string
	NewestMessageID string
}

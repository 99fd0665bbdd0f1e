package domain

import "time"

// PublicUser is a user without sensitive fields.
type PublicUser struct {
	UserID    string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Pic       string    `json:"pic"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSummary is the minimal sender projection attached to messages.
type UserSummary struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Pic    string `json:"pic"`
	Email  string `json:"email"`
}

// Public strips sensitive fields from u.
func (u *User) Public() PublicUser {
	return PublicUser{
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Pic:       u.Pic,
		CreatedAt: u.CreatedAt,
	}
}

// Summary returns the minimal projection of u.
func (u PublicUser) Summary() UserSummary {
	return UserSummary{UserID: u.UserID, Name: u.Name, Pic: u.Pic, Email: u.Email}
}

// ChatView is a chat with its user and message references resolved.
//
// When a ChatView is embedded in a MessageView its LatestMessage is left nil
// and only LatestMessageID is set.
type ChatView struct {
	ChatID          string       `json:"id"`
	Name            string       `json:"name"`
	IsGroup         bool         `json:"is_group"`
	Participants    []PublicUser `json:"participants"`
	GroupAdmin      *PublicUser  `json:"group_admin,omitempty"`
	LatestMessageID string       `json:"latest_message_id,omitempty"`
	LatestMessage   *MessageView `json:"latest_message,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// MessageView is a message with its sender resolved. Chat is set when the
// message is returned on its own and nil when it is a chat's latest message.
type MessageView struct {
	MessageID string      `json:"id"`
	Sender    UserSummary `json:"sender"`
	Content   string      `json:"content"`
	ChatID    string      `json:"chat_id"`
	Chat      *ChatView   `json:"chat,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=../../mocks/mock_store.go -package=mocks

// Package repository defines the storage interface and its SQLite implementation.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/xiaot623/gogo/chat/internal/domain"
)

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate record")

// Store defines the interface for data persistence.
//
// Getters return (nil, nil) when the record does not exist. Conditional
// updates return false when their precondition no longer holds.
type Store interface {
	// User operations
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUsers(ctx context.Context, userIDs []string) ([]domain.User, error)
	SearchUsers(ctx context.Context, query string, excludeID string, limit int) ([]domain.User, error)

	// Chat operations
	FindDirectChat(ctx context.Context, userA, userB string) (*domain.Chat, error)
	GetOrCreateDirectChat(ctx context.Context, chat *domain.Chat) (*domain.Chat, bool, error)
	CreateGroupChat(ctx context.Context, chat *domain.Chat) error
	GetChat(ctx context.Context, chatID string) (*domain.Chat, error)
	ListChatsForUser(ctx context.Context, userID string) ([]domain.Chat, error)
	RenameChat(ctx context.Context, chatID, name string, at time.Time) (bool, error)
	AddChatMember(ctx context.Context, chatID, userID string, at time.Time) (bool, error)
	RemoveChatMember(ctx context.Context, chatID, userID string, at time.Time) (bool, error)
	SetLatestMessage(ctx context.Context, chatID, messageID string, at time.Time) (bool, error)
	ListStalePointers(ctx context.Context, limit int) ([]domain.StalePointer, error)
	RepairLatestMessage(ctx context.Context, chatID, expected, newest string) (bool, error)

	// Message operations
	CreateMessage(ctx context.Context, message *domain.Message) error
	GetMessages(ctx context.Context, messageIDs []string) ([]domain.Message, error)
	ListMessages(ctx context.Context, chatID string) ([]domain.Message, error)

	// Event operations
	CreateChatEvent(ctx context.Context, event *domain.ChatEvent) error
	ListChatEvents(ctx context.Context, chatID string, afterTs int64, types []string, limit int) ([]domain.ChatEvent, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}

package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/xiaot623/gogo/chat/internal/domain"
	"github.com/xiaot623/gogo/chat/internal/repository"
)

func NewTestSQLiteStore(t *testing.T) *repository.SQLiteStore {
	t.Helper()

	s, err := repository.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

// SeedUsers inserts one user per id with a deterministic email.
func SeedUsers(t *testing.T, s repository.Store, ids ...string) {
	t.Helper()

	for _, id := range ids {
		user := &domain.User{
			UserID:       id,
			Name:         "User " + id,
			Email:        id + "@example.com",
			Pic:          "https://example.com/" + id + ".png",
			PasswordHash: "x",
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.CreateUser(context.Background(), user); err != nil {
			t.Fatalf("failed to seed user %s: %v", id, err)
		}
	}
}

package service

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/xiaot623/gogo/chat/internal/auth"
	"github.com/xiaot623/gogo/chat/internal/repository"
	"github.com/xiaot623/gogo/chat/tests/helpers"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, users ...string) (*Service, *repository.SQLiteStore) {
	t.Helper()

	db := helpers.NewTestSQLiteStore(t)
	helpers.SeedUsers(t, db, users...)

	issuer, err := auth.NewIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer failed: %v", err)
	}
	return New(db, nil, nil, issuer, nil, discardLogger()), db
}

// steppingClock returns a clock that advances by one second per call.
func steppingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

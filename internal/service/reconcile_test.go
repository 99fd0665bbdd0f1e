package service

import (
	"context"
	"testing"
	"time"

	"github.com/xiaot623/gogo/chat/internal/domain"
)

func TestLatestMessageSweepRepairsStalePointer(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t, "A", "B")

	chat, err := svc.ResolveOrCreateDirect(ctx, "A", "B")
	if err != nil {
		t.Fatalf("ResolveOrCreateDirect: %v", err)
	}
	first, err := svc.SendMessage(ctx, "A", chat.ChatID, "first")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	// A message whose pointer update never happened.
	orphan := &domain.Message{
		MessageID: "msg_orphan",
		ChatID:    chat.ChatID,
		SenderID:  "B",
		Content:   "second",
		CreatedAt: first.CreatedAt.Add(time.Second),
	}
	if err := db.CreateMessage(ctx, orphan); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	if n := svc.reconcileLatestMessages(ctx); n != 1 {
		t.Fatalf("expected 1 repair, got %d", n)
	}

	got, err := db.GetChat(ctx, chat.ChatID)
	if err != nil {
		t.Fatalf("GetChat: %v", err)
	}
	if got.LatestMessageID != "msg_orphan" {
		t.Fatalf("expected latest msg_orphan, got %s", got.LatestMessageID)
	}

	events, err := db.ListChatEvents(ctx, chat.ChatID, 0, []string{string(domain.EventTypePointerRepaired)}, 10)
	if err != nil {
		t.Fatalf("ListChatEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected pointer_repaired event, got %d", len(events))
	}

	if n := svc.reconcileLatestMessages(ctx); n != 0 {
		t.Fatalf("expected nothing left to repair, got %d", n)
	}
}

func TestLatestMessageReconcilerStopsOnCancel(t *testing.T) {
	svc, _ := newTestService(t)
	svc.config.ReconcileInterval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.RunLatestMessageReconciler(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("reconciler did not stop")
	}
}

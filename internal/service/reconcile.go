package service

import (
	"context"
	"time"

	"github.com/xiaot623/gogo/chat/internal/domain"
)

// RunLatestMessageReconciler periodically advances latest message pointers
// that lag the newest message of their chat. It returns when ctx is done.
func (s *Service) RunLatestMessageReconciler(ctx context.Context) {
	if s.config.ReconcileInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.config.ReconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.reconcileLatestMessages(ctx)
		}
	}
}

func (s *Service) reconcileLatestMessages(ctx context.Context) int {
	sweepCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stale, err := s.store.ListStalePointers(sweepCtx, s.config.ReconcileBatch)
	if err != nil {
		s.logger.Warn("latest message sweep failed", "error", err)
		return 0
	}

	repaired := 0
	for _, sp := range stale {
		updated, err := s.store.RepairLatestMessage(sweepCtx, sp.ChatID, sp.LatestMessageID, sp.NewestMessageID)
		if err != nil {
			s.logger.Warn("failed to repair latest message", "chat_id", sp.ChatID, "error", err)
			continue
		}
		if !updated {
			continue
		}
		repaired++

		s.logEvent(sweepCtx, sp.ChatID, "", domain.EventTypePointerRepaired, domain.PointerRepairedPayload{
			From: sp.LatestMessageID,
			To:   sp.NewestMessageID,
		})
	}

	if repaired > 0 {
		s.logger.Info("latest message pointers repaired", "count", repaired)
	}
	return repaired
}

// Package service implements chat sessions, the message log and the
// coordination between them.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xiaot623/gogo/chat/config"
	"github.com/xiaot623/gogo/chat/internal/adapter/cache"
	"github.com/xiaot623/gogo/chat/internal/auth"
	"github.com/xiaot623/gogo/chat/internal/domain"
	"github.com/xiaot623/gogo/chat/internal/repository"
	"github.com/xiaot623/gogo/chat/policy"
)

type Service struct {
	store        repository.Store
	policyEngine *policy.Engine
	userCache    cache.Cache
	issuer       *auth.Issuer
	config       *config.Config
	logger       *slog.Logger
	now          func() time.Time
}

// New creates a Service. A nil policyEngine allows every group mutation and a
// nil userCache disables caching.
func New(store repository.Store, policyEngine *policy.Engine, userCache cache.Cache, issuer *auth.Issuer, cfg *config.Config, logger *slog.Logger) *Service {
	if userCache == nil {
		userCache = cache.NopCache{}
	}
	if cfg == nil {
		cfg = &config.Config{SearchLimit: 20, ReconcileBatch: 100, UserCacheTTL: 10 * time.Minute}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:        store,
		policyEngine: policyEngine,
		userCache:    userCache,
		issuer:       issuer,
		config:       cfg,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Ping checks the store. A degraded user cache does not fail it.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return domain.StoreError("ping", err)
	}
	if err := s.userCache.Ping(ctx); err != nil {
		s.logger.Warn("user cache ping failed", "error", err)
	}
	return nil
}

// authorize asks the group policy whether actor may perform action on chat.
func (s *Service) authorize(ctx context.Context, action domain.PolicyAction, actor, target string, chat *domain.Chat) error {
	if s.policyEngine == nil {
		return nil
	}
	allowed, err := s.policyEngine.Allowed(ctx, policy.Input{
		Action:       string(action),
		ActorID:      actor,
		TargetID:     target,
		ChatID:       chat.ChatID,
		GroupAdmin:   chat.GroupAdmin,
		Participants: chat.Participants,
	})
	if err != nil {
		return fmt.Errorf("failed to evaluate group policy: %w", err)
	}
	if !allowed {
		return fmt.Errorf("%w: %s on chat %s", domain.ErrForbidden, action, chat.ChatID)
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mama165/sdk-go/logs"

	"github.com/xiaot623/gogo/chat/config"
	"github.com/xiaot623/gogo/chat/internal/adapter/cache"
	"github.com/xiaot623/gogo/chat/internal/auth"
	"github.com/xiaot623/gogo/chat/internal/repository"
	"github.com/xiaot623/gogo/chat/internal/service"
	handler "github.com/xiaot623/gogo/chat/internal/transport/http"
	"github.com/xiaot623/gogo/chat/internal/transport/rpc"
	"github.com/xiaot623/gogo/chat/policy"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "chat: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logs.GetLoggerFromString(cfg.LogLevel)
	slog.SetDefault(logger)

	logger.Info("starting chat server",
		"http_port", cfg.HTTPPort,
		"internal_port", cfg.InternalPort,
		"env", cfg.AppEnv,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize store
	db, err := repository.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer db.Close()

	// Initialize user cache
	var userCache cache.Cache = cache.NopCache{}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to initialize user cache: %w", err)
		}
		defer rc.Close()
		userCache = rc
	}

	// Initialize policy engine
	policyEngine, err := policy.NewEngineForMode(ctx, cfg.GroupPolicy)
	if err != nil {
		return fmt.Errorf("failed to initialize policy engine: %w", err)
	}

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}

	// Initialize service
	svc := service.New(db, policyEngine, userCache, issuer, cfg, logger)

	externalServer := handler.NewExternalServer(svc, issuer, logger, !cfg.IsProduction())
	rpcServer, err := rpc.NewServer(svc, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)

	// Start external server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := externalServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("external server: %w", err)
		}
	}()

	// Start internal RPC server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.InternalPort)
		if err := rpcServer.Start(addr); err != nil {
			errCh <- fmt.Errorf("rpc server: %w", err)
		}
	}()

	go svc.RunLatestMessageReconciler(ctx)

	logger.Info("chat server started")

	select {
	case <-ctx.Done():
	case err = <-errCh:
		logger.Error("server failed", "error", err)
	}

	logger.Info("shutting down chat server")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if serr := externalServer.Shutdown(shutdownCtx); serr != nil {
		logger.Warn("failed to shutdown external server gracefully", "error", serr)
	}
	if serr := rpcServer.Shutdown(shutdownCtx); serr != nil {
		logger.Warn("failed to shutdown rpc server gracefully", "error", serr)
	}

	logger.Info("chat server stopped")
	return err
}

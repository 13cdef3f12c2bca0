package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ideahub/internal/app"
	"ideahub/internal/config"

	"github.com/gofiber/fiber/v3"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("[Server] failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatalf("[Server] %v", err)
	}
}

// run serves the API until ctx is cancelled or the listener fails, then
// drains in-flight requests and releases the container.
func run(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return fmt.Errorf("invalid HTTP port: %w", err)
	}

	a, cleanup, err := app.Bootstrap(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Printf("[Server] cleanup error: %v", err)
		}
	}()

	cacheState := "up"
	if err := a.Container.Cache.Ping(ctx); err != nil {
		cacheState = "bypassed"
	}
	logger.Printf("[Server] %s starting env=%s addr=%s cache=%s preview_headless=%t match_pool=%d",
		cfg.App.AppName, cfg.App.Environment, addr, cacheState, cfg.Preview.Headless, cfg.Match.CandidatePool)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Fiber.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Printf("[Server] shutting down websocket_clients=%d", a.Container.Hub.ClientCount())
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Fiber.ShutdownWithContext(sctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Printf("[Server] stopped")
	return nil
}

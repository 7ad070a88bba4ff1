package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"account-service/internal/config"
	"account-service/internal/http/server"
	"account-service/internal/infra/logging"
	"account-service/internal/infra/postgres"
)

func main() {
	cfg := config.Load()
	// Allow common container env var to override the configured DSN.
	if v := os.Getenv("DATABASE_URI"); v != "" {
		cfg.Postgres.DSN = v
	}

	if err := ensureLogDir(cfg.Logger.File); err != nil {
		panic(fmt.Sprintf("cannot create log directory: %v", err))
	}
	logging.Init(
		cfg.Logger.File,
		cfg.Logger.MaxSizeMB,
		cfg.Logger.MaxBackups,
		cfg.Logger.MaxAgeDays,
		cfg.Logger.Compress,
		cfg.Logger.Level,
	)

	dbmgr := postgres.NewDB()
	db, err := dbmgr.Get(cfg.Postgres.DSN)
	if err != nil {
		logging.Error("Cannot open Postgres", "error", err)
		os.Exit(1)
	}
	if err := postgres.VerifySchema(db); err != nil {
		logging.Error("Accounts schema verification failed", "error", err)
		os.Exit(1)
	}
	store := postgres.NewAccountRepository(dbmgr, cfg.Postgres.DSN)

	var rdb *redis.Client
	if cfg.Cache.RedisHost != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr: cfg.Cache.RedisHost,
			DB:   cfg.Cache.AccountCacheDB,
		})
	}

	app := server.New(server.Deps{Config: cfg, Store: store, Redis: rdb})

	idleConnsClosed := make(chan struct{})
	startServer(app, cfg, idleConnsClosed)
	<-idleConnsClosed
}

// startServer starts the Fiber app and listens for shutdown signals
func startServer(app *fiber.App, cfg config.Config, idleConnsClosed chan struct{}) {
	go func() {
		if err := app.Listen(cfg.Server.Host + cfg.Server.Port); err != nil {
			logging.Error("Server error", "error", err)
		}
	}()

	// Listen for OS termination signals
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
	<-sigint

	logging.Warn("Shutdown signal received, closing server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
	}

	close(idleConnsClosed)
	logging.Info("Server stopped cleanly")
}

// ensureLogDir creates the parent directory of the log file when needed.
func ensureLogDir(path string) error {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

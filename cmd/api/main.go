// Command api is the AFL Coach Data API server.
//
// Usage:
//
//	aflcoach-api
//	API_PORT=8080 aflcoach-api
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/aflcoach/aflcoach-data/internal/afl"
	"github.com/aflcoach/aflcoach-data/internal/alerts"
	"github.com/aflcoach/aflcoach-data/internal/api"
	"github.com/aflcoach/aflcoach-data/internal/cache"
	"github.com/aflcoach/aflcoach-data/internal/config"
	"github.com/aflcoach/aflcoach-data/internal/credstore"
	"github.com/aflcoach/aflcoach-data/internal/maintenance"
	"github.com/aflcoach/aflcoach-data/internal/service"
	"github.com/aflcoach/aflcoach-data/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Credential store
	creds, err := credstore.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Error("Failed to connect to credential store", "error", err)
		os.Exit(1)
	}
	defer creds.Close()
	logger.Info("Credential store connected", "addr", cfg.RedisAddr)

	// Optional Postgres persistence
	var pool *store.Pool
	if cfg.HasDatabase() {
		pool, err = store.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
	} else {
		logger.Info("Running memory-only (no DATABASE_URL)")
	}

	// Initialize cache and alert store
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)
	alertStore := alerts.NewStore()

	// Upstream client and orchestrator
	client := afl.NewClient(cfg.FantasyBaseURL, creds, cfg.FantasyRequestsPerMin, logger)
	svc := service.New(client, appCache, alertStore, pool, logger)

	// Start alert dispatch worker (if Telegram is configured)
	sender := alerts.NewTelegramSender(cfg.TelegramBotToken, cfg.TelegramChatID, logger)
	if sender != nil {
		go alerts.StartWorker(ctx, alertStore, sender, logger)
		logger.Info("Alert dispatch worker started")
	} else {
		logger.Info("Alert dispatch worker disabled (no TELEGRAM_BOT_TOKEN)")
	}

	// Start background refresh and maintenance tickers
	go svc.StartRefresh(ctx, cfg.RefreshInterval)
	go maintenance.Start(ctx, appCache, alertStore, pool, maintenance.DefaultConfig(), logger)

	// Create router
	router := api.NewRouter(svc, appCache, pool, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting AFL Coach Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

// Package maintenance runs periodic background tasks as Go tickers: cache
// eviction, alert retention pruning, and snapshot purging when Postgres is
// configured.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/aflcoach/aflcoach-data/internal/alerts"
	"github.com/aflcoach/aflcoach-data/internal/cache"
	"github.com/aflcoach/aflcoach-data/internal/store"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	CacheSweepInterval time.Duration // expired cache entries
	AlertPruneInterval time.Duration // 7/30-day alert retention windows
	PurgeInterval      time.Duration // old Postgres snapshot/alert rows
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		CacheSweepInterval: 10 * time.Minute,
		AlertPruneInterval: 1 * time.Hour,
		PurgeInterval:      6 * time.Hour,
	}
}

// Retention for durable rows. In-memory alert retention lives in the
// alerts package; these only bound the Postgres tables.
const (
	snapshotRetention     = 90 * 24 * time.Hour
	alertHistoryRetention = 90 * 24 * time.Hour
)

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`. pool may be nil.
func Start(ctx context.Context, appCache *cache.Cache, alertStore *alerts.Store, pool *store.Pool, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"cache_sweep", cfg.CacheSweepInterval,
		"alert_prune", cfg.AlertPruneInterval,
		"purge", cfg.PurgeInterval)

	tickers := make([]*time.Ticker, 0, 3)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	if cfg.CacheSweepInterval > 0 {
		t := time.NewTicker(cfg.CacheSweepInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { sweepCache(appCache, logger) })
	}

	if cfg.AlertPruneInterval > 0 {
		t := time.NewTicker(cfg.AlertPruneInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { pruneAlerts(alertStore, logger) })
	}

	if cfg.PurgeInterval > 0 && pool != nil {
		t := time.NewTicker(cfg.PurgeInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { purgeDurable(ctx, pool, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

func sweepCache(appCache *cache.Cache, logger *slog.Logger) {
	if removed := appCache.Evict(); removed > 0 {
		logger.Info("Cache sweep", "evicted", removed)
	}
}

func pruneAlerts(alertStore *alerts.Store, logger *slog.Logger) {
	moved, discarded := alertStore.Prune()
	if moved > 0 || discarded > 0 {
		logger.Info("Alert prune", "moved_to_history", moved, "discarded", discarded)
	}
}

func purgeDurable(ctx context.Context, pool *store.Pool, logger *slog.Logger) {
	if n, err := pool.PurgeSnapshots(ctx, snapshotRetention); err != nil {
		logger.Warn("Snapshot purge failed", "error", err)
	} else if n > 0 {
		logger.Info("Snapshot purge", "rows", n)
	}

	if n, err := pool.PurgeAlertHistory(ctx, alertHistoryRetention); err != nil {
		logger.Warn("Alert history purge failed", "error", err)
	} else if n > 0 {
		logger.Info("Alert history purge", "rows", n)
	}
}

package alerts

import (
	"context"
	"log/slog"
	"time"
)

// StartWorker runs a background loop that pushes urgent alerts through the
// sender. Blocks until ctx is cancelled. Intended to be called with `go`.
func StartWorker(ctx context.Context, store *Store, sender Sender, logger *slog.Logger) {
	logger.Info("Alert dispatch worker started", "interval", dispatchInterval)
	ticker := time.NewTicker(dispatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sent, failed := dispatchBatch(ctx, store, sender, logger)
			if sent+failed > 0 {
				logger.Info("dispatch batch", "sent", sent, "failed", failed)
			}
		case <-ctx.Done():
			logger.Info("Alert dispatch worker stopped")
			return
		}
	}
}

func dispatchBatch(ctx context.Context, store *Store, sender Sender, logger *slog.Logger) (sent, failed int) {
	for _, a := range store.ClaimUrgent() {
		if err := sender.Send(ctx, a); err != nil {
			logger.Warn("send failed", "alert_id", a.ID, "type", a.Type, "error", err)
			failed++
			continue
		}
		sent++
	}
	return sent, failed
}

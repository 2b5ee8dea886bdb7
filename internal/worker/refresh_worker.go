package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/dataset"
	"github.com/spec-kit/ticket-dashboard/internal/service"
)

// StartRefreshWorker periodically re-reads the latest snapshot so a
// dashboard instance picks up imports done elsewhere. It stops when the
// context is cancelled.
func StartRefreshWorker(ctx context.Context, dashboard *service.DashboardService, interval time.Duration, logger *zap.Logger) {
	if dashboard == nil {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := dashboard.Load(ctx); err != nil {
					logger.Warn("dataset refresh failed", zap.Error(err))
					continue
				}
				view := dashboard.TableView(dataset.Query{})
				logger.Debug("dataset refreshed", zap.Int("visible", view.TotalRows))
			}
		}
	}()
}

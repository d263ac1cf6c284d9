package store

// scheduler.go runs background maintenance for a long-running store:
//  1. Re-running Init so remote edits made elsewhere show up
//  2. Pruning audit entries older than the retention period
//
// Failures are logged and never stop the scheduler.

import (
	"context"
	"log/slog"
	"time"
)

// MaintenanceConfig holds the scheduler settings. A zero RefreshInterval
// disables reloads; a zero AuditRetention disables pruning.
type MaintenanceConfig struct {
	RefreshInterval time.Duration // How often to reload remote data
	AuditRetention  time.Duration // Age after which audit entries are pruned
	PruneInterval   time.Duration // How often to prune (default: 24h)
}

// StartMaintenance blocks running maintenance jobs until ctx is cancelled.
// Pruning runs once immediately, then every PruneInterval.
func (s *Store) StartMaintenance(ctx context.Context, cfg MaintenanceConfig) {
	if cfg.PruneInterval <= 0 {
		cfg.PruneInterval = 24 * time.Hour
	}

	slog.Info("maintenance scheduler started",
		"refresh_interval", cfg.RefreshInterval,
		"audit_retention", cfg.AuditRetention,
	)

	var refresh <-chan time.Time
	if cfg.RefreshInterval > 0 {
		t := time.NewTicker(cfg.RefreshInterval)
		defer t.Stop()
		refresh = t.C
	}

	var prune <-chan time.Time
	if cfg.AuditRetention > 0 {
		s.pruneAudit(ctx, cfg.AuditRetention)
		t := time.NewTicker(cfg.PruneInterval)
		defer t.Stop()
		prune = t.C
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("maintenance scheduler stopped")
			return
		case <-refresh:
			if err := s.Init(ctx); err != nil {
				slog.Error("scheduled reload failed", "error", err)
			}
		case <-prune:
			s.pruneAudit(ctx, cfg.AuditRetention)
		}
	}
}

// pruneAudit deletes audit entries older than retention.
func (s *Store) pruneAudit(ctx context.Context, retention time.Duration) {
	start := time.Now()
	pruned, err := s.persist.PruneAudit(ctx, s.now().Add(-retention))
	if err != nil {
		slog.Error("audit prune failed", "error", err)
		return
	}
	slog.Info("pruned audit log entries",
		"entries_pruned", pruned,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

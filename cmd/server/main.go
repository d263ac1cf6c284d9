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

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/SponsorDesk/internal/airtable"
	"github.com/JonMunkholm/SponsorDesk/internal/config"
	"github.com/JonMunkholm/SponsorDesk/internal/core"
	"github.com/JonMunkholm/SponsorDesk/internal/events"
	"github.com/JonMunkholm/SponsorDesk/internal/logging"
	"github.com/JonMunkholm/SponsorDesk/internal/store"
	"github.com/JonMunkholm/SponsorDesk/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"store_backend", cfg.Store.Backend,
		"import_max_concurrent", cfg.Import.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"events_enabled", cfg.Events.NATSURL != "",
	)

	remote, err := airtable.New(airtable.Options{
		BaseURL:       cfg.Airtable.BaseURL,
		BaseID:        cfg.Airtable.BaseID,
		Token:         cfg.Airtable.Token,
		SponsorsTable: cfg.Airtable.SponsorsTable,
		GamesTable:    cfg.Airtable.GamesTable,
		Timeout:       cfg.Airtable.Timeout,
	})
	if err != nil {
		slog.Error("failed to create airtable client", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	persistence, err := openPersistence(ctx, cfg.Store)
	if err != nil {
		slog.Error("failed to open persistence", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.Events.NATSURL != "" {
		nats, err := events.ConnectNATS(cfg.Events.NATSURL, cfg.Events.SubjectPrefix)
		if err != nil {
			slog.Error("failed to connect to nats", "error", err)
			os.Exit(1)
		}
		publisher = nats
	}

	st, err := store.New(store.Deps{
		Remote:      remote,
		Persistence: persistence,
		Events:      publisher,
	})
	if err != nil {
		slog.Error("failed to create store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	// A failed first load is shown on the dashboard with a reload button.
	if err := st.Init(ctx); err != nil {
		slog.Warn("initial load failed", "error", err)
	}

	imports := core.NewImportLimiter(cfg.Import.MaxConcurrent, cfg.Import.MaxWaitTime)
	server := web.NewServer(st, imports, *cfg)

	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	go st.StartMaintenance(jobCtx, store.MaintenanceConfig{
		RefreshInterval: cfg.Maintenance.RefreshInterval,
		AuditRetention:  cfg.Maintenance.AuditRetention,
		PruneInterval:   cfg.Maintenance.PruneInterval,
	})

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if active := imports.ActiveCount(); active > 0 {
			slog.Info("waiting for imports to complete", "active", active)
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		return
	}
	<-done
}

// openPersistence opens the configured backend for local records.
func openPersistence(ctx context.Context, cfg config.StoreConfig) (store.Persistence, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		return store.NewMemory(), nil
	case config.BackendPostgres:
		return store.NewPostgres(ctx, store.PostgresConfig{
			URL:             cfg.DatabaseURL,
			MaxConns:        cfg.MaxConns,
			MinConns:        cfg.MinConns,
			MaxConnLifetime: cfg.MaxConnLifetime,
			MaxConnIdleTime: cfg.MaxConnIdleTime,
		})
	case config.BackendSQLite:
		return store.NewSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

package store

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
)

//go:embed schema_postgres.sql
var postgresSchema string

// PostgresConfig configures the PostgreSQL backend pool.
type PostgresConfig struct {
	URL             string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Postgres is a Persistence backed by PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects, verifies the connection and creates missing tables.
func NewPostgres(ctx context.Context, cfg PostgresConfig) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Load(ctx context.Context) (LocalData, error) {
	var data LocalData
	var err error

	if data.Offerings, err = pgCollect(ctx, p.pool, qSelectOfferings, scanOffering); err != nil {
		return LocalData{}, fmt.Errorf("load offerings: %w", err)
	}
	if data.Bookings, err = pgCollect(ctx, p.pool, qSelectBookings, scanBooking); err != nil {
		return LocalData{}, fmt.Errorf("load bookings: %w", err)
	}
	if data.Categories, err = pgCollect(ctx, p.pool, qSelectCategories, scanCategory); err != nil {
		return LocalData{}, fmt.Errorf("load categories: %w", err)
	}
	if data.Games, err = pgCollect(ctx, p.pool, qSelectGames, scanGame); err != nil {
		return LocalData{}, fmt.Errorf("load games: %w", err)
	}

	files, err := pgCollect(ctx, p.pool, qSelectFiles, func(r rowScanner) (sponsorFile, error) {
		var sf sponsorFile
		err := r.Scan(&sf.sponsorID, &sf.file.ID, &sf.file.Name, &sf.file.Type, &sf.file.Size, &sf.file.URL, &sf.file.UploadDate)
		return sf, err
	})
	if err != nil {
		return LocalData{}, fmt.Errorf("load files: %w", err)
	}
	data.Files = groupFiles(files)

	return data, nil
}

func (p *Postgres) SaveOffering(ctx context.Context, o core.Offering) error {
	_, err := p.pool.Exec(ctx, qUpsertOffering, o.ID, o.Name, o.Description, string(o.Type))
	return err
}

func (p *Postgres) DeleteOffering(ctx context.Context, id string) error {
	_, err := p.pool.Exec(ctx, qDeleteOffering, id)
	return err
}

func (p *Postgres) SaveBooking(ctx context.Context, b core.Booking) error {
	_, err := p.pool.Exec(ctx, qUpsertBooking,
		b.ID, b.SponsorID, b.OfferingID, b.SponsorName, b.OfferingName, b.StartDate, b.EndDate, b.IsActive)
	return err
}

func (p *Postgres) DeleteBooking(ctx context.Context, id string) error {
	_, err := p.pool.Exec(ctx, qDeleteBooking, id)
	return err
}

func (p *Postgres) SaveCategories(ctx context.Context, categories []string) error {
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, qDeleteCategories); err != nil {
			return err
		}
		for i, c := range categories {
			if _, err := tx.Exec(ctx, qInsertCategory, i, c); err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *Postgres) SaveGame(ctx context.Context, g core.Game) error {
	_, err := p.pool.Exec(ctx, qUpsertGame, g.ID, g.Date, g.Time, g.League, g.HomeTeam, g.AwayTeam, g.Venue)
	return err
}

func (p *Postgres) SaveFile(ctx context.Context, sponsorID string, f core.SponsorFile) error {
	_, err := p.pool.Exec(ctx, qInsertFile, sponsorID, f.ID, f.Name, f.Type, f.Size, f.URL, f.UploadDate.UTC())
	return err
}

func (p *Postgres) AppendAudit(ctx context.Context, e core.AuditEntry) error {
	_, err := p.pool.Exec(ctx, qInsertAudit,
		e.ID, string(e.Action), string(e.Severity), e.Entity, e.EntityID, e.Summary,
		e.IPAddress, e.UserAgent, e.Count, e.CreatedAt.UTC())
	return err
}

func (p *Postgres) ListAudit(ctx context.Context, filter core.AuditLogFilter) ([]core.AuditEntry, error) {
	return pgCollect(ctx, p.pool, qSelectAudit, func(r rowScanner) (core.AuditEntry, error) {
		var e core.AuditEntry
		err := r.Scan(&e.ID, &e.Action, &e.Severity, &e.Entity, &e.EntityID, &e.Summary,
			&e.IPAddress, &e.UserAgent, &e.Count, &e.CreatedAt)
		return e, err
	}, auditArgs(normalizeAudit(filter))...)
}

func (p *Postgres) PruneAudit(ctx context.Context, before time.Time) (int64, error) {
	tag, err := p.pool.Exec(ctx, qPruneAudit, before.UTC())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func pgCollect[T any](ctx context.Context, pool *pgxpool.Pool, query string, scan func(rowScanner) (T, error), args ...any) ([]T, error) {
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

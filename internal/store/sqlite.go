package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
)

//go:embed schema_sqlite.sql
var sqliteSchema string

// sqliteTime is a fixed-width layout so timestamps sort as text.
const sqliteTime = "2006-01-02T15:04:05.000000000Z07:00"

var placeholder = regexp.MustCompile(`\$\d+`)

// rebind rewrites $N placeholders to ?.
func rebind(q string) string {
	return placeholder.ReplaceAllString(q, "?")
}

// SQLite is a Persistence backed by a local SQLite file.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func NewSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't handle concurrent writes well
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Load(ctx context.Context) (LocalData, error) {
	var data LocalData
	var err error

	if data.Offerings, err = sqlCollect(ctx, s.db, qSelectOfferings, scanOffering); err != nil {
		return LocalData{}, fmt.Errorf("load offerings: %w", err)
	}
	if data.Bookings, err = sqlCollect(ctx, s.db, qSelectBookings, scanBooking); err != nil {
		return LocalData{}, fmt.Errorf("load bookings: %w", err)
	}
	if data.Categories, err = sqlCollect(ctx, s.db, qSelectCategories, scanCategory); err != nil {
		return LocalData{}, fmt.Errorf("load categories: %w", err)
	}
	if data.Games, err = sqlCollect(ctx, s.db, qSelectGames, scanGame); err != nil {
		return LocalData{}, fmt.Errorf("load games: %w", err)
	}

	files, err := sqlCollect(ctx, s.db, qSelectFiles, func(r rowScanner) (sponsorFile, error) {
		var sf sponsorFile
		var uploaded string
		if err := r.Scan(&sf.sponsorID, &sf.file.ID, &sf.file.Name, &sf.file.Type, &sf.file.Size, &sf.file.URL, &uploaded); err != nil {
			return sf, err
		}
		var perr error
		sf.file.UploadDate, perr = time.Parse(sqliteTime, uploaded)
		return sf, perr
	})
	if err != nil {
		return LocalData{}, fmt.Errorf("load files: %w", err)
	}
	data.Files = groupFiles(files)

	return data, nil
}

func (s *SQLite) SaveOffering(ctx context.Context, o core.Offering) error {
	_, err := s.db.ExecContext(ctx, rebind(qUpsertOffering), o.ID, o.Name, o.Description, string(o.Type))
	return err
}

func (s *SQLite) DeleteOffering(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, rebind(qDeleteOffering), id)
	return err
}

func (s *SQLite) SaveBooking(ctx context.Context, b core.Booking) error {
	_, err := s.db.ExecContext(ctx, rebind(qUpsertBooking),
		b.ID, b.SponsorID, b.OfferingID, b.SponsorName, b.OfferingName, b.StartDate, b.EndDate, b.IsActive)
	return err
}

func (s *SQLite) DeleteBooking(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, rebind(qDeleteBooking), id)
	return err
}

func (s *SQLite) SaveCategories(ctx context.Context, categories []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, qDeleteCategories); err != nil {
		return err
	}
	for i, c := range categories {
		if _, err := tx.ExecContext(ctx, rebind(qInsertCategory), i, c); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLite) SaveGame(ctx context.Context, g core.Game) error {
	_, err := s.db.ExecContext(ctx, rebind(qUpsertGame), g.ID, g.Date, g.Time, g.League, g.HomeTeam, g.AwayTeam, g.Venue)
	return err
}

func (s *SQLite) SaveFile(ctx context.Context, sponsorID string, f core.SponsorFile) error {
	_, err := s.db.ExecContext(ctx, rebind(qInsertFile),
		sponsorID, f.ID, f.Name, f.Type, f.Size, f.URL, f.UploadDate.UTC().Format(sqliteTime))
	return err
}

func (s *SQLite) AppendAudit(ctx context.Context, e core.AuditEntry) error {
	_, err := s.db.ExecContext(ctx, rebind(qInsertAudit),
		e.ID, string(e.Action), string(e.Severity), e.Entity, e.EntityID, e.Summary,
		e.IPAddress, e.UserAgent, e.Count, e.CreatedAt.UTC().Format(sqliteTime))
	return err
}

func (s *SQLite) ListAudit(ctx context.Context, filter core.AuditLogFilter) ([]core.AuditEntry, error) {
	return sqlCollect(ctx, s.db, qSelectAudit, func(r rowScanner) (core.AuditEntry, error) {
		var e core.AuditEntry
		var created string
		if err := r.Scan(&e.ID, &e.Action, &e.Severity, &e.Entity, &e.EntityID, &e.Summary,
			&e.IPAddress, &e.UserAgent, &e.Count, &created); err != nil {
			return e, err
		}
		var err error
		e.CreatedAt, err = time.Parse(sqliteTime, created)
		return e, err
	}, auditArgs(normalizeAudit(filter))...)
}

func (s *SQLite) PruneAudit(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, rebind(qPruneAudit), before.UTC().Format(sqliteTime))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func sqlCollect[T any](ctx context.Context, db *sql.DB, query string, scan func(rowScanner) (T, error), args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, rebind(query), args...)
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

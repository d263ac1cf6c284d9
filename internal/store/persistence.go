package store

import (
	"context"
	"time"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
)

// LocalData is everything kept outside the remote tables.
type LocalData struct {
	Offerings  []core.Offering
	Bookings   []core.Booking
	Categories []string
	Games      []core.Game
	Files      map[string][]core.SponsorFile // by sponsor id
}

// Persistence stores the records that have no remote table: offerings,
// bookings, categories, locally added games, sponsor files and the audit log.
type Persistence interface {
	Load(ctx context.Context) (LocalData, error)

	SaveOffering(ctx context.Context, o core.Offering) error
	DeleteOffering(ctx context.Context, id string) error

	SaveBooking(ctx context.Context, b core.Booking) error
	DeleteBooking(ctx context.Context, id string) error

	// SaveCategories replaces the stored category list, keeping order.
	SaveCategories(ctx context.Context, categories []string) error

	SaveGame(ctx context.Context, g core.Game) error
	SaveFile(ctx context.Context, sponsorID string, f core.SponsorFile) error

	AppendAudit(ctx context.Context, e core.AuditEntry) error
	ListAudit(ctx context.Context, filter core.AuditLogFilter) ([]core.AuditEntry, error)
	PruneAudit(ctx context.Context, before time.Time) (int64, error)

	Close() error
}

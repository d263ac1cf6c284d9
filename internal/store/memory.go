package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
)

// Memory is a Persistence that lives only as long as the process.
type Memory struct {
	mu         sync.RWMutex
	offerings  []core.Offering
	bookings   []core.Booking
	categories []string
	games      []core.Game
	files      map[string][]core.SponsorFile
	audit      []core.AuditEntry
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{files: make(map[string][]core.SponsorFile)}
}

func (m *Memory) Load(context.Context) (LocalData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make(map[string][]core.SponsorFile, len(m.files))
	for id, fs := range m.files {
		files[id] = append([]core.SponsorFile(nil), fs...)
	}
	return LocalData{
		Offerings:  append([]core.Offering(nil), m.offerings...),
		Bookings:   append([]core.Booking(nil), m.bookings...),
		Categories: append([]string(nil), m.categories...),
		Games:      append([]core.Game(nil), m.games...),
		Files:      files,
	}, nil
}

func (m *Memory) SaveOffering(_ context.Context, o core.Offering) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offerings = upsert(m.offerings, o, func(x core.Offering) string { return x.ID })
	return nil
}

func (m *Memory) DeleteOffering(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offerings = removeByID(m.offerings, id, func(x core.Offering) string { return x.ID })
	return nil
}

func (m *Memory) SaveBooking(_ context.Context, b core.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings = upsert(m.bookings, b, func(x core.Booking) string { return x.ID })
	return nil
}

func (m *Memory) DeleteBooking(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings = removeByID(m.bookings, id, func(x core.Booking) string { return x.ID })
	return nil
}

func (m *Memory) SaveCategories(_ context.Context, categories []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = append([]string(nil), categories...)
	return nil
}

func (m *Memory) SaveGame(_ context.Context, g core.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games = upsert(m.games, g, func(x core.Game) string { return x.ID })
	return nil
}

func (m *Memory) SaveFile(_ context.Context, sponsorID string, f core.SponsorFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[sponsorID] = append(m.files[sponsorID], f)
	return nil
}

func (m *Memory) AppendAudit(_ context.Context, e core.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audit = append(m.audit, e)
	return nil
}

// ListAudit returns matching entries newest first.
func (m *Memory) ListAudit(_ context.Context, filter core.AuditLogFilter) ([]core.AuditEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Walk backwards so entries with equal timestamps stay newest first
	// through the stable sort.
	var matched []core.AuditEntry
	for i := len(m.audit) - 1; i >= 0; i-- {
		if e := m.audit[i]; filter.Match(e) {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return paginate(matched, filter.Limit, filter.Offset), nil
}

func (m *Memory) PruneAudit(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.audit[:0:0]
	for _, e := range m.audit {
		if !e.CreatedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	pruned := int64(len(m.audit) - len(kept))
	m.audit = kept
	return pruned, nil
}

func (m *Memory) Close() error { return nil }

func upsert[T any](xs []T, item T, id func(T) string) []T {
	target := id(item)
	for i, x := range xs {
		if id(x) == target {
			xs[i] = item
			return xs
		}
	}
	return append(xs, item)
}

func paginate[T any](xs []T, limit, offset int) []T {
	if limit <= 0 {
		limit = core.DefaultAuditLimit
	}
	if offset >= len(xs) {
		return nil
	}
	xs = xs[offset:]
	if len(xs) > limit {
		xs = xs[:limit]
	}
	return xs
}

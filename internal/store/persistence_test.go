package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
)

// backends returns every Persistence that can run without external services.
func backends(t *testing.T) map[string]Persistence {
	t.Helper()
	lite, err := NewSQLite(filepath.Join(t.TempDir(), "desk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { lite.Close() })

	return map[string]Persistence{
		"memory": NewMemory(),
		"sqlite": lite,
	}
}

func TestPersistence_RoundTrip(t *testing.T) {
	ctx := context.Background()
	uploaded := time.Date(2025, 1, 5, 8, 0, 0, 0, time.UTC)

	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			empty, err := p.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, empty.Offerings)
			assert.Empty(t, empty.Categories)

			o1 := core.Offering{ID: "o1", Name: "Banner", Description: "north", Type: core.OfferingPhysical}
			o2 := core.Offering{ID: "o2", Name: "Newsletter", Type: core.OfferingDigital}
			require.NoError(t, p.SaveOffering(ctx, o1))
			require.NoError(t, p.SaveOffering(ctx, o2))
			o1.Name = "Big Banner"
			require.NoError(t, p.SaveOffering(ctx, o1))
			require.NoError(t, p.DeleteOffering(ctx, "o2"))

			b := core.Booking{ID: "b1", SponsorID: "s1", OfferingID: "o1", SponsorName: "Acme", OfferingName: "Banner",
				StartDate: "2025-01-10", EndDate: "2025-01-12", IsActive: true}
			require.NoError(t, p.SaveBooking(ctx, b))
			require.NoError(t, p.SaveBooking(ctx, core.Booking{ID: "b2", StartDate: "2025-02-01", EndDate: "2025-02-01"}))
			require.NoError(t, p.DeleteBooking(ctx, "b2"))

			require.NoError(t, p.SaveCategories(ctx, []string{"Gold", "Silver"}))
			require.NoError(t, p.SaveCategories(ctx, []string{"Platinum", "Silver", "Community"}))

			g := core.Game{ID: "g1", Date: "2025-03-01", Time: "18:00", League: "A", HomeTeam: "Lions", AwayTeam: "Tigers", Venue: "Home"}
			require.NoError(t, p.SaveGame(ctx, g))

			f := core.SponsorFile{ID: "f1", Name: "contract.pdf", Type: "application/pdf", Size: 1024, URL: "/files/f1", UploadDate: uploaded}
			require.NoError(t, p.SaveFile(ctx, "s1", f))

			data, err := p.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, []core.Offering{o1}, data.Offerings)
			assert.Equal(t, []core.Booking{b}, data.Bookings)
			assert.Equal(t, []string{"Platinum", "Silver", "Community"}, data.Categories)
			assert.Equal(t, []core.Game{g}, data.Games)
			require.Len(t, data.Files["s1"], 1)
			assert.True(t, uploaded.Equal(data.Files["s1"][0].UploadDate))
			assert.Equal(t, "contract.pdf", data.Files["s1"][0].Name)
		})
	}
}

func TestPersistence_Audit(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			entries := []core.AuditEntry{
				{ID: "a1", Action: core.ActionSponsorCreate, Severity: core.SeverityMedium, Entity: "sponsor", CreatedAt: base},
				{ID: "a2", Action: core.ActionBookingCreate, Severity: core.SeverityMedium, Entity: "booking", CreatedAt: base.Add(time.Hour)},
				{ID: "a3", Action: core.ActionSponsorDelete, Severity: core.SeverityHigh, Entity: "sponsor", Count: 1, CreatedAt: base.Add(2 * time.Hour)},
			}
			for _, e := range entries {
				require.NoError(t, p.AppendAudit(ctx, e))
			}

			all, err := p.ListAudit(ctx, core.AuditLogFilter{})
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "a3", all[0].ID)
			assert.Equal(t, "a1", all[2].ID)

			sponsors, err := p.ListAudit(ctx, core.AuditLogFilter{Entity: "sponsor"})
			require.NoError(t, err)
			require.Len(t, sponsors, 2)

			deletes, err := p.ListAudit(ctx, core.AuditLogFilter{Action: core.ActionSponsorDelete})
			require.NoError(t, err)
			require.Len(t, deletes, 1)
			assert.Equal(t, 1, deletes[0].Count)

			page, err := p.ListAudit(ctx, core.AuditLogFilter{Limit: 1, Offset: 1})
			require.NoError(t, err)
			require.Len(t, page, 1)
			assert.Equal(t, "a2", page[0].ID)

			pruned, err := p.PruneAudit(ctx, base.Add(90*time.Minute))
			require.NoError(t, err)
			assert.Equal(t, int64(2), pruned)

			rest, err := p.ListAudit(ctx, core.AuditLogFilter{})
			require.NoError(t, err)
			require.Len(t, rest, 1)
			assert.Equal(t, "a3", rest[0].ID)
		})
	}
}

func TestPersistence_AuditSameTimestampNewestFirst(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, p.AppendAudit(ctx, core.AuditEntry{
				ID: "a1", Action: core.ActionOfferingCreate, Severity: core.SeverityMedium, Entity: "offering", CreatedAt: at,
			}))
			require.NoError(t, p.AppendAudit(ctx, core.AuditEntry{
				ID: "a2", Action: core.ActionCategoryCreate, Severity: core.SeverityMedium, Entity: "category", CreatedAt: at,
			}))

			got, err := p.ListAudit(ctx, core.AuditLogFilter{})
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, core.ActionCategoryCreate, got[0].Action)
			assert.Equal(t, core.ActionOfferingCreate, got[1].Action)

			page, err := p.ListAudit(ctx, core.AuditLogFilter{Limit: 1})
			require.NoError(t, err)
			require.Len(t, page, 1)
			assert.Equal(t, "a2", page[0].ID)
		})
	}
}

func TestRebind(t *testing.T) {
	assert.Equal(t, "SELECT * FROM t WHERE a = ? AND b = ?", rebind("SELECT * FROM t WHERE a = $1 AND b = $2"))
}

func TestStore_SQLiteBackedReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "desk.db")

	lite, err := NewSQLite(path)
	require.NoError(t, err)
	s, err := New(Deps{Remote: &fakeRemote{}, Persistence: lite})
	require.NoError(t, err)
	require.NoError(t, s.Init(ctx))
	_, err = s.CreateOffering(ctx, "Banner", "", core.OfferingPhysical)
	require.NoError(t, err)
	require.NoError(t, s.AddCategory(ctx, "Community"))
	require.NoError(t, s.Close())

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	s2, err := New(Deps{Remote: &fakeRemote{}, Persistence: reopened})
	require.NoError(t, err)
	t.Cleanup(func() { s2.Close() })
	require.NoError(t, s2.Init(ctx))

	st := s2.Snapshot()
	require.Len(t, st.Offerings, 1)
	assert.Equal(t, "Banner", st.Offerings[0].Name)
	assert.Equal(t, []string{"Gold", "Silver", "Bronze", "Community"}, st.Categories)
}

package store

import (
	"github.com/JonMunkholm/SponsorDesk/internal/core"
)

func scanOffering(r rowScanner) (core.Offering, error) {
	var o core.Offering
	var typ string
	err := r.Scan(&o.ID, &o.Name, &o.Description, &typ)
	o.Type = core.OfferingType(typ)
	return o, err
}

func scanBooking(r rowScanner) (core.Booking, error) {
	var b core.Booking
	err := r.Scan(&b.ID, &b.SponsorID, &b.OfferingID, &b.SponsorName, &b.OfferingName, &b.StartDate, &b.EndDate, &b.IsActive)
	return b, err
}

func scanCategory(r rowScanner) (string, error) {
	var c string
	err := r.Scan(&c)
	return c, err
}

func scanGame(r rowScanner) (core.Game, error) {
	var g core.Game
	err := r.Scan(&g.ID, &g.Date, &g.Time, &g.League, &g.HomeTeam, &g.AwayTeam, &g.Venue)
	return g, err
}

type sponsorFile struct {
	sponsorID string
	file      core.SponsorFile
}

func groupFiles(files []sponsorFile) map[string][]core.SponsorFile {
	out := make(map[string][]core.SponsorFile)
	for _, sf := range files {
		out[sf.sponsorID] = append(out[sf.sponsorID], sf.file)
	}
	return out
}

func normalizeAudit(f core.AuditLogFilter) auditQuery {
	q := auditQuery{entity: f.Entity, action: string(f.Action), limit: f.Limit, offset: f.Offset}
	if q.limit <= 0 {
		q.limit = core.DefaultAuditLimit
	}
	if q.offset < 0 {
		q.offset = 0
	}
	return q
}

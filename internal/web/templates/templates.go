// Package templates renders the sponsor desk's HTML pages as templ
// components. The *.templ files are the source; run `templ generate` after
// editing them.
package templates

//go:generate templ generate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
	"github.com/JonMunkholm/SponsorDesk/internal/store"
)

// DashboardData is everything the dashboard page shows.
type DashboardData struct {
	State   store.State
	Notices []store.Notice
}

// AuditLogData is one page of the audit log.
type AuditLogData struct {
	Entries []core.AuditEntry
	Page    int
	HasMore bool
	Entity  string
}

func dateSpan(b core.Booking) string {
	if b.StartDate == b.EndDate {
		return b.StartDate
	}
	return b.StartDate + " – " + b.EndDate
}

func contactLine(c core.Contact) string {
	return joinNonEmpty(c.Name, c.Role, c.Email)
}

func addressLine(a core.Address) string {
	return joinNonEmpty(
		strings.TrimSpace(a.Street+" "+a.Number),
		strings.TrimSpace(a.Zip+" "+a.City),
		a.Country,
	)
}

func billingLine(a *core.Address) string {
	if a == nil {
		return "Same as business address"
	}
	return addressLine(*a)
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, s := range parts {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, ", ")
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// auditPageURL links to page of the audit log, keeping the entity filter.
func auditPageURL(entity string, page int) string {
	u := fmt.Sprintf("/audit-log?page=%d", page)
	if entity != "" {
		u += "&entity=" + url.QueryEscape(entity)
	}
	return u
}

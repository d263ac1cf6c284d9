package web

import (
	"net/http"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
	"github.com/JonMunkholm/SponsorDesk/internal/web/templates"
)

// auditFilter reads entity, action and page from the query. It asks for one
// entry more than a page so callers can tell whether an older page exists.
func auditFilter(r *http.Request) (core.AuditLogFilter, int) {
	page := parseIntParam(r, "page", 1)
	q := r.URL.Query()
	return core.AuditLogFilter{
		Entity: q.Get("entity"),
		Action: core.AuditAction(q.Get("action")),
		Limit:  auditPageSize + 1,
		Offset: (page - 1) * auditPageSize,
	}, page
}

// handleAuditLog renders the audit log page.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	filter, page := auditFilter(r)
	entries, err := s.store.AuditLog(r.Context(), filter)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	hasMore := len(entries) > auditPageSize
	if hasMore {
		entries = entries[:auditPageSize]
	}
	render(w, r, templates.AuditLog(templates.AuditLogData{
		Entries: entries,
		Page:    page,
		HasMore: hasMore,
		Entity:  filter.Entity,
	}))
}

// AuditLogResponse is one page of audit entries.
type AuditLogResponse struct {
	Entries []core.AuditEntry `json:"entries"`
	Page    int               `json:"page"`
	HasMore bool              `json:"hasMore"`
}

// handleAuditLogAPI returns one page of audit entries as JSON.
func (s *Server) handleAuditLogAPI(w http.ResponseWriter, r *http.Request) {
	filter, page := auditFilter(r)
	entries, err := s.store.AuditLog(r.Context(), filter)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	hasMore := len(entries) > auditPageSize
	if hasMore {
		entries = entries[:auditPageSize]
	}
	if entries == nil {
		entries = []core.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, AuditLogResponse{Entries: entries, Page: page, HasMore: hasMore})
}

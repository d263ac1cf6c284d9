package core

import (
	"context"
	"time"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionSponsorCreate  AuditAction = "sponsor_create"
	ActionSponsorUpdate  AuditAction = "sponsor_update"
	ActionSponsorDelete  AuditAction = "sponsor_delete"
	ActionSponsorImport  AuditAction = "sponsor_import"
	ActionFileAttach     AuditAction = "file_attach"
	ActionOfferingCreate AuditAction = "offering_create"
	ActionOfferingUpdate AuditAction = "offering_update"
	ActionOfferingDelete AuditAction = "offering_delete"
	ActionBookingCreate  AuditAction = "booking_create"
	ActionBookingUpdate  AuditAction = "booking_update"
	ActionBookingDelete  AuditAction = "booking_delete"
	ActionCategoryCreate AuditAction = "category_create"
	ActionCategoryRename AuditAction = "category_rename"
	ActionCategoryDelete AuditAction = "category_delete"
	ActionGameCreate     AuditAction = "game_create"
)

// AuditSeverity represents the severity level of an audit entry.
type AuditSeverity string

const (
	SeverityLow      AuditSeverity = "low"
	SeverityMedium   AuditSeverity = "medium"
	SeverityHigh     AuditSeverity = "high"
	SeverityCritical AuditSeverity = "critical"
)

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID        string        `json:"id"`
	Action    AuditAction   `json:"action"`
	Severity  AuditSeverity `json:"severity"`
	Entity    string        `json:"entity"`
	EntityID  string        `json:"entityId,omitempty"`
	Summary   string        `json:"summary"`
	IPAddress string        `json:"ipAddress,omitempty"`
	UserAgent string        `json:"userAgent,omitempty"`
	Count     int           `json:"count,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// AuditLogParams contains parameters for creating an audit log entry.
type AuditLogParams struct {
	Action   AuditAction
	Entity   string
	EntityID string
	Summary  string
	Count    int
}

// DetermineSeverity returns the appropriate severity for an action.
func DetermineSeverity(action AuditAction) AuditSeverity {
	switch action {
	case ActionSponsorImport, ActionSponsorDelete, ActionCategoryRename:
		return SeverityHigh
	case ActionCategoryDelete, ActionOfferingDelete, ActionBookingDelete:
		return SeverityMedium
	case ActionGameCreate, ActionFileAttach:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// NewAuditEntry builds an entry for params, stamping it with the request
// metadata carried on ctx.
func NewAuditEntry(ctx context.Context, params AuditLogParams, at time.Time) AuditEntry {
	who := RequesterFrom(ctx)
	return AuditEntry{
		ID:        NewID(),
		Action:    params.Action,
		Severity:  DetermineSeverity(params.Action),
		Entity:    params.Entity,
		EntityID:  params.EntityID,
		Summary:   params.Summary,
		IPAddress: who.IP,
		UserAgent: who.UserAgent,
		Count:     params.Count,
		CreatedAt: at.UTC(),
	}
}

// AuditLogFilter contains filtering options for querying audit logs.
type AuditLogFilter struct {
	Entity string
	Action AuditAction
	Limit  int
	Offset int
}

// DefaultAuditLimit caps audit queries without an explicit limit.
const DefaultAuditLimit = 100

// Match reports whether e passes the entity and action filters.
func (f AuditLogFilter) Match(e AuditEntry) bool {
	if f.Entity != "" && e.Entity != f.Entity {
		return false
	}
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	return true
}

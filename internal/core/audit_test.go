package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAuditEntry(t *testing.T) {
	sequentialIDs(t, "au")
	at := time.Date(2025, 1, 11, 10, 30, 0, 0, time.FixedZone("CET", 3600))
	params := AuditLogParams{Action: ActionSponsorDelete, Entity: "sponsor", EntityID: "rec1", Summary: "Acme Corp", Count: 1}

	tests := []struct {
		name string
		ctx  context.Context
		ip   string
		ua   string
	}{
		{
			name: "request metadata stamped",
			ctx:  WithRequester(context.Background(), Requester{IP: "203.0.113.5", UserAgent: "desk-test"}),
			ip:   "203.0.113.5",
			ua:   "desk-test",
		},
		{name: "background change has no requester", ctx: context.Background()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewAuditEntry(tt.ctx, params, at)
			assert.Equal(t, tt.ip, e.IPAddress)
			assert.Equal(t, tt.ua, e.UserAgent)
			assert.Equal(t, SeverityHigh, e.Severity)
			assert.Equal(t, ActionSponsorDelete, e.Action)
			assert.Equal(t, time.UTC, e.CreatedAt.Location())
			assert.True(t, at.Equal(e.CreatedAt))
		})
	}
}

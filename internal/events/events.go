// Package events publishes sponsor desk domain events.
//
// Every successful store mutation emits one Event. Delivery is best effort:
// publish failures are logged by the caller and never undo a mutation.
package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	TypeCreated  = "created"
	TypeUpdated  = "updated"
	TypeDeleted  = "deleted"
	TypeRenamed  = "renamed"
	TypeLoaded   = "loaded"
	TypeImported = "imported"
)

// DefaultSubjectPrefix is prepended to every event subject.
const DefaultSubjectPrefix = "sponsordesk"

// Event is one domain change.
type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Entity    string         `json:"entity"`
	EntityID  string         `json:"entity_id,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Source    string         `json:"source"`
}

// New builds an event with a fresh id and the current time.
func New(entity, eventType, entityID string, data map[string]any) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Entity:    entity,
		EntityID:  entityID,
		Data:      data,
		Timestamp: time.Now().UTC(),
		Source:    "sponsor-store",
	}
}

// Subject returns the subject e is published on, e.g. "sponsordesk.sponsor.created".
func Subject(prefix string, e Event) string {
	return fmt.Sprintf("%s.%s.%s", prefix, e.Entity, e.Type)
}

// MsgID is the de-duplication id sent with e.
func MsgID(e Event) string {
	return fmt.Sprintf("%s-%s-%s", e.Entity, e.Type, e.ID)
}

// Publisher delivers domain events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// Recorder keeps published events in memory. It is used in tests and as a
// debugging sink.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Package store holds the sponsor desk's application state.
//
// A Store is created with New, loaded with Init and released with Close.
// Readers take immutable snapshots; writers go through commands that run the
// side effect first (remote API or local persistence) and only then apply a
// pure Mutation to the state. A failed side effect leaves the state untouched.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/SponsorDesk/internal/airtable"
	"github.com/JonMunkholm/SponsorDesk/internal/core"
	"github.com/JonMunkholm/SponsorDesk/internal/events"
	"github.com/JonMunkholm/SponsorDesk/internal/logging"
)

// LoadErrorMessage is the single error shown when the initial load fails.
const LoadErrorMessage = "Failed to load data"

// Remote is the remote sponsors and games tables.
type Remote interface {
	ListSponsors(ctx context.Context) ([]airtable.SponsorRecord, error)
	ListGames(ctx context.Context) ([]airtable.GameRecord, error)
	CreateSponsor(ctx context.Context, s core.Sponsor) (airtable.SponsorRecord, error)
	UpdateSponsor(ctx context.Context, s core.Sponsor) (airtable.SponsorRecord, error)
	DeleteSponsor(ctx context.Context, id string) error
}

// Deps are the collaborators of a Store. Only Remote is required.
type Deps struct {
	Remote      Remote
	Persistence Persistence      // default: NewMemory()
	Notifier    Notifier         // default: NewNoticeFeed(DefaultNoticeCapacity)
	Events      events.Publisher // default: events.Nop{}
	Clock       core.Clock       // default: time.Now
}

// Store is the application state plus the commands that change it.
type Store struct {
	mu    sync.RWMutex
	state State

	// loadMu serializes Init so overlapping reloads cannot interleave.
	loadMu sync.Mutex
	// localMu serializes local commands between persisting and committing.
	localMu sync.Mutex

	remote   Remote
	persist  Persistence
	notifier Notifier
	events   events.Publisher
	clock    core.Clock
}

// ErrNoRemote is returned by New when Deps.Remote is nil.
var ErrNoRemote = errors.New("store: remote is required")

// New creates a store in its initial (loading) state.
func New(deps Deps) (*Store, error) {
	if deps.Remote == nil {
		return nil, ErrNoRemote
	}
	if deps.Persistence == nil {
		deps.Persistence = NewMemory()
	}
	if deps.Notifier == nil {
		deps.Notifier = NewNoticeFeed(DefaultNoticeCapacity)
	}
	if deps.Events == nil {
		deps.Events = events.Nop{}
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	return &Store{
		state:    InitialState(),
		remote:   deps.Remote,
		persist:  deps.Persistence,
		notifier: deps.Notifier,
		events:   deps.Events,
		clock:    deps.Clock,
	}, nil
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Notices returns recent notices, newest first, when the notifier keeps them.
func (s *Store) Notices() []Notice {
	if feed, ok := s.notifier.(interface{ Recent() []Notice }); ok {
		return feed.Recent()
	}
	return nil
}

// AuditLog returns audit entries matching filter, newest first.
func (s *Store) AuditLog(ctx context.Context, filter core.AuditLogFilter) ([]core.AuditEntry, error) {
	return s.persist.ListAudit(ctx, filter)
}

// Close releases the persistence backend and the event publisher.
func (s *Store) Close() error {
	return errors.Join(s.persist.Close(), s.events.Close())
}

// Init loads games and sponsors from the remote tables concurrently, then
// merges the locally persisted records. If either remote fetch fails the
// state keeps its previous data and records LoadErrorMessage.
func (s *Store) Init(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	logger := logging.FromContext(ctx)
	start := time.Now()
	s.commit(LoadStarted{})

	var (
		sponsorRecords []airtable.SponsorRecord
		gameRecords    []airtable.GameRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		gameRecords, err = s.remote.ListGames(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		sponsorRecords, err = s.remote.ListSponsors(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.commit(LoadFailed{Message: LoadErrorMessage})
		logger.Error("load failed", "error", err)
		return fmt.Errorf("failed to load data: %w", err)
	}

	local, err := s.persist.Load(ctx)
	if err != nil {
		s.commit(LoadFailed{Message: LoadErrorMessage})
		logger.Error("load local data failed", "error", err)
		return fmt.Errorf("failed to load data: %w", err)
	}

	loaded, warnings := s.buildLoaded(sponsorRecords, gameRecords, local)
	for _, w := range warnings {
		logger.Warn("load warning", "warning", w)
	}
	s.commit(loaded)

	logger.Info("data loaded",
		"sponsors", len(loaded.Sponsors),
		"games", len(loaded.Games),
		"categories", len(s.Snapshot().Categories),
		"warnings", len(warnings),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	s.publish(ctx, events.New("store", events.TypeLoaded, "", map[string]any{
		"sponsors": len(loaded.Sponsors),
		"games":    len(loaded.Games),
	}))
	return nil
}

// buildLoaded maps remote records to domain values and merges local data.
func (s *Store) buildLoaded(sponsorRecords []airtable.SponsorRecord, gameRecords []airtable.GameRecord, local LocalData) (Loaded, []string) {
	var warnings []string

	sponsors := make([]core.Sponsor, len(sponsorRecords))
	for i, rec := range sponsorRecords {
		sp := rec.Sponsor()
		sp.Files = append([]core.SponsorFile(nil), local.Files[sp.ID]...)
		sponsors[i] = sp

		if !core.WellFormedAddress(rec.Fields.Address) {
			warnings = append(warnings, fmt.Sprintf("sponsor %s: malformed address %q", rec.ID, rec.Fields.Address))
		}
		if !core.WellFormedAddress(rec.Fields.BillingAddress) {
			warnings = append(warnings, fmt.Sprintf("sponsor %s: malformed billing address %q", rec.ID, rec.Fields.BillingAddress))
		}
	}

	games := make([]core.Game, 0, len(gameRecords)+len(local.Games))
	seenGames := make(map[string]bool, len(gameRecords))
	for _, rec := range gameRecords {
		games = append(games, rec.Game())
		seenGames[rec.ID] = true
	}
	for _, g := range local.Games {
		if !seenGames[g.ID] {
			games = append(games, g)
		}
	}

	categories := airtable.Categories(sponsorRecords)
	if len(categories) == 0 {
		warnings = append(warnings, "no categories found in remote sponsors; keeping current categories")
		categories = s.Snapshot().Categories
	}
	categories = mergeLabels(categories, local.Categories)

	return Loaded{
		Sponsors:   sponsors,
		Games:      games,
		Categories: categories,
		Offerings:  local.Offerings,
		Bookings:   local.Bookings,
		Warnings:   warnings,
	}, warnings
}

// mergeLabels appends the labels of extra not already in base.
func mergeLabels(base, extra []string) []string {
	out := append([]string(nil), base...)
	seen := make(map[string]bool, len(out))
	for _, c := range out {
		seen[c] = true
	}
	for _, c := range extra {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// commit applies m under the write lock and returns the new state.
func (s *Store) commit(m Mutation) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.Apply(m)
	return s.state
}

func (s *Store) now() time.Time {
	return s.clock()
}

// succeeded emits the success notice, audit entry and event for a mutation.
// Audit and event failures are logged and never fail the mutation.
func (s *Store) succeeded(ctx context.Context, notice string, audit core.AuditLogParams, ev events.Event) {
	if notice != "" {
		s.notifier.Notify(ctx, NoticeSuccess, notice)
	}

	entry := core.NewAuditEntry(ctx, audit, s.now())
	if err := s.persist.AppendAudit(ctx, entry); err != nil {
		logging.FromContext(ctx).Error("audit write failed", "action", audit.Action, "error", err)
	}

	s.publish(ctx, ev)
}

func (s *Store) publish(ctx context.Context, ev events.Event) {
	if err := s.events.Publish(ctx, ev); err != nil {
		logging.FromContext(ctx).Warn("event publish failed",
			"entity", ev.Entity,
			"type", ev.Type,
			"error", err,
		)
	}
}

package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/SponsorDesk/internal/airtable"
	"github.com/JonMunkholm/SponsorDesk/internal/core"
	"github.com/JonMunkholm/SponsorDesk/internal/events"
)

// fakeRemote is an in-memory Remote. Setting an error field makes the
// matching call fail.
type fakeRemote struct {
	mu sync.Mutex

	sponsors []airtable.SponsorRecord
	games    []airtable.GameRecord

	listSponsorsErr error
	listGamesErr    error
	createErr       error
	updateErr       error
	deleteErr       error

	// failCreateAt fails the n-th create (1-based) when createErr is nil.
	failCreateAt int
	creates      int

	created []core.Sponsor
	updated []core.Sponsor
	deleted []string
}

func (f *fakeRemote) ListSponsors(context.Context) ([]airtable.SponsorRecord, error) {
	if f.listSponsorsErr != nil {
		return nil, f.listSponsorsErr
	}
	return f.sponsors, nil
}

func (f *fakeRemote) ListGames(context.Context) ([]airtable.GameRecord, error) {
	if f.listGamesErr != nil {
		return nil, f.listGamesErr
	}
	return f.games, nil
}

func (f *fakeRemote) CreateSponsor(_ context.Context, s core.Sponsor) (airtable.SponsorRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return airtable.SponsorRecord{}, f.createErr
	}
	if f.failCreateAt > 0 && f.creates == f.failCreateAt {
		return airtable.SponsorRecord{}, &airtable.APIError{Status: 422, Type: "INVALID_VALUE_FOR_COLUMN", Message: "bad row"}
	}
	f.created = append(f.created, s)
	return airtable.SponsorRecord{
		ID:     fmt.Sprintf("rec%d", f.creates),
		Fields: airtable.SponsorFields{Name: s.Name, Category: s.Category},
	}, nil
}

func (f *fakeRemote) UpdateSponsor(_ context.Context, s core.Sponsor) (airtable.SponsorRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return airtable.SponsorRecord{}, f.updateErr
	}
	f.updated = append(f.updated, s)
	return airtable.SponsorRecord{
		ID:     s.ID,
		Fields: airtable.SponsorFields{Name: s.Name, Logo: "https://cdn.example.com/" + s.ID + ".png"},
	}, nil
}

func (f *fakeRemote) DeleteSponsor(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

var testNow = time.Date(2025, 1, 11, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	store   *Store
	remote  *fakeRemote
	persist *Memory
	feed    *NoticeFeed
	events  *events.Recorder
}

// newTestStore builds a store over remote with a fixed clock. It does not
// call Init.
func newTestStore(t *testing.T, remote *fakeRemote) *testEnv {
	t.Helper()
	env := &testEnv{
		remote:  remote,
		persist: NewMemory(),
		feed:    NewNoticeFeed(DefaultNoticeCapacity),
		events:  &events.Recorder{},
	}
	s, err := New(Deps{
		Remote:      remote,
		Persistence: env.persist,
		Notifier:    env.feed,
		Events:      env.events,
		Clock:       func() time.Time { return testNow },
	})
	require.NoError(t, err)
	env.store = s
	return env
}

// loadedStore builds a store and runs Init against remote.
func loadedStore(t *testing.T, remote *fakeRemote) *testEnv {
	t.Helper()
	env := newTestStore(t, remote)
	require.NoError(t, env.store.Init(context.Background()))
	return env
}

func sponsorRecord(id, name, category string) airtable.SponsorRecord {
	return airtable.SponsorRecord{
		ID: id,
		Fields: airtable.SponsorFields{
			Name:     name,
			Category: category,
			Address:  "Main Street,1,12345,Springfield,USA",
		},
	}
}

// sequentialIDs replaces core.NewID with a deterministic generator.
func sequentialIDs(t *testing.T, prefix string) {
	t.Helper()
	orig := core.NewID
	n := 0
	core.NewID = func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
	t.Cleanup(func() { core.NewID = orig })
}

func latestNotice(t *testing.T, env *testEnv) Notice {
	t.Helper()
	n, ok := env.feed.Latest()
	require.True(t, ok, "expected a notice")
	return n
}

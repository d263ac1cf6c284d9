package store

// sponsors.go holds the sponsor commands. Each one calls the remote table
// first, outside the state lock, and only applies the reducer once the call
// has succeeded.

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
	"github.com/JonMunkholm/SponsorDesk/internal/events"
)

const entitySponsor = "sponsor"

// validateSponsor applies the sponsor form checks: a non-blank name and a
// category from the current list.
func validateSponsor(st State, sp core.Sponsor) error {
	if strings.TrimSpace(sp.Name) == "" {
		return core.ValidationError{Field: "name", Message: "Please enter a company name"}
	}
	if sp.Category == "" || !st.HasCategory(sp.Category) {
		return core.ValidationError{Field: "category", Message: "Please select a category"}
	}
	return nil
}

// CreateSponsor validates sp and creates it remotely. The stored sponsor
// takes its id and logo from the remote record.
func (s *Store) CreateSponsor(ctx context.Context, sp core.Sponsor) (core.Sponsor, error) {
	if err := validateSponsor(s.Snapshot(), sp); err != nil {
		return core.Sponsor{}, err
	}
	return s.createRemote(ctx, sp)
}

// createRemote performs the remote create and commits the result.
func (s *Store) createRemote(ctx context.Context, sp core.Sponsor) (core.Sponsor, error) {
	rec, err := s.remote.CreateSponsor(ctx, sp)
	if err != nil {
		return core.Sponsor{}, s.remoteFailed(ctx, core.OpAddSponsor, err)
	}

	created := sp
	created.ID = rec.ID
	created.Logo = logoOf(rec.Fields.Logo)
	created.Files = nil
	s.commit(SponsorAdded{Sponsor: created})

	s.succeeded(ctx, "Sponsor added successfully",
		core.AuditLogParams{
			Action:   core.ActionSponsorCreate,
			Entity:   entitySponsor,
			EntityID: created.ID,
			Summary:  created.Name,
		},
		events.New(entitySponsor, events.TypeCreated, created.ID, map[string]any{
			"name":     created.Name,
			"category": created.Category,
		}),
	)
	return created, nil
}

// UpdateSponsor validates sp and updates the remote record with the same
// id. Files stay as they are locally; the logo is refreshed from the
// response.
func (s *Store) UpdateSponsor(ctx context.Context, sp core.Sponsor) (core.Sponsor, error) {
	st := s.Snapshot()
	current, ok := st.Sponsor(sp.ID)
	if !ok {
		return core.Sponsor{}, ErrSponsorNotFound
	}
	if err := validateSponsor(st, sp); err != nil {
		return core.Sponsor{}, err
	}

	rec, err := s.remote.UpdateSponsor(ctx, sp)
	if err != nil {
		return core.Sponsor{}, s.remoteFailed(ctx, core.OpUpdateSponsor, err)
	}

	updated := sp
	updated.Logo = logoOf(rec.Fields.Logo)
	updated.Files = current.Files
	s.commit(SponsorUpdated{Sponsor: updated})

	s.succeeded(ctx, "Sponsor updated successfully",
		core.AuditLogParams{
			Action:   core.ActionSponsorUpdate,
			Entity:   entitySponsor,
			EntityID: updated.ID,
			Summary:  updated.Name,
		},
		events.New(entitySponsor, events.TypeUpdated, updated.ID, map[string]any{
			"name":     updated.Name,
			"category": updated.Category,
		}),
	)
	return updated, nil
}

// DeleteSponsor deletes the remote record and drops the sponsor. Bookings
// that reference it are kept.
func (s *Store) DeleteSponsor(ctx context.Context, id string) error {
	sp, ok := s.Snapshot().Sponsor(id)
	if !ok {
		return ErrSponsorNotFound
	}

	if err := s.remote.DeleteSponsor(ctx, id); err != nil {
		return s.remoteFailed(ctx, core.OpDeleteSponsor, err)
	}
	s.commit(SponsorDeleted{ID: id})

	s.succeeded(ctx, "Sponsor deleted successfully",
		core.AuditLogParams{
			Action:   core.ActionSponsorDelete,
			Entity:   entitySponsor,
			EntityID: id,
			Summary:  sp.Name,
		},
		events.New(entitySponsor, events.TypeDeleted, id, nil),
	)
	return nil
}

// ImportSponsors creates validated import rows one after another. It stops
// at the first failure and returns how many sponsors were created before it.
func (s *Store) ImportSponsors(ctx context.Context, sponsors []core.Sponsor) (int, error) {
	created := 0
	for _, sp := range sponsors {
		if _, err := s.createRemote(ctx, sp); err != nil {
			s.recordImport(ctx, created, len(sponsors))
			return created, err
		}
		created++
	}

	s.notifier.Notify(ctx, NoticeSuccess, fmt.Sprintf("Successfully imported %d sponsors", created))
	s.recordImport(ctx, created, len(sponsors))
	return created, nil
}

func (s *Store) recordImport(ctx context.Context, created, total int) {
	s.succeeded(ctx, "",
		core.AuditLogParams{
			Action:  core.ActionSponsorImport,
			Entity:  entitySponsor,
			Summary: fmt.Sprintf("imported %d of %d sponsors", created, total),
			Count:   created,
		},
		events.New(entitySponsor, events.TypeImported, "", map[string]any{
			"created": created,
			"total":   total,
		}),
	)
}

// QuickAddSponsor creates a minimal sponsor from the booking form.
func (s *Store) QuickAddSponsor(ctx context.Context, name string) (core.Sponsor, error) {
	sp, err := core.NewQuickSponsor(name)
	if err != nil {
		return core.Sponsor{}, err
	}
	return s.createRemote(ctx, sp)
}

// remoteFailed emits the error notice for a failed remote call and wraps err.
func (s *Store) remoteFailed(ctx context.Context, op core.RemoteOp, err error) error {
	rerr := newRemoteError(op, err)
	s.notifier.Notify(ctx, NoticeError, rerr.Notice)
	return rerr
}

func logoOf(url string) string {
	if url == "" {
		return core.PlaceholderLogo
	}
	return url
}

package store

// local.go holds the commands for records that live only in the
// Persistence backend. Each change is written through first and applied to
// the state after the write succeeds.

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
	"github.com/JonMunkholm/SponsorDesk/internal/events"
)

const (
	entityOffering = "offering"
	entityBooking  = "booking"
	entityCategory = "category"
	entityGame     = "game"
	entityFile     = "file"
)

// applyLocal writes the change described by m and then commits it. write
// receives the state m would produce.
func (s *Store) applyLocal(ctx context.Context, m Mutation, write func(next State) error) error {
	s.localMu.Lock()
	defer s.localMu.Unlock()

	next := s.Snapshot().Apply(m)
	if err := write(next); err != nil {
		s.notifier.Notify(ctx, NoticeError, core.FormatUserError(err))
		return fmt.Errorf("persist %T: %w", m, err)
	}
	s.commit(m)
	return nil
}

// CreateOffering adds a new offering.
func (s *Store) CreateOffering(ctx context.Context, name, description string, typ core.OfferingType) (core.Offering, error) {
	o, err := core.NewOffering(name, description, typ)
	if err != nil {
		return core.Offering{}, err
	}

	err = s.applyLocal(ctx, OfferingAdded{Offering: o}, func(State) error {
		return s.persist.SaveOffering(ctx, o)
	})
	if err != nil {
		return core.Offering{}, err
	}

	s.succeeded(ctx, "Offering added successfully",
		core.AuditLogParams{Action: core.ActionOfferingCreate, Entity: entityOffering, EntityID: o.ID, Summary: o.Name},
		events.New(entityOffering, events.TypeCreated, o.ID, map[string]any{"name": o.Name, "type": o.Type}),
	)
	return o, nil
}

// UpdateOffering replaces an existing offering. Bookings keep the offering
// name they were made with.
func (s *Store) UpdateOffering(ctx context.Context, o core.Offering) (core.Offering, error) {
	if _, ok := s.Snapshot().Offering(o.ID); !ok {
		return core.Offering{}, ErrOfferingNotFound
	}
	checked, err := core.NewOffering(o.Name, o.Description, o.Type)
	if err != nil {
		return core.Offering{}, err
	}
	checked.ID = o.ID

	err = s.applyLocal(ctx, OfferingUpdated{Offering: checked}, func(State) error {
		return s.persist.SaveOffering(ctx, checked)
	})
	if err != nil {
		return core.Offering{}, err
	}

	s.succeeded(ctx, "Offering updated successfully",
		core.AuditLogParams{Action: core.ActionOfferingUpdate, Entity: entityOffering, EntityID: checked.ID, Summary: checked.Name},
		events.New(entityOffering, events.TypeUpdated, checked.ID, map[string]any{"name": checked.Name, "type": checked.Type}),
	)
	return checked, nil
}

// DeleteOffering removes an offering. Bookings that reference it are kept.
func (s *Store) DeleteOffering(ctx context.Context, id string) error {
	o, ok := s.Snapshot().Offering(id)
	if !ok {
		return ErrOfferingNotFound
	}

	err := s.applyLocal(ctx, OfferingDeleted{ID: id}, func(State) error {
		return s.persist.DeleteOffering(ctx, id)
	})
	if err != nil {
		return err
	}

	s.succeeded(ctx, "Offering deleted successfully",
		core.AuditLogParams{Action: core.ActionOfferingDelete, Entity: entityOffering, EntityID: id, Summary: o.Name},
		events.New(entityOffering, events.TypeDeleted, id, nil),
	)
	return nil
}

// SubmitBooking expands req into bookings. Without EditingID the bookings
// are added. With EditingID each expanded booking replaces the booking with
// its id; in specific-date mode the ids are new, so nothing changes.
func (s *Store) SubmitBooking(ctx context.Context, req core.BookingRequest) ([]core.Booking, error) {
	st := s.Snapshot()
	bookings, err := core.ExpandBooking(req, st.Sponsors, st.Offerings, s.now())
	if err != nil {
		return nil, err
	}

	if req.EditingID != "" {
		for _, b := range bookings {
			if err := s.updateBooking(ctx, b); err != nil {
				return nil, err
			}
		}
		return bookings, nil
	}

	for _, b := range bookings {
		err := s.applyLocal(ctx, BookingsAdded{Bookings: []core.Booking{b}}, func(State) error {
			return s.persist.SaveBooking(ctx, b)
		})
		if err != nil {
			return nil, err
		}
		s.succeeded(ctx, "Booking added successfully",
			core.AuditLogParams{Action: core.ActionBookingCreate, Entity: entityBooking, EntityID: b.ID, Summary: bookingSummary(b)},
			events.New(entityBooking, events.TypeCreated, b.ID, bookingData(b)),
		)
	}
	return bookings, nil
}

// updateBooking replaces the booking with b's id. Unknown ids are not
// written, matching the reducer's no-op; the user still sees the update
// notice but nothing is audited or published.
func (s *Store) updateBooking(ctx context.Context, b core.Booking) error {
	found := false
	err := s.applyLocal(ctx, BookingUpdated{Booking: b}, func(next State) error {
		if _, found = next.Booking(b.ID); !found {
			return nil
		}
		return s.persist.SaveBooking(ctx, b)
	})
	if err != nil {
		return err
	}
	if !found {
		s.notifier.Notify(ctx, NoticeSuccess, "Booking updated successfully")
		return nil
	}

	s.succeeded(ctx, "Booking updated successfully",
		core.AuditLogParams{Action: core.ActionBookingUpdate, Entity: entityBooking, EntityID: b.ID, Summary: bookingSummary(b)},
		events.New(entityBooking, events.TypeUpdated, b.ID, bookingData(b)),
	)
	return nil
}

// DeleteBooking removes a booking.
func (s *Store) DeleteBooking(ctx context.Context, id string) error {
	b, ok := s.Snapshot().Booking(id)
	if !ok {
		return ErrBookingNotFound
	}

	err := s.applyLocal(ctx, BookingDeleted{ID: id}, func(State) error {
		return s.persist.DeleteBooking(ctx, id)
	})
	if err != nil {
		return err
	}

	s.succeeded(ctx, "Booking deleted successfully",
		core.AuditLogParams{Action: core.ActionBookingDelete, Entity: entityBooking, EntityID: id, Summary: bookingSummary(b)},
		events.New(entityBooking, events.TypeDeleted, id, nil),
	)
	return nil
}

func bookingSummary(b core.Booking) string {
	return fmt.Sprintf("%s / %s %s..%s", b.SponsorName, b.OfferingName, b.StartDate, b.EndDate)
}

func bookingData(b core.Booking) map[string]any {
	return map[string]any{
		"sponsor_id":  b.SponsorID,
		"offering_id": b.OfferingID,
		"start_date":  b.StartDate,
		"end_date":    b.EndDate,
	}
}

// AddCategory appends a new category label.
func (s *Store) AddCategory(ctx context.Context, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return ErrCategoryRequired
	}
	if s.Snapshot().HasCategory(label) {
		return ErrCategoryExists
	}

	err := s.applyLocal(ctx, CategoryAdded{Label: label}, func(next State) error {
		return s.persist.SaveCategories(ctx, next.Categories)
	})
	if err != nil {
		return err
	}

	s.succeeded(ctx, "Category added successfully",
		core.AuditLogParams{Action: core.ActionCategoryCreate, Entity: entityCategory, EntityID: label, Summary: label},
		events.New(entityCategory, events.TypeCreated, label, nil),
	)
	return nil
}

// RenameCategory rewrites oldLabel to newLabel in the category list and on
// every sponsor carrying it. Remote sponsor records are not touched.
func (s *Store) RenameCategory(ctx context.Context, oldLabel, newLabel string) error {
	newLabel = strings.TrimSpace(newLabel)
	st := s.Snapshot()
	if !st.HasCategory(oldLabel) {
		return ErrCategoryNotFound
	}
	if newLabel == "" {
		return ErrCategoryRequired
	}
	if newLabel != oldLabel && st.HasCategory(newLabel) {
		return ErrCategoryExists
	}

	err := s.applyLocal(ctx, CategoryRenamed{Old: oldLabel, New: newLabel}, func(next State) error {
		return s.persist.SaveCategories(ctx, next.Categories)
	})
	if err != nil {
		return err
	}

	s.succeeded(ctx, "Category updated successfully",
		core.AuditLogParams{
			Action:   core.ActionCategoryRename,
			Entity:   entityCategory,
			EntityID: newLabel,
			Summary:  oldLabel + " -> " + newLabel,
		},
		events.New(entityCategory, events.TypeRenamed, newLabel, map[string]any{"old": oldLabel, "new": newLabel}),
	)
	return nil
}

// DeleteCategory removes a label. Sponsors carrying it keep the label.
func (s *Store) DeleteCategory(ctx context.Context, label string) error {
	if !s.Snapshot().HasCategory(label) {
		return ErrCategoryNotFound
	}

	err := s.applyLocal(ctx, CategoryDeleted{Label: label}, func(next State) error {
		return s.persist.SaveCategories(ctx, next.Categories)
	})
	if err != nil {
		return err
	}

	s.succeeded(ctx, "Category deleted successfully",
		core.AuditLogParams{Action: core.ActionCategoryDelete, Entity: entityCategory, EntityID: label, Summary: label},
		events.New(entityCategory, events.TypeDeleted, label, nil),
	)
	return nil
}

// AddGame adds a locally created game to the schedule.
func (s *Store) AddGame(ctx context.Context, g core.Game) (core.Game, error) {
	g.Date = strings.TrimSpace(g.Date)
	g.HomeTeam = strings.TrimSpace(g.HomeTeam)
	g.AwayTeam = strings.TrimSpace(g.AwayTeam)
	if g.Date == "" || g.HomeTeam == "" || g.AwayTeam == "" {
		return core.Game{}, ErrGameIncomplete
	}
	if g.ID == "" {
		g.ID = core.NewID()
	}

	err := s.applyLocal(ctx, GameAdded{Game: g}, func(State) error {
		return s.persist.SaveGame(ctx, g)
	})
	if err != nil {
		return core.Game{}, err
	}

	s.succeeded(ctx, "Game added successfully",
		core.AuditLogParams{
			Action:   core.ActionGameCreate,
			Entity:   entityGame,
			EntityID: g.ID,
			Summary:  g.HomeTeam + " vs " + g.AwayTeam + " " + g.Date,
		},
		events.New(entityGame, events.TypeCreated, g.ID, map[string]any{"date": g.Date}),
	)
	return g, nil
}

// AttachFile records file metadata on a sponsor. The content itself lives
// in external storage.
func (s *Store) AttachFile(ctx context.Context, sponsorID string, f core.SponsorFile) (core.SponsorFile, error) {
	if _, ok := s.Snapshot().Sponsor(sponsorID); !ok {
		return core.SponsorFile{}, ErrSponsorNotFound
	}
	if strings.TrimSpace(f.Name) == "" {
		return core.SponsorFile{}, core.ValidationError{Field: "name", Message: "File name is required"}
	}
	if f.ID == "" {
		f.ID = core.NewID()
	}
	if f.UploadDate.IsZero() {
		f.UploadDate = s.now().UTC()
	}

	err := s.applyLocal(ctx, FileAttached{SponsorID: sponsorID, File: f}, func(State) error {
		return s.persist.SaveFile(ctx, sponsorID, f)
	})
	if err != nil {
		return core.SponsorFile{}, err
	}

	s.succeeded(ctx, "File added successfully",
		core.AuditLogParams{Action: core.ActionFileAttach, Entity: entityFile, EntityID: f.ID, Summary: f.Name},
		events.New(entityFile, events.TypeCreated, f.ID, map[string]any{"sponsor_id": sponsorID, "name": f.Name}),
	)
	return f, nil
}

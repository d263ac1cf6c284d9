package store

// reducer.go holds the pure state transitions. Every Mutation returns a new
// State and leaves its input untouched, so snapshots handed to readers stay
// valid after later writes.

import (
	"github.com/JonMunkholm/SponsorDesk/internal/core"
)

// Mutation is one state transition.
type Mutation interface {
	apply(State) State
}

// Apply returns the state after m.
func (s State) Apply(m Mutation) State {
	return m.apply(s)
}

// Loaded replaces remote data after a successful load. Empty Categories keep
// the current list.
type Loaded struct {
	Sponsors   []core.Sponsor
	Games      []core.Game
	Categories []string
	Offerings  []core.Offering
	Bookings   []core.Booking
	Warnings   []string
}

func (m Loaded) apply(s State) State {
	s.Sponsors = append([]core.Sponsor(nil), m.Sponsors...)
	s.Games = append([]core.Game(nil), m.Games...)
	if len(m.Categories) > 0 {
		s.Categories = append([]string(nil), m.Categories...)
	}
	s.Offerings = append([]core.Offering(nil), m.Offerings...)
	s.Bookings = append([]core.Booking(nil), m.Bookings...)
	s.Loading = false
	s.LoadError = ""
	s.LoadWarnings = append([]string(nil), m.Warnings...)
	return s
}

// LoadStarted marks a load in progress.
type LoadStarted struct{}

func (LoadStarted) apply(s State) State {
	s.Loading = true
	return s
}

// LoadFailed records a load error. Existing data is kept.
type LoadFailed struct{ Message string }

func (m LoadFailed) apply(s State) State {
	s.Loading = false
	s.LoadError = m.Message
	return s
}

// SponsorAdded appends a sponsor.
type SponsorAdded struct{ Sponsor core.Sponsor }

func (m SponsorAdded) apply(s State) State {
	s.Sponsors = appendCopy(s.Sponsors, m.Sponsor)
	return s
}

// SponsorUpdated replaces the sponsor with the same id.
type SponsorUpdated struct{ Sponsor core.Sponsor }

func (m SponsorUpdated) apply(s State) State {
	s.Sponsors = replaceByID(s.Sponsors, m.Sponsor, func(sp core.Sponsor) string { return sp.ID })
	return s
}

// SponsorDeleted removes a sponsor. Bookings referencing it are kept.
type SponsorDeleted struct{ ID string }

func (m SponsorDeleted) apply(s State) State {
	s.Sponsors = removeByID(s.Sponsors, m.ID, func(sp core.Sponsor) string { return sp.ID })
	return s
}

// FileAttached appends a file to a sponsor's file list.
type FileAttached struct {
	SponsorID string
	File      core.SponsorFile
}

func (m FileAttached) apply(s State) State {
	out := make([]core.Sponsor, len(s.Sponsors))
	for i, sp := range s.Sponsors {
		if sp.ID == m.SponsorID {
			sp.Files = appendCopy(sp.Files, m.File)
		}
		out[i] = sp
	}
	s.Sponsors = out
	return s
}

// OfferingAdded appends an offering.
type OfferingAdded struct{ Offering core.Offering }

func (m OfferingAdded) apply(s State) State {
	s.Offerings = appendCopy(s.Offerings, m.Offering)
	return s
}

// OfferingUpdated replaces the offering with the same id. Booking names are
// not rewritten.
type OfferingUpdated struct{ Offering core.Offering }

func (m OfferingUpdated) apply(s State) State {
	s.Offerings = replaceByID(s.Offerings, m.Offering, func(o core.Offering) string { return o.ID })
	return s
}

// OfferingDeleted removes an offering. Bookings referencing it are kept.
type OfferingDeleted struct{ ID string }

func (m OfferingDeleted) apply(s State) State {
	s.Offerings = removeByID(s.Offerings, m.ID, func(o core.Offering) string { return o.ID })
	return s
}

// BookingsAdded appends bookings in order.
type BookingsAdded struct{ Bookings []core.Booking }

func (m BookingsAdded) apply(s State) State {
	s.Bookings = appendCopy(s.Bookings, m.Bookings...)
	return s
}

// BookingUpdated replaces the booking with the same id. An unknown id is a no-op.
type BookingUpdated struct{ Booking core.Booking }

func (m BookingUpdated) apply(s State) State {
	s.Bookings = replaceByID(s.Bookings, m.Booking, func(b core.Booking) string { return b.ID })
	return s
}

// BookingDeleted removes a booking.
type BookingDeleted struct{ ID string }

func (m BookingDeleted) apply(s State) State {
	s.Bookings = removeByID(s.Bookings, m.ID, func(b core.Booking) string { return b.ID })
	return s
}

// CategoryAdded appends a category label.
type CategoryAdded struct{ Label string }

func (m CategoryAdded) apply(s State) State {
	s.Categories = appendCopy(s.Categories, m.Label)
	return s
}

// CategoryRenamed rewrites a label in the category list and on every sponsor
// carrying it.
type CategoryRenamed struct{ Old, New string }

func (m CategoryRenamed) apply(s State) State {
	cats := make([]string, len(s.Categories))
	for i, c := range s.Categories {
		if c == m.Old {
			c = m.New
		}
		cats[i] = c
	}
	s.Categories = cats

	sponsors := make([]core.Sponsor, len(s.Sponsors))
	for i, sp := range s.Sponsors {
		if sp.Category == m.Old {
			sp.Category = m.New
		}
		sponsors[i] = sp
	}
	s.Sponsors = sponsors
	return s
}

// CategoryDeleted removes a label. Sponsors keep it.
type CategoryDeleted struct{ Label string }

func (m CategoryDeleted) apply(s State) State {
	s.Categories = removeByID(s.Categories, m.Label, func(c string) string { return c })
	return s
}

// GameAdded appends a game to the schedule.
type GameAdded struct{ Game core.Game }

func (m GameAdded) apply(s State) State {
	s.Games = appendCopy(s.Games, m.Game)
	return s
}

func appendCopy[T any](xs []T, items ...T) []T {
	out := make([]T, 0, len(xs)+len(items))
	out = append(out, xs...)
	return append(out, items...)
}

func replaceByID[T any](xs []T, item T, id func(T) string) []T {
	out := make([]T, len(xs))
	target := id(item)
	for i, x := range xs {
		if id(x) == target {
			x = item
		}
		out[i] = x
	}
	return out
}

func removeByID[T any](xs []T, target string, id func(T) string) []T {
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		if id(x) != target {
			out = append(out, x)
		}
	}
	return out
}

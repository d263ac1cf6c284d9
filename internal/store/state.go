package store

import (
	"github.com/JonMunkholm/SponsorDesk/internal/core"
)

// State is an immutable snapshot of everything the dashboard shows.
// Values returned from Store.Snapshot must not be modified; mutations go
// through Apply, which always builds new slices.
type State struct {
	Sponsors   []core.Sponsor  `json:"sponsors"`
	Offerings  []core.Offering `json:"offerings"`
	Bookings   []core.Booking  `json:"bookings"`
	Categories []string        `json:"categories"`
	Games      []core.Game     `json:"games"`

	Loading      bool     `json:"isLoading"`
	LoadError    string   `json:"error,omitempty"`
	LoadWarnings []string `json:"warnings,omitempty"`
}

// InitialState is the state before the first load: seed categories and
// nothing else.
func InitialState() State {
	return State{
		Categories: append([]string(nil), core.DefaultCategories...),
		Loading:    true,
	}
}

// Sponsor returns the sponsor with id.
func (s State) Sponsor(id string) (core.Sponsor, bool) {
	for _, sp := range s.Sponsors {
		if sp.ID == id {
			return sp, true
		}
	}
	return core.Sponsor{}, false
}

// Offering returns the offering with id.
func (s State) Offering(id string) (core.Offering, bool) {
	for _, o := range s.Offerings {
		if o.ID == id {
			return o, true
		}
	}
	return core.Offering{}, false
}

// Booking returns the booking with id.
func (s State) Booking(id string) (core.Booking, bool) {
	for _, b := range s.Bookings {
		if b.ID == id {
			return b, true
		}
	}
	return core.Booking{}, false
}

// HasCategory reports whether label is a known category.
func (s State) HasCategory(label string) bool {
	for _, c := range s.Categories {
		if c == label {
			return true
		}
	}
	return false
}

// BookingsForSponsor returns the bookings that reference sponsorID.
func (s State) BookingsForSponsor(sponsorID string) []core.Booking {
	var out []core.Booking
	for _, b := range s.Bookings {
		if b.SponsorID == sponsorID {
			out = append(out, b)
		}
	}
	return out
}

// SponsorsByCategory groups sponsors by category label, in category order.
// Sponsors whose label is not a known category are grouped last under their
// own label.
func (s State) SponsorsByCategory() []CategoryGroup {
	groups := make([]CategoryGroup, 0, len(s.Categories))
	index := make(map[string]int, len(s.Categories))
	for _, c := range s.Categories {
		index[c] = len(groups)
		groups = append(groups, CategoryGroup{Category: c})
	}
	for _, sp := range s.Sponsors {
		i, ok := index[sp.Category]
		if !ok {
			i = len(groups)
			index[sp.Category] = i
			groups = append(groups, CategoryGroup{Category: sp.Category})
		}
		groups[i].Sponsors = append(groups[i].Sponsors, sp)
	}
	return groups
}

// CategoryGroup is one category and its sponsors.
type CategoryGroup struct {
	Category string         `json:"category"`
	Sponsors []core.Sponsor `json:"sponsors"`
}

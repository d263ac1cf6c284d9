package core

// booking.go converts a calendar selection into booking records.
//
// Two selection modes exist:
//   - range: one booking spanning [From, To]
//   - specific: one single-day booking per selected date, in date order
//
// Both modes resolve the sponsor and offering first; if either is missing
// nothing is produced.

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// BookingMode selects how a calendar selection becomes bookings.
type BookingMode string

const (
	ModeRange    BookingMode = "range"
	ModeSpecific BookingMode = "specific"
)

// Booking submission errors. Messages are shown to the user as-is.
var (
	ErrSponsorOfferingRequired = errors.New("required field: please select a sponsor and an offering")
	ErrSponsorOfferingNotFound = errors.New("sponsor or offering not found")
	ErrDateRangeRequired       = errors.New("required field: please select a date range")
	ErrDatesRequired           = errors.New("required field: please select at least one date")
	ErrUnknownBookingMode      = errors.New("invalid enum: booking mode must be range or specific")
)

// BookingRequest is a submitted booking form.
// EditingID is set when an existing booking is being re-derived.
type BookingRequest struct {
	Mode       BookingMode
	SponsorID  string
	OfferingID string
	From       time.Time
	To         time.Time
	Dates      []time.Time
	EditingID  string
}

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// ExpandBooking resolves the sponsor and offering and produces the bookings
// for req. today is compared at calendar-day granularity. The range bounds
// are not checked for order.
func ExpandBooking(req BookingRequest, sponsors []Sponsor, offerings []Offering, today time.Time) ([]Booking, error) {
	if req.SponsorID == "" || req.OfferingID == "" {
		return nil, ErrSponsorOfferingRequired
	}

	sponsor, ok := findSponsor(sponsors, req.SponsorID)
	if !ok {
		return nil, ErrSponsorOfferingNotFound
	}
	offering, ok := findOffering(offerings, req.OfferingID)
	if !ok {
		return nil, ErrSponsorOfferingNotFound
	}

	day := Day(today)

	switch req.Mode {
	case ModeRange, "":
		if req.From.IsZero() || req.To.IsZero() {
			return nil, ErrDateRangeRequired
		}
		from, to := Day(req.From), Day(req.To)

		id := req.EditingID
		if id == "" {
			id = NewID()
		}
		return []Booking{{
			ID:           id,
			SponsorID:    sponsor.ID,
			OfferingID:   offering.ID,
			SponsorName:  sponsor.Name,
			OfferingName: offering.Name,
			StartDate:    FormatDay(from),
			EndDate:      FormatDay(to),
			IsActive:     !from.After(day) && !to.Before(day),
		}}, nil

	case ModeSpecific:
		if len(req.Dates) == 0 {
			return nil, ErrDatesRequired
		}

		// Selected dates are a set of calendar days.
		seen := make(map[string]bool, len(req.Dates))
		dates := make([]time.Time, 0, len(req.Dates))
		for _, d := range req.Dates {
			d = Day(d)
			if key := FormatDay(d); !seen[key] {
				seen[key] = true
				dates = append(dates, d)
			}
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		bookings := make([]Booking, len(dates))
		for i, d := range dates {
			formatted := FormatDay(d)
			bookings[i] = Booking{
				ID:           NewID(),
				SponsorID:    sponsor.ID,
				OfferingID:   offering.ID,
				SponsorName:  sponsor.Name,
				OfferingName: offering.Name,
				StartDate:    formatted,
				EndDate:      formatted,
				IsActive:     !d.Before(day),
			}
		}
		return bookings, nil

	default:
		return nil, ErrUnknownBookingMode
	}
}

// SeedFromBooking pre-fills a range-mode request from an existing booking so
// it can be edited. Single-day bookings created together in specific mode are
// seeded one at a time; they are not regrouped.
func SeedFromBooking(b Booking) (BookingRequest, error) {
	from, err := ParseDay(b.StartDate)
	if err != nil {
		return BookingRequest{}, err
	}
	to, err := ParseDay(b.EndDate)
	if err != nil {
		return BookingRequest{}, err
	}
	return BookingRequest{
		Mode:       ModeRange,
		SponsorID:  b.SponsorID,
		OfferingID: b.OfferingID,
		From:       from,
		To:         to,
		EditingID:  b.ID,
	}, nil
}

// ActiveOn reports whether day falls within the booking's span. Unlike
// IsActive this is evaluated against the given day, not creation time.
func (b Booking) ActiveOn(day time.Time) bool {
	from, err := ParseDay(b.StartDate)
	if err != nil {
		return false
	}
	to, err := ParseDay(b.EndDate)
	if err != nil {
		return false
	}
	d := Day(day)
	return !from.After(d) && !to.Before(d)
}

// Offering creation errors.
var (
	ErrOfferingNameRequired = errors.New("required field: offering name")
	ErrOfferingTypeInvalid  = errors.New("invalid enum: offering type must be digital, physical or event")
	ErrSponsorNameRequired  = errors.New("required field: please enter a sponsor name")
)

// NewOffering builds an offering from form input. Name and a valid type are required.
func NewOffering(name, description string, typ OfferingType) (Offering, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Offering{}, ErrOfferingNameRequired
	}
	if !typ.Valid() {
		return Offering{}, ErrOfferingTypeInvalid
	}
	return Offering{
		ID:          NewID(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Type:        typ,
	}, nil
}

// NewQuickSponsor builds the minimal sponsor created from the booking form.
func NewQuickSponsor(name string) (Sponsor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Sponsor{}, ErrSponsorNameRequired
	}
	return Sponsor{
		ID:       NewID(),
		Name:     name,
		Logo:     PlaceholderLogo,
		Category: UncategorizedLabel,
	}, nil
}

func findSponsor(sponsors []Sponsor, id string) (Sponsor, bool) {
	for _, s := range sponsors {
		if s.ID == id {
			return s, true
		}
	}
	return Sponsor{}, false
}

func findOffering(offerings []Offering, id string) (Offering, bool) {
	for _, o := range offerings {
		if o.ID == id {
			return o, true
		}
	}
	return Offering{}, false
}

// Package core provides the business logic for sponsor management.
// This package has no UI or transport dependencies and can be used by any frontend.
package core

import "time"

// PlaceholderLogo is used when a sponsor has no logo URL.
const PlaceholderLogo = "/placeholder.svg"

// UncategorizedLabel is the category given to sponsors that arrive without one.
const UncategorizedLabel = "Uncategorized"

// DateLayout is the calendar-day format used for booking dates.
const DateLayout = "2006-01-02"

// DefaultCategories seeds the category set until remote data says otherwise.
var DefaultCategories = []string{"Gold", "Silver", "Bronze"}

// Address is a postal address. All fields are free text.
type Address struct {
	Street  string `json:"street"`
	Number  string `json:"number"`
	Zip     string `json:"zip"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// IsZero reports whether every field of the address is empty.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Contact is the sponsor's primary contact person.
type Contact struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// SponsorFile is metadata for a document attached to a sponsor.
// The file content itself lives in external storage.
type SponsorFile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	URL        string    `json:"url"`
	UploadDate time.Time `json:"uploadDate"`
}

// Sponsor is a company sponsoring the club.
// A nil BillingAddress means billing goes to the business address.
type Sponsor struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Logo           string        `json:"logo"`
	Industry       string        `json:"industry"`
	Category       string        `json:"category"`
	AccountManager string        `json:"accountManager"`
	Contact        Contact       `json:"contact"`
	Address        Address       `json:"address"`
	BillingAddress *Address      `json:"billingAddress,omitempty"`
	Files          []SponsorFile `json:"files,omitempty"`
}

// EffectiveBillingAddress returns the billing address, falling back to the
// business address when none is set.
func (s Sponsor) EffectiveBillingAddress() Address {
	if s.BillingAddress != nil {
		return *s.BillingAddress
	}
	return s.Address
}

// OfferingType classifies a sponsorship offering.
type OfferingType string

const (
	OfferingDigital  OfferingType = "digital"
	OfferingPhysical OfferingType = "physical"
	OfferingEvent    OfferingType = "event"
)

// OfferingTypes lists every valid offering type.
var OfferingTypes = []OfferingType{OfferingDigital, OfferingPhysical, OfferingEvent}

// Valid reports whether t is one of the known offering types.
func (t OfferingType) Valid() bool {
	for _, ot := range OfferingTypes {
		if t == ot {
			return true
		}
	}
	return false
}

// Offering is a sponsorship product that can be booked.
type Offering struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Type        OfferingType `json:"type"`
}

// Booking reserves an offering for a sponsor over a date span.
// SponsorName and OfferingName are copies taken when the booking was made.
// IsActive is a snapshot computed at creation and never refreshed.
type Booking struct {
	ID           string `json:"id"`
	SponsorID    string `json:"sponsorId"`
	OfferingID   string `json:"offeringId"`
	SponsorName  string `json:"sponsorName"`
	OfferingName string `json:"offeringName"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	IsActive     bool   `json:"isActive"`
}

// Game is one fixture of the read-only game schedule.
type Game struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	League   string `json:"league"`
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
	Venue    string `json:"venue"`
}

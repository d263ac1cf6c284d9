package airtable

import (
	"encoding/json"
	"strings"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
)

// Remote field names in the sponsors table.
const (
	FieldName           = "Name"
	FieldLogo           = "Logo_url"
	FieldIndustry       = "Industry"
	FieldCategory       = "Category"
	FieldAccountManager = "Account Manager"
	FieldContactName    = "Contact Name"
	FieldContactRole    = "Contact Role"
	FieldContactEmail   = "Contact Email"
	FieldAddress        = "Address"
	FieldBillingAddress = "Billing Address"
)

// SponsorFields is the field set of a sponsor record. Every field is optional
// on the wire; absent fields decode as "".
type SponsorFields struct {
	Name           string `json:"Name,omitempty"`
	Logo           string `json:"Logo_url,omitempty"`
	Industry       string `json:"Industry,omitempty"`
	Category       string `json:"Category,omitempty"`
	AccountManager string `json:"Account Manager,omitempty"`
	ContactName    string `json:"Contact Name,omitempty"`
	ContactRole    string `json:"Contact Role,omitempty"`
	ContactEmail   string `json:"Contact Email,omitempty"`
	Address        string `json:"Address,omitempty"`
	BillingAddress string `json:"Billing Address,omitempty"`
}

// SponsorRecord is a sponsor row as stored remotely.
type SponsorRecord struct {
	ID     string        `json:"id"`
	Fields SponsorFields `json:"fields"`
}

// GameFields is the field set of a game record.
type GameFields struct {
	Date     string `json:"Date,omitempty"`
	Time     string `json:"Time,omitempty"`
	League   string `json:"League,omitempty"`
	HomeTeam string `json:"Home Team,omitempty"`
	AwayTeam string `json:"Away Team,omitempty"`
	Venue    string `json:"Venue,omitempty"`
}

// GameRecord is a game row as stored remotely.
type GameRecord struct {
	ID     string     `json:"id"`
	Fields GameFields `json:"fields"`
}

// writeFields is the create/update payload. Unlike SponsorFields it always
// sends every field, except the billing address which is sent only when set.
type writeFields struct {
	Name           string  `json:"Name"`
	Logo           string  `json:"Logo_url"`
	Industry       string  `json:"Industry"`
	Category       string  `json:"Category"`
	AccountManager string  `json:"Account Manager"`
	ContactName    string  `json:"Contact Name"`
	ContactRole    string  `json:"Contact Role"`
	ContactEmail   string  `json:"Contact Email"`
	Address        string  `json:"Address"`
	BillingAddress *string `json:"Billing Address,omitempty"`
}

type writeRequest struct {
	Fields writeFields `json:"fields"`
}

// fieldsFromSponsor maps a sponsor onto the remote field set.
func fieldsFromSponsor(s core.Sponsor) writeFields {
	f := writeFields{
		Name:           s.Name,
		Logo:           s.Logo,
		Industry:       s.Industry,
		Category:       s.Category,
		AccountManager: s.AccountManager,
		ContactName:    s.Contact.Name,
		ContactRole:    s.Contact.Role,
		ContactEmail:   s.Contact.Email,
		Address:        core.EncodeAddress(s.Address),
	}
	if s.BillingAddress != nil {
		billing := core.EncodeAddress(*s.BillingAddress)
		f.BillingAddress = &billing
	}
	return f
}

// Sponsor converts the record to the domain type. A missing logo becomes the
// placeholder, a missing category becomes "Uncategorized" and an empty
// billing address means "same as business address".
func (r SponsorRecord) Sponsor() core.Sponsor {
	f := r.Fields

	s := core.Sponsor{
		ID:             r.ID,
		Name:           f.Name,
		Logo:           f.Logo,
		Industry:       f.Industry,
		Category:       f.Category,
		AccountManager: f.AccountManager,
		Contact: core.Contact{
			Name:  f.ContactName,
			Role:  f.ContactRole,
			Email: f.ContactEmail,
		},
		Address: core.DecodeAddress(f.Address),
	}
	if s.Logo == "" {
		s.Logo = core.PlaceholderLogo
	}
	if s.Category == "" {
		s.Category = core.UncategorizedLabel
	}
	if strings.TrimSpace(f.BillingAddress) != "" {
		billing := core.DecodeAddress(f.BillingAddress)
		s.BillingAddress = &billing
	}
	return s
}

// Game converts the record to the domain type.
func (r GameRecord) Game() core.Game {
	return core.Game{
		ID:       r.ID,
		Date:     r.Fields.Date,
		Time:     r.Fields.Time,
		League:   r.Fields.League,
		HomeTeam: r.Fields.HomeTeam,
		AwayTeam: r.Fields.AwayTeam,
		Venue:    r.Fields.Venue,
	}
}

// Categories returns the distinct non-empty categories of records in
// first-seen order.
func Categories(records []SponsorRecord) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		c := r.Fields.Category
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

type identified interface {
	recordID() string
}

func (r SponsorRecord) recordID() string { return r.ID }
func (r GameRecord) recordID() string    { return r.ID }

// page is one page of a list response. Records is a pointer so an absent
// key can be told apart from an empty page.
type page[T identified] struct {
	Records *[]T   `json:"records"`
	Offset  string `json:"offset"`
}

// decodeRecord decodes a single record body and checks it carries an id.
func decodeRecord[T identified](body []byte) (T, error) {
	var rec T
	if err := json.Unmarshal(body, &rec); err != nil {
		return rec, malformed("%v", err)
	}
	if rec.recordID() == "" {
		return rec, malformed("record without id")
	}
	return rec, nil
}

// decodePage decodes a list page and checks every record carries an id.
func decodePage[T identified](body []byte) (page[T], error) {
	var p page[T]
	if err := json.Unmarshal(body, &p); err != nil {
		return p, malformed("%v", err)
	}
	if p.Records == nil {
		return p, malformed("missing records")
	}
	for i, rec := range *p.Records {
		if rec.recordID() == "" {
			return p, malformed("record %d without id", i)
		}
	}
	return p, nil
}

// Package export renders sponsors and bookings as downloadable files:
// a sponsor CSV in the import template layout, a bookings workbook and a
// bookings iCalendar feed.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
)

// File names offered for download.
const (
	SponsorsCSVName  = "sponsors.csv"
	BookingsXLSXName = "bookings.xlsx"
	BookingsICSName  = "bookings.ics"
)

// Content types for the exports.
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeICS  = "text/calendar; charset=utf-8"
)

// WriteSponsorsCSV writes sponsors using the import template columns, so an
// export can be edited and imported again.
func WriteSponsorsCSV(w io.Writer, sponsors []core.Sponsor) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(core.ImportHeaders()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range sponsors {
		row := []string{
			s.Name,
			s.Industry,
			s.Category,
			s.AccountManager,
			s.Contact.Email,
			s.Contact.Role,
			s.Address.Street,
			s.Address.Number,
			s.Address.Zip,
			s.Address.City,
			s.Address.Country,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write sponsor %s: %w", s.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

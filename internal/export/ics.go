package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
)

// ICSProductID identifies this service in generated calendars.
const ICSProductID = "-//SponsorDesk//Bookings//EN"

var icsEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)

// WriteBookingsICS writes bookings as all-day events. DTEND is exclusive,
// so a booking ending on the 12th ends on the 13th in the feed. Bookings
// with unparseable dates are skipped.
func WriteBookingsICS(w io.Writer, bookings []core.Booking, stamp time.Time) error {
	ew := &errWriter{w: w}

	ew.line("BEGIN:VCALENDAR")
	ew.line("VERSION:2.0")
	ew.line("PRODID:" + ICSProductID)
	ew.line("CALSCALE:GREGORIAN")
	ew.line("X-WR-CALNAME:Sponsor bookings")

	dtstamp := stamp.UTC().Format("20060102T150405Z")
	for _, b := range bookings {
		start, err := core.ParseDay(b.StartDate)
		if err != nil {
			continue
		}
		end, err := core.ParseDay(b.EndDate)
		if err != nil {
			continue
		}

		ew.line("BEGIN:VEVENT")
		ew.line("UID:" + b.ID + "@sponsordesk")
		ew.line("DTSTAMP:" + dtstamp)
		ew.line("DTSTART;VALUE=DATE:" + start.Format("20060102"))
		ew.line("DTEND;VALUE=DATE:" + end.AddDate(0, 0, 1).Format("20060102"))
		ew.line("SUMMARY:" + icsEscaper.Replace(b.SponsorName+": "+b.OfferingName))
		ew.line("DESCRIPTION:" + icsEscaper.Replace(fmt.Sprintf("%s booked %s from %s to %s", b.SponsorName, b.OfferingName, b.StartDate, b.EndDate)))
		ew.line("END:VEVENT")
	}

	ew.line("END:VCALENDAR")
	return ew.err
}

// errWriter writes CRLF-terminated lines and keeps the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) line(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s+"\r\n")
}

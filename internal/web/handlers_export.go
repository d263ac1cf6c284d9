package web

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/SponsorDesk/internal/export"
	"github.com/JonMunkholm/SponsorDesk/internal/logging"
)

// sendDownload renders an export into memory first so a failure can still be
// reported as an error response, then sends it as an attachment.
func (s *Server) sendDownload(w http.ResponseWriter, r *http.Request, name, contentType string, write func(io.Writer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		s.respondError(w, r, fmt.Errorf("export %s: %w", name, err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Error("write export", "file", name, "error", err)
	}
}

func (s *Server) handleExportSponsors(w http.ResponseWriter, r *http.Request) {
	sponsors := s.store.Snapshot().Sponsors
	s.sendDownload(w, r, export.SponsorsCSVName, export.ContentTypeCSV, func(w io.Writer) error {
		return export.WriteSponsorsCSV(w, sponsors)
	})
}

func (s *Server) handleExportBookingsXLSX(w http.ResponseWriter, r *http.Request) {
	bookings := s.store.Snapshot().Bookings
	s.sendDownload(w, r, export.BookingsXLSXName, export.ContentTypeXLSX, func(w io.Writer) error {
		return export.WriteBookingsXLSX(w, bookings)
	})
}

func (s *Server) handleExportBookingsICS(w http.ResponseWriter, r *http.Request) {
	bookings := s.store.Snapshot().Bookings
	stamp := s.clock()
	s.sendDownload(w, r, export.BookingsICSName, export.ContentTypeICS, func(w io.Writer) error {
		return export.WriteBookingsICS(w, bookings, stamp)
	})
}

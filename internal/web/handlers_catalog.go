package web

// handlers_catalog.go serves the locally kept records: offerings, bookings,
// categories and games.

import (
	"net/http"
	"time"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
	"github.com/JonMunkholm/SponsorDesk/internal/store"
)

// --- Offerings ---

type offeringRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Type        core.OfferingType `json:"type"`
}

func (s *Server) handleListOfferings(w http.ResponseWriter, r *http.Request) {
	offerings := s.store.Snapshot().Offerings
	if offerings == nil {
		offerings = []core.Offering{}
	}
	writeJSON(w, http.StatusOK, offerings)
}

func (s *Server) handleCreateOffering(w http.ResponseWriter, r *http.Request) {
	var req offeringRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	o, err := s.store.CreateOffering(r.Context(), req.Name, req.Description, req.Type)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) handleUpdateOffering(w http.ResponseWriter, r *http.Request) {
	var req offeringRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	o, err := s.store.UpdateOffering(r.Context(), core.Offering{
		ID:          pathParam(r, "id"),
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleDeleteOffering(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteOffering(r.Context(), pathParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Bookings ---

// bookingRequest is the booking form. Dates are calendar days; blank range
// bounds are reported by the booking rules, not here.
type bookingRequest struct {
	Mode       core.BookingMode `json:"mode"`
	SponsorID  string           `json:"sponsorId"`
	OfferingID string           `json:"offeringId"`
	From       string           `json:"from,omitempty"`
	To         string           `json:"to,omitempty"`
	Dates      []string         `json:"dates,omitempty"`
}

func (b bookingRequest) toCore(editingID string) (core.BookingRequest, error) {
	from, err := parseOptionalDay("from", b.From)
	if err != nil {
		return core.BookingRequest{}, err
	}
	to, err := parseOptionalDay("to", b.To)
	if err != nil {
		return core.BookingRequest{}, err
	}

	dates := make([]time.Time, 0, len(b.Dates))
	for _, d := range b.Dates {
		t, err := parseOptionalDay("dates", d)
		if err != nil {
			return core.BookingRequest{}, err
		}
		if !t.IsZero() {
			dates = append(dates, t)
		}
	}

	return core.BookingRequest{
		Mode:       b.Mode,
		SponsorID:  b.SponsorID,
		OfferingID: b.OfferingID,
		From:       from,
		To:         to,
		Dates:      dates,
		EditingID:  editingID,
	}, nil
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	st := s.store.Snapshot()
	bookings := st.Bookings
	if sponsorID := r.URL.Query().Get("sponsorId"); sponsorID != "" {
		bookings = st.BookingsForSponsor(sponsorID)
	}
	if bookings == nil {
		bookings = []core.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// handleSubmitBooking creates one booking (range) or one per date (specific).
func (s *Server) handleSubmitBooking(w http.ResponseWriter, r *http.Request) {
	s.submitBooking(w, r, "", http.StatusCreated)
}

// handleEditBooking re-derives an existing booking from the form.
func (s *Server) handleEditBooking(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if _, ok := s.store.Snapshot().Booking(id); !ok {
		s.fail(w, r, store.ErrBookingNotFound)
		return
	}
	s.submitBooking(w, r, id, http.StatusOK)
}

func (s *Server) submitBooking(w http.ResponseWriter, r *http.Request, editingID string, status int) {
	var body bookingRequest
	if err := decodeJSON(w, r, &body); err != nil {
		s.fail(w, r, err)
		return
	}
	req, err := body.toCore(editingID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	bookings, err := s.store.SubmitBooking(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, status, bookings)
}

func (s *Server) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteBooking(r.Context(), pathParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSeedBooking returns the form values for editing a booking. Editing
// always starts in range mode.
func (s *Server) handleSeedBooking(w http.ResponseWriter, r *http.Request) {
	b, ok := s.store.Snapshot().Booking(pathParam(r, "id"))
	if !ok {
		s.fail(w, r, store.ErrBookingNotFound)
		return
	}

	req, err := core.SeedFromBooking(b)
	if err != nil {
		s.fail(w, r, core.ValidationError{Field: "dates", Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, bookingSeed{
		bookingRequest: bookingRequest{
			Mode:       req.Mode,
			SponsorID:  req.SponsorID,
			OfferingID: req.OfferingID,
			From:       core.FormatDay(req.From),
			To:         core.FormatDay(req.To),
		},
		EditingID: req.EditingID,
	})
}

type bookingSeed struct {
	bookingRequest
	EditingID string `json:"editingId"`
}

// --- Categories ---

type categoryRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot().Categories)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.AddCategory(r.Context(), req.Name); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.store.Snapshot().Categories)
}

// handleRenameCategory renames the category in the path to the body's name.
func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.RenameCategory(r.Context(), pathParam(r, "name"), req.Name); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot().Categories)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCategory(r.Context(), pathParam(r, "name")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Games ---

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games := s.store.Snapshot().Games
	if games == nil {
		games = []core.Game{}
	}
	writeJSON(w, http.StatusOK, games)
}

func (s *Server) handleAddGame(w http.ResponseWriter, r *http.Request) {
	var g core.Game
	if err := decodeJSON(w, r, &g); err != nil {
		s.fail(w, r, err)
		return
	}

	added, err := s.store.AddGame(r.Context(), g)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

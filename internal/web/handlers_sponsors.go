package web

import (
	"net/http"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
)

// handleListSponsors returns every sponsor.
func (s *Server) handleListSponsors(w http.ResponseWriter, r *http.Request) {
	sponsors := s.store.Snapshot().Sponsors
	if sponsors == nil {
		sponsors = []core.Sponsor{}
	}
	writeJSON(w, http.StatusOK, sponsors)
}

// handleCreateSponsor creates a sponsor remotely and returns it with the
// remote id.
func (s *Server) handleCreateSponsor(w http.ResponseWriter, r *http.Request) {
	var sp core.Sponsor
	if err := decodeJSON(w, r, &sp); err != nil {
		s.fail(w, r, err)
		return
	}

	created, err := s.store.CreateSponsor(r.Context(), sp)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type quickSponsorRequest struct {
	Name string `json:"name"`
}

// handleQuickAddSponsor creates a minimal sponsor from the booking form.
func (s *Server) handleQuickAddSponsor(w http.ResponseWriter, r *http.Request) {
	var req quickSponsorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	created, err := s.store.QuickAddSponsor(r.Context(), req.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateSponsor replaces a sponsor's fields. The path id wins over any
// id in the body.
func (s *Server) handleUpdateSponsor(w http.ResponseWriter, r *http.Request) {
	var sp core.Sponsor
	if err := decodeJSON(w, r, &sp); err != nil {
		s.fail(w, r, err)
		return
	}
	sp.ID = pathParam(r, "id")

	updated, err := s.store.UpdateSponsor(r.Context(), sp)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteSponsor deletes a sponsor. Its bookings are kept.
func (s *Server) handleDeleteSponsor(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteSponsor(r.Context(), pathParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAttachFile records file metadata on a sponsor.
func (s *Server) handleAttachFile(w http.ResponseWriter, r *http.Request) {
	var f core.SponsorFile
	if err := decodeJSON(w, r, &f); err != nil {
		s.fail(w, r, err)
		return
	}

	attached, err := s.store.AttachFile(r.Context(), pathParam(r, "id"), f)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, attached)
}

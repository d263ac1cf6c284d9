package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/SponsorDesk/internal/logging"
	"github.com/JonMunkholm/SponsorDesk/internal/store"
	"github.com/JonMunkholm/SponsorDesk/internal/web/templates"
)

// render writes an HTML component.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "path", r.URL.Path, "error", err)
	}
}

// handleDashboard renders the main page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.Dashboard(templates.DashboardData{
		State:   s.store.Snapshot(),
		Notices: s.store.Notices(),
	}))
}

// handleSponsorDetail renders one sponsor with its placements and files.
func (s *Server) handleSponsorDetail(w http.ResponseWriter, r *http.Request) {
	st := s.store.Snapshot()
	sp, ok := st.Sponsor(pathParam(r, "id"))
	if !ok {
		s.respondError(w, r, store.ErrSponsorNotFound, http.StatusNotFound)
		return
	}
	render(w, r, templates.SponsorDetail(sp, st.BookingsForSponsor(sp.ID)))
}

// handleState returns the full state snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// handleNotices returns recent notices, newest first.
func (s *Server) handleNotices(w http.ResponseWriter, r *http.Request) {
	notices := s.store.Notices()
	if notices == nil {
		notices = []store.Notice{}
	}
	writeJSON(w, http.StatusOK, notices)
}

// handleReload re-runs the initial load. Browsers posting the dashboard's
// reload form are redirected back to the dashboard.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	err := s.store.Init(r.Context())
	if err != nil {
		slog.Warn("reload failed", "error", err)
	}

	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

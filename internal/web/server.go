// Package web provides the HTTP server for the sponsor desk: the dashboard
// pages and the JSON API over the store.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/SponsorDesk/internal/config"
	"github.com/JonMunkholm/SponsorDesk/internal/core"
	"github.com/JonMunkholm/SponsorDesk/internal/store"
	mw "github.com/JonMunkholm/SponsorDesk/internal/web/middleware"
)

//go:embed static
var staticFiles embed.FS

// Server is the HTTP server for the sponsor desk.
type Server struct {
	store   *store.Store
	imports *core.ImportLimiter
	cfg     config.Config
	clock   core.Clock

	rate       *mw.RateLimiter
	importRate *mw.RateLimiter
	stopSweep  context.CancelFunc

	router *chi.Mux
	server *http.Server
}

// NewServer creates a server over st. imports bounds concurrent sponsor
// imports; a nil limiter gets the configured defaults.
func NewServer(st *store.Store, imports *core.ImportLimiter, cfg config.Config) *Server {
	if imports == nil {
		imports = core.NewImportLimiter(cfg.Import.MaxConcurrent, cfg.Import.MaxWaitTime)
	}

	s := &Server{
		store:   st,
		imports: imports,
		cfg:     cfg,
		clock:   time.Now,
		router:  chi.NewRouter(),
	}
	if cfg.Rate.Enabled {
		s.rate = mw.NewRateLimiter(cfg.Rate.RequestsPerMinute)
		s.importRate = mw.NewRateLimiter(cfg.Rate.ImportLimit)

		ctx, cancel := context.WithCancel(context.Background())
		s.stopSweep = cancel
		go s.rate.Run(ctx)
		go s.importRate.Run(ctx)
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.requestTimeout()))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.rate != nil {
		s.router.Use(s.rate.Middleware)
	}
}

func (s *Server) requestTimeout() time.Duration {
	if s.cfg.Server.RequestTimeout > 0 {
		return s.cfg.Server.RequestTimeout
	}
	return 60 * time.Second
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("web: static assets: %v", err))
	}
	fileServer := http.FileServer(http.FS(staticFS))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	s.router.Get(core.PlaceholderLogo, func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, staticFS, "placeholder.svg")
	})

	// Pages
	s.router.Get("/", s.handleDashboard)
	s.router.Get("/sponsors/{id}", s.handleSponsorDetail)
	s.router.Get("/audit-log", s.handleAuditLog)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(s.cfg.Security))

		r.Get("/state", s.handleState)
		r.Get("/notices", s.handleNotices)
		r.Get("/audit-log", s.handleAuditLogAPI)
		r.Post("/reload", s.handleReload)

		r.Route("/sponsors", func(r chi.Router) {
			r.Get("/", s.handleListSponsors)
			r.Post("/", s.handleCreateSponsor)
			r.Post("/quick", s.handleQuickAddSponsor)
			r.Put("/{id}", s.handleUpdateSponsor)
			r.Delete("/{id}", s.handleDeleteSponsor)
			r.Post("/{id}/files", s.handleAttachFile)
		})

		r.Route("/import", func(r chi.Router) {
			r.Get("/template", s.handleImportTemplate)
			r.Group(func(r chi.Router) {
				if s.importRate != nil {
					r.Use(s.importRate.Middleware)
				}
				r.Post("/preview", s.handleImportPreview)
				r.Post("/", s.handleImport)
			})
		})

		r.Route("/offerings", func(r chi.Router) {
			r.Get("/", s.handleListOfferings)
			r.Post("/", s.handleCreateOffering)
			r.Put("/{id}", s.handleUpdateOffering)
			r.Delete("/{id}", s.handleDeleteOffering)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", s.handleListBookings)
			r.Post("/", s.handleSubmitBooking)
			r.Put("/{id}", s.handleEditBooking)
			r.Delete("/{id}", s.handleDeleteBooking)
			r.Get("/{id}/seed", s.handleSeedBooking)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleListCategories)
			r.Post("/", s.handleAddCategory)
			r.Put("/{name}", s.handleRenameCategory)
			r.Delete("/{name}", s.handleDeleteCategory)
		})

		r.Route("/games", func(r chi.Router) {
			r.Get("/", s.handleListGames)
			r.Post("/", s.handleAddGame)
		})

		r.Route("/export", func(r chi.Router) {
			r.Get("/sponsors.csv", s.handleExportSponsors)
			r.Get("/bookings.xlsx", s.handleExportBookingsXLSX)
			r.Get("/bookings.ics", s.handleExportBookingsICS)
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and waits for running imports.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.stopSweep != nil {
		s.stopSweep()
	}
	if s.server == nil {
		return nil
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	return s.imports.WaitForDrain(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(csp bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			// Sponsor logos are remote URLs, so images may load from https.
			if csp {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self'")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v as JSON with the given status.
// Encoding errors are logged since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

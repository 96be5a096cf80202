// Package api serves pinhole's calculator, settings, profiles and brightness
// meter over HTTP under /api.
package api

import (
	"log/slog"
	"net/http"

	"github.com/Veraticus/pinhole/internal/meter"
	"github.com/Veraticus/pinhole/internal/service"
	"github.com/Veraticus/pinhole/internal/settings"
	"github.com/Veraticus/pinhole/internal/viewfinder"
	"github.com/gorilla/mux"
)

// Backend is the persistence the API needs beyond the settings store.
type Backend interface {
	service.ProfileStore
	service.ReadingStore
}

// Server holds the API dependencies.
type Server struct {
	store          *settings.Store
	backend        Backend
	analyzer       *meter.Analyzer
	logger         *slog.Logger
	layout         viewfinder.Layout
	maxUploadBytes int64
	readingsLimit  int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLayout sets the layout used by the viewfinder endpoint.
func WithLayout(l viewfinder.Layout) Option {
	return func(s *Server) {
		s.layout = l
	}
}

// WithAnalyzer sets the brightness analyzer.
func WithAnalyzer(a *meter.Analyzer) Option {
	return func(s *Server) {
		if a != nil {
			s.analyzer = a
		}
	}
}

// WithMaxUploadBytes bounds multipart uploads.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithReadingsLimit sets the default page size of GET /api/readings.
func WithReadingsLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.readingsLimit = n
		}
	}
}

// NewServer creates an API server.
func NewServer(store *settings.Store, backend Backend, opts ...Option) *Server {
	s := &Server{
		store:          store,
		backend:        backend,
		analyzer:       meter.NewAnalyzer(meter.DefaultThumbnailSize),
		logger:         slog.Default(),
		layout:         viewfinder.DefaultLayout(),
		maxUploadBytes: 20 << 20,
		readingsLimit:  50,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.recoverMiddleware, s.loggingMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)

	api.HandleFunc("/conditions", s.handleConditions).Methods(http.MethodGet)
	api.HandleFunc("/filters", s.handleFilters).Methods(http.MethodGet)
	api.HandleFunc("/formats", s.handleFormats).Methods(http.MethodGet)
	api.HandleFunc("/iso", s.handleISO).Methods(http.MethodGet)

	api.HandleFunc("/settings", s.handleGetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.handlePatchSettings).Methods(http.MethodPatch)
	api.HandleFunc("/settings", s.handleResetSettings).Methods(http.MethodDelete)

	api.HandleFunc("/exposure", s.handleExposure).Methods(http.MethodPost)
	api.HandleFunc("/viewfinder", s.handleViewfinder).Methods(http.MethodPost)

	api.HandleFunc("/profiles", s.handleListProfiles).Methods(http.MethodGet)
	api.HandleFunc("/profiles", s.handleCreateProfile).Methods(http.MethodPost)
	api.HandleFunc("/profiles/{id}", s.handleGetProfile).Methods(http.MethodGet)
	api.HandleFunc("/profiles/{id}", s.handleDeleteProfile).Methods(http.MethodDelete)
	api.HandleFunc("/profiles/{id}/load", s.handleLoadProfile).Methods(http.MethodPost)

	api.HandleFunc("/analyze-brightness", s.handleAnalyzeBrightness).Methods(http.MethodPost)
	api.HandleFunc("/readings", s.handleListReadings).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// Handler returns the router wrapped for cross-origin access. Preflight
// requests are answered before routing so they never hit a method mismatch.
func (s *Server) Handler() http.Handler {
	return corsMiddleware(s.Router())
}

package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/gymdash/internal/ingest/alpha"
	"github.com/claude/gymdash/internal/registry"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  *registry.Store
	alpha  *alpha.Provider
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(store *registry.Store, alphaProvider *alpha.Provider, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		alpha:  alphaProvider,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Mount attaches an extra handler (the MCP endpoint) under pattern.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Mount(pattern, h)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/stats", s.handleStats)
		r.Post("/actions", s.handleAction)
		r.Post("/import/alpha", s.handleAlphaImport)

		r.Route("/workouts", func(r chi.Router) {
			r.Get("/", s.handleListWorkouts)
			r.Post("/", s.handleCreateWorkout)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetWorkout)
				r.Post("/exercises", s.handleAddExercise)
				r.Delete("/exercises/{exerciseID}", s.handleRemoveExercise)
				r.Post("/members", s.handleAddMember)
				r.Delete("/members/{name}", s.handleRemoveMember)
				r.Post("/members/{name}/toggle", s.handleToggleCompletion)
			})
		})
	})
}

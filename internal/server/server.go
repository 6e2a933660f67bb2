package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/communityserve/volunteerhub/pkg/db"
)

// Server owns the HTTP surface. Handlers decode and validate request bodies,
// call into the service layer, and translate taxonomy errors to status codes.
type Server struct {
	store    db.Store
	sink     db.NotificationSink
	logger   *zap.Logger
	validate *validator.Validate
}

// New builds a Server around a store, a notification sink, and a logger
func New(store db.Store, sink db.NotificationSink, logger *zap.Logger) *Server {
	return &Server{
		store:    store,
		sink:     sink,
		logger:   logger,
		validate: validator.New(),
	}
}

// Router mounts all routes. Identity comes from trusted upstream headers via
// LoadIdentity; admin-only routes are gated with RequireRole.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(LoadIdentity)

	r.Get("/healthz", s.handleHealth)

	r.Route("/volunteers", func(r chi.Router) {
		r.Get("/", s.handleListVolunteers)
		r.Get("/{id}", s.handleGetVolunteer)
		r.Get("/{id}/points", s.handleVolunteerPoints)
		r.Get("/{id}/tasks", s.handleVolunteerTasks)

		r.Group(func(r chi.Router) {
			r.Use(RequireSignedIn)
			r.Post("/", s.handleRegisterVolunteer)
			r.Put("/{id}", s.handleUpdateVolunteer)
		})

		r.With(RequireSignedIn, RequireRole(RoleAdmin)).
			Delete("/{id}", s.handleRemoveVolunteer)
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", s.handleListEvents)
		r.Get("/{id}", s.handleGetEvent)
		r.Get("/{id}/tasks", s.handleListEventTasks)
		r.Get("/{id}/tasks/unassigned", s.handleListUnassignedEventTasks)

		r.Group(func(r chi.Router) {
			r.Use(RequireSignedIn)
			r.Post("/", s.handleCreateEvent)
			r.Put("/{id}", s.handleUpdateEvent)
			r.Delete("/{id}", s.handleRemoveEvent)
		})
	})

	r.Route("/matches", func(r chi.Router) {
		r.Get("/", s.handleListMatches)

		r.Group(func(r chi.Router) {
			r.Use(RequireSignedIn)
			r.Post("/", s.handleCreateMatch)
			r.Get("/best/{volunteerID}", s.handleBestMatch)
			r.Delete("/{id}", s.handleDeleteMatch)
		})

		r.With(RequireSignedIn, RequireRole(RoleAdmin)).
			Patch("/{id}/status", s.handleUpdateMatchStatus)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.With(RequireSignedIn).Post("/{id}/assign", s.handleAssignTask)

		r.Group(func(r chi.Router) {
			r.Use(RequireSignedIn, RequireRole(RoleAdmin))
			r.Post("/", s.handleCreateTask)
			r.Put("/{id}", s.handleUpdateTask)
			r.Delete("/{id}", s.handleDeleteTask)
			r.Post("/{id}/rate", s.handleRateTask)
		})
	})

	r.Get("/leaderboard", s.handleLeaderboard)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

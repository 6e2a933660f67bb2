package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/communityserve/volunteerhub/pkg/core/model"
	"github.com/communityserve/volunteerhub/pkg/core/services"
)

type eventForm struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	Location      string   `json:"location"`
	Date          string   `json:"date" validate:"required"`
	Urgency       string   `json:"urgency" validate:"omitempty,oneof=low medium high"`
	Requirements  []string `json:"requirements" validate:"required,min=1"`
	MaxVolunteers int      `json:"maxVolunteers" validate:"min=0"`
}

func (f *eventForm) params() services.EventParams {
	return services.EventParams{
		Name:          f.Name,
		Description:   f.Description,
		Location:      f.Location,
		Date:          f.Date,
		Urgency:       model.Urgency(f.Urgency),
		Requirements:  f.Requirements,
		MaxVolunteers: f.MaxVolunteers,
	}
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var form eventForm
	if err := s.decodeJSON(r, &form); err != nil {
		s.respondError(w, r, err)
		return
	}

	identity, _ := CurrentIdentity(r)

	event, err := services.CreateEvent(r.Context(), s.store, s.logger, identity.UserID, form.params())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, newEventView(*event))
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := services.GetEvent(r.Context(), s.store, chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, newEventView(*event))
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := services.ListEvents(r.Context(), s.store)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	views := make([]eventView, 0, len(events))
	for _, e := range events {
		views = append(views, newEventView(e))
	}
	s.respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var form eventForm
	if err := s.decodeJSON(r, &form); err != nil {
		s.respondError(w, r, err)
		return
	}

	event, err := services.UpdateEvent(r.Context(), s.store, s.logger, chi.URLParam(r, "id"), form.params())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, newEventView(*event))
}

func (s *Server) handleRemoveEvent(w http.ResponseWriter, r *http.Request) {
	if err := services.RemoveEvent(r.Context(), s.store, s.logger, chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListEventTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := services.ListTasksByEvent(r.Context(), s.store, chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, newTaskViews(tasks))
}

func (s *Server) handleListUnassignedEventTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := services.ListUnassignedTasksByEvent(r.Context(), s.store, chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, newTaskViews(tasks))
}

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/communityserve/volunteerhub/pkg/core/services"
)

type registerVolunteerForm struct {
	Name         string   `json:"name" validate:"required"`
	Skills       []string `json:"skills" validate:"required,min=1"`
	Availability string   `json:"availability" validate:"required"`
}

func (s *Server) handleRegisterVolunteer(w http.ResponseWriter, r *http.Request) {
	var form registerVolunteerForm
	if err := s.decodeJSON(r, &form); err != nil {
		s.respondError(w, r, err)
		return
	}

	identity, _ := CurrentIdentity(r)

	volunteer, err := services.RegisterVolunteer(r.Context(), s.store, s.logger,
		identity.UserID, form.Name, form.Skills, form.Availability)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, newVolunteerView(*volunteer))
}

func (s *Server) handleGetVolunteer(w http.ResponseWriter, r *http.Request) {
	volunteer, err := services.GetVolunteer(r.Context(), s.store, chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, newVolunteerView(*volunteer))
}

func (s *Server) handleListVolunteers(w http.ResponseWriter, r *http.Request) {
	volunteers, err := services.ListVolunteers(r.Context(), s.store)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	views := make([]volunteerView, 0, len(volunteers))
	for _, v := range volunteers {
		views = append(views, newVolunteerView(v))
	}
	s.respondJSON(w, http.StatusOK, views)
}

type updateVolunteerForm struct {
	Skills       []string `json:"skills" validate:"required,min=1"`
	Availability string   `json:"availability" validate:"required"`
}

func (s *Server) handleUpdateVolunteer(w http.ResponseWriter, r *http.Request) {
	var form updateVolunteerForm
	if err := s.decodeJSON(r, &form); err != nil {
		s.respondError(w, r, err)
		return
	}

	volunteer, err := services.UpdateVolunteer(r.Context(), s.store, s.logger,
		chi.URLParam(r, "id"), form.Skills, form.Availability)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, newVolunteerView(*volunteer))
}

func (s *Server) handleRemoveVolunteer(w http.ResponseWriter, r *http.Request) {
	if err := services.RemoveVolunteer(r.Context(), s.store, s.logger, chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleVolunteerTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := services.ListTasksByVolunteer(r.Context(), s.store, chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, newTaskViews(tasks))
}

func (s *Server) handleVolunteerPoints(w http.ResponseWriter, r *http.Request) {
	volunteerID := chi.URLParam(r, "id")

	total, err := services.TotalPoints(r.Context(), s.store, volunteerID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"volunteerId": volunteerID,
		"totalPoints": total,
	})
}

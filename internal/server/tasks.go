package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/communityserve/volunteerhub/pkg/core/services"
)

type createTaskForm struct {
	EventID string `json:"eventId" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Score   int    `json:"score" validate:"min=0"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var form createTaskForm
	if err := s.decodeJSON(r, &form); err != nil {
		s.respondError(w, r, err)
		return
	}

	task, err := services.CreateTask(r.Context(), s.store, s.logger, form.EventID, form.Name, form.Score)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, newTaskView(*task))
}

type updateTaskForm struct {
	Name  string `json:"name" validate:"required"`
	Score int    `json:"score" validate:"min=0"`
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var form updateTaskForm
	if err := s.decodeJSON(r, &form); err != nil {
		s.respondError(w, r, err)
		return
	}

	task, err := services.UpdateTask(r.Context(), s.store, s.logger, chi.URLParam(r, "id"), form.Name, form.Score)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, newTaskView(*task))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := services.DeleteTask(r.Context(), s.store, s.logger, chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type assignTaskForm struct {
	VolunteerID string `json:"volunteerId" validate:"required"`
}

func (s *Server) handleAssignTask(w http.ResponseWriter, r *http.Request) {
	var form assignTaskForm
	if err := s.decodeJSON(r, &form); err != nil {
		s.respondError(w, r, err)
		return
	}

	task, err := services.AssignTask(r.Context(), s.store, s.sink, s.logger,
		chi.URLParam(r, "id"), form.VolunteerID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, newTaskView(*task))
}

type rateTaskForm struct {
	// Pointer so an absent rating is rejected instead of defaulting to 0
	// and zeroing the task's score.
	Rating *int `json:"rating" validate:"required,min=0,max=100"`
}

func (s *Server) handleRateTask(w http.ResponseWriter, r *http.Request) {
	var form rateTaskForm
	if err := s.decodeJSON(r, &form); err != nil {
		s.respondError(w, r, err)
		return
	}

	task, err := services.RateTask(r.Context(), s.store, s.logger, chi.URLParam(r, "id"), *form.Rating)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, newTaskView(*task))
}

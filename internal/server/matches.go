package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/communityserve/volunteerhub/pkg/core/model"
	"github.com/communityserve/volunteerhub/pkg/core/services"
)

type createMatchForm struct {
	VolunteerID string `json:"volunteerId" validate:"required"`
	EventID     string `json:"eventId" validate:"required"`
}

// Self-service registrations create the match confirmed; administrator
// assignments create it pending until the volunteer confirms.
func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var form createMatchForm
	if err := s.decodeJSON(r, &form); err != nil {
		s.respondError(w, r, err)
		return
	}

	identity, _ := CurrentIdentity(r)
	initialStatus := model.MatchConfirmed
	if identity.Role == RoleAdmin {
		initialStatus = model.MatchPending
	}

	match, err := services.CreateMatch(r.Context(), s.store, s.sink, s.logger,
		form.VolunteerID, form.EventID, initialStatus)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, newMatchView(*match))
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	var (
		matches []model.Match
		err     error
	)

	switch {
	case r.URL.Query().Get("volunteerId") != "":
		matches, err = services.ListMatchesByVolunteer(r.Context(), s.store, r.URL.Query().Get("volunteerId"))
	case r.URL.Query().Get("eventId") != "":
		matches, err = services.ListMatchesByEvent(r.Context(), s.store, r.URL.Query().Get("eventId"))
	default:
		matches, err = services.ListMatches(r.Context(), s.store)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, newMatchViews(matches))
}

func (s *Server) handleBestMatch(w http.ResponseWriter, r *http.Request) {
	result, err := services.FindBestMatch(r.Context(), s.store, s.logger, chi.URLParam(r, "volunteerID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"event": newEventView(result.Event),
		"score": result.Score,
	})
}

type updateMatchStatusForm struct {
	Status string `json:"status" validate:"required"`
}

func (s *Server) handleUpdateMatchStatus(w http.ResponseWriter, r *http.Request) {
	var form updateMatchStatusForm
	if err := s.decodeJSON(r, &form); err != nil {
		s.respondError(w, r, err)
		return
	}

	match, err := services.UpdateMatchStatus(r.Context(), s.store, s.logger,
		chi.URLParam(r, "id"), model.MatchStatus(form.Status))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, newMatchView(*match))
}

func (s *Server) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	if err := services.DeleteMatch(r.Context(), s.store, s.sink, s.logger, chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package server

import (
	"net/http"
	"strconv"

	"github.com/communityserve/volunteerhub/pkg/core/services"
)

const defaultLeaderboardLimit = 10

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	entries, err := services.Leaderboard(r.Context(), s.store, s.logger, limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, newLeaderboardView(entries))
}

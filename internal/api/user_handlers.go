package api

import (
	"net/http"

	"github.com/shelfmarkapp/shelfmark-server/internal/http/response"
)

// handleGetCurrentUser returns the authenticated member's profile.
func (s *Server) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	user, err := s.authService.Profile(ctx, userID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, user, s.logger)
}

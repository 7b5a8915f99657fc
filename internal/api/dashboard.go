package api

import (
	"net/http"

	"github.com/IlyasAtabaev731/expense-tracker/internal/domain/models"
)

func (s *APIServer) dashboardHandler() identityHandler {
	return func(w http.ResponseWriter, r *http.Request, id models.Identity) {
		summary, err := s.dashboard.Summary(r.Context(), id.UserID)
		if err != nil {
			s.serverError(w, r, "Failed to build dashboard", err)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

package http

import (
	"net/http"

	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/internal/utils"
)

// currentUser returns the authenticated user. Must be mounted behind auth.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	user, err := h.services.AuthService.CurrentUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err = utils.WriteJSON(w, user, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing response failed")
	}
}

package http

import (
	"net/http"

	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
)

// chat upgrades the request to a websocket and joins the broadcast room
// under the client_id path parameter.
func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "client_id")
	if clientID == "" {
		writeError(w, r, ErrEmptyClientID)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("client_id", clientID).Msg("websocket upgrade failed")
		return
	}

	h.registry.ServeChat(r.Context(), clientID, conn)
}

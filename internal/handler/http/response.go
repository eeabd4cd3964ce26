package http

import (
	"net/http"

	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/internal/utils"
	"github.com/MKhiriev/go-auth-hub/models"
)

// writeSuccess writes the success envelope.
func writeSuccess(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	if _, err := utils.WriteJSON(w, models.BaseResponse{
		Status:  models.StatusSuccess,
		Message: message,
		Data:    data,
	}, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing response failed")
	}
}

// writeError logs err and writes the failure envelope with the status
// chosen by statusFromError.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeStatus(w, r, statusFromError(err), err)
}

// writeStatus writes the failure envelope for err with an explicit status.
func writeStatus(w http.ResponseWriter, r *http.Request, status int, err error) {
	message := messageFromError(err, status)

	log := logger.FromRequest(r)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("method", r.Method).Str("uri", r.RequestURI).Int("status", status).Msg(message)

	if _, err = utils.WriteJSON(w, models.BaseResponse{
		Status:  models.StatusFailed,
		Message: message,
		Data:    nil,
	}, status); err != nil {
		log.Err(err).Msg("writing response failed")
	}
}

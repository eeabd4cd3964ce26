package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/internal/utils"
	"github.com/MKhiriev/go-auth-hub/models"
)

// decodeJSON reads the request body into dst, reporting failures as
// ErrInvalidJSON.
func decodeJSON(r *http.Request, dst any) error {
	if err := utils.DecodeJSON(r, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	var req models.EmailVerifyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.VerifyEmail(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, "OTP sent successfully", nil)
}

func (h *Handler) verifyEmailOTP(w http.ResponseWriter, r *http.Request) {
	var req models.EmailVerifyOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.VerifyEmailOTP(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, "Email verified successfully", nil)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.RegisterUser(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", user.UserID).Msg("user registered")
	writeSuccess(w, r, http.StatusOK, "User registered successfully", nil)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, "User logged in successfully", token)
}

// token is the OAuth2 password-grant endpoint. It takes form fields
// "username" and "password" and answers with the bare token body.
func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidForm, err))
		return
	}

	token, err := h.services.AuthService.Login(r.Context(), models.LoginRequest{
		Email:    r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err = utils.WriteJSON(w, token, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing response failed")
	}
}

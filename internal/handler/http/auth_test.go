// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/MKhiriev/go-auth-hub/internal/service"
	"github.com/MKhiriev/go-auth-hub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func jsonBody(t *testing.T, v any) *strings.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return strings.NewReader(string(b))
}

// ─────────────────────────────────────────────
// verify-email
// ─────────────────────────────────────────────

func TestVerifyEmail_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, auth := newHandlerWithAuth(t, ctrl)

	req := models.EmailVerifyRequest{FirstName: "Ann", Email: "ann@example.com"}
	auth.EXPECT().VerifyEmail(gomock.Any(), req).Return(nil)

	rec := httptest.NewRecorder()
	h.verifyEmail(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/verify-email", jsonBody(t, req)))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, models.StatusSuccess, resp.Status)
	assert.Equal(t, "OTP sent successfully", resp.Message)
	assert.Nil(t, resp.Data)
}

func TestVerifyEmail_DuplicateActiveUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, auth := newHandlerWithAuth(t, ctrl)

	auth.EXPECT().VerifyEmail(gomock.Any(), gomock.Any()).Return(service.ErrDuplicateActiveUser)

	rec := httptest.NewRecorder()
	h.verifyEmail(rec, httptest.NewRequest(http.MethodPost, "/", jsonBody(t, models.EmailVerifyRequest{Email: "a@b.c"})))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, models.StatusFailed, resp.Status)
	assert.Equal(t, service.ErrDuplicateActiveUser.Msg, resp.Message)
}

func TestAuthEndpoints_InvalidJSON(t *testing.T) {
	handlers := map[string]func(h *Handler) http.HandlerFunc{
		"verify-email":     func(h *Handler) http.HandlerFunc { return h.verifyEmail },
		"verify-email-otp": func(h *Handler) http.HandlerFunc { return h.verifyEmailOTP },
		"register":         func(h *Handler) http.HandlerFunc { return h.register },
		"login":            func(h *Handler) http.HandlerFunc { return h.login },
	}
	bodies := map[string]string{
		"malformed":     "{invalid json}",
		"empty":         "",
		"two documents": `{"email":"a"}{"email":"b"}`,
	}

	for name, handler := range handlers {
		for bodyName, body := range bodies {
			t.Run(name+"/"+bodyName, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				h, _ := newHandlerWithAuth(t, ctrl)

				rec := httptest.NewRecorder()
				handler(h)(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, ErrInvalidJSON.Error(), decodeEnvelope(t, rec).Message)
			})
		}
	}
}

// ─────────────────────────────────────────────
// verify-email-otp
// ─────────────────────────────────────────────

func TestVerifyEmailOTP(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantMsg    string
	}{
		{"valid code", nil, http.StatusOK, "Email verified successfully"},
		{"wrong code", service.ErrOTPMismatch, http.StatusBadRequest, "invalid otp"},
		{"expired code", service.ErrOTPExpired, http.StatusBadRequest, "otp expired"},
		{"no code", service.ErrOTPNotFound, http.StatusBadRequest, "otp not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			h, auth := newHandlerWithAuth(t, ctrl)

			req := models.EmailVerifyOTPRequest{Email: "ann@example.com", OTP: "123456"}
			auth.EXPECT().VerifyEmailOTP(gomock.Any(), req).Return(tt.serviceErr)

			rec := httptest.NewRecorder()
			h.verifyEmailOTP(rec, httptest.NewRequest(http.MethodPost, "/", jsonBody(t, req)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeEnvelope(t, rec).Message)
		})
	}
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, auth := newHandlerWithAuth(t, ctrl)

	req := models.RegisterRequest{Email: "ann@example.com", Password: "pw", OTP: "123456", Role: models.RoleUser}
	auth.EXPECT().RegisterUser(gomock.Any(), req).Return(models.User{UserID: 1, Email: req.Email}, nil)

	rec := httptest.NewRecorder()
	h.register(rec, httptest.NewRequest(http.MethodPost, "/", jsonBody(t, req)))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "User registered successfully", resp.Message)
	assert.Nil(t, resp.Data)
	assert.NotContains(t, rec.Body.String(), "pw")
}

func TestRegister_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"invalid data", service.ErrInvalidDataProvided, http.StatusBadRequest},
		{"otp mismatch", service.ErrOTPMismatch, http.StatusBadRequest},
		{"duplicate user", service.ErrDuplicateActiveUser, http.StatusBadRequest},
		{"storage failure", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			h, auth := newHandlerWithAuth(t, ctrl)

			auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(models.User{}, tt.serviceErr)

			rec := httptest.NewRecorder()
			h.register(rec, httptest.NewRequest(http.MethodPost, "/", jsonBody(t, models.RegisterRequest{Email: "a"})))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, models.StatusFailed, decodeEnvelope(t, rec).Status)
			assert.NotContains(t, rec.Body.String(), "db down")
		})
	}
}

// ─────────────────────────────────────────────
// login / token
// ─────────────────────────────────────────────

var testTokenResponse = models.TokenResponse{
	AccessToken: "signed.jwt.token",
	TokenType:   "Bearer",
	Role:        models.RoleUser,
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, auth := newHandlerWithAuth(t, ctrl)

	req := models.LoginRequest{Email: "ann@example.com", Password: "pw"}
	auth.EXPECT().Login(gomock.Any(), req).Return(testTokenResponse, nil)

	rec := httptest.NewRecorder()
	h.login(rec, httptest.NewRequest(http.MethodPost, "/", jsonBody(t, req)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status  string               `json:"status"`
		Message string               `json:"message"`
		Data    models.TokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "User logged in successfully", resp.Message)
	assert.Equal(t, testTokenResponse, resp.Data)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, auth := newHandlerWithAuth(t, ctrl)

	auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.TokenResponse{}, service.ErrInvalidCredentials)

	rec := httptest.NewRecorder()
	h.login(rec, httptest.NewRequest(http.MethodPost, "/", jsonBody(t, models.LoginRequest{Email: "a", Password: "b"})))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decodeEnvelope(t, rec).Message)
}

func TestToken_FormLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, auth := newHandlerWithAuth(t, ctrl)

	auth.EXPECT().Login(gomock.Any(), models.LoginRequest{Email: "ann@example.com", Password: "pw"}).
		Return(testTokenResponse, nil)

	form := url.Values{"username": {"ann@example.com"}, "password": {"pw"}, "grant_type": {"password"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	h.token(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, testTokenResponse, got, "token endpoint answers without the envelope")
}

func TestToken_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, auth := newHandlerWithAuth(t, ctrl)

	auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.TokenResponse{}, service.ErrInvalidCredentials)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("username=a&password=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	h.token(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

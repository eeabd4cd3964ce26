package models

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// BaseResponse is the envelope of every JSON API response.
type BaseResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// TokenResponse is returned after a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        Role   `json:"role"`
}

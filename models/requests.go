package models

// EmailVerifyRequest asks for a verification code to be sent to Email.
type EmailVerifyRequest struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
}

// EmailVerifyOTPRequest checks a received code without consuming it.
type EmailVerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// RegisterRequest completes registration using a previously issued code.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	OTP       string `json:"otp"`
	Role      Role   `json:"role"`
}

// LoginRequest carries email/password credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

package models

import "time"

// OneTimeCode is the single pending verification code of an email address.
// At most one row exists per email; issuing a new code replaces the old one.
type OneTimeCode struct {
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the OneTimeCode model.
func (o OneTimeCode) TableName() string {
	return "temp_user_otps"
}

// IsExpired reports whether the code is older than ttl at the moment now.
// A code aged exactly ttl is still valid.
func (o OneTimeCode) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.Sub(o.CreatedAt) > ttl
}

package models

import "time"

// User is an account registered through the email-verification flow.
// Password always holds a bcrypt credential, never plaintext.
type User struct {
	// UserID is the server-assigned identifier, carried as the token subject.
	UserID int64 `json:"id"`

	// Email is unique across all users.
	Email string `json:"email"`

	// Password is the stored credential. Never serialized.
	Password string `json:"-"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Role is carried in issued tokens; no authorization is derived from it here.
	Role Role `json:"role"`

	// IsActive becomes true once registration completes with a valid code.
	// Inactive rows may be overwritten by a later registration.
	IsActive bool `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

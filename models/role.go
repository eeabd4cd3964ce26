package models

// Role is the coarse user classification carried in session tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// OrDefault returns r, or [RoleUser] when r is empty.
func (r Role) OrDefault() Role {
	if r == "" {
		return RoleUser
	}
	return r
}

package model

import "time"

// Role is the closed set of account roles. It is stored as a string column
// but only the three constants below are valid values; everything that
// branches on a role goes through this type rather than comparing loose
// strings.
type Role string

const (
	RoleClient    Role = "CLIENT"
	RoleVIPClient Role = "VIP_CLIENT"
	RoleAdmin     Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleVIPClient, RoleAdmin:
		return true
	}
	return false
}

// User represents an application user record as stored in the `users` table.
// PasswordHash never leaves the service; handlers build separate response
// types that omit it.
//
// An account is created inactive and becomes active exactly once, when the
// email address is verified.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email (unique, normalized lower-case)
	PasswordHash string    // users.password_hash (bcrypt)
	Role         Role      // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

package model

import "time"

// Role is the access level of a lab member.
type Role string

const (
	RoleIntern Role = "intern"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleIntern, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// User represents a lab member account.
// PasswordHash is never serialized; only the bcrypt hash is ever stored.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

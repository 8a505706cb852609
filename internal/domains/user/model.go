package user

import (
	"time"

	"github.com/google/uuid"
)

// User is an operator account (maps table users). Participants are not
// users; they never log in.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name"`
	Role         Role       `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Role string

const (
	// RoleOperator issues and manages certificates and events.
	RoleOperator Role = "operator"
	// RoleAdmin additionally manages accounts and maintenance jobs.
	RoleAdmin Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleOperator || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}

// HasPermission reports whether the role satisfies the required one.
// Admin implies operator.
func (r Role) HasPermission(required Role) bool {
	if r == RoleAdmin {
		return true
	}
	return r == required
}

// Sanitize removes sensitive data before sending to a client.
func (u *User) Sanitize() {
	u.PasswordHash = ""
}

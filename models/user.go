package models

import (
	"time"
)

type Role string

const (
	RoleProvider Role = "provider"
	RoleCustomer Role = "customer"
)

// IsValid reports whether the role is one registration accepts. Role is
// fixed at creation; there is no update path.
func (r Role) IsValid() bool {
	return r == RoleProvider || r == RoleCustomer
}

type User struct {
	Email     string    `json:"email" gorm:"primaryKey"`
	Password  string    `json:"password,omitempty"` // bcrypt hash, stripped from responses
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// The backend and the storefront both expect prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// User roles
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User is the signed-in account as returned by the backend profile endpoint
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"email"`
	Role  string `json:"rol"`
}

// IsAdmin reports whether the user may use the admin dashboard
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserEnvelope matches backend responses shaped as {"usuario": {...}}
type UserEnvelope struct {
	User *User `json:"usuario"`
}

// Credentials is the login payload
type Credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Registration is the sign up payload
type Registration struct {
	Name     string `json:"nombre" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserPayload is what the admin sends when creating or editing an account
type UserPayload struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Role     string `json:"rol"`
	Password string `json:"password,omitempty"`
}

package domain

import "time"

const (
	RoleAdmin   = "admin"
	RolePremium = "premium"
	RoleUser    = "user"
)

// User models a registered identity. Email is the unique lookup key; the
// admin role bypasses ownership checks everywhere.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Age          int       `json:"age,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CartID       string    `json:"cart_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

package handler

import "github.com/tiendavale/ecommerce-api/internal/core/domain"

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Age       int    `json:"age"        validate:"omitempty,gte=0"`
	Password  string `json:"password"   validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// rejectionResponse reports an authentication rejection: an expected
// negative outcome, not a server fault.
type rejectionResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

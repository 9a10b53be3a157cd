package ports

import (
	"context"

	"github.com/tiendavale/ecommerce-api/internal/core/domain"
)

// RegisterInput carries the profile and credential for a new registration.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Age       int
	Password  string
}

// Outcome is the tagged result of an authentication strategy. Exactly one of
// three states holds:
//   - accepted: Accepted is true and Identity is set.
//   - rejected: Accepted is false and Reason explains why.
//   - failed:   the strategy returned a non-nil error instead.
//
// Expected conditions (wrong password, duplicate registration, unknown user)
// are rejections, never errors; only infrastructure failures are errors.
type Outcome struct {
	Accepted bool
	Identity *domain.User
	Reason   string
}

// ReasonMissingCredentials is the canonical rejection reason for an empty
// email or password. Transport layers map it to a 400-class response rather
// than a conflict.
const ReasonMissingCredentials = "email and password are required"

// Accepted builds an accepted outcome carrying the resolved identity.
func Accepted(identity *domain.User) Outcome {
	return Outcome{Accepted: true, Identity: identity}
}

// Rejected builds a rejected outcome with a human-readable reason.
func Rejected(reason string) Outcome {
	return Outcome{Reason: reason}
}

// AuthService is the authentication strategy manager: three named strategies
// plus the identity contract used to persist a session across requests.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (Outcome, error)
	Login(ctx context.Context, email, password string) (Outcome, error)
	ResetPassword(ctx context.Context, email, newPassword string) (Outcome, error)

	// SerializeIdentity extracts the persistent id stored in the session.
	SerializeIdentity(user *domain.User) string
	// DeserializeIdentity loads the user for a serialized id. A missing user
	// yields (nil, nil); the caller must treat that as unauthenticated.
	DeserializeIdentity(ctx context.Context, id string) (*domain.User, error)
}

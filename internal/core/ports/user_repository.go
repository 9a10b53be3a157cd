package ports

import (
	"context"

	"github.com/tiendavale/ecommerce-api/internal/core/domain"
)

// UserRepository defines the persistence contract for user identities.
// Lookups for missing users return domain.ErrUserNotFound; Create returns
// domain.ErrUserExists when the email is already taken.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

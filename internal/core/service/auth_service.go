package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tiendavale/ecommerce-api/internal/core/domain"
	"github.com/tiendavale/ecommerce-api/internal/core/ports"
)

// ResetLimiter throttles password resets per email (Redis-backed).
type ResetLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
	Mark(ctx context.Context, email string) error
}

// AuthService implements the three authentication strategies and the session
// identity contract. adminEmail is the reserved administrative address:
// registration against it is rejected unconditionally, and the account
// itself is seeded at startup so login verifies it like any other user.
type AuthService struct {
	users      ports.UserRepository
	carts      ports.CartProvisioner
	resetGuard ResetLimiter
	adminEmail string
	log        zerolog.Logger
}

func NewAuthService(users ports.UserRepository, carts ports.CartProvisioner, resetGuard ResetLimiter, adminEmail string, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		carts:      carts,
		resetGuard: resetGuard,
		adminEmail: adminEmail,
		log:        log,
	}
}

// Register provisions a cart, hashes the credential and persists a new user.
// Reuse of an existing email, or of the reserved administrative address, is
// a rejection; store failures surface as errors.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (ports.Outcome, error) {
	if input.Email == "" || input.Password == "" {
		return ports.Rejected(ports.ReasonMissingCredentials), nil
	}

	// The reserved address is refused even though no lookup would find it.
	if input.Email == s.adminEmail {
		return ports.Rejected("email already in use"), nil
	}

	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return ports.Outcome{}, err
	}
	if existing != nil {
		s.log.Debug().Str("email", input.Email).Msg("registration rejected: email taken")
		return ports.Rejected("email already in use"), nil
	}

	cartID, err := s.carts.ProvisionCart(ctx)
	if err != nil {
		return ports.Outcome{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return ports.Outcome{}, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Age:          input.Age,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CartID:       cartID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		// A concurrent registration can win the unique email index.
		if errors.Is(err, domain.ErrUserExists) {
			return ports.Rejected("email already in use"), nil
		}
		return ports.Outcome{}, err
	}

	s.log.Info().Str("email", created.Email).Str("cart_id", cartID).Msg("user registered")
	return ports.Accepted(created), nil
}

// Login verifies the credential against the stored hash. The seeded admin
// account takes the same path as everyone else.
func (s *AuthService) Login(ctx context.Context, email, password string) (ports.Outcome, error) {
	if email == "" || password == "" {
		return ports.Rejected(ports.ReasonMissingCredentials), nil
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return ports.Rejected("user not found"), nil
		}
		return ports.Outcome{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return ports.Rejected("invalid credentials"), nil
	}

	return ports.Accepted(user), nil
}

// ResetPassword replaces the stored hash for an existing user and returns
// the re-read identity.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) (ports.Outcome, error) {
	if email == "" || newPassword == "" {
		return ports.Rejected("email and new password are required"), nil
	}

	if s.resetGuard != nil {
		allowed, err := s.resetGuard.Allow(ctx, email)
		if err != nil {
			return ports.Outcome{}, err
		}
		if !allowed {
			return ports.Rejected("a reset was requested recently, try again later"), nil
		}
	}

	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return ports.Rejected("user not found"), nil
		}
		return ports.Outcome{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ports.Outcome{}, err
	}

	if err := s.users.UpdatePassword(ctx, email, string(hash)); err != nil {
		return ports.Outcome{}, err
	}

	updated, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return ports.Outcome{}, err
	}

	if s.resetGuard != nil {
		if err := s.resetGuard.Mark(ctx, email); err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("failed to mark password reset")
		}
	}

	s.log.Info().Str("email", email).Msg("password reset")
	return ports.Accepted(updated), nil
}

// SerializeIdentity extracts the persistent id stored in the session.
func (s *AuthService) SerializeIdentity(user *domain.User) string {
	return user.ID
}

// DeserializeIdentity loads the full user for a serialized id. A missing
// user yields (nil, nil).
func (s *AuthService) DeserializeIdentity(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// EnsureAdminAccount seeds the reserved administrative account with a bcrypt
// hash, insert-if-absent. Called once at startup.
func (s *AuthService) EnsureAdminAccount(ctx context.Context, password string) error {
	if s.adminEmail == "" || password == "" {
		return nil
	}

	if _, err := s.users.FindByEmail(ctx, s.adminEmail); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.users.Create(ctx, &domain.User{
		Email:        s.adminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrUserExists) {
		return nil
	}
	if err != nil {
		return err
	}

	s.log.Info().Str("email", s.adminEmail).Msg("admin account seeded")
	return nil
}

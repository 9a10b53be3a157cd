package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultResetCooldown = 15 * time.Minute

// ResetGuard throttles password resets per email, backed by Redis.
// Key format: pwreset:<email>
type ResetGuard struct {
	client   *redis.Client
	cooldown time.Duration
}

// NewResetGuard creates a ResetGuard wrapping the given Redis client. A
// non-positive cooldown falls back to the default.
func NewResetGuard(client *redis.Client, cooldown time.Duration) *ResetGuard {
	if cooldown <= 0 {
		cooldown = defaultResetCooldown
	}
	return &ResetGuard{client: client, cooldown: cooldown}
}

// Allow reports whether a reset for this email is outside the cooldown.
func (g *ResetGuard) Allow(ctx context.Context, email string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(email)).Result()
	if err != nil {
		return false, fmt.Errorf("reset guard check: %w", err)
	}
	return n == 0, nil
}

// Mark records that a reset happened for this email (expires after the
// cooldown).
func (g *ResetGuard) Mark(ctx context.Context, email string) error {
	return g.client.Set(ctx, g.key(email), "1", g.cooldown).Err()
}

func (g *ResetGuard) key(email string) string {
	return "pwreset:" + email
}

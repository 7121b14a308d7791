package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-calculations/internal/logger"
)

// TokenRevocationRepository keeps revoked bearer tokens in Redis until they expire.
type TokenRevocationRepository struct {
	client *redis.Client
}

// NewTokenRevocationRepository creates a new repository instance
func NewTokenRevocationRepository(client *redis.Client) *TokenRevocationRepository {
	return &TokenRevocationRepository{client: client}
}

// tokens are stored by digest only
func revokedTokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked_token:" + hex.EncodeToString(sum[:])
}

// Revoke marks the token as revoked for ttl.
func (r *TokenRevocationRepository) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	key := revokedTokenKey(token)
	err := r.client.Set(ctx, key, 1, ttl).Err()

	logger.FromContext(ctx).Infow("redis set",
		"key", key,
		"ttl", ttl,
		"error", err,
	)

	return err
}

// IsRevoked reports whether the token has been revoked.
func (r *TokenRevocationRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	key := revokedTokenKey(token)
	n, err := r.client.Exists(ctx, key).Result()

	logger.FromContext(ctx).Infow("redis exists",
		"key", key,
		"result", n,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return n > 0, nil
}

package services

import (
	"context"
	"time"

	"github.com/sbilibin2017/gw-calculations/internal/jwt"
	"github.com/sbilibin2017/gw-calculations/internal/logger"
	"github.com/sbilibin2017/gw-calculations/internal/models"
)

//go:generate mockgen -source=gate.go -destination=mock_gate.go -package=services

// TokenVerifier verifies access tokens and returns their claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (map[string]any, error)
}

// RevocationStore tracks tokens revoked before their expiry.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Gate resolves the user behind a bearer token.
type Gate struct {
	tokens      TokenVerifier
	users       UserFinder
	revocations RevocationStore
	now         func() time.Time
}

// NewGate creates a new Gate. revocations may be nil, which disables logout.
func NewGate(tokens TokenVerifier, users UserFinder, revocations RevocationStore) *Gate {
	return &Gate{
		tokens:      tokens,
		users:       users,
		revocations: revocations,
		now:         time.Now,
	}
}

// CurrentUser returns the user named by the token subject.
// Every token or lookup failure yields ErrUnauthorized.
func (g *Gate) CurrentUser(ctx context.Context, token string) (*models.UserPublic, error) {
	log := logger.FromContext(ctx)

	claims, err := g.tokens.Verify(ctx, token)
	if err != nil {
		log.Warnw("token verification failed", "err", err)
		return nil, ErrUnauthorized
	}
	username, ok := jwt.Subject(claims)
	if !ok {
		log.Warnw("token has no subject")
		return nil, ErrUnauthorized
	}

	if g.revocations != nil {
		revoked, err := g.revocations.IsRevoked(ctx, token)
		if err != nil {
			log.Errorw("failed to check token revocation", "err", err)
			return nil, err
		}
		if revoked {
			log.Warnw("token revoked", "username", username)
			return nil, ErrUnauthorized
		}
	}

	user, err := g.users.GetByUsernameOrEmail(ctx, username, username)
	if err != nil {
		log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		log.Warnw("token subject not found", "username", username)
		return nil, ErrUnauthorized
	}

	return user.Public(), nil
}

// RequireActive rejects inactive users.
func (g *Gate) RequireActive(user *models.UserPublic) (*models.UserPublic, error) {
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	return user, nil
}

// CurrentActiveUser combines CurrentUser and RequireActive.
func (g *Gate) CurrentActiveUser(ctx context.Context, token string) (*models.UserPublic, error) {
	user, err := g.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	return g.RequireActive(user)
}

// Revoke invalidates the token until it would have expired.
func (g *Gate) Revoke(ctx context.Context, token string) error {
	if g.revocations == nil {
		logger.FromContext(ctx).Warnw("token revocation store not configured, skipping revoke")
		return nil
	}

	claims, err := g.tokens.Verify(ctx, token)
	if err != nil {
		return ErrUnauthorized
	}
	exp, ok := jwt.ExpiresAt(claims)
	if !ok {
		return ErrUnauthorized
	}

	return g.revocations.Revoke(ctx, token, exp.Sub(g.now()))
}

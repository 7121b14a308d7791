package jwt

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultExpiration is used when no token lifetime is configured.
const DefaultExpiration = 30 * time.Minute

// ErrInvalidToken is returned for any decode, signature, algorithm or expiry failure.
var ErrInvalidToken = errors.New("invalid token")

// JWT issues and verifies signed bearer tokens.
type JWT struct {
	secretKey []byte            // Secret key for signing tokens
	method    jwt.SigningMethod // HMAC signing method
	exp       time.Duration     // Default token lifetime
}

// Option configures a JWT.
type Option func(*JWT) error

// WithSecretKey sets the signing secret.
func WithSecretKey(secretKey string) Option {
	return func(j *JWT) error {
		j.secretKey = []byte(secretKey)
		return nil
	}
}

// WithAlgorithm sets the signing algorithm. Only the HMAC family is accepted.
func WithAlgorithm(alg string) Option {
	return func(j *JWT) error {
		method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
		if !ok {
			return fmt.Errorf("unsupported signing algorithm %q", alg)
		}
		j.method = method
		return nil
	}
}

// WithExpiration sets the default token lifetime.
func WithExpiration(exp time.Duration) Option {
	return func(j *JWT) error {
		j.exp = exp
		return nil
	}
}

// New creates a new JWT instance
func New(opts ...Option) (*JWT, error) {
	j := &JWT{
		method: jwt.SigningMethodHS256,
		exp:    DefaultExpiration,
	}
	for _, opt := range opts {
		if err := opt(j); err != nil {
			return nil, err
		}
	}
	return j, nil
}

// Issue signs claims plus an "exp" claim set to now+ttl and a unique "jti"
// unless the caller supplied one. A zero ttl means the default expiration.
func (j *JWT) Issue(ctx context.Context, claims map[string]any, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = j.exp
	}

	toEncode := make(jwt.MapClaims, len(claims)+2)
	maps.Copy(toEncode, claims)
	toEncode["exp"] = time.Now().Add(ttl).Unix()
	// tokens issued in the same second must still be revocable one by one
	if _, ok := toEncode["jti"]; !ok {
		toEncode["jti"] = uuid.NewString()
	}

	token := jwt.NewWithClaims(j.method, toEncode)
	return token.SignedString(j.secretKey)
}

// Verify parses the token and returns its claims if it is valid.
func (j *JWT) Verify(ctx context.Context, tokenString string) (map[string]any, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	}, jwt.WithValidMethods([]string{j.method.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Subject returns the "sub" claim.
func Subject(claims map[string]any) (string, bool) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", false
	}
	return sub, true
}

// ExpiresAt returns the "exp" claim as time.
func ExpiresAt(claims map[string]any) (time.Time, bool) {
	exp, err := jwt.MapClaims(claims).GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// GetTokenFromRequest extracts the token string from the Authorization header
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}

package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-calculations/internal/logger"
	"github.com/sbilibin2017/gw-calculations/internal/models"
	"github.com/sbilibin2017/gw-calculations/internal/services"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=middlewares

// Tokener extracts the bearer token from a request.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// Authorizer resolves the active user behind a token.
type Authorizer interface {
	CurrentActiveUser(ctx context.Context, token string) (*models.UserPublic, error)
}

type userKey struct{}

type tokenKey struct{}

// AuthMiddleware returns a middleware that admits only requests carrying a
// valid token of an active user. The user and the raw token are stored in the
// request context.
func AuthMiddleware(tokener Tokener, authorizer Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromContext(ctx)

			token, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				log.Warnw("authorization failed", "err", err)
				writeUnauthorized(w)
				return
			}

			user, err := authorizer.CurrentActiveUser(ctx, token)
			if err != nil {
				switch {
				case errors.Is(err, services.ErrUnauthorized):
					writeUnauthorized(w)
				case errors.Is(err, services.ErrInactiveUser):
					writeError(w, http.StatusBadRequest, "Inactive user")
				default:
					log.Errorw("authorization failed", "err", err)
					writeError(w, http.StatusInternalServerError, "Internal server error")
				}
				return
			}

			ctx = context.WithValue(ctx, userKey{}, user)
			ctx = context.WithValue(ctx, tokenKey{}, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user. Returns nil if not present.
func UserFromContext(ctx context.Context) *models.UserPublic {
	user, _ := ctx.Value(userKey{}).(*models.UserPublic)
	return user
}

// TokenFromContext returns the bearer token the request was authorized with.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// WithUser stores the user in the context.
func WithUser(ctx context.Context, user *models.UserPublic) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, "Could not validate credentials")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

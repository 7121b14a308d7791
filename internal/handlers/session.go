package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-calculations/internal/logger"
	"github.com/sbilibin2017/gw-calculations/internal/middlewares"
	"github.com/sbilibin2017/gw-calculations/internal/services"
)

//go:generate mockgen -source=session.go -destination=mock_session.go -package=handlers

// Revoker defines the interface that the logout service must implement.
type Revoker interface {
	Revoke(ctx context.Context, token string) error
}

// NewMeHandler returns the authenticated user.
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserPublic "Current user"
// @Failure 400 {object} handlers.ErrorResponse "Inactive user"
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Router /auth/me [get]
func NewMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

// NewLogoutHandler revokes the token the request was authorized with.
// @Summary Logout
// @Description Revokes the current access token until it expires
// @Tags auth
// @Security BearerAuth
// @Success 204 "Token revoked"
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /auth/logout [post]
func NewLogoutHandler(svc Revoker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middlewares.TokenFromContext(r.Context())

		if err := svc.Revoke(r.Context(), token); err != nil {
			switch {
			case errors.Is(err, services.ErrUnauthorized):
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeError(w, http.StatusUnauthorized, "Could not validate credentials")
			default:
				logger.FromContext(r.Context()).Errorw("failed to revoke token", "err", err)
				writeError(w, http.StatusInternalServerError, msgInternalError)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

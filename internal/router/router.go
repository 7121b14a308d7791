package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sbilibin2017/gw-calculations/internal/handlers"
	"github.com/sbilibin2017/gw-calculations/internal/middlewares"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/sbilibin2017/gw-calculations/docs"
)

// AuthService is what the public auth routes delegate to.
type AuthService interface {
	handlers.Registerer
	handlers.Authenticator
}

// Gate resolves and revokes bearer tokens.
type Gate interface {
	middlewares.Authorizer
	handlers.Revoker
}

// Config holds the collaborators of the HTTP API.
type Config struct {
	Log          *zap.SugaredLogger
	Tx           func(http.Handler) http.Handler // optional, wraps every API route
	Tokener      middlewares.Tokener
	Auth         AuthService
	Gate         Gate
	Calculations handlers.CalculationManager
	SwaggerURL   string
}

// New builds the HTTP router.
func New(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(cfg.Log))

	r.Group(func(r chi.Router) {
		if cfg.Tx != nil {
			r.Use(cfg.Tx)
		}

		// Public routes
		r.Post("/auth/register", handlers.NewRegisterHandler(cfg.Auth))
		r.Post("/auth/login", handlers.NewLoginHandler(cfg.Auth))
		r.Post("/auth/token", handlers.NewTokenHandler(cfg.Auth))

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(cfg.Tokener, cfg.Gate))

			r.Post("/auth/logout", handlers.NewLogoutHandler(cfg.Gate))
			r.Get("/auth/me", handlers.NewMeHandler())

			r.Route("/calculations", func(r chi.Router) {
				r.Get("/", handlers.NewListCalculationsHandler(cfg.Calculations))
				r.Post("/", handlers.NewCreateCalculationHandler(cfg.Calculations))
				r.Get("/{id}", handlers.NewGetCalculationHandler(cfg.Calculations))
				r.Put("/{id}", handlers.NewUpdateCalculationHandler(cfg.Calculations))
				r.Delete("/{id}", handlers.NewDeleteCalculationHandler(cfg.Calculations))
			})
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(cfg.SwaggerURL)))

	return r
}

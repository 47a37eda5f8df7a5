package api

import (
	"applytrack/internal/api/handlers"
	"applytrack/internal/auth"
	"applytrack/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(tokens *auth.Manager, userService services.UserServiceProvider, appService services.ApplicationServiceProvider, allowedOrigin string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS restricted to the configured frontend origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokens)
	appHandler := handlers.NewApplicationHandler(appService)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Application routes require a valid bearer token
	r.Route("/applications", func(r chi.Router) {
		r.Use(tokens.Middleware)
		r.Get("/", appHandler.GetAll)
		r.Post("/", appHandler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", appHandler.Update)
			r.Delete("/", appHandler.Delete)
		})
	})

	return r
}

package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	_ "github.com/dcastano/portfolio-auth/docs"
	"github.com/dcastano/portfolio-auth/internal/api/auth"
	"github.com/dcastano/portfolio-auth/internal/api/health"
	"github.com/dcastano/portfolio-auth/internal/config"
	"github.com/dcastano/portfolio-auth/internal/store"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRoutes wires the user store and handlers into a chi router. The store
// is injected explicitly; nothing here can reach its Clear method.
func SetupRoutes(users *store.UserStore) http.Handler {
	r := chi.NewRouter()

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // max time in seconds for OPTIONS preflight response cache
	})

	r.Use(corsMiddleware.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(2 * time.Minute))

	// init services & handlers
	authService := auth.NewAuthService(config.ResolveJWTSecret)
	authHandler := auth.NewAuthHandler(users, authService)

	r.Get("/health", health.HealthHandler)

	// public auth routes
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	// protected auth routes
	r.Group(func(r chi.Router) {
		r.Use(authHandler.AuthMiddleware)
		r.Get("/auth/me", authHandler.Me)
	})

	// init swagger
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/index.html", http.StatusMovedPermanently)
	})
	r.Get("/docs/*", httpSwagger.WrapHandler)

	return r
}

package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/resources"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	tokens *services.TokenService,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	modules []resources.Module,
) {
	api := app.Group("/api")

	// Public
	api.Get("/health", healthHandler.Check)
	api.Get("/hello", handlers.Hello)

	// Login, optionally rate limited per IP
	loginHandlers := []fiber.Handler{}
	if cfg.AuthRateLimit > 0 {
		loginHandlers = append(loginHandlers, limiter.New(limiter.Config{
			Max:               cfg.AuthRateLimit,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		}))
	}
	loginHandlers = append(loginHandlers, authHandler.Login)
	api.Post("/authentication", loginHandlers...)

	// Resource modules (JWT required). The gate is a /api prefix middleware, so
	// it must come after the public routes, which end the chain themselves.
	protected := api.Group("", middleware.JWTProtected(tokens))
	for _, m := range modules {
		m.RegisterRoutes(protected, db)
	}
}

package server

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/resources"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/resources/customers"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/resources/products"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/routes"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Modules lists the resource modules served by the API.
func Modules() []resources.Module {
	return []resources.Module{
		customers.New(),
		products.New(),
	}
}

// New wires services, handlers and middleware into a Fiber app.
// The store must already be migrated.
func New(cfg *config.Config, db *gorm.DB, modules []resources.Module) *fiber.App {
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	authService := services.NewAuthService(db, tokens)

	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(db)

	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
		UnescapePath: true,
	})

	if cfg.SentryDSN != "" {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, db, tokens, authHandler, healthHandler, modules)
	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(),
			"error", err.Error(), "trace_id", middleware.RequestID(c))
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}

package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arkan-dev/custodia-api/internal/config"
	"github.com/arkan-dev/custodia-api/internal/handler"
	"github.com/arkan-dev/custodia-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler     *handler.AuthHandler
	CustomerHandler *handler.CustomerHandler
	ActivityHandler *handler.ActivityHandler
	AuthMiddleware  fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided auth middleware, or a no-op if nil
	authMiddleware := deps.AuthMiddleware
	if authMiddleware == nil {
		authMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)
	}

	if deps.CustomerHandler != nil {
		customers := api.Group("/customers", authMiddleware)
		deps.CustomerHandler.Register(customers)
	}

	if deps.ActivityHandler != nil {
		activity := api.Group("/activity-log", authMiddleware)
		deps.ActivityHandler.Register(activity)
	}
}

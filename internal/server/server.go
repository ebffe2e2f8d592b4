// Package server assembles the Fiber application: middleware, API routes and
// the operational endpoints.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"productapi/internal/handlers"
	"productapi/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Options holds the optional parts of the application.
type Options struct {
	// Metrics, when set, instruments every request and serves /metrics.
	Metrics *middleware.Metrics
	// Health is consulted by /health. Nil means always healthy.
	Health HealthCheck
	// AccessLog enables the Fiber request logger.
	AccessLog bool
}

// New builds the Fiber app serving the product API under /api.
func New(productHandler *handlers.ProductHandler, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "productapi",
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	if opts.Metrics != nil {
		app.Use(opts.Metrics.Handler())
		app.Get("/metrics", opts.Metrics.Endpoint())
	}

	app.Get("/health", healthHandler(opts.Health))

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)

	return app
}

// ErrorHandler turns errors returned by handlers into responses. Errors that
// are not *fiber.Error are infrastructure failures: they are logged and answered
// with a bare 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		slog.ErrorContext(c.UserContext(), "request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
		err = fiber.ErrInternalServerError
	}
	return fiber.DefaultErrorHandler(c, err)
}

func healthHandler(check HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		}
		if check != nil {
			if err := check(c.UserContext()); err != nil {
				status["status"] = "unhealthy"
				status["error"] = err.Error()
				return c.Status(fiber.StatusServiceUnavailable).JSON(status)
			}
		}
		return c.JSON(status)
	}
}

package server_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"productapi/internal/handlers"
	"productapi/internal/middleware"
	"productapi/internal/repositories"
	"productapi/internal/server"
	"productapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler() *handlers.ProductHandler {
	service := services.NewProductService(repositories.NewMockProductRepository(), repositories.NoopTransactor{})
	return handlers.NewProductHandler(service)
}

func get(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHealth(t *testing.T) {
	app := server.New(newHandler(), server.Options{})

	status, body := get(t, app, "/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"status":"healthy"`)
}

func TestHealthUnhealthy(t *testing.T) {
	app := server.New(newHandler(), server.Options{
		Health: func(ctx context.Context) error { return errors.New("database unreachable") },
	})

	status, body := get(t, app, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, body, `"status":"unhealthy"`)
	assert.Contains(t, body, "database unreachable")
}

func TestMetricsEndpoint(t *testing.T) {
	app := server.New(newHandler(), server.Options{Metrics: middleware.NewMetrics()})

	status, _ := get(t, app, "/api/products")
	assert.Equal(t, http.StatusOK, status)

	status, body := get(t, app, "/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `route="/api/products`)
}

func TestMetricsDisabled(t *testing.T) {
	app := server.New(newHandler(), server.Options{})

	status, _ := get(t, app, "/metrics")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: server.ErrorHandler})
	app.Get("/infra", func(c *fiber.Ctx) error { return errors.New("pq: connection refused") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })

	status, body := get(t, app, "/infra")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal Server Error", body)

	status, body = get(t, app, "/teapot")
	assert.Equal(t, http.StatusTeapot, status)
	assert.Equal(t, "short and stout", body)
}

func TestPanicRecovered(t *testing.T) {
	app := server.New(newHandler(), server.Options{})
	app.Get("/boom", func(c *fiber.Ctx) error { panic("boom") })

	status, _ := get(t, app, "/boom")
	assert.Equal(t, http.StatusInternalServerError, status)
}

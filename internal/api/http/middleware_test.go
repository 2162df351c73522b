package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/doutly/doutly-service/internal/observability"
	apperrors "github.com/doutly/doutly-service/pkg/util"
)

func newObservedApp(t *testing.T) (*fiber.App, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New()
	RegisterMiddlewares(app, zap.New(core), observability.NewMetrics(), 0)
	return app, logs
}

func TestRequestLoggerRecordsConvertedErrorStatus(t *testing.T) {
	app, logs := newObservedApp(t)
	app.Get("/leads/:id", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("lead", nil)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/leads/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 404, entries[0].ContextMap()["status"])
}

func TestRequestLoggerRecordsSuccessStatus(t *testing.T) {
	app, logs := newObservedApp(t)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": "ok"})
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 200, entries[0].ContextMap()["status"])
}

func TestErrorMiddlewareRendersDomainError(t *testing.T) {
	app, _ := newObservedApp(t)
	app.Post("/doubts", func(c *fiber.Ctx) error {
		return apperrors.NewValidationError("question required", nil)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/doubts", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

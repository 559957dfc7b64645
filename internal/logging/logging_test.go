package logging

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func newLoggedApp(log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fiberErr, ok := err.(*fiber.Error); ok {
				code = fiberErr.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(RequestLogger(log))
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "note not found")
	})
	return app
}

func TestRequestLogger_SuccessStatus(t *testing.T) {
	log, hook := test.NewNullLogger()
	app := newLoggedApp(log)

	_, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, fiber.StatusOK, entry.Data["status"])
	require.NotEmpty(t, entry.Data["request_id"])
}

func TestRequestLogger_ErrorStatus(t *testing.T) {
	log, hook := test.NewNullLogger()
	app := newLoggedApp(log)

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// The logged status must match what the error handler renders, not
	// the status the response carried before the error surfaced.
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, fiber.StatusNotFound, entry.Data["status"])
	require.Equal(t, "note not found", entry.Data["error"])
}

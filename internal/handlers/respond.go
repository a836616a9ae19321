package handlers

import (
	"log/slog"

	"github.com/dormmarket/dormmarket-backend/internal/services"
	"github.com/dormmarket/dormmarket-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
	})
}

func failValidation(c *fiber.Ctx, fields validation.Errors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"message": "Validation Error",
		"errors":  fields,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": message,
	})
}

func serverError(c *fiber.Ctx, err error) error {
	slog.Error("request failed", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Server Error",
	})
}

// fail maps a service error to its response: validation errors become the
// 422 envelope, everything else a logged 500.
func fail(c *fiber.Ctx, err error) error {
	if verr, ok := validation.AsError(err); ok {
		return failValidation(c, verr.Fields)
	}
	return serverError(c, err)
}

// parseBody parses and validates a request body in one step. When ok is
// false the response has been written and the handler returns resp.
func parseBody(c *fiber.Ctx, out interface{}) (resp error, ok bool) {
	if err := c.BodyParser(out); err != nil {
		return invalidBody(c), false
	}
	if fields := validation.Struct(out); len(fields) > 0 {
		return failValidation(c, fields), false
	}
	return nil, true
}

// parseQuery is parseBody for query strings.
func parseQuery(c *fiber.Ctx, out interface{}) (resp error, ok bool) {
	if err := c.QueryParser(out); err != nil {
		return invalidBody(c), false
	}
	if fields := validation.Struct(out); len(fields) > 0 {
		return failValidation(c, fields), false
	}
	return nil, true
}

func requestMeta(c *fiber.Ctx) services.RequestMeta {
	return services.RequestMeta{
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}
}

package utils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse sends the API's uniform error body: {"error": "<message>"}
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// NotFoundResponse sends a 404 with the uniform error body
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusNotFound, message)
}

// ValidationErrorResponse sends a 400 with the uniform error body
func ValidationErrorResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusBadRequest, message)
}

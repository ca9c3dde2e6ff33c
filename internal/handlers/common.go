package handlers

import (
	"strconv"

	"github.com/customchess/chessdb/internal/types"
	"github.com/customchess/chessdb/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error to the uniform {"error": msg} body.
// Typed errors keep their status code; anything else is a store failure
// reported as 500 with the caller's fallback message.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	if ce, ok := types.AsCustomError(err); ok {
		return utils.ErrorResponse(c, ce.Code, ce.Message)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, fallback)
}

// parseID parses the :id path parameter.
func parseID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, types.NewValidationError("Invalid id.")
	}
	return id, nil
}

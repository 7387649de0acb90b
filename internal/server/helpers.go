package server

import (
	"strconv"

	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// paramUint parses a numeric route parameter. A non-numeric value is a
// validation error, not a 500.
func paramUint(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, models.NewValidationError("Invalid " + name)
	}
	return uint(val), nil
}

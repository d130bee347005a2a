package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// idParam parses the :id path segment as an unsigned integer and writes a
// 400 response when it is not one. The raw segment must never reach the
// query layer, where a non-numeric string is inlined into the WHERE clause.
func idParam(c *fiber.Ctx, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid " + label + " ID",
		})
		return 0, false
	}
	return uint(id), true
}

// validateRequest runs struct-tag validation and writes a 400 response on
// failure. Returns true when the request is valid.
func validateRequest(c *fiber.Ctx, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Validation failed: " + err.Error(),
		})
		return false
	}
	return true
}

package handlers

import (
	"strconv"

	"bms-backend/internal/core/domain"
	"bms-backend/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// parseBody decodes the JSON body into dst and checks its validate tags
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return domain.NewValidationError(err.Error())
	}
	return nil
}

// parseID reads a numeric path parameter
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, domain.NewValidationError("invalid " + name)
	}
	return uint(id), nil
}

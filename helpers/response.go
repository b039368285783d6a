package helpers

import (
	"log"

	"dodeduer/services"

	"github.com/gofiber/fiber/v2"
)

func JSONSuccess(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JSONError(c *fiber.Ctx, message string) error {
	return JSONErrorStatus(c, fiber.StatusBadRequest, message)
}

func JSONErrorStatus(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
	})
}

// JSONServiceError maps a service error to its HTTP status. Anything that is
// not a tagged business failure is logged and returned as a 500.
func JSONServiceError(c *fiber.Ctx, err error) error {
	if svcErr, ok := services.AsServiceError(err); ok {
		return JSONErrorStatus(c, statusForKind(svcErr.Kind), svcErr.Message)
	}
	log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	return JSONErrorStatus(c, fiber.StatusInternalServerError, "INTERNAL_ERROR")
}

func statusForKind(kind services.Kind) int {
	switch kind {
	case services.KindValidation:
		return fiber.StatusBadRequest
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindConflict:
		return fiber.StatusConflict
	case services.KindUnauthorized:
		return fiber.StatusUnauthorized
	case services.KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// Paged is the envelope for list endpoints.
func Paged(items any, total int64, page, pageSize int) fiber.Map {
	return fiber.Map{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	}
}

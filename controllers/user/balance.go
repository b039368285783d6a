package user

import (
	"dodeduer/database"
	"dodeduer/helpers"
	"dodeduer/middlewares"
	"dodeduer/services"

	"github.com/gofiber/fiber/v2"
)

func Balance(c *fiber.Ctx) error {
	usr, ok := middlewares.CurrentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "SESSION_REQUIRED")
	}

	balance, err := services.NewBalanceService(database.DB).Balance(usr.ID)
	if err != nil {
		return helpers.JSONServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Balance retrieved successfully", fiber.Map{
		"user_id": usr.ID,
		"balance": balance,
	})
}

func Ledger(c *fiber.Ctx) error {
	usr, ok := middlewares.CurrentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "SESSION_REQUIRED")
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	entries, total, err := services.NewBalanceService(database.DB).Entries(usr.ID, page, pageSize)
	if err != nil {
		return helpers.JSONServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Ledger retrieved successfully", helpers.Paged(entries, total, page, pageSize))
}

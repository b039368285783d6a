package deposit

import (
	"dodeduer/database"
	"dodeduer/helpers"
	"dodeduer/middlewares"
	"dodeduer/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateDepositRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	PaymentRef string          `json:"payment_ref"`
	ReceiptRef string          `json:"receipt_ref"`
}

func Create(c *fiber.Ctx) error {
	usr, ok := middlewares.CurrentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "SESSION_REQUIRED")
	}

	var req CreateDepositRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	dep, err := services.NewDepositService(database.DB).CreateDeposit(usr.ID, req.Amount, req.PaymentRef, req.ReceiptRef)
	if err != nil {
		return helpers.JSONServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Deposit registered", dep)
}

func Mine(c *fiber.Ctx) error {
	usr, ok := middlewares.CurrentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "SESSION_REQUIRED")
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	deposits, total, err := services.NewDepositService(database.DB).Deposits(usr.ID, page, pageSize)
	if err != nil {
		return helpers.JSONServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Deposits retrieved", helpers.Paged(deposits, total, page, pageSize))
}

func All(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)
	status := c.Query("status")
	search := c.Query("q")

	deposits, total, err := services.NewDepositService(database.DB).AllDeposits(status, search, page, pageSize)
	if err != nil {
		return helpers.JSONServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Deposits retrieved", helpers.Paged(deposits, total, page, pageSize))
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

func SetStatus(c *fiber.Ctx) error {
	admin, ok := middlewares.CurrentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "SESSION_REQUIRED")
	}

	depositID, err := c.ParamsInt("id")
	if err != nil || depositID < 1 {
		return helpers.JSONError(c, "INVALID_DEPOSIT_ID")
	}

	var req SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	dep, svcErr := services.NewDepositService(database.DB).SetDepositStatus(uint(depositID), admin.ID, req.Status)
	if svcErr != nil {
		return helpers.JSONServiceError(c, svcErr)
	}

	return helpers.JSONSuccess(c, "Deposit status updated", dep)
}

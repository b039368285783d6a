package board

import (
	"dodeduer/database"
	"dodeduer/helpers"
	"dodeduer/middlewares"
	"dodeduer/services"

	"github.com/gofiber/fiber/v2"
)

type CreateBoardRequest struct {
	Numbers     []int `json:"numbers"`
	RepeatCount int   `json:"repeat_count"`
}

func Create(c *fiber.Ctx) error {
	usr, ok := middlewares.CurrentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "SESSION_REQUIRED")
	}

	var req CreateBoardRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.RepeatCount == 0 {
		req.RepeatCount = 1
	}

	brd, err := services.NewBoardService(database.DB).CreateBoard(usr.ID, req.Numbers, req.RepeatCount)
	if err != nil {
		return helpers.JSONServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Board created", brd)
}

func Mine(c *fiber.Ctx) error {
	usr, ok := middlewares.CurrentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "SESSION_REQUIRED")
	}

	boards, err := services.NewBoardService(database.DB).Boards(usr.ID)
	if err != nil {
		return helpers.JSONServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Boards retrieved", boards)
}

func Stop(c *fiber.Ctx) error {
	usr, ok := middlewares.CurrentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "SESSION_REQUIRED")
	}

	boardID, err := c.ParamsInt("id")
	if err != nil || boardID < 1 {
		return helpers.JSONError(c, "INVALID_BOARD_ID")
	}

	brd, svcErr := services.NewBoardService(database.DB).StopBoard(usr.ID, uint(boardID))
	if svcErr != nil {
		return helpers.JSONServiceError(c, svcErr)
	}
	return helpers.JSONSuccess(c, "Board stopped", brd)
}

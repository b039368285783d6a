package game

import (
	"dodeduer/database"
	"dodeduer/helpers"
	"dodeduer/middlewares"
	"dodeduer/services"

	"github.com/gofiber/fiber/v2"
)

type CreateGameRequest struct {
	Week int `json:"week"`
}

func Create(c *fiber.Ctx) error {
	var req CreateGameRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	game, err := services.NewGameService(database.DB).CreateGame(req.Week)
	if err != nil {
		return helpers.JSONServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Game created", game)
}

type CloseGameRequest struct {
	WinningNumbers []int `json:"winning_numbers"`
}

func Close(c *fiber.Ctx) error {
	gameID, err := c.ParamsInt("id")
	if err != nil || gameID < 1 {
		return helpers.JSONError(c, "INVALID_GAME_ID")
	}

	var req CloseGameRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	game, svcErr := services.NewGameService(database.DB).CloseGame(uint(gameID), req.WinningNumbers)
	if svcErr != nil {
		return helpers.JSONServiceError(c, svcErr)
	}

	return helpers.JSONSuccess(c, "Winning numbers set", game)
}

func Current(c *fiber.Ctx) error {
	game, err := services.NewGameService(database.DB).CurrentGame()
	if err != nil {
		return helpers.JSONServiceError(c, err)
	}
	return helpers.JSONSuccess(c, "Current game retrieved", game)
}

func ByID(c *fiber.Ctx) error {
	gameID, err := c.ParamsInt("id")
	if err != nil || gameID < 1 {
		return helpers.JSONError(c, "INVALID_GAME_ID")
	}

	game, svcErr := services.NewGameService(database.DB).GameByID(uint(gameID))
	if svcErr != nil {
		return helpers.JSONServiceError(c, svcErr)
	}
	return helpers.JSONSuccess(c, "Game retrieved", game)
}

type PlayRequest struct {
	GameID     uint  `json:"game_id"`
	Numbers    []int `json:"numbers"`
	BoardCount int   `json:"board_count"`
}

func Play(c *fiber.Ctx) error {
	usr, ok := middlewares.CurrentUser(c)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "SESSION_REQUIRED")
	}

	var req PlayRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.BoardCount == 0 {
		req.BoardCount = 1
	}

	gameID := req.GameID
	svc := services.NewGameService(database.DB)
	if gameID == 0 {
		current, err := svc.CurrentGame()
		if err != nil {
			return helpers.JSONServiceError(c, err)
		}
		gameID = current.ID
	}

	result, err := svc.PlayGame(usr.ID, gameID, req.Numbers, req.BoardCount)
	if err != nil {
		return helpers.JSONServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Play registered", result)
}

func Winners(c *fiber.Ctx) error {
	gameID, err := c.ParamsInt("id")
	if err != nil || gameID < 1 {
		return helpers.JSONError(c, "INVALID_GAME_ID")
	}

	winners, svcErr := services.NewGameService(database.DB).Winners(uint(gameID))
	if svcErr != nil {
		return helpers.JSONServiceError(c, svcErr)
	}
	return helpers.JSONSuccess(c, "Winners retrieved", winners)
}

package routes

import (
	"dodeduer/controllers/auth"
	"dodeduer/controllers/board"
	"dodeduer/controllers/deposit"
	"dodeduer/controllers/game"
	"dodeduer/controllers/user"
	"dodeduer/middlewares"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	app.Post("/auth/register", auth.Register)
	app.Post("/auth/login", auth.Login)

	userroutes := app.Group("/user", middlewares.UserAuth)
	userroutes.Get("/balance", user.Balance)
	userroutes.Get("/ledger", user.Ledger)

	gameroutes := app.Group("/game", middlewares.UserAuth)
	gameroutes.Get("/current", game.Current)
	gameroutes.Post("/play", game.Play)
	gameroutes.Post("/create", middlewares.AdminOnly, game.Create)
	gameroutes.Get("/:id/winners", middlewares.AdminOnly, game.Winners)
	gameroutes.Put("/:id", middlewares.AdminOnly, game.Close)
	gameroutes.Get("/:id", game.ByID)

	depositroutes := app.Group("/deposit", middlewares.UserAuth)
	depositroutes.Post("/create", deposit.Create)
	depositroutes.Get("/mine", deposit.Mine)
	depositroutes.Get("/all", middlewares.AdminOnly, deposit.All)
	depositroutes.Put("/:id/status", middlewares.AdminOnly, deposit.SetStatus)

	boardroutes := app.Group("/board", middlewares.UserAuth)
	boardroutes.Post("/create", board.Create)
	boardroutes.Get("/mine", board.Mine)
	boardroutes.Post("/:id/stop", board.Stop)
}

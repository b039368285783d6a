package auth

import (
	"dodeduer/database"
	"dodeduer/helpers"
	"dodeduer/services"

	"github.com/gofiber/fiber/v2"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	user, err := services.NewUserService(database.DB).Register(req.Email, req.Password)
	if err != nil {
		return helpers.JSONServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "User registered", fiber.Map{
		"id":    user.ID,
		"email": user.Email,
	})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	user, session, err := services.NewUserService(database.DB).Login(req.Email, req.Password)
	if err != nil {
		return helpers.JSONServiceError(c, err)
	}

	return helpers.JSONSuccess(c, "Logged in", fiber.Map{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
		"user_id":    user.ID,
		"is_admin":   user.IsAdmin,
	})
}

package middlewares

import (
	"strings"

	"dodeduer/database"
	"dodeduer/helpers"
	"dodeduer/models"
	"dodeduer/services"

	"github.com/gofiber/fiber/v2"
)

// UserAuth resolves the session token from the Authorization header and
// stores the user in the request locals.
func UserAuth(c *fiber.Ctx) error {
	token := c.Get("Authorization")
	token = strings.TrimPrefix(token, "Bearer ")
	if token == "" {
		token = c.Get("X-Session-Token")
	}

	user, err := services.NewUserService(database.DB).UserByToken(token)
	if err != nil {
		return helpers.JSONServiceError(c, err)
	}

	c.Locals("user", *user)
	return c.Next()
}

// AdminOnly gates a route to administrators. Must run after UserAuth.
func AdminOnly(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "SESSION_REQUIRED")
	}
	if !user.IsAdmin {
		return helpers.JSONErrorStatus(c, fiber.StatusForbidden, "ADMIN_ONLY")
	}
	return c.Next()
}

// CurrentUser fetches the authenticated user placed by UserAuth.
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals("user").(models.User)
	return user, ok
}

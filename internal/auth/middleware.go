package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// LocalsUserID is the fiber.Ctx locals key the middleware stores the
// authenticated caller's id under.
const LocalsUserID = "user_id"

// Middleware decodes the bearer token and attaches the caller's user id
// to the request. Requests without a valid token never reach the handler.
func Middleware(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing token")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		userID, err := ParseUserID(parts[1], secret)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(LocalsUserID, userID)

		return c.Next()
	}
}

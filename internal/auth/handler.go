package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/pmarkov/notes-api/internal/users"
)

// UserFinder is the slice of the user repository login needs.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*users.User, error)
}

type Handler struct {
	Users  UserFinder
	Secret []byte
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	user, err := h.Users.FindByUsername(ctx, req.Username)
	if err != nil {
		return err
	}
	if user == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid username or password")
	}

	token, err := GenerateToken(user.ID.Hex(), h.Secret, TokenTTL)
	if err != nil {
		return err
	}

	return c.JSON(loginResponse{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	})
}

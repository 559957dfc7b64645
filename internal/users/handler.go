package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Store is what the handlers need from the user repository.
type Store interface {
	List(ctx context.Context) ([]UserView, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Insert(ctx context.Context, u *User) error
}

type Handler struct {
	Repo     Store
	validate *validator.Validate
}

func NewHandler(repo Store) *Handler {
	return &Handler{Repo: repo, validate: validator.New()}
}

func (h *Handler) List(c *fiber.Ctx) error {
	list, err := h.Repo.List(userContext(c))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if msgs := h.validateRegister(req); len(msgs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": msgs})
	}

	ctx := userContext(c)

	// Friendly pre-check; the unique index is what actually guarantees
	// uniqueness under concurrent registrations.
	existing, err := h.Repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return fiber.NewError(fiber.StatusBadRequest, "username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return err
	}

	user := &User{
		ID:           primitive.NewObjectID(),
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: string(hash),
		Notes:        []primitive.ObjectID{},
	}

	if err := h.Repo.Insert(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fiber.NewError(fiber.StatusBadRequest, "username already taken")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// validateRegister runs all field checks and reports every violation,
// not just the first.
func (h *Handler) validateRegister(req registerRequest) []string {
	err := h.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"invalid input"}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters long", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return msgs
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}

package notes

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is what the handlers need from the note repository.
type Store interface {
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]Note, error)
	FindByID(ctx context.Context, id, owner primitive.ObjectID) (*Note, error)
	Insert(ctx context.Context, n *Note) error
	Update(ctx context.Context, id, owner primitive.ObjectID, content string, important *bool) (*Note, error)
	Delete(ctx context.Context, id, owner primitive.ObjectID) (bool, error)
}

// OwnerDirectory is the slice of the user repository the note handlers
// use: confirming the caller exists before a create, and appending the
// created note's id to the owner's note list.
type OwnerDirectory interface {
	OwnerExists(ctx context.Context, id primitive.ObjectID) (bool, error)
	AppendNote(ctx context.Context, owner, note primitive.ObjectID) error
}

type Handler struct {
	Repo  Store
	Users OwnerDirectory
}

func NewHandler(repo Store, users OwnerDirectory) *Handler {
	return &Handler{Repo: repo, Users: users}
}

func (h *Handler) List(c *fiber.Ctx) error {
	owner, err := callerID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	list, err := h.Repo.ListByOwner(userContext(c), owner)
	if err != nil {
		return err
	}

	return c.JSON(list)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	owner, err := callerID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid note id")
	}

	note, err := h.Repo.FindByID(userContext(c), id, owner)
	if err != nil {
		return err
	}
	if note == nil {
		return fiber.NewError(fiber.StatusNotFound, "note not found")
	}

	return c.JSON(note)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	owner, err := callerID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if req.Content == "" {
		return fiber.NewError(fiber.StatusBadRequest, "content is missing")
	}

	ctx := userContext(c)

	exists, err := h.Users.OwnerExists(ctx, owner)
	if err != nil {
		return err
	}
	if !exists {
		return fiber.NewError(fiber.StatusUnauthorized, "user not found")
	}

	note := &Note{
		ID:        primitive.NewObjectID(),
		Content:   req.Content,
		Important: req.Important,
		User:      owner,
	}

	if err := h.Repo.Insert(ctx, note); err != nil {
		return err
	}

	// Second write, not atomic with the insert. A crash in between leaves
	// a note without a back-reference; reads stay correct because every
	// note query is scoped by the note's own user field.
	if err := h.Users.AppendNote(ctx, owner, note.ID); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(note)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	owner, err := callerID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid note id")
	}

	var req updateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	// Only an absent content field is rejected here; an explicit empty
	// string is a valid update, unlike on create.
	if req.Content == nil {
		return fiber.NewError(fiber.StatusBadRequest, "content is missing")
	}

	note, err := h.Repo.Update(userContext(c), id, owner, *req.Content, req.Important)
	if err != nil {
		return err
	}
	if note == nil {
		return fiber.NewError(fiber.StatusNotFound, "note not found")
	}

	return c.JSON(note)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	owner, err := callerID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid note id")
	}

	deleted, err := h.Repo.Delete(userContext(c), id, owner)
	if err != nil {
		return err
	}
	if !deleted {
		return fiber.NewError(fiber.StatusNotFound, "note not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func callerID(c *fiber.Ctx) (primitive.ObjectID, error) {
	val := c.Locals("user_id")
	if val == nil {
		return primitive.NilObjectID, errors.New("user id missing")
	}
	raw, ok := val.(string)
	if !ok {
		return primitive.NilObjectID, errors.New("user id missing")
	}
	return primitive.ObjectIDFromHex(raw)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}

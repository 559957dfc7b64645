package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pmarkov/notes-api/internal/auth"
	"github.com/pmarkov/notes-api/internal/notes"
	"github.com/pmarkov/notes-api/internal/users"
)

type Router struct {
	NotesHandler *notes.Handler
	UsersHandler *users.Handler
	AuthHandler  *auth.Handler
	AuthMW       fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	if r.AuthHandler != nil {
		app.Post("/api/login", r.AuthHandler.Login)
	}

	if r.UsersHandler != nil {
		app.Get("/api/users", r.UsersHandler.List)
		app.Post("/api/users", r.UsersHandler.Register)
	}

	if r.NotesHandler != nil {
		app.Get("/api/notes", r.AuthMW, r.NotesHandler.List)
		app.Get("/api/notes/:id", r.AuthMW, r.NotesHandler.Get)
		app.Post("/api/notes", r.AuthMW, r.NotesHandler.Create)
		app.Put("/api/notes/:id", r.AuthMW, r.NotesHandler.Update)
		app.Delete("/api/notes/:id", r.AuthMW, r.NotesHandler.Delete)
	}
}

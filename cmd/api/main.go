package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pmarkov/notes-api/internal/auth"
	"github.com/pmarkov/notes-api/internal/config"
	"github.com/pmarkov/notes-api/internal/logging"
	"github.com/pmarkov/notes-api/internal/notes"
	"github.com/pmarkov/notes-api/internal/router"
	"github.com/pmarkov/notes-api/internal/store"
	"github.com/pmarkov/notes-api/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("notes-api", "info").Fatalf("config: %v", err)
	}

	log := logging.New("notes-api", cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := store.Connect(ctx, cfg.MongoURI, cfg.Database)
	cancel()
	if err != nil {
		log.Fatalf("error connecting to mongodb: %v", err)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	err = db.EnsureIndexes(ctx)
	cancel()
	if err != nil {
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		_ = db.Close(ctx)
		cancel()
		log.Fatalf("error creating indexes: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(router.CorsMiddleware(cfg.CORSOrigin))
	app.Use(logging.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	usersRepo := users.NewRepository(db.Users())
	notesRepo := notes.NewRepository(db.Notes())

	r := &router.Router{
		NotesHandler: notes.NewHandler(notesRepo, usersRepo),
		UsersHandler: users.NewHandler(usersRepo),
		AuthHandler:  &auth.Handler{Users: usersRepo, Secret: []byte(cfg.JWTSecret)},
		AuthMW:       auth.Middleware([]byte(cfg.JWTSecret)),
	}
	r.RegisterRoutes(app)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		_ = app.Shutdown()
	}()

	log.Infof("listening on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Errorf("server stopped: %v", err)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Close(ctx); err != nil {
		log.Errorf("error closing mongodb connection: %v", err)
	}
}

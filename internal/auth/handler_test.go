package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/pmarkov/notes-api/internal/users"
)

type mockUserFinder struct {
	findFunc func(ctx context.Context, username string) (*users.User, error)
}

func (m *mockUserFinder) FindByUsername(ctx context.Context, username string) (*users.User, error) {
	return m.findFunc(ctx, username)
}

func newLoginApp(finder UserFinder, secret []byte) *fiber.App {
	app := fiber.New()
	h := &Handler{Users: finder, Secret: secret}
	app.Post("/api/login", h.Login)
	return app
}

func TestLogin_Success(t *testing.T) {
	secret := []byte("s")
	hash, err := bcrypt.GenerateFromPassword([]byte("salainen"), 10)
	require.NoError(t, err)

	stored := &users.User{
		ID:           primitive.NewObjectID(),
		Username:     "root",
		Name:         "Superuser",
		PasswordHash: string(hash),
	}
	finder := &mockUserFinder{findFunc: func(ctx context.Context, username string) (*users.User, error) {
		require.Equal(t, "root", username)
		return stored, nil
	}}

	app := newLoginApp(finder, secret)

	payload, _ := json.Marshal(map[string]string{"username": "root", "password": "salainen"})
	req := httptest.NewRequest("POST", "/api/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Equal(t, "root", body.Username)

	uid, err := ParseUserID(body.Token, secret)
	require.NoError(t, err)
	require.Equal(t, stored.ID.Hex(), uid)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("salainen"), 10)
	require.NoError(t, err)

	finder := &mockUserFinder{findFunc: func(ctx context.Context, username string) (*users.User, error) {
		return &users.User{ID: primitive.NewObjectID(), Username: "root", PasswordHash: string(hash)}, nil
	}}

	app := newLoginApp(finder, []byte("s"))

	payload, _ := json.Marshal(map[string]string{"username": "root", "password": "wrong"})
	req := httptest.NewRequest("POST", "/api/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_UnknownUser(t *testing.T) {
	finder := &mockUserFinder{findFunc: func(ctx context.Context, username string) (*users.User, error) {
		return nil, nil
	}}

	app := newLoginApp(finder, []byte("s"))

	payload, _ := json.Marshal(map[string]string{"username": "ghost", "password": "whatever"})
	req := httptest.NewRequest("POST", "/api/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

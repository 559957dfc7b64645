package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "test-secret", cfg.JWTSecret)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("MONGODB_DATABASE", "notes_test")
	t.Setenv("PORT", "3001")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	require.Equal(t, "notes_test", cfg.Database)
	require.Equal(t, "3001", cfg.Port)
}

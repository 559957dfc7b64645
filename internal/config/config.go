package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all process configuration, read once at startup.
type Config struct {
	MongoURI   string
	Database   string
	Port       string
	JWTSecret  string
	LogLevel   string
	CORSOrigin string
}

// Load reads configuration from the environment, after loading a local
// .env file if one is present. JWT_SECRET is mandatory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:   getenv("MONGODB_URI", "mongodb://localhost:27017"),
		Database:   getenv("MONGODB_DATABASE", "noteapp"),
		Port:       getenv("PORT", "8080"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
		CORSOrigin: getenv("CORS_ORIGIN", "*"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

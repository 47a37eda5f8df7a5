package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort    int
	DatabasePath  string
	JWTSecret     string
	AllowedOrigin string // Frontend origin allowed by CORS
	LogLevel      string
	IsProd        bool
}

// Load loads configuration from environment variables or sets defaults.
// A missing JWT secret is a hard failure: the server must never start in a
// state where it would issue unsigned tokens.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	return &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./applytrack.db"),
		JWTSecret:     secret,
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		IsProd:        os.Getenv("APP_ENV") == "production",
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

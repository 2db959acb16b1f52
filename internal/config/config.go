package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Midtrans MidtransConfig
	Session  SessionConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

// BackendConfig points at the external API server that owns all business
// logic. GraphQLURL serves the concert/order/ticket operations; BaseURL is
// the root for the payments REST endpoints.
type BackendConfig struct {
	GraphQLURL string
	BaseURL    string
}

type MidtransConfig struct {
	ClientKey   string
	Environment string // "sandbox" or "production"
}

type SessionConfig struct {
	Secret string
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("ENV", "development"),
		},
		Backend: BackendConfig{
			GraphQLURL: getEnv("BACKEND_GRAPHQL_URL", "http://localhost:4000/graphql"),
			BaseURL:    getEnv("BACKEND_BASE_URL", "http://localhost:4000"),
		},
		Midtrans: MidtransConfig{
			ClientKey:   getEnv("MIDTRANS_CLIENT_KEY", "SB-Mid-client-YOUR_CLIENT_KEY"),
			Environment: getEnv("MIDTRANS_ENV", "sandbox"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
		},
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as an integer with a fallback value
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

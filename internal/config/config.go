package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API    APIConfig
	Store  StoreConfig
	Chat   ChatConfig
	Server ServerConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type StoreConfig struct {
	Path string
}

type ChatConfig struct {
	PollInterval time.Duration
}

// ServerConfig configures the local development stub backend
type ServerConfig struct {
	Port      string
	JWTSecret string
	Env       string
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
			Timeout: getEnvAsDuration("API_TIMEOUT", 30*time.Second),
		},
		Store: StoreConfig{
			Path: getEnv("STORE_PATH", defaultStorePath()),
		},
		Chat: ChatConfig{
			PollInterval: getEnvAsDuration("CHAT_POLL_INTERVAL", 5*time.Second),
		},
		Server: ServerConfig{
			Port:      getEnv("PORT", "8080"),
			JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-production"),
			Env:       getEnv("ENV", "development"),
		},
	}

	return config, nil
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tanimarket.db"
	}
	return filepath.Join(home, ".tanimarket", "tanimarket.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

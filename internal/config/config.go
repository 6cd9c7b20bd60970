// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"mobivoice/pkg/db"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort       string
	LogLevel         string
	MetricsNamespace string

	// Snapshot persistence: bolt (default), postgres or memory.
	StoreBackend string
	DataFile     string
	DB           db.Config

	// Synthesized audio artifacts are written to and served from AudioDir.
	AudioDir string

	// Generative fallback service (Ollama-compatible).
	OllamaURL       string
	OllamaModel     string
	FallbackTimeout time.Duration
}

// LoadConfig loads configuration from environment variables, falling back to
// local-development defaults. It returns an error when a variable is present
// but invalid.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		ServerPort:       getenvDefault("SERVER_PORT", "8080"),
		LogLevel:         getenvDefault("LOG_LEVEL", "info"),
		MetricsNamespace: getenvDefault("METRICS_NAMESPACE", "mobivoice"),
		StoreBackend:     getenvDefault("STORE_BACKEND", "bolt"),
		DataFile:         getenvDefault("DATA_FILE", "data/accounts.db"),
		AudioDir:         getenvDefault("AUDIO_DIR", "responses"),
		OllamaURL:        getenvDefault("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:      getenvDefault("OLLAMA_MODEL", "gemma:2b"),
	}

	timeoutStr := getenvDefault("FALLBACK_TIMEOUT", "8s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FALLBACK_TIMEOUT duration: %w", err)
	}
	cfg.FallbackTimeout = timeout

	dbPortStr := getenvDefault("DB_PORT", "5432")
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.DB = db.Config{
		Host:     getenvDefault("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getenvDefault("DB_USER", "user"),
		Password: getenvDefault("DB_PASSWORD", "password"),
		DBName:   getenvDefault("DB_NAME", "mobivoicedb"),
		SSLMode:  getenvDefault("DB_SSLMODE", "disable"),
	}

	switch cfg.StoreBackend {
	case "bolt", "postgres", "memory":
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND %q: must be bolt, postgres or memory", cfg.StoreBackend)
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

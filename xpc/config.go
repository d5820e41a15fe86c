package xpc

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries the XPC API credentials and endpoint. It is constructed
// explicitly and handed to NewClient so nothing in the pipeline reads ambient
// process state.
type Config struct {
	APIKey  string
	BaseURL string
}

// ConfigFromEnv loads a .env file when present and builds a Config from
// XPC_API_KEY and XPC_FHIR_API_BASE_URL.
func ConfigFromEnv() (Config, error) {
	// Plain environment variables are used when no .env file exists.
	_ = godotenv.Load()

	cfg := Config{
		APIKey:  os.Getenv("XPC_API_KEY"),
		BaseURL: strings.TrimRight(os.Getenv("XPC_FHIR_API_BASE_URL"), "/"),
	}
	if cfg.APIKey == "" || cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("API key or base URL not found, check your .env file")
	}
	return cfg, nil
}

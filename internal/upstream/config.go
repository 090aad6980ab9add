package upstream

import (
	"os"
	"strings"
)

// Config holds connection settings for the prediction API.
type Config struct {
	BaseURL string
}

// LoadConfig loads upstream configuration from environment variables
func LoadConfig() Config {
	baseURL := os.Getenv("PREDICTION_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	return Config{BaseURL: strings.TrimSuffix(baseURL, "/")}
}

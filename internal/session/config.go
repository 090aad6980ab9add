package session

import (
	"os"
	"time"
)

// Config holds session configuration
type Config struct {
	Secret string
	TTL    time.Duration
}

const defaultTTL = 30 * 24 * time.Hour

// LoadConfig reads config from env with sensible defaults.
// Override with SESSION_SECRET and SESSION_TTL.
func LoadConfig() Config {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "dev-session-secret-change-me"
	}
	ttl := defaultTTL
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		}
	}
	return Config{
		Secret: secret,
		TTL:    ttl,
	}
}

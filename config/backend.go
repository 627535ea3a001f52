package config

import (
	"strings"
	"time"
)

// BackendConfig contains connection settings for the party REST backend.
type BackendConfig struct {
	// BaseURL is the party backend base URL.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8000"`

	// Timeout bounds each backend round trip.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
	if b.Timeout <= 0 {
		b.Timeout = 10 * time.Second
	}
}

package config

import "time"

// AuthConfig groups session and credential cookie configuration.
type AuthConfig struct {
	// CookieDomain scopes the credential cookie. Leave empty for host-only.
	CookieDomain string `env:"AUTH_COOKIE_DOMAIN" envDefault:""`

	// SessionTTL is the lifetime of both the credential cookie and the
	// cached session behind it.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"168h"`

	// UseCurrentRole enables the single-round-trip role lookup before
	// falling back to endpoint probing.
	UseCurrentRole bool `env:"AUTH_USE_CURRENT_ROLE" envDefault:"true"`

	// EventLogEnabled controls whether auth activity is written to Postgres.
	EventLogEnabled bool `env:"AUTH_EVENT_LOG_ENABLED" envDefault:"true"`

	// EventRetention is how long auth events are kept before the
	// retention sweep removes them.
	EventRetention time.Duration `env:"AUTH_EVENT_RETENTION" envDefault:"2160h"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	const minSessionTTL = time.Minute
	if a.SessionTTL < minSessionTTL {
		a.SessionTTL = 168 * time.Hour
	}
	if a.EventRetention <= 0 {
		a.EventRetention = 2160 * time.Hour
	}
}

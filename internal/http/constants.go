package httpx

import "time"

const (
	// CredentialCookieName is the cookie that carries the backend bearer
	// token between browser and gateway.
	CredentialCookieName = "access_token"

	// CredentialTTL matches the cookie lifetime the web client always used.
	CredentialTTL = 7 * 24 * time.Hour
)

// RequestIDHeader carries the request correlation ID on responses.
const RequestIDHeader = "X-Request-Id"

// Default backend collections exposed through the /api proxy. The set mirrors
// the reference tables and principal collections of the party backend.
//
//nolint:gochecknoglobals // static read-only lookup; avoids per-call allocations
var defaultProxyResources = map[string]bool{
	"countries":             true,
	"gender_types":          true,
	"marital_status_types":  true,
	"ethnicity_types":       true,
	"income_ranges":         true,
	"organization_types":    true,
	"industry_types":        true,
	"employee_count_ranges": true,
	"persons":               true,
	"organizations":         true,
	"users":                 true,
	"communication_events":  true,
}

// DefaultProxyResources returns a copy of the default proxy allowlist.
func DefaultProxyResources() map[string]bool {
	out := make(map[string]bool, len(defaultProxyResources))
	for k, v := range defaultProxyResources {
		out[k] = v
	}
	return out
}

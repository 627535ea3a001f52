package httpx

import (
	"net/http"
	"time"
)

// CookieConfig controls how the credential cookie is written.
type CookieConfig struct {
	// Domain scopes the cookie; empty means host-only.
	Domain string
	// TTL is the cookie lifetime. Zero means CredentialTTL.
	TTL time.Duration
	// Insecure drops the Secure attribute for plain-HTTP development.
	Insecure bool
}

func (c CookieConfig) ttl() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return CredentialTTL
}

// readCredential extracts the bearer credential from the request cookie.
// Returns an empty string when no credential is present.
func readCredential(r *http.Request) string {
	cookie, err := r.Cookie(CredentialCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setCredentialCookie writes the credential cookie. SameSite stays Strict so
// the credential never rides along on cross-site navigation.
func setCredentialCookie(w http.ResponseWriter, cfg CookieConfig, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CredentialCookieName,
		Value:    token,
		Path:     "/",
		Domain:   cfg.Domain,
		HttpOnly: true,
		Secure:   !cfg.Insecure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(cfg.ttl().Seconds()),
	})
}

// clearCredentialCookie expires the credential cookie. Attributes mirror
// setCredentialCookie so browsers match the cookie being deleted.
func clearCredentialCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     CredentialCookieName,
		Value:    "",
		Path:     "/",
		Domain:   cfg.Domain,
		HttpOnly: true,
		Secure:   !cfg.Insecure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
	})
}

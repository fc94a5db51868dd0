package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/authgate/authgate"
	"github.com/authgate/authgate/jwt"
)

// GateConfig defines a public type used by authgate APIs.
//
// GateConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type GateConfig struct {
	// PublicPrefixes are path prefixes allowed without a token. The home path
	// "/" matches exactly; every other entry matches as a prefix.
	PublicPrefixes []string
	// CookieName is the session cookie checked before the Authorization
	// header.
	CookieName string
	// LoginPath is the redirect target for denied requests.
	LoginPath string
}

// DefaultGateConfig returns the allowlist the system ships with: home,
// login, registration, email verification, and all auth API endpoints.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		PublicPrefixes: []string{
			"/",
			"/login",
			"/registration",
			"/verify-email",
			"/api/auth",
		},
		CookieName: "auth_token",
		LoginPath:  "/login",
	}
}

type claimsContextKey struct{}

// ClaimsFromContext returns the session claims attached by [Gate] after a
// successful validation.
func ClaimsFromContext(ctx context.Context) (*jwt.SessionClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*jwt.SessionClaims)
	return claims, ok
}

// Gate returns middleware enforcing that protected paths carry a valid
// session token. The decision is single-pass and stateless: allow public
// paths unconditionally; otherwise extract a token (cookie first, Bearer
// header as fallback) and validate it. Missing, malformed, and expired
// tokens all deny with the same login redirect.
func Gate(engine *authgate.Engine, cfg GateConfig) func(http.Handler) http.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = "auth_token"
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path, cfg.PublicPrefixes) {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := extractToken(r, cfg.CookieName)
			if !ok || engine == nil {
				http.Redirect(w, r, cfg.LoginPath, http.StatusTemporaryRedirect)
				return
			}

			claims, err := engine.ValidateToken(r.Context(), token)
			if err != nil {
				http.Redirect(w, r, cfg.LoginPath, http.StatusTemporaryRedirect)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isPublicPath(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func extractToken(r *http.Request, cookieName string) (string, bool) {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	return bearerToken(r.Header.Get("Authorization"))
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"baby-care-log/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// AuthContext:
// - Si viene Bearer code y el resolver lo reconoce => setea claims.
// - Si no hay claims, el request sigue igual; los handlers deciden 401/403.
// Login y health quedan exentos solos porque no leen claims.
func AuthContext(resolver auth.RoleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if resolver == nil {
				next.ServeHTTP(w, r)
				return
			}

			code := bearerToken(r.Header.Get("Authorization"))
			if code == "" {
				next.ServeHTTP(w, r)
				return
			}

			role, ok := resolver.Resolve(code)
			if !ok {
				// No cortamos acá para no acoplar; el handler responde 401.
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, auth.Claims{Role: role, Code: code})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

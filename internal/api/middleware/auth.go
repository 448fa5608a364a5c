package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
)

const (
	msgNoToken      = "No token provided"
	msgInvalidToken = "Invalid token"
	msgAdminOnly    = "Admin access required"
)

// Auth проверяет заголовок Authorization: Bearer <token>.
// Проверка идет под контекстом с таймаутом, без повторов.
func Auth(verifier TokenVerifier, timeout time.Duration, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				logger.Warn("%s %s - No token provided", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgNoToken)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			ident, err := verifier.Verify(ctx, raw)
			cancel()
			if err != nil {
				logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
		})
	}
}

// RequireAdmin пропускает только личности с claim admin=true. Ставится после Auth.
func RequireAdmin(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := GetIdentity(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgNoToken)
				return
			}
			if !ident.Admin {
				logger.Warn("%s %s - Admin access denied: uid=%s", r.Method, r.URL.Path, ident.UID)
				handlers.RespondForbidden(w, msgAdminOnly)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

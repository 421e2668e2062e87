package middleware

import (
	"net/http"
	"strings"

	"github.com/tirehaus/arcade/internal/api/apierr"
	"github.com/tirehaus/arcade/internal/services/auth"
)

// AdminAuth guards operator routes with a bearer admin key
func AdminAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := bearerToken(r)
			if key == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			if err := authService.Verify(key); err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from the Authorization header
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

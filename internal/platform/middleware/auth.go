package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/georgemunganga/autoservice-backend/internal/platform/httpx"
)

// TokenVerifier validates a bearer token and returns the subject (user id).
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

type ctxKeyUserID struct{}

// UserIDFromContext returns the authenticated user id set by RequireAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyUserID{}).(string)
	return v, ok && v != ""
}

// RequireAuth rejects requests without a valid "Authorization: Bearer" token.
func RequireAuth(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				httpx.Respond(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
				return
			}
			sub, err := v.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				httpx.Respond(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyUserID{}, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/httpx"
	"github.com/georgemunganga/autoservice-backend/internal/platform/tenant"
)

// CompanyResolver looks up the company a user belongs to, uuid.Nil if none.
type CompanyResolver interface {
	CompanyOf(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
}

// ScopeCompany resolves the authenticated user's company once per request
// and stores it as the request's tenant scope. It must run after RequireAuth.
func ScopeCompany(res CompanyResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sub, _ := UserIDFromContext(r.Context())
			userID, err := uuid.Parse(sub)
			if err != nil {
				httpx.Respond(w, http.StatusUnauthorized, map[string]string{"error": "invalid token subject"})
				return
			}
			companyID, err := res.CompanyOf(r.Context(), userID)
			if errors.Is(err, apperr.ErrNotFound) {
				httpx.Respond(w, http.StatusUnauthorized, map[string]string{"error": "unknown user"})
				return
			}
			if err != nil {
				httpx.Error(w, r, err)
				return
			}
			ctx := tenant.WithScope(r.Context(), tenant.Scope{UserID: userID, CompanyID: companyID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

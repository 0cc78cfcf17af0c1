package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/ids"
	"github.com/georgemunganga/autoservice-backend/internal/platform/tenant"
)

// URLID parses the chi URL parameter name as a UUID.
func URLID(r *http.Request, name string) (uuid.UUID, error) {
	return ids.Parse(chi.URLParam(r, name), name)
}

// QueryID parses a required UUID query parameter.
func QueryID(r *http.Request, name string) (uuid.UUID, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return uuid.Nil, apperr.Validation("%s is required", name)
	}
	return ids.Parse(v, name)
}

// CompanyID returns the company a list or report request covers: the
// caller's own, with an optional company_id query parameter that must match it.
func CompanyID(r *http.Request) (uuid.UUID, error) {
	return tenant.Resolve(r.Context(), r.URL.Query().Get("company_id"))
}

// QueryDate parses an optional YYYY-MM-DD query parameter, returning def when absent.
func QueryDate(r *http.Request, name string, def time.Time) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, apperr.Validation("invalid %s, use YYYY-MM-DD", name)
	}
	return t, nil
}

// Package tenant carries the caller's company through a request so
// services can keep each shop's records to itself.
package tenant

import (
	"context"

	"github.com/google/uuid"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
	"github.com/georgemunganga/autoservice-backend/internal/platform/ids"
)

// Scope identifies the authenticated caller. CompanyID is uuid.Nil for a
// user who has not created or joined a shop yet.
type Scope struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
}

type scopeKey struct{}

// WithScope stores s on ctx.
func WithScope(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// FromContext returns the scope set by the auth middleware. ok is false for
// calls that do not originate from an authenticated request.
func FromContext(ctx context.Context) (Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(Scope)
	return s, ok
}

// Resolve returns the company a request acts on. A scoped request always
// acts on the caller's company; raw may repeat it but never name another.
// Unscoped calls must name the company in raw.
func Resolve(ctx context.Context, raw string) (uuid.UUID, error) {
	s, ok := FromContext(ctx)
	if !ok {
		if raw == "" {
			return uuid.Nil, apperr.Validation("company_id is required")
		}
		return ids.Parse(raw, "company_id")
	}
	if s.CompanyID == uuid.Nil {
		return uuid.Nil, apperr.Forbidden("user does not belong to a company")
	}
	if raw != "" {
		id, err := ids.Parse(raw, "company_id")
		if err != nil {
			return uuid.Nil, err
		}
		if id != s.CompanyID {
			return uuid.Nil, apperr.Forbidden("company %s is not accessible", id)
		}
	}
	return s.CompanyID, nil
}

// Narrow pins a filter to the caller's company. Unscoped calls keep id as
// given, which may be uuid.Nil.
func Narrow(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	s, ok := FromContext(ctx)
	if !ok {
		return id, nil
	}
	if s.CompanyID == uuid.Nil {
		return uuid.Nil, apperr.Forbidden("user does not belong to a company")
	}
	if id != uuid.Nil && id != s.CompanyID {
		return uuid.Nil, apperr.Forbidden("company %s is not accessible", id)
	}
	return s.CompanyID, nil
}

// Check reports records owned by another company as not found, so ids from
// other shops cannot be discovered.
func Check(ctx context.Context, owner uuid.UUID, what string, id uuid.UUID) error {
	s, ok := FromContext(ctx)
	if !ok {
		return nil
	}
	if s.CompanyID == uuid.Nil || s.CompanyID != owner {
		return apperr.NotFound("%s %s", what, id)
	}
	return nil
}

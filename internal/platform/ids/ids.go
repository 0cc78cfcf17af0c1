// Package ids parses client-supplied UUIDs into validation errors.
package ids

import (
	"github.com/google/uuid"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
)

// Parse parses s as a UUID, naming field in the validation error.
func Parse(s, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid %s", field)
	}
	return id, nil
}

// Optional parses s when non-empty; an empty string yields nil.
func Optional(s, field string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := Parse(s, field)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
)

// TranslateError maps driver errors onto apperr classes. what names the
// operation ("insert vehicle") and prefixes the message.
func TranslateError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("%s", what)
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return fmt.Errorf("%s: %w", what, err)
	}
	switch pqErr.Code {
	case "23505": // unique_violation
		return apperr.Conflict("%s: duplicate value violates %s", what, pqErr.Constraint)
	case "23503": // foreign_key_violation
		return apperr.Validation("%s: referenced record not found", what)
	case "23514": // check_violation
		return apperr.Validation("%s: value violates %s", what, pqErr.Constraint)
	case "23502": // not_null_violation
		return apperr.Validation("%s: missing required field %s", what, pqErr.Column)
	case "22P02": // invalid_text_representation
		return apperr.Validation("%s: invalid value format", what)
	}
	return fmt.Errorf("%s: %w", what, err)
}

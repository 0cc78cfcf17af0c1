package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpersWrapSentinels(t *testing.T) {
	assert.ErrorIs(t, Validation("labor_cost must be >= 0"), ErrValidation)
	assert.ErrorIs(t, Transition("cannot transition from %s to %s", "cancelled", "customer_arrived"), ErrInvalidTransition)
	assert.ErrorIs(t, NotFound("customer %s", "x"), ErrNotFound)
	assert.ErrorIs(t, Conflict("duplicate plate"), ErrConflict)
	assert.ErrorIs(t, Forbidden("other company"), ErrForbidden)
	assert.False(t, errors.Is(NotFound("customer"), ErrValidation))
}

func TestMessageOmitsClass(t *testing.T) {
	err := Validation("quantity must be >= 1 (line %d)", 2)
	assert.Equal(t, "quantity must be >= 1 (line 2)", err.Error())

	wrapped := fmt.Errorf("create record: %w", err)
	assert.ErrorIs(t, wrapped, ErrValidation)
}

func TestDependencyKeepsCause(t *testing.T) {
	cause := fmt.Errorf("insert service record: %w", sql.ErrConnDone)
	err := Dependency("spawn service record", cause)

	assert.ErrorIs(t, err, ErrDependency)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "spawn service record: insert service record: "+sql.ErrConnDone.Error(), err.Error())
}

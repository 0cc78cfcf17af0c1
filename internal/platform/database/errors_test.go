package database

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
)

func TestTranslateError(t *testing.T) {
	assert.ErrorIs(t, TranslateError(sql.ErrNoRows, "get vehicle"), apperr.ErrNotFound)
	assert.ErrorIs(t, TranslateError(&pq.Error{Code: "23505", Constraint: "vehicles_company_plate_key"}, "insert vehicle"), apperr.ErrConflict)
	assert.ErrorIs(t, TranslateError(&pq.Error{Code: "23503"}, "insert vehicle"), apperr.ErrValidation)
	assert.ErrorIs(t, TranslateError(&pq.Error{Code: "23514", Constraint: "components_price_check"}, "update component"), apperr.ErrValidation)
	assert.NoError(t, TranslateError(nil, "noop"))

	other := TranslateError(errors.New("connection reset"), "list vehicles")
	assert.Equal(t, "list vehicles: connection reset", other.Error())
	assert.False(t, errors.Is(other, apperr.ErrValidation))
}

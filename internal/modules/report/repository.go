package report

import (
	"context"

	"github.com/google/uuid"
)

// Repository reads the completed-work snapshots reports aggregate over.
type Repository interface {
	CompletedRecords(ctx context.Context, companyID uuid.UUID, p Period) ([]*CompletedRecord, error)
}

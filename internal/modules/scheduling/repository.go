package scheduling

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for upcoming services.
type Repository interface {
	Create(ctx context.Context, s *UpcomingService) error
	GetByID(ctx context.Context, id uuid.UUID) (*UpcomingService, error)
	List(ctx context.Context, f ListFilter) ([]*UpcomingService, error)

	// UpdateStatus moves the visit from one status to another. It fails with
	// a conflict if the stored status is no longer from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error

	// MarkArrived sets customer_arrived and inserts the drafted service
	// record in one transaction.
	MarkArrived(ctx context.Context, id uuid.UUID, from Status, draft ServiceRecordDraft) error

	// Reschedule stores the new slot of a visit previously in status from.
	Reschedule(ctx context.Context, s *UpcomingService, from Status) error
}

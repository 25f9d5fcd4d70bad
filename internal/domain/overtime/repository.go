package overtime

import (
	"context"
	"time"
)

type RequestRepository interface {
	GetByID(ctx context.Context, id string) (Request, error)

	// FindByDateRange returns requests dated in [fromDate, toDate]
	// (YYYY-MM-DD, inclusive), optionally restricted to one staff member
	// or one status.
	FindByDateRange(ctx context.Context, fromDate, toDate string, staffID, status *string) ([]Request, error)

	List(ctx context.Context, filter *ListFilter) ([]Request, error)

	// UpsertDetected records a detected overtime duration for
	// (staffID, date). A new row starts pending; an existing pending row
	// has its detected duration refreshed; approved and rejected rows are
	// left alone. Returns the row and whether anything changed.
	UpsertDetected(ctx context.Context, staffID, date string, detected time.Duration) (Request, bool, error)

	// DeletePending removes the pending request for (staffID, date) if
	// one exists. Resolved requests are never deleted this way.
	DeletePending(ctx context.Context, staffID, date string) error

	// Resolve applies a manager's approval or rejection to a pending row.
	Resolve(ctx context.Context, req Request) (Request, error)
}

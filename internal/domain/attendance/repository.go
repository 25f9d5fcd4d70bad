package attendance

import (
	"context"
	"time"
)

type EventRepository interface {
	Create(ctx context.Context, event Event) (Event, error)
	GetByID(ctx context.Context, id string) (Event, error)

	// LastOfWindow returns the staff member's most recent event with
	// Timestamp in [from, to), or ErrEventNotFound.
	LastOfWindow(ctx context.Context, staffID string, from, to time.Time) (Event, error)

	// FindByTimestampRange returns events with Timestamp in [from, to),
	// optionally restricted to one staff member, ordered by timestamp.
	FindByTimestampRange(ctx context.Context, from, to time.Time, staffID *string) ([]Event, error)

	Update(ctx context.Context, event Event) (Event, error)
	Delete(ctx context.Context, id string) error
}

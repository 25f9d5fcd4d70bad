package staff

import "context"

type StaffRepository interface {
	Create(ctx context.Context, staff Staff) (Staff, error)
	GetByID(ctx context.Context, id string) (Staff, error)

	// Find returns all staff, or a single-element slice when staffID is set.
	// Used by the payroll engine's bulk read.
	Find(ctx context.Context, staffID *string) ([]Staff, error)

	Update(ctx context.Context, staff Staff) (Staff, error)
	Delete(ctx context.Context, id string) error
}

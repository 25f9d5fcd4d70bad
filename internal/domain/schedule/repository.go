package schedule

import "context"

type ScheduleRepository interface {
	Create(ctx context.Context, schedule StaffSchedule) (StaffSchedule, error)
	GetByID(ctx context.Context, id string) (StaffSchedule, error)

	// FindByDateRange returns schedules dated in [fromDate, toDate]
	// (YYYY-MM-DD, inclusive), optionally restricted to one staff member,
	// with Shift and ClassSession hydrated.
	FindByDateRange(ctx context.Context, fromDate, toDate string, staffID *string) ([]StaffSchedule, error)

	// FindByStaffAndDate returns the staff member's schedules on one date,
	// hydrated. Used for overlap checks during bulk assignment.
	FindByStaffAndDate(ctx context.Context, staffID, date string) ([]StaffSchedule, error)

	Update(ctx context.Context, schedule StaffSchedule) (StaffSchedule, error)
	Delete(ctx context.Context, id string) error
}

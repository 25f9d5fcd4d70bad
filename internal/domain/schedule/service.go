package schedule

import "context"

type ScheduleService interface {
	Create(ctx context.Context, req *CreateScheduleRequest) (*ScheduleResponse, error)
	GetByID(ctx context.Context, id string) (*ScheduleResponse, error)
	List(ctx context.Context, filter *ScheduleFilter) ([]ScheduleResponse, error)
	Update(ctx context.Context, req *UpdateScheduleRequest) (*ScheduleResponse, error)
	Delete(ctx context.Context, id string) error

	// AssignShiftRange creates one shift schedule per matching weekday in
	// the range, skipping days where an overlapping schedule exists.
	AssignShiftRange(ctx context.Context, req *AssignShiftRangeRequest) (*AssignShiftRangeResponse, error)
}

package schedule

import "errors"

var (
	ErrScheduleNotFound  = errors.New("staff schedule not found")
	ErrScheduleConflict  = errors.New("staff already has an overlapping schedule on this date")
	ErrAmbiguousTarget   = errors.New("schedule must reference exactly one of shift or class session")
	ErrShiftOnlyUpdate   = errors.New("only shift-based schedules can change their shift")
)

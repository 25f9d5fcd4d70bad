package shift

import "errors"

var (
	ErrShiftNotFound   = errors.New("shift not found")
	ErrShiftNameExists = errors.New("shift with this name already exists")
	ErrShiftInUse      = errors.New("shift is referenced by staff schedules")
)

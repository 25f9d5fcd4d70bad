package overtime

import "errors"

var (
	ErrRequestNotFound = errors.New("overtime request not found")
	ErrNotPending      = errors.New("only pending overtime requests can be resolved")
	ErrRequestExists   = errors.New("overtime request already exists for this staff and date")
)

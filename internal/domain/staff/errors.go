package staff

import "errors"

var (
	ErrStaffNotFound           = errors.New("staff not found")
	ErrEmailExists             = errors.New("email already registered")
	ErrIdentityCardExists      = errors.New("identity card number already registered")
	ErrNegativeRate            = errors.New("hourly rates must not be negative")
)

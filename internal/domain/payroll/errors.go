package payroll

import "errors"

var ErrNoStaffFound = errors.New("no staff found for payroll report")

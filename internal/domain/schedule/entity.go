package schedule

import (
	"time"

	"github.com/edulab-vn/center-backend-go/internal/domain/classsession"
	"github.com/edulab-vn/center-backend-go/internal/domain/master/shift"
)

// StaffSchedule assigns a staff member to either a fixed shift or a
// class session on one date. Exactly one of ShiftID and ClassSessionID
// is set.
type StaffSchedule struct {
	ID             string
	StaffID        string
	Date           time.Time // date only, local calendar day
	ShiftID        *string
	ClassSessionID *string
	RoleKey        *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Hydrated by the repository for payroll and listing.
	Shift        *shift.Shift
	ClassSession *classsession.ClassSession
}

func (s StaffSchedule) IsShiftBased() bool   { return s.ShiftID != nil }
func (s StaffSchedule) IsSessionBased() bool { return s.ClassSessionID != nil }

// DateKey returns the schedule's date as YYYY-MM-DD.
func (s StaffSchedule) DateKey() string {
	return s.Date.Format("2006-01-02")
}

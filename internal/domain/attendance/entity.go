package attendance

import "time"

const (
	TypeCheckIn  = "check-in"
	TypeCheckOut = "check-out"
)

// Event is a single badge scan. Check-ins and check-outs are stored as
// separate rows and paired up at payroll time.
type Event struct {
	ID        string
	StaffID   string
	Timestamp time.Time
	Type      string
	CreatedAt time.Time

	// Joined for display.
	StaffName *string
}

func (e Event) IsCheckIn() bool  { return e.Type == TypeCheckIn }
func (e Event) IsCheckOut() bool { return e.Type == TypeCheckOut }

package overtime

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// BreakdownItem is one approved slice of an overtime request, paid at
// the rate of Role times Multiplier. Stored as json on the request.
type BreakdownItem struct {
	Role       string          `json:"role"`
	Duration   string          `json:"duration"` // "HH:mm"
	Multiplier decimal.Decimal `json:"multiplier"`
}

// Request is an overtime record for one staff member on one date.
// Rows are detected by payroll as pending and resolved by a manager.
type Request struct {
	ID      string
	StaffID string
	Date    time.Time // date only, local calendar day

	DetectedDuration time.Duration

	// Approval outcome. Either Breakdown is set, or the legacy trio of
	// ApprovedDuration, ApprovedRoleKey, and ApprovedMultiplier.
	ApprovedDuration   *time.Duration
	ApprovedRoleKey    *string
	ApprovedMultiplier *decimal.Decimal
	Breakdown          []BreakdownItem

	Reason     *string
	Notes      *string
	Status     string
	ApproverID *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for display.
	StaffName *string
}

// DateKey returns the request's date as YYYY-MM-DD.
func (r Request) DateKey() string {
	return r.Date.Format("2006-01-02")
}

func (r Request) IsPending() bool  { return r.Status == StatusPending }
func (r Request) IsApproved() bool { return r.Status == StatusApproved }

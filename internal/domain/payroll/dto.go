package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/edulab-vn/center-backend-go/internal/pkg/validator"
)

type GenerateReportRequest struct {
	FromDate string  `json:"from_date"` // YYYY-MM-DD
	ToDate   string  `json:"to_date"`   // YYYY-MM-DD
	StaffID  *string `json:"staff_id,omitempty"`
}

func (r *GenerateReportRequest) Validate() error {
	var errs validator.ValidationErrors

	from, fromOK := validator.IsValidDate(r.FromDate)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date must be in YYYY-MM-DD format",
		})
	}

	to, toOK := validator.IsValidDate(r.ToDate)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must be in YYYY-MM-DD format",
		})
	}

	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must not be before from_date",
		})
	}

	if r.StaffID != nil && validator.IsEmpty(*r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id must not be empty if provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// WorkBlock is one paid slice of a working day. Type is the role key
// the slice is paid under, or an OT label for approved overtime.
type WorkBlock struct {
	Type     string          `json:"type"`
	Duration int             `json:"duration"` // minutes
	Pay      decimal.Decimal `json:"pay"`      // rounded to whole units
}

type DailyBreakdown struct {
	Date               string          `json:"date"` // YYYY-MM-DD
	CheckIn            string          `json:"check_in"`  // "HH:mm:ss" local, or "N/A"
	CheckOut           string          `json:"check_out"` // "HH:mm:ss" local, or "N/A"
	Blocks             []WorkBlock     `json:"blocks"`
	PotentialOTMinutes int             `json:"potential_ot_minutes"`
	ApprovedOTMinutes  int             `json:"approved_ot_minutes"`
	OTPay              decimal.Decimal `json:"ot_pay"`
	DailyPay           decimal.Decimal `json:"daily_pay"`
}

type StaffReport struct {
	StaffID        string           `json:"staff_id"`
	StaffName      string           `json:"staff_name"`
	TotalPay       decimal.Decimal  `json:"total_pay"`
	DailyBreakdown []DailyBreakdown `json:"daily_breakdown"`
}

type Report struct {
	FromDate string        `json:"from_date"`
	ToDate   string        `json:"to_date"`
	Staffs   []StaffReport `json:"staffs"`
}

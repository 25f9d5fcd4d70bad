package overtime

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/edulab-vn/center-backend-go/internal/pkg/validator"
)

var hhmmRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)

type ListFilter struct {
	FromDate *string `json:"from_date,omitempty"` // YYYY-MM-DD
	ToDate   *string `json:"to_date,omitempty"`   // YYYY-MM-DD
	StaffID  *string `json:"staff_id,omitempty"`
	Status   *string `json:"status,omitempty"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.FromDate != nil {
		if _, valid := validator.IsValidDate(*f.FromDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "from_date",
				Message: "from_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.ToDate != nil {
		if _, valid := validator.IsValidDate(*f.ToDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "to_date",
				Message: "to_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Status != nil {
		validStatuses := []string{StatusPending, StatusApproved, StatusRejected}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, approved, rejected",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BreakdownItemRequest struct {
	Role       string           `json:"role"`
	Duration   string           `json:"duration"` // "HH:mm"
	Multiplier *decimal.Decimal `json:"multiplier,omitempty"`
}

// ApproveRequest resolves a pending overtime request. Managers either
// split the hours across roles with Breakdown, or approve a single
// duration against one role. With neither, the detected duration is
// approved as-is.
type ApproveRequest struct {
	ID                 string                 `json:"-"`
	ApproverID         string                 `json:"-"` // from JWT
	ApprovedDuration   *string                `json:"approved_duration,omitempty"` // "HH:mm" or "HH:mm:ss"
	ApprovedRoleKey    *string                `json:"approved_role_key,omitempty"`
	ApprovedMultiplier *decimal.Decimal       `json:"approved_multiplier,omitempty"`
	Breakdown          []BreakdownItemRequest `json:"breakdown,omitempty"`
	Notes              *string                `json:"notes,omitempty"`
}

func (r *ApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.ApprovedDuration != nil && !hhmmRegex.MatchString(*r.ApprovedDuration) {
		errs = append(errs, validator.ValidationError{
			Field:   "approved_duration",
			Message: "approved_duration must be in HH:mm format",
		})
	}

	if r.ApprovedMultiplier != nil && r.ApprovedMultiplier.LessThan(decimal.NewFromInt(1)) {
		errs = append(errs, validator.ValidationError{
			Field:   "approved_multiplier",
			Message: "approved_multiplier must be at least 1",
		})
	}

	for i, item := range r.Breakdown {
		field := "breakdown[" + validator.Itoa(i) + "]"
		if validator.IsEmpty(item.Role) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".role",
				Message: "role is required",
			})
		}
		if !hhmmRegex.MatchString(item.Duration) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".duration",
				Message: "duration must be in HH:mm format",
			})
		}
		if item.Multiplier != nil && item.Multiplier.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".multiplier",
				Message: "multiplier must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectRequest struct {
	ID         string  `json:"-"`
	ApproverID string  `json:"-"` // from JWT
	Notes      *string `json:"notes,omitempty"`
}

func (r *RejectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestResponse struct {
	ID                 string           `json:"id"`
	StaffID            string           `json:"staff_id"`
	StaffName          string           `json:"staff_name,omitempty"`
	Date               string           `json:"date"`
	DetectedDuration   string           `json:"detected_duration"`            // "HH:mm:ss"
	ApprovedDuration   *string          `json:"approved_duration,omitempty"`  // "HH:mm:ss"
	ApprovedRoleKey    *string          `json:"approved_role_key,omitempty"`
	ApprovedMultiplier *decimal.Decimal `json:"approved_multiplier,omitempty"`
	Breakdown          []BreakdownItem  `json:"breakdown,omitempty"`
	Reason             *string          `json:"reason,omitempty"`
	Notes              *string          `json:"notes,omitempty"`
	Status             string           `json:"status"`
	ApproverID         *string          `json:"approver_id,omitempty"`
}

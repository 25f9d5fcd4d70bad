package shift

import (
	"github.com/shopspring/decimal"

	"github.com/edulab-vn/center-backend-go/internal/pkg/validator"
)

type ShiftResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	StartTime     string          `json:"start_time"`
	EndTime       string          `json:"end_time"`
	BreakDuration string          `json:"break_duration"`
	OTMultiplier  decimal.Decimal `json:"ot_multiplier"`
}

type CreateShiftRequest struct {
	Name          string           `json:"name"`
	StartTime     string           `json:"start_time"`               // "HH:mm" or "HH:mm:ss"
	EndTime       string           `json:"end_time"`                 // "HH:mm" or "HH:mm:ss"
	BreakDuration *string          `json:"break_duration,omitempty"` // "HH:mm:ss", defaults to none
	OTMultiplier  *decimal.Decimal `json:"ot_multiplier,omitempty"`  // defaults to 1
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidClockTime(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:mm or HH:mm:ss format",
		})
	}

	if !validator.IsValidClockTime(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:mm or HH:mm:ss format",
		})
	}

	if r.OTMultiplier != nil && r.OTMultiplier.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "ot_multiplier",
			Message: "ot_multiplier must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateShiftRequest struct {
	ID            string           `json:"-"`
	Name          *string          `json:"name,omitempty"`
	StartTime     *string          `json:"start_time,omitempty"`
	EndTime       *string          `json:"end_time,omitempty"`
	BreakDuration *string          `json:"break_duration,omitempty"`
	OTMultiplier  *decimal.Decimal `json:"ot_multiplier,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.StartTime != nil && !validator.IsValidClockTime(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:mm or HH:mm:ss format",
		})
	}

	if r.EndTime != nil && !validator.IsValidClockTime(*r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:mm or HH:mm:ss format",
		})
	}

	if r.OTMultiplier != nil && r.OTMultiplier.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "ot_multiplier",
			Message: "ot_multiplier must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

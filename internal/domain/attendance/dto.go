package attendance

import (
	"github.com/edulab-vn/center-backend-go/internal/pkg/validator"
)

const (
	ScanStatusCheckedIn       = "checked_in"
	ScanStatusCheckedOut      = "checked_out"
	ScanStatusConfirmCheckout = "confirm_checkout"
)

type ScanRequest struct {
	QRCodeData string `json:"qr_code_data"` // e.g. "staff_id:42"
	Confirm    bool   `json:"confirm"`      // set by the kiosk after the check-out prompt
}

func (r *ScanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.QRCodeData) {
		errs = append(errs, validator.ValidationError{
			Field:   "qr_code_data",
			Message: "qr_code_data is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ScanResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp,omitempty"`
	CheckInTime string `json:"check_in_time,omitempty"`
	StaffName   string `json:"staff_name"`
}

type CreateEventRequest struct {
	StaffID   string `json:"staff_id"`
	Timestamp string `json:"timestamp"` // RFC 3339
	Type      string `json:"type"`
}

func (r *CreateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}

	if _, valid := validator.IsValidDateTime(r.Timestamp); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp must be a valid RFC 3339 datetime",
		})
	}

	if r.Type != TypeCheckIn && r.Type != TypeCheckOut {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be check-in or check-out",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEventRequest struct {
	ID        string  `json:"-"`
	Timestamp *string `json:"timestamp,omitempty"`
	Type      *string `json:"type,omitempty"`
}

func (r *UpdateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Timestamp != nil {
		if _, valid := validator.IsValidDateTime(*r.Timestamp); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be a valid RFC 3339 datetime",
			})
		}
	}

	if r.Type != nil && *r.Type != TypeCheckIn && *r.Type != TypeCheckOut {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be check-in or check-out",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EventFilter struct {
	Date    string  `json:"date"` // YYYY-MM-DD local day
	StaffID *string `json:"staff_id,omitempty"`
}

func (f *EventFilter) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(f.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EventResponse struct {
	ID        string `json:"id"`
	StaffID   string `json:"staff_id"`
	StaffName string `json:"staff_name,omitempty"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
}

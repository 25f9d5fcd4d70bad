package schedule

import (
	"time"

	"github.com/edulab-vn/center-backend-go/internal/pkg/validator"
)

type CreateScheduleRequest struct {
	StaffID        string  `json:"staff_id"`
	Date           string  `json:"date"` // YYYY-MM-DD
	ShiftID        *string `json:"shift_id,omitempty"`
	ClassSessionID *string `json:"class_session_id,omitempty"`
	RoleKey        *string `json:"role_key,omitempty"`
}

func (r *CreateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	hasShift := r.ShiftID != nil && !validator.IsEmpty(*r.ShiftID)
	hasSession := r.ClassSessionID != nil && !validator.IsEmpty(*r.ClassSessionID)
	if hasShift == hasSession {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "exactly one of shift_id and class_session_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateScheduleRequest struct {
	ID      string  `json:"-"`
	ShiftID *string `json:"shift_id,omitempty"`
	RoleKey *string `json:"role_key,omitempty"`
}

func (r *UpdateScheduleRequest) Validate() error {
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

// AssignShiftRangeRequest bulk-assigns a shift across a date range,
// skipping days that already hold an overlapping schedule.
type AssignShiftRangeRequest struct {
	StaffID    string  `json:"staff_id"`
	ShiftID    string  `json:"shift_id"`
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`   // YYYY-MM-DD
	DaysOfWeek []int   `json:"days_of_week"` // 0=Sunday .. 6=Saturday
	RoleKey    *string `json:"role_key,omitempty"`
}

func (r *AssignShiftRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if startOK && endOK && end.Sub(start) > 366*24*time.Hour {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "date range must not exceed one year",
		})
	}

	if len(r.DaysOfWeek) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days_of_week",
			Message: "days_of_week is required",
		})
	}
	for _, d := range r.DaysOfWeek {
		if d < 0 || d > 6 {
			errs = append(errs, validator.ValidationError{
				Field:   "days_of_week",
				Message: "days_of_week values must be between 0 and 6",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignShiftRangeResponse struct {
	CreatedCount int      `json:"created_count"`
	SkippedDates []string `json:"skipped_dates"`
}

type ScheduleResponse struct {
	ID             string  `json:"id"`
	StaffID        string  `json:"staff_id"`
	Date           string  `json:"date"`
	ShiftID        *string `json:"shift_id,omitempty"`
	ShiftName      *string `json:"shift_name,omitempty"`
	ClassSessionID *string `json:"class_session_id,omitempty"`
	ClassName      *string `json:"class_name,omitempty"`
	RoleKey        *string `json:"role_key,omitempty"`
	StartTime      *string `json:"start_time,omitempty"`
	EndTime        *string `json:"end_time,omitempty"`
}

type ScheduleFilter struct {
	FromDate string  `json:"from_date"` // YYYY-MM-DD
	ToDate   string  `json:"to_date"`   // YYYY-MM-DD
	StaffID  *string `json:"staff_id,omitempty"`
}

func (f *ScheduleFilter) Validate() error {
	var errs validator.ValidationErrors

	from, fromOK := validator.IsValidDate(f.FromDate)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date must be in YYYY-MM-DD format",
		})
	}

	to, toOK := validator.IsValidDate(f.ToDate)
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

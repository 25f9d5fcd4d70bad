package response

import (
	"errors"
	"net/http"

	"github.com/edulab-vn/center-backend-go/internal/domain/attendance"
	"github.com/edulab-vn/center-backend-go/internal/domain/auth"
	"github.com/edulab-vn/center-backend-go/internal/domain/classsession"
	"github.com/edulab-vn/center-backend-go/internal/domain/master/role"
	"github.com/edulab-vn/center-backend-go/internal/domain/master/shift"
	"github.com/edulab-vn/center-backend-go/internal/domain/overtime"
	"github.com/edulab-vn/center-backend-go/internal/domain/payroll"
	"github.com/edulab-vn/center-backend-go/internal/domain/schedule"
	"github.com/edulab-vn/center-backend-go/internal/domain/staff"
	"github.com/edulab-vn/center-backend-go/internal/domain/user"
	"github.com/edulab-vn/center-backend-go/internal/pkg/timeutil"
	"github.com/edulab-vn/center-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth and user
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Staff
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff not found")
	case errors.Is(err, staff.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, staff.ErrIdentityCardExists):
		Conflict(w, "Identity card number already registered")
	case errors.Is(err, staff.ErrNegativeRate):
		BadRequest(w, "Hourly rates must not be negative", nil)

	// Master data
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftNameExists):
		Conflict(w, "Shift with this name already exists")
	case errors.Is(err, shift.ErrShiftInUse):
		Conflict(w, "Shift is referenced by staff schedules")
	case errors.Is(err, role.ErrRoleNotFound):
		NotFound(w, "Role not found")
	case errors.Is(err, role.ErrRoleKeyExists):
		Conflict(w, "Role with this key already exists")
	case errors.Is(err, role.ErrRoleNameExists):
		Conflict(w, "Role with this name already exists")
	case errors.Is(err, classsession.ErrSessionNotFound):
		NotFound(w, "Class session not found")

	// Schedules
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Staff schedule not found")
	case errors.Is(err, schedule.ErrScheduleConflict):
		Conflict(w, "Staff already has an overlapping schedule on this date")
	case errors.Is(err, schedule.ErrAmbiguousTarget):
		BadRequest(w, "Schedule must reference exactly one of shift or class session", nil)
	case errors.Is(err, schedule.ErrShiftOnlyUpdate):
		BadRequest(w, "Only shift-based schedules can change their shift", nil)

	// Attendance
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Attendance event not found")
	case errors.Is(err, attendance.ErrInvalidQRCode):
		BadRequest(w, "QR code payload is not a valid staff badge", nil)
	case errors.Is(err, attendance.ErrMalformedTimestamp):
		BadRequest(w, "Attendance timestamp is malformed", nil)

	// Overtime
	case errors.Is(err, overtime.ErrRequestNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, overtime.ErrNotPending):
		Conflict(w, "Only pending overtime requests can be resolved")
	case errors.Is(err, overtime.ErrRequestExists):
		Conflict(w, "Overtime request already exists for this staff and date")

	// Payroll
	case errors.Is(err, payroll.ErrNoStaffFound):
		NotFound(w, "No staff found for payroll report")
	case errors.Is(err, timeutil.ErrInvalidDurationFormat):
		BadRequest(w, "Duration must be in HH:mm or HH:mm:ss format", nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

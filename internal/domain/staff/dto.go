package staff

import (
	"github.com/shopspring/decimal"

	"github.com/edulab-vn/center-backend-go/internal/pkg/validator"
)

type CreateStaffRequest struct {
	FullName               string                     `json:"full_name"`
	PhoneNumber            string                     `json:"phone_number"`
	DateOfBirth            string                     `json:"date_of_birth"` // YYYY-MM-DD
	Email                  string                     `json:"email"`
	Address                string                     `json:"address"`
	IdentityCardNumber     string                     `json:"identity_card_number"`
	EmergencyContactNumber string                     `json:"emergency_contact_number"`
	Title                  string                     `json:"title"`
	Rates                  map[string]decimal.Decimal `json:"rates,omitempty"`
}

func (r *CreateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if validator.IsEmpty(r.DateOfBirth) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_of_birth",
			Message: "date_of_birth is required",
		})
	} else if _, valid := validator.IsValidDate(r.DateOfBirth); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date_of_birth",
			Message: "date_of_birth must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.IdentityCardNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "identity_card_number",
			Message: "identity_card_number is required",
		})
	}

	for key, rate := range r.Rates {
		if rate.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "rates." + key,
				Message: "rate must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateStaffRequest struct {
	ID                     string                      `json:"-"`
	FullName               *string                     `json:"full_name,omitempty"`
	PhoneNumber            *string                     `json:"phone_number,omitempty"`
	DateOfBirth            *string                     `json:"date_of_birth,omitempty"`
	Email                  *string                     `json:"email,omitempty"`
	Address                *string                     `json:"address,omitempty"`
	IdentityCardNumber     *string                     `json:"identity_card_number,omitempty"`
	EmergencyContactNumber *string                     `json:"emergency_contact_number,omitempty"`
	Title                  *string                     `json:"title,omitempty"`
	Rates                  *map[string]decimal.Decimal `json:"rates,omitempty"`
}

func (r *UpdateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if r.DateOfBirth != nil {
		if _, valid := validator.IsValidDate(*r.DateOfBirth); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date_of_birth",
				Message: "date_of_birth must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Rates != nil {
		for key, rate := range *r.Rates {
			if rate.IsNegative() {
				errs = append(errs, validator.ValidationError{
					Field:   "rates." + key,
					Message: "rate must not be negative",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StaffResponse struct {
	ID                     string                     `json:"id"`
	FullName               string                     `json:"full_name"`
	PhoneNumber            string                     `json:"phone_number"`
	DateOfBirth            string                     `json:"date_of_birth"`
	Email                  string                     `json:"email"`
	Address                string                     `json:"address"`
	IdentityCardNumber     string                     `json:"identity_card_number"`
	EmergencyContactNumber string                     `json:"emergency_contact_number"`
	Title                  string                     `json:"title"`
	Rates                  map[string]decimal.Decimal `json:"rates,omitempty"`
	CreatedAt              string                     `json:"created_at"`
	UpdatedAt              string                     `json:"updated_at"`
}

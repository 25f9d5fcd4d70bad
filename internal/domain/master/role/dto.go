package role

import (
	"github.com/edulab-vn/center-backend-go/internal/pkg/validator"
)

type RoleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

type CreateRoleRequest struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

func (r *CreateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Key) {
		errs = append(errs, validator.ValidationError{
			Field:   "key",
			Message: "key is required",
		})
	} else if !validator.IsValidRoleKey(r.Key) {
		errs = append(errs, validator.ValidationError{
			Field:   "key",
			Message: "key must contain only lowercase letters, digits, and hyphens",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateRoleRequest struct {
	ID   string  `json:"-"`
	Name *string `json:"name,omitempty"`
	Key  *string `json:"key,omitempty"`
}

func (r *UpdateRoleRequest) Validate() error {
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

	if r.Key != nil && !validator.IsValidRoleKey(*r.Key) {
		errs = append(errs, validator.ValidationError{
			Field:   "key",
			Message: "key must contain only lowercase letters, digits, and hyphens",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

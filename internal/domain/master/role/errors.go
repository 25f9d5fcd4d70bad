package role

import "errors"

var (
	ErrRoleNotFound   = errors.New("role not found")
	ErrRoleKeyExists  = errors.New("role with this key already exists")
	ErrRoleNameExists = errors.New("role with this name already exists")
)

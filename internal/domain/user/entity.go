package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"   // Center administrator - full access
	RoleManager Role = "manager" // Can resolve overtime and run payroll
	RoleStaff   Role = "staff"   // Regular staff account
)

type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is a center administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if user is manager or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// CanApprove checks if user can resolve overtime requests
func (u *User) CanApprove() bool {
	return u.IsManager()
}

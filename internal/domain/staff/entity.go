package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

// Staff is a teacher, teaching assistant, or part-time employee of the
// center.
type Staff struct {
	ID                     string
	FullName               string
	PhoneNumber            string
	DateOfBirth            time.Time
	Email                  string
	Address                string
	IdentityCardNumber     string
	EmergencyContactNumber string
	Title                  string

	// Rates maps a role key ("teacher", "teaching-assistant", "part-time")
	// to an hourly rate. Nil for staff who are never paid through payroll.
	Rates map[string]decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Rate resolves the hourly rate for a role key, falling back to fallbackKey
// when the role's rate is missing or zero. The second return is false when
// neither key yields a usable rate.
func (s Staff) Rate(roleKey, fallbackKey string) (decimal.Decimal, bool) {
	if rate, ok := s.Rates[roleKey]; ok && rate.IsPositive() {
		return rate, true
	}
	if rate, ok := s.Rates[fallbackKey]; ok && rate.IsPositive() {
		return rate, true
	}
	return decimal.Zero, false
}

// HasRate reports whether a rate is configured for the exact role key.
func (s Staff) HasRate(roleKey string) bool {
	_, ok := s.Rates[roleKey]
	return ok
}

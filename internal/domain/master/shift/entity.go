package shift

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shift is a fixed working window, e.g. 13:15:00 to 20:45:00.
type Shift struct {
	ID            string
	Name          string
	StartTime     string // "HH:mm:ss" local clock
	EndTime       string // "HH:mm:ss" local clock
	BreakDuration time.Duration
	OTMultiplier  decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

package classsession

import "time"

// ClassSession is one occurrence of a class on a given date.
type ClassSession struct {
	ID            string
	ClassID       string
	SessionDate   time.Time // date only, local calendar day
	StartTime     string    // "HH:mm" local clock
	SessionNumber *int
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined for display.
	ClassName *string
}

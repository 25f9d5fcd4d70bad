package role

import "time"

// Role is a payable role. Key is the identifier used in staff rate maps
// and schedule assignments ("teacher", "teaching-assistant", "part-time").
type Role struct {
	ID        string
	Name      string
	Key       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

package attendance

import "context"

type AttendanceService interface {
	// Scan handles a kiosk QR scan, toggling between check-in and
	// check-out based on the staff member's last event of the local day.
	Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error)

	// Manual corrections by back-office staff.
	CreateEvent(ctx context.Context, req *CreateEventRequest) (*EventResponse, error)
	UpdateEvent(ctx context.Context, req *UpdateEventRequest) (*EventResponse, error)
	DeleteEvent(ctx context.Context, id string) error

	ListEvents(ctx context.Context, filter *EventFilter) ([]EventResponse, error)
}

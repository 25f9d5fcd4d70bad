package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/edulab-vn/center-backend-go/internal/domain/attendance"
	"github.com/edulab-vn/center-backend-go/internal/domain/staff"
)

var qrCodeRegex = regexp.MustCompile(`^staff_id:([0-9a-fA-F-]+)$`)

type AttendanceServiceImpl struct {
	eventRepo attendance.EventRepository
	staffRepo staff.StaffRepository
	loc       *time.Location
	logger    *slog.Logger

	// now is swapped out in tests.
	now func() time.Time
}

func NewAttendanceService(
	eventRepo attendance.EventRepository,
	staffRepo staff.StaffRepository,
	loc *time.Location,
	logger *slog.Logger,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		eventRepo: eventRepo,
		staffRepo: staffRepo,
		loc:       loc,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *AttendanceServiceImpl) Scan(ctx context.Context, req *attendance.ScanRequest) (*attendance.ScanResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	match := qrCodeRegex.FindStringSubmatch(req.QRCodeData)
	if match == nil {
		return nil, attendance.ErrInvalidQRCode
	}

	st, err := s.staffRepo.GetByID(ctx, match[1])
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	last, err := s.eventRepo.LastOfWindow(ctx, st.ID, dayStart, dayEnd)
	if err != nil && !errors.Is(err, attendance.ErrEventNotFound) {
		return nil, fmt.Errorf("failed to look up last attendance event: %w", err)
	}

	// No event today, or the day already closed with a check-out: this
	// scan opens a new working stretch.
	if errors.Is(err, attendance.ErrEventNotFound) || last.IsCheckOut() {
		created, err := s.eventRepo.Create(ctx, attendance.Event{
			ID:        uuid.NewString(),
			StaffID:   st.ID,
			Timestamp: now,
			Type:      attendance.TypeCheckIn,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to record check-in: %w", err)
		}

		s.logger.Info("staff checked in",
			slog.String("staff_id", st.ID),
			slog.Time("timestamp", created.Timestamp))

		return &attendance.ScanResponse{
			Status:    attendance.ScanStatusCheckedIn,
			Message:   fmt.Sprintf("Checked in at %s", now.Format("15:04:05")),
			Timestamp: now.Format(time.RFC3339),
			StaffName: st.FullName,
		}, nil
	}

	// Last event today is a check-in: the kiosk must confirm before the
	// check-out is written.
	if !req.Confirm {
		checkInTime := last.Timestamp.In(s.loc).Format("15:04:05")
		return &attendance.ScanResponse{
			Status:      attendance.ScanStatusConfirmCheckout,
			Message:     fmt.Sprintf("Checked in at %s. Check out now?", checkInTime),
			CheckInTime: checkInTime,
			StaffName:   st.FullName,
		}, nil
	}

	created, err := s.eventRepo.Create(ctx, attendance.Event{
		ID:        uuid.NewString(),
		StaffID:   st.ID,
		Timestamp: now,
		Type:      attendance.TypeCheckOut,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record check-out: %w", err)
	}

	s.logger.Info("staff checked out",
		slog.String("staff_id", st.ID),
		slog.Time("timestamp", created.Timestamp))

	return &attendance.ScanResponse{
		Status:    attendance.ScanStatusCheckedOut,
		Message:   fmt.Sprintf("Checked out at %s", now.Format("15:04:05")),
		Timestamp: now.Format(time.RFC3339),
		StaffName: st.FullName,
	}, nil
}

func (s *AttendanceServiceImpl) CreateEvent(ctx context.Context, req *attendance.CreateEventRequest) (*attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	timestamp, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return nil, attendance.ErrMalformedTimestamp
	}

	if _, err := s.staffRepo.GetByID(ctx, req.StaffID); err != nil {
		return nil, err
	}

	created, err := s.eventRepo.Create(ctx, attendance.Event{
		ID:        uuid.NewString(),
		StaffID:   req.StaffID,
		Timestamp: timestamp,
		Type:      req.Type,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return s.toResponse(created), nil
}

func (s *AttendanceServiceImpl) UpdateEvent(ctx context.Context, req *attendance.UpdateEventRequest) (*attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Timestamp != nil {
		timestamp, err := time.Parse(time.RFC3339, *req.Timestamp)
		if err != nil {
			return nil, attendance.ErrMalformedTimestamp
		}
		event.Timestamp = timestamp
	}
	if req.Type != nil {
		event.Type = *req.Type
	}

	updated, err := s.eventRepo.Update(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to update attendance event: %w", err)
	}

	return s.toResponse(updated), nil
}

func (s *AttendanceServiceImpl) DeleteEvent(ctx context.Context, id string) error {
	return s.eventRepo.Delete(ctx, id)
}

func (s *AttendanceServiceImpl) ListEvents(ctx context.Context, filter *attendance.EventFilter) ([]attendance.EventResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	dayStart, err := time.ParseInLocation("2006-01-02", filter.Date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", filter.Date, err)
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	events, err := s.eventRepo.FindByTimestampRange(ctx, dayStart, dayEnd, filter.StaffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, *s.toResponse(event))
	}
	return responses, nil
}

func (s *AttendanceServiceImpl) toResponse(event attendance.Event) *attendance.EventResponse {
	resp := &attendance.EventResponse{
		ID:        event.ID,
		StaffID:   event.StaffID,
		Timestamp: event.Timestamp.In(s.loc).Format(time.RFC3339),
		Type:      event.Type,
	}
	if event.StaffName != nil {
		resp.StaffName = *event.StaffName
	}
	return resp
}

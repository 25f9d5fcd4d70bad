package attendance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulab-vn/center-backend-go/internal/domain/attendance"
	"github.com/edulab-vn/center-backend-go/internal/domain/staff"
)

type fakeEventRepo struct {
	events []attendance.Event
}

func (r *fakeEventRepo) Create(_ context.Context, event attendance.Event) (attendance.Event, error) {
	r.events = append(r.events, event)
	return event, nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (attendance.Event, error) {
	for _, e := range r.events {
		if e.ID == id {
			return e, nil
		}
	}
	return attendance.Event{}, attendance.ErrEventNotFound
}

func (r *fakeEventRepo) LastOfWindow(_ context.Context, staffID string, from, to time.Time) (attendance.Event, error) {
	var last *attendance.Event
	for i := range r.events {
		e := r.events[i]
		if e.StaffID != staffID || e.Timestamp.Before(from) || !e.Timestamp.Before(to) {
			continue
		}
		if last == nil || e.Timestamp.After(last.Timestamp) {
			last = &r.events[i]
		}
	}
	if last == nil {
		return attendance.Event{}, attendance.ErrEventNotFound
	}
	return *last, nil
}

func (r *fakeEventRepo) FindByTimestampRange(_ context.Context, from, to time.Time, staffID *string) ([]attendance.Event, error) {
	var result []attendance.Event
	for _, e := range r.events {
		if e.Timestamp.Before(from) || !e.Timestamp.Before(to) {
			continue
		}
		if staffID != nil && e.StaffID != *staffID {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event attendance.Event) (attendance.Event, error) {
	for i := range r.events {
		if r.events[i].ID == event.ID {
			r.events[i] = event
			return event, nil
		}
	}
	return attendance.Event{}, attendance.ErrEventNotFound
}

func (r *fakeEventRepo) Delete(_ context.Context, id string) error {
	for i := range r.events {
		if r.events[i].ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	return attendance.ErrEventNotFound
}

type fakeStaffRepo struct {
	staffs map[string]staff.Staff
}

func (r *fakeStaffRepo) Create(context.Context, staff.Staff) (staff.Staff, error) {
	return staff.Staff{}, errors.New("not implemented")
}
func (r *fakeStaffRepo) GetByID(_ context.Context, id string) (staff.Staff, error) {
	if st, ok := r.staffs[id]; ok {
		return st, nil
	}
	return staff.Staff{}, staff.ErrStaffNotFound
}
func (r *fakeStaffRepo) Find(context.Context, *string) ([]staff.Staff, error) {
	return nil, errors.New("not implemented")
}
func (r *fakeStaffRepo) Update(context.Context, staff.Staff) (staff.Staff, error) {
	return staff.Staff{}, errors.New("not implemented")
}
func (r *fakeStaffRepo) Delete(context.Context, string) error { return errors.New("not implemented") }

func newScanFixture(t *testing.T) (*AttendanceServiceImpl, *fakeEventRepo, func(clock string)) {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	eventRepo := &fakeEventRepo{}
	staffRepo := &fakeStaffRepo{staffs: map[string]staff.Staff{
		"abc-123": {ID: "abc-123", FullName: "Nguyen Van A"},
	}}

	svc := NewAttendanceService(eventRepo, staffRepo, loc,
		slog.New(slog.NewTextHandler(io.Discard, nil))).(*AttendanceServiceImpl)

	setClock := func(clock string) {
		instant, err := time.ParseInLocation("2006-01-02 15:04:05", "2025-03-10 "+clock, loc)
		require.NoError(t, err)
		svc.now = func() time.Time { return instant }
	}
	setClock("08:00:00")

	return svc, eventRepo, setClock
}

func TestScanFirstOfDayChecksIn(t *testing.T) {
	svc, eventRepo, _ := newScanFixture(t)

	resp, err := svc.Scan(context.Background(), &attendance.ScanRequest{QRCodeData: "staff_id:abc-123"})
	require.NoError(t, err)

	assert.Equal(t, attendance.ScanStatusCheckedIn, resp.Status)
	assert.Equal(t, "Nguyen Van A", resp.StaffName)
	require.Len(t, eventRepo.events, 1)
	assert.Equal(t, attendance.TypeCheckIn, eventRepo.events[0].Type)
}

func TestScanAfterCheckInAsksForConfirmation(t *testing.T) {
	svc, eventRepo, setClock := newScanFixture(t)

	_, err := svc.Scan(context.Background(), &attendance.ScanRequest{QRCodeData: "staff_id:abc-123"})
	require.NoError(t, err)

	setClock("17:30:00")
	resp, err := svc.Scan(context.Background(), &attendance.ScanRequest{QRCodeData: "staff_id:abc-123"})
	require.NoError(t, err)

	assert.Equal(t, attendance.ScanStatusConfirmCheckout, resp.Status)
	assert.Equal(t, "08:00:00", resp.CheckInTime)
	// Nothing was written.
	assert.Len(t, eventRepo.events, 1)
}

func TestScanConfirmedChecksOut(t *testing.T) {
	svc, eventRepo, setClock := newScanFixture(t)

	_, err := svc.Scan(context.Background(), &attendance.ScanRequest{QRCodeData: "staff_id:abc-123"})
	require.NoError(t, err)

	setClock("17:30:00")
	resp, err := svc.Scan(context.Background(), &attendance.ScanRequest{
		QRCodeData: "staff_id:abc-123",
		Confirm:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.ScanStatusCheckedOut, resp.Status)
	require.Len(t, eventRepo.events, 2)
	assert.Equal(t, attendance.TypeCheckOut, eventRepo.events[1].Type)
}

func TestScanAfterCheckOutOpensNewStretch(t *testing.T) {
	svc, eventRepo, setClock := newScanFixture(t)

	scan := func(confirm bool) {
		_, err := svc.Scan(context.Background(), &attendance.ScanRequest{
			QRCodeData: "staff_id:abc-123",
			Confirm:    confirm,
		})
		require.NoError(t, err)
	}

	scan(false) // check-in
	setClock("12:00:00")
	scan(true) // check-out
	setClock("14:00:00")
	scan(false) // check-in again

	require.Len(t, eventRepo.events, 3)
	assert.Equal(t, attendance.TypeCheckIn, eventRepo.events[2].Type)
}

func TestScanRejectsBadQRCode(t *testing.T) {
	svc, _, _ := newScanFixture(t)

	_, err := svc.Scan(context.Background(), &attendance.ScanRequest{QRCodeData: "not-a-badge"})
	assert.ErrorIs(t, err, attendance.ErrInvalidQRCode)
}

func TestScanUnknownStaff(t *testing.T) {
	svc, _, _ := newScanFixture(t)

	_, err := svc.Scan(context.Background(), &attendance.ScanRequest{QRCodeData: "staff_id:deadbeef"})
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestCreateEventRejectsMalformedTimestamp(t *testing.T) {
	svc, _, _ := newScanFixture(t)

	_, err := svc.CreateEvent(context.Background(), &attendance.CreateEventRequest{
		StaffID:   "abc-123",
		Timestamp: "2025-03-10 08:00:00",
		Type:      attendance.TypeCheckIn,
	})
	assert.Error(t, err)
}

func TestListEventsFiltersByLocalDay(t *testing.T) {
	svc, eventRepo, _ := newScanFixture(t)
	loc := svc.loc

	add := func(day, clock string) {
		instant, err := time.ParseInLocation("2006-01-02 15:04:05", day+" "+clock, loc)
		require.NoError(t, err)
		eventRepo.events = append(eventRepo.events, attendance.Event{
			ID:        day + clock,
			StaffID:   "abc-123",
			Timestamp: instant,
			Type:      attendance.TypeCheckIn,
		})
	}
	add("2025-03-09", "23:30:00")
	add("2025-03-10", "08:00:00")
	add("2025-03-11", "00:10:00")

	events, err := svc.ListEvents(context.Background(), &attendance.EventFilter{Date: "2025-03-10"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "2025-03-1008:00:00", events[0].ID)
}

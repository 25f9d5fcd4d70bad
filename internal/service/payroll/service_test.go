package payroll

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulab-vn/center-backend-go/internal/config"
	"github.com/edulab-vn/center-backend-go/internal/domain/attendance"
	"github.com/edulab-vn/center-backend-go/internal/domain/classsession"
	"github.com/edulab-vn/center-backend-go/internal/domain/master/shift"
	"github.com/edulab-vn/center-backend-go/internal/domain/overtime"
	"github.com/edulab-vn/center-backend-go/internal/domain/payroll"
	"github.com/edulab-vn/center-backend-go/internal/domain/schedule"
	"github.com/edulab-vn/center-backend-go/internal/domain/staff"
)

// ---- in-memory repositories ----

type fakeStaffRepo struct {
	staffs []staff.Staff
}

func (r *fakeStaffRepo) Create(context.Context, staff.Staff) (staff.Staff, error) {
	return staff.Staff{}, errors.New("not implemented")
}
func (r *fakeStaffRepo) GetByID(context.Context, string) (staff.Staff, error) {
	return staff.Staff{}, errors.New("not implemented")
}
func (r *fakeStaffRepo) Find(_ context.Context, staffID *string) ([]staff.Staff, error) {
	if staffID == nil {
		return r.staffs, nil
	}
	for _, st := range r.staffs {
		if st.ID == *staffID {
			return []staff.Staff{st}, nil
		}
	}
	return nil, nil
}
func (r *fakeStaffRepo) Update(context.Context, staff.Staff) (staff.Staff, error) {
	return staff.Staff{}, errors.New("not implemented")
}
func (r *fakeStaffRepo) Delete(context.Context, string) error { return errors.New("not implemented") }

type fakeScheduleRepo struct {
	schedules []schedule.StaffSchedule
}

func (r *fakeScheduleRepo) Create(context.Context, schedule.StaffSchedule) (schedule.StaffSchedule, error) {
	return schedule.StaffSchedule{}, errors.New("not implemented")
}
func (r *fakeScheduleRepo) GetByID(context.Context, string) (schedule.StaffSchedule, error) {
	return schedule.StaffSchedule{}, errors.New("not implemented")
}
func (r *fakeScheduleRepo) FindByDateRange(_ context.Context, fromDate, toDate string, staffID *string) ([]schedule.StaffSchedule, error) {
	var result []schedule.StaffSchedule
	for _, sch := range r.schedules {
		key := sch.DateKey()
		if key < fromDate || key > toDate {
			continue
		}
		if staffID != nil && sch.StaffID != *staffID {
			continue
		}
		result = append(result, sch)
	}
	return result, nil
}
func (r *fakeScheduleRepo) FindByStaffAndDate(context.Context, string, string) ([]schedule.StaffSchedule, error) {
	return nil, errors.New("not implemented")
}
func (r *fakeScheduleRepo) Update(context.Context, schedule.StaffSchedule) (schedule.StaffSchedule, error) {
	return schedule.StaffSchedule{}, errors.New("not implemented")
}
func (r *fakeScheduleRepo) Delete(context.Context, string) error {
	return errors.New("not implemented")
}

type fakeEventRepo struct {
	events []attendance.Event
}

func (r *fakeEventRepo) Create(context.Context, attendance.Event) (attendance.Event, error) {
	return attendance.Event{}, errors.New("not implemented")
}
func (r *fakeEventRepo) GetByID(context.Context, string) (attendance.Event, error) {
	return attendance.Event{}, errors.New("not implemented")
}
func (r *fakeEventRepo) LastOfWindow(context.Context, string, time.Time, time.Time) (attendance.Event, error) {
	return attendance.Event{}, attendance.ErrEventNotFound
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
func (r *fakeEventRepo) Update(context.Context, attendance.Event) (attendance.Event, error) {
	return attendance.Event{}, errors.New("not implemented")
}
func (r *fakeEventRepo) Delete(context.Context, string) error { return errors.New("not implemented") }

type fakeOTRepo struct {
	requests map[string]overtime.Request // staffID|date

	upserts int
	deletes int
}

func newFakeOTRepo() *fakeOTRepo {
	return &fakeOTRepo{requests: make(map[string]overtime.Request)}
}

func (r *fakeOTRepo) GetByID(context.Context, string) (overtime.Request, error) {
	return overtime.Request{}, errors.New("not implemented")
}
func (r *fakeOTRepo) FindByDateRange(_ context.Context, fromDate, toDate string, staffID, status *string) ([]overtime.Request, error) {
	var result []overtime.Request
	for _, ot := range r.requests {
		key := ot.DateKey()
		if key < fromDate || key > toDate {
			continue
		}
		if staffID != nil && ot.StaffID != *staffID {
			continue
		}
		if status != nil && ot.Status != *status {
			continue
		}
		result = append(result, ot)
	}
	return result, nil
}
func (r *fakeOTRepo) List(context.Context, *overtime.ListFilter) ([]overtime.Request, error) {
	return nil, errors.New("not implemented")
}
func (r *fakeOTRepo) UpsertDetected(_ context.Context, staffID, date string, detected time.Duration) (overtime.Request, bool, error) {
	r.upserts++
	key := staffID + "|" + date
	if existing, ok := r.requests[key]; ok {
		if existing.Status != overtime.StatusPending || existing.DetectedDuration == detected {
			return existing, false, nil
		}
		existing.DetectedDuration = detected
		r.requests[key] = existing
		return existing, true, nil
	}
	day, _ := time.Parse("2006-01-02", date)
	req := overtime.Request{
		ID:               key,
		StaffID:          staffID,
		Date:             day,
		DetectedDuration: detected,
		Status:           overtime.StatusPending,
	}
	r.requests[key] = req
	return req, true, nil
}
func (r *fakeOTRepo) DeletePending(_ context.Context, staffID, date string) error {
	r.deletes++
	key := staffID + "|" + date
	if existing, ok := r.requests[key]; ok && existing.Status == overtime.StatusPending {
		delete(r.requests, key)
	}
	return nil
}
func (r *fakeOTRepo) Resolve(context.Context, overtime.Request) (overtime.Request, error) {
	return overtime.Request{}, errors.New("not implemented")
}

// ---- helpers ----

func testConfig() config.PayrollConfig {
	return config.PayrollConfig{
		Timezone:                 "Asia/Ho_Chi_Minh",
		LunchStart:               "11:45",
		LunchEnd:                 "13:15",
		SessionMinutes:           90,
		SessionBufferMinutes:     15,
		OvertimeThresholdMinutes: 1,
		RolePriority: map[string]int{
			"teacher":            3,
			"teaching-assistant": 2,
			"part-time":          1,
		},
		DefaultRoleKey: "part-time",
	}
}

type engineFixture struct {
	service   payroll.PayrollService
	staffRepo *fakeStaffRepo
	schedRepo *fakeScheduleRepo
	eventRepo *fakeEventRepo
	otRepo    *fakeOTRepo
	loc       *time.Location
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	f := &engineFixture{
		staffRepo: &fakeStaffRepo{},
		schedRepo: &fakeScheduleRepo{},
		eventRepo: &fakeEventRepo{},
		otRepo:    newFakeOTRepo(),
		loc:       loc,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.service, err = NewPayrollService(f.staffRepo, f.schedRepo, f.eventRepo, f.otRepo, testConfig(), logger)
	require.NoError(t, err)
	return f
}

func (f *engineFixture) at(date, clock string) time.Time {
	day, _ := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, f.loc)
	return day
}

func (f *engineFixture) addEvent(staffID, date, clock, eventType string) {
	f.eventRepo.events = append(f.eventRepo.events, attendance.Event{
		ID:        staffID + date + clock,
		StaffID:   staffID,
		Timestamp: f.at(date, clock),
		Type:      eventType,
	})
}

func strPtr(s string) *string { return &s }

func rates(pairs map[string]int64) map[string]decimal.Decimal {
	result := make(map[string]decimal.Decimal, len(pairs))
	for key, value := range pairs {
		result[key] = decimal.NewFromInt(value)
	}
	return result
}

func sessionSchedule(id, staffID, date, startTime string, roleKey *string) schedule.StaffSchedule {
	day, _ := time.Parse("2006-01-02", date)
	sessionID := id + "-session"
	return schedule.StaffSchedule{
		ID:             id,
		StaffID:        staffID,
		Date:           day,
		ClassSessionID: &sessionID,
		RoleKey:        roleKey,
		ClassSession: &classsession.ClassSession{
			ID:          sessionID,
			SessionDate: day,
			StartTime:   startTime,
		},
	}
}

func shiftSchedule(id, staffID, date, startTime, endTime string, roleKey *string) schedule.StaffSchedule {
	day, _ := time.Parse("2006-01-02", date)
	shiftID := id + "-shift"
	return schedule.StaffSchedule{
		ID:      id,
		StaffID: staffID,
		Date:    day,
		ShiftID: &shiftID,
		RoleKey: roleKey,
		Shift: &shift.Shift{
			ID:        shiftID,
			StartTime: startTime,
			EndTime:   endTime,
		},
	}
}

// ---- tests ----

// A teacher session from 14:00 pays 13:45 to 15:45. Working 13:40 to 16:00
// yields 120 paid teacher minutes and 20 residual minutes of overtime.
func TestGenerateReportSessionWithResidualOvertime(t *testing.T) {
	f := newEngineFixture(t)

	f.staffRepo.staffs = []staff.Staff{{
		ID:       "staff-1",
		FullName: "Nguyen Van A",
		Rates:    rates(map[string]int64{"teacher": 100000, "part-time": 40000}),
	}}
	f.schedRepo.schedules = []schedule.StaffSchedule{
		sessionSchedule("sch-1", "staff-1", "2025-03-10", "14:00", strPtr("teacher")),
	}
	f.addEvent("staff-1", "2025-03-10", "13:40", attendance.TypeCheckIn)
	f.addEvent("staff-1", "2025-03-10", "16:00", attendance.TypeCheckOut)

	report, err := f.service.GenerateReport(context.Background(), &payroll.GenerateReportRequest{
		FromDate: "2025-03-10",
		ToDate:   "2025-03-10",
	})
	require.NoError(t, err)
	require.Len(t, report.Staffs, 1)

	st := report.Staffs[0]
	require.Len(t, st.DailyBreakdown, 1)

	day := st.DailyBreakdown[0]
	assert.Equal(t, "2025-03-10", day.Date)
	assert.Equal(t, "13:40:00", day.CheckIn)
	assert.Equal(t, "16:00:00", day.CheckOut)
	require.Len(t, day.Blocks, 1)
	assert.Equal(t, "teacher", day.Blocks[0].Type)
	assert.Equal(t, 120, day.Blocks[0].Duration)
	assert.True(t, day.Blocks[0].Pay.Equal(decimal.NewFromInt(200000)), "got %s", day.Blocks[0].Pay)
	assert.Equal(t, 20, day.PotentialOTMinutes)
	assert.True(t, day.DailyPay.Equal(decimal.NewFromInt(200000)))
	assert.True(t, st.TotalPay.Equal(decimal.NewFromInt(200000)))

	// The residual was recorded as a pending request.
	pending, ok := f.otRepo.requests["staff-1|2025-03-10"]
	require.True(t, ok)
	assert.Equal(t, overtime.StatusPending, pending.Status)
	assert.Equal(t, 20*time.Minute, pending.DetectedDuration)
}

// Lunch is only deducted when a pair strictly spans the 11:45-13:15 window.
func TestGenerateReportLunchDeduction(t *testing.T) {
	f := newEngineFixture(t)

	f.staffRepo.staffs = []staff.Staff{{
		ID:       "staff-1",
		FullName: "Tran Thi B",
		Rates:    rates(map[string]int64{"part-time": 40000}),
	}}
	f.schedRepo.schedules = []schedule.StaffSchedule{
		shiftSchedule("sch-1", "staff-1", "2025-03-11", "09:00", "18:00", nil),
	}
	f.addEvent("staff-1", "2025-03-11", "09:00", attendance.TypeCheckIn)
	f.addEvent("staff-1", "2025-03-11", "18:00", attendance.TypeCheckOut)

	report, err := f.service.GenerateReport(context.Background(), &payroll.GenerateReportRequest{
		FromDate: "2025-03-11",
		ToDate:   "2025-03-11",
	})
	require.NoError(t, err)
	require.Len(t, report.Staffs, 1)
	require.Len(t, report.Staffs[0].DailyBreakdown, 1)

	day := report.Staffs[0].DailyBreakdown[0]

	// 9 hours minus the 90 minute lunch, split around the gap.
	require.Len(t, day.Blocks, 2)
	assert.Equal(t, 165, day.Blocks[0].Duration)
	assert.Equal(t, 285, day.Blocks[1].Duration)
	assert.Equal(t, 0, day.PotentialOTMinutes)

	// 450 minutes at 40000/h.
	assert.True(t, day.DailyPay.Equal(decimal.NewFromInt(300000)), "got %s", day.DailyPay)

	// No residual: any stale pending request would have been cleared.
	assert.Empty(t, f.otRepo.requests)
}

// A pair ending inside the lunch window keeps all its minutes.
func TestGenerateReportNoLunchDeductionWhenNotSpanning(t *testing.T) {
	f := newEngineFixture(t)

	f.staffRepo.staffs = []staff.Staff{{
		ID:    "staff-1",
		Rates: rates(map[string]int64{"part-time": 40000}),
	}}
	f.schedRepo.schedules = []schedule.StaffSchedule{
		shiftSchedule("sch-1", "staff-1", "2025-03-12", "09:00", "13:00", nil),
	}
	f.addEvent("staff-1", "2025-03-12", "09:00", attendance.TypeCheckIn)
	f.addEvent("staff-1", "2025-03-12", "12:30", attendance.TypeCheckOut)

	report, err := f.service.GenerateReport(context.Background(), &payroll.GenerateReportRequest{
		FromDate: "2025-03-12",
		ToDate:   "2025-03-12",
	})
	require.NoError(t, err)

	day := report.Staffs[0].DailyBreakdown[0]
	require.Len(t, day.Blocks, 1)
	// 09:00-12:30 clipped by the shift to 09:00-12:30, all paid.
	assert.Equal(t, 210, day.Blocks[0].Duration)
}

// When a teacher session overlaps a part-time shift, each contested minute
// goes to the higher-priority role.
func TestGenerateReportOverlapResolvedByPriority(t *testing.T) {
	f := newEngineFixture(t)

	f.staffRepo.staffs = []staff.Staff{{
		ID:       "staff-1",
		FullName: "Le Van C",
		Rates:    rates(map[string]int64{"teacher": 100000, "part-time": 40000}),
	}}
	f.schedRepo.schedules = []schedule.StaffSchedule{
		shiftSchedule("sch-1", "staff-1", "2025-03-13", "13:00", "20:00", nil),
		sessionSchedule("sch-2", "staff-1", "2025-03-13", "15:00", strPtr("teacher")),
	}
	f.addEvent("staff-1", "2025-03-13", "13:00", attendance.TypeCheckIn)
	f.addEvent("staff-1", "2025-03-13", "20:00", attendance.TypeCheckOut)

	report, err := f.service.GenerateReport(context.Background(), &payroll.GenerateReportRequest{
		FromDate: "2025-03-13",
		ToDate:   "2025-03-13",
	})
	require.NoError(t, err)

	day := report.Staffs[0].DailyBreakdown[0]

	// 13:00-14:45 part-time, 14:45-16:45 teacher, 16:45-20:00 part-time.
	require.Len(t, day.Blocks, 3)
	assert.Equal(t, "part-time", day.Blocks[0].Type)
	assert.Equal(t, 105, day.Blocks[0].Duration)
	assert.Equal(t, "teacher", day.Blocks[1].Type)
	assert.Equal(t, 120, day.Blocks[1].Duration)
	assert.Equal(t, "part-time", day.Blocks[2].Type)
	assert.Equal(t, 195, day.Blocks[2].Duration)

	// Full coverage leaves no residual.
	assert.Equal(t, 0, day.PotentialOTMinutes)
}

// Re-running the report must not duplicate or churn overtime requests.
func TestGenerateReportOvertimeSyncIsIdempotent(t *testing.T) {
	f := newEngineFixture(t)

	f.staffRepo.staffs = []staff.Staff{{
		ID:    "staff-1",
		Rates: rates(map[string]int64{"teacher": 100000}),
	}}
	f.schedRepo.schedules = []schedule.StaffSchedule{
		sessionSchedule("sch-1", "staff-1", "2025-03-10", "14:00", strPtr("teacher")),
	}
	f.addEvent("staff-1", "2025-03-10", "13:45", attendance.TypeCheckIn)
	f.addEvent("staff-1", "2025-03-10", "16:15", attendance.TypeCheckOut)

	req := &payroll.GenerateReportRequest{FromDate: "2025-03-10", ToDate: "2025-03-10"}

	first, err := f.service.GenerateReport(context.Background(), req)
	require.NoError(t, err)
	second, err := f.service.GenerateReport(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, f.otRepo.requests, 1)
	pending := f.otRepo.requests["staff-1|2025-03-10"]
	assert.Equal(t, 30*time.Minute, pending.DetectedDuration)
}

// A pending request whose detected overtime has since dropped to zero is
// deleted on the next run.
func TestGenerateReportDeletesStalePendingRequest(t *testing.T) {
	f := newEngineFixture(t)

	f.staffRepo.staffs = []staff.Staff{{
		ID:    "staff-1",
		Rates: rates(map[string]int64{"part-time": 40000}),
	}}
	f.schedRepo.schedules = []schedule.StaffSchedule{
		shiftSchedule("sch-1", "staff-1", "2025-03-11", "09:00", "18:00", nil),
	}
	f.addEvent("staff-1", "2025-03-11", "09:00", attendance.TypeCheckIn)
	f.addEvent("staff-1", "2025-03-11", "18:00", attendance.TypeCheckOut)

	// Left over from an earlier run, before the shift covered the day.
	day, _ := time.Parse("2006-01-02", "2025-03-11")
	f.otRepo.requests["staff-1|2025-03-11"] = overtime.Request{
		ID:               "ot-stale",
		StaffID:          "staff-1",
		Date:             day,
		DetectedDuration: 30 * time.Minute,
		Status:           overtime.StatusPending,
	}

	report, err := f.service.GenerateReport(context.Background(), &payroll.GenerateReportRequest{
		FromDate: "2025-03-11",
		ToDate:   "2025-03-11",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, report.Staffs[0].DailyBreakdown[0].PotentialOTMinutes)
	assert.NotContains(t, f.otRepo.requests, "staff-1|2025-03-11")
	assert.Positive(t, f.otRepo.deletes)
}

// The zero-residual delete path must never remove a resolved request.
func TestGenerateReportKeepsApprovedRequestOnRecompute(t *testing.T) {
	f := newEngineFixture(t)

	f.staffRepo.staffs = []staff.Staff{{
		ID:    "staff-1",
		Rates: rates(map[string]int64{"part-time": 40000}),
	}}
	f.schedRepo.schedules = []schedule.StaffSchedule{
		shiftSchedule("sch-1", "staff-1", "2025-03-11", "14:00", "17:00", nil),
	}
	f.addEvent("staff-1", "2025-03-11", "14:00", attendance.TypeCheckIn)
	f.addEvent("staff-1", "2025-03-11", "17:00", attendance.TypeCheckOut)

	day, _ := time.Parse("2006-01-02", "2025-03-11")
	approved := 30 * time.Minute
	f.otRepo.requests["staff-1|2025-03-11"] = overtime.Request{
		ID:               "ot-approved",
		StaffID:          "staff-1",
		Date:             day,
		DetectedDuration: 30 * time.Minute,
		ApprovedDuration: &approved,
		ApprovedRoleKey:  strPtr("part-time"),
		Status:           overtime.StatusApproved,
	}

	report, err := f.service.GenerateReport(context.Background(), &payroll.GenerateReportRequest{
		FromDate: "2025-03-11",
		ToDate:   "2025-03-11",
	})
	require.NoError(t, err)

	// Attendance matches the shift exactly, so the recompute finds no
	// residual, yet the approved request survives and still pays.
	kept, ok := f.otRepo.requests["staff-1|2025-03-11"]
	require.True(t, ok)
	assert.Equal(t, overtime.StatusApproved, kept.Status)

	dayReport := report.Staffs[0].DailyBreakdown[0]
	assert.Equal(t, 30, dayReport.ApprovedOTMinutes)
	assert.True(t, dayReport.OTPay.Equal(decimal.NewFromInt(20000)), "got %s", dayReport.OTPay)
}

// An approved request with a breakdown pays each slice at its own role and
// multiplier, on top of standard pay.
func TestGenerateReportApprovedOvertimeBreakdown(t *testing.T) {
	f := newEngineFixture(t)

	f.staffRepo.staffs = []staff.Staff{{
		ID:       "staff-1",
		FullName: "Pham Thi D",
		Rates:    rates(map[string]int64{"teacher": 100000, "teaching-assistant": 60000}),
	}}
	f.schedRepo.schedules = []schedule.StaffSchedule{
		sessionSchedule("sch-1", "staff-1", "2025-03-10", "14:00", strPtr("teacher")),
	}
	f.addEvent("staff-1", "2025-03-10", "13:45", attendance.TypeCheckIn)
	f.addEvent("staff-1", "2025-03-10", "15:45", attendance.TypeCheckOut)

	day, _ := time.Parse("2006-01-02", "2025-03-10")
	f.otRepo.requests["staff-1|2025-03-10"] = overtime.Request{
		ID:               "ot-1",
		StaffID:          "staff-1",
		Date:             day,
		DetectedDuration: 90 * time.Minute,
		Status:           overtime.StatusApproved,
		Breakdown: []overtime.BreakdownItem{
			{Role: "teacher", Duration: "01:00", Multiplier: decimal.NewFromFloat(1.5)},
			{Role: "teaching-assistant", Duration: "00:30", Multiplier: decimal.NewFromInt(2)},
		},
	}

	report, err := f.service.GenerateReport(context.Background(), &payroll.GenerateReportRequest{
		FromDate: "2025-03-10",
		ToDate:   "2025-03-10",
	})
	require.NoError(t, err)

	dayReport := report.Staffs[0].DailyBreakdown[0]
	require.Len(t, dayReport.Blocks, 3)

	assert.Equal(t, "OT-teacher (x1.5)", dayReport.Blocks[1].Type)
	assert.True(t, dayReport.Blocks[1].Pay.Equal(decimal.NewFromInt(150000)), "got %s", dayReport.Blocks[1].Pay)
	assert.Equal(t, "OT-teaching-assistant (x2)", dayReport.Blocks[2].Type)
	assert.True(t, dayReport.Blocks[2].Pay.Equal(decimal.NewFromInt(60000)), "got %s", dayReport.Blocks[2].Pay)

	assert.Equal(t, 90, dayReport.ApprovedOTMinutes)
	assert.True(t, dayReport.OTPay.Equal(decimal.NewFromInt(210000)))
	// 120 standard minutes at 100000/h plus overtime.
	assert.True(t, dayReport.DailyPay.Equal(decimal.NewFromInt(410000)))
}

// Legacy single-duration approvals default to multiplier 1.
func TestGenerateReportApprovedOvertimeLegacy(t *testing.T) {
	f := newEngineFixture(t)

	f.staffRepo.staffs = []staff.Staff{{
		ID:    "staff-1",
		Rates: rates(map[string]int64{"teacher": 100000}),
	}}

	day, _ := time.Parse("2006-01-02", "2025-03-15")
	approved := 45 * time.Minute
	f.otRepo.requests["staff-1|2025-03-15"] = overtime.Request{
		ID:               "ot-1",
		StaffID:          "staff-1",
		Date:             day,
		DetectedDuration: 45 * time.Minute,
		ApprovedDuration: &approved,
		ApprovedRoleKey:  strPtr("teacher"),
		Status:           overtime.StatusApproved,
	}

	report, err := f.service.GenerateReport(context.Background(), &payroll.GenerateReportRequest{
		FromDate: "2025-03-15",
		ToDate:   "2025-03-15",
	})
	require.NoError(t, err)
	require.Len(t, report.Staffs, 1)

	// No attendance that day: the approved overtime stands alone.
	require.Len(t, report.Staffs[0].DailyBreakdown, 1)
	dayReport := report.Staffs[0].DailyBreakdown[0]
	assert.Equal(t, "N/A", dayReport.CheckIn)
	assert.Equal(t, "N/A", dayReport.CheckOut)
	require.Len(t, dayReport.Blocks, 1)
	assert.Equal(t, "OT (teacher)", dayReport.Blocks[0].Type)
	assert.True(t, dayReport.DailyPay.Equal(decimal.NewFromInt(75000)), "got %s", dayReport.DailyPay)
}

// A check-out at or before its check-in invalidates the pair; the day still
// appears, with nothing payable.
func TestGenerateReportInvalidPairSkipped(t *testing.T) {
	f := newEngineFixture(t)

	f.staffRepo.staffs = []staff.Staff{{
		ID:    "staff-1",
		Rates: rates(map[string]int64{"part-time": 40000}),
	}}
	f.schedRepo.schedules = []schedule.StaffSchedule{
		shiftSchedule("sch-1", "staff-1", "2025-03-14", "09:00", "17:00", nil),
	}
	f.addEvent("staff-1", "2025-03-14", "15:00", attendance.TypeCheckIn)
	f.addEvent("staff-1", "2025-03-14", "14:00", attendance.TypeCheckOut)

	report, err := f.service.GenerateReport(context.Background(), &payroll.GenerateReportRequest{
		FromDate: "2025-03-14",
		ToDate:   "2025-03-14",
	})
	require.NoError(t, err)
	require.Len(t, report.Staffs, 1)
	require.Len(t, report.Staffs[0].DailyBreakdown, 1)

	dayReport := report.Staffs[0].DailyBreakdown[0]
	assert.Empty(t, dayReport.Blocks)
	assert.True(t, dayReport.DailyPay.IsZero())
}

// Without any schedule the default rate covers the whole worked span.
func TestGenerateReportNoScheduleFallsBackToDefaultRate(t *testing.T) {
	f := newEngineFixture(t)

	f.staffRepo.staffs = []staff.Staff{{
		ID:    "staff-1",
		Rates: rates(map[string]int64{"part-time": 40000}),
	}}
	f.addEvent("staff-1", "2025-03-16", "14:00", attendance.TypeCheckIn)
	f.addEvent("staff-1", "2025-03-16", "17:00", attendance.TypeCheckOut)

	report, err := f.service.GenerateReport(context.Background(), &payroll.GenerateReportRequest{
		FromDate: "2025-03-16",
		ToDate:   "2025-03-16",
	})
	require.NoError(t, err)

	dayReport := report.Staffs[0].DailyBreakdown[0]
	require.Len(t, dayReport.Blocks, 1)
	assert.Equal(t, "part-time", dayReport.Blocks[0].Type)
	assert.Equal(t, 180, dayReport.Blocks[0].Duration)
	assert.True(t, dayReport.DailyPay.Equal(decimal.NewFromInt(120000)))
}

// A role configured with a zero rate falls through to the part-time rate
// instead of pricing the block at nothing.
func TestGenerateReportZeroRateFallsThroughToPartTime(t *testing.T) {
	f := newEngineFixture(t)

	f.staffRepo.staffs = []staff.Staff{{
		ID:       "staff-1",
		FullName: "Hoang Van E",
		Rates:    rates(map[string]int64{"teacher": 0, "part-time": 40000}),
	}}
	f.schedRepo.schedules = []schedule.StaffSchedule{
		sessionSchedule("sch-1", "staff-1", "2025-03-10", "14:00", strPtr("teacher")),
	}
	f.addEvent("staff-1", "2025-03-10", "13:45", attendance.TypeCheckIn)
	f.addEvent("staff-1", "2025-03-10", "15:45", attendance.TypeCheckOut)

	report, err := f.service.GenerateReport(context.Background(), &payroll.GenerateReportRequest{
		FromDate: "2025-03-10",
		ToDate:   "2025-03-10",
	})
	require.NoError(t, err)

	dayReport := report.Staffs[0].DailyBreakdown[0]
	require.Len(t, dayReport.Blocks, 1)
	assert.Equal(t, "teacher", dayReport.Blocks[0].Type)
	// 120 minutes at the part-time 40000/h fallback.
	assert.True(t, dayReport.DailyPay.Equal(decimal.NewFromInt(80000)), "got %s", dayReport.DailyPay)
}

// Staff without rates and without overtime never appear in the report.
func TestGenerateReportSkipsUnpayableStaff(t *testing.T) {
	f := newEngineFixture(t)

	f.staffRepo.staffs = []staff.Staff{
		{ID: "staff-1", Rates: rates(map[string]int64{"part-time": 40000})},
		{ID: "staff-2"}, // no rates, no overtime
	}
	f.addEvent("staff-1", "2025-03-10", "09:00", attendance.TypeCheckIn)
	f.addEvent("staff-1", "2025-03-10", "11:00", attendance.TypeCheckOut)
	f.addEvent("staff-2", "2025-03-10", "09:00", attendance.TypeCheckIn)
	f.addEvent("staff-2", "2025-03-10", "11:00", attendance.TypeCheckOut)

	report, err := f.service.GenerateReport(context.Background(), &payroll.GenerateReportRequest{
		FromDate: "2025-03-10",
		ToDate:   "2025-03-10",
	})
	require.NoError(t, err)
	require.Len(t, report.Staffs, 1)
	assert.Equal(t, "staff-1", report.Staffs[0].StaffID)
}

// An empty range produces an empty report without touching overtime state.
func TestGenerateReportEmpty(t *testing.T) {
	f := newEngineFixture(t)
	f.staffRepo.staffs = []staff.Staff{{
		ID:    "staff-1",
		Rates: rates(map[string]int64{"part-time": 40000}),
	}}

	report, err := f.service.GenerateReport(context.Background(), &payroll.GenerateReportRequest{
		FromDate: "2025-03-10",
		ToDate:   "2025-03-10",
	})
	require.NoError(t, err)
	assert.Empty(t, report.Staffs)
	assert.Zero(t, f.otRepo.upserts)
	assert.Zero(t, f.otRepo.deletes)
}

func TestGenerateReportUnknownStaffFilter(t *testing.T) {
	f := newEngineFixture(t)
	f.staffRepo.staffs = []staff.Staff{{
		ID:    "staff-1",
		Rates: rates(map[string]int64{"part-time": 40000}),
	}}

	_, err := f.service.GenerateReport(context.Background(), &payroll.GenerateReportRequest{
		FromDate: "2025-03-10",
		ToDate:   "2025-03-10",
		StaffID:  strPtr("staff-missing"),
	})
	assert.ErrorIs(t, err, payroll.ErrNoStaffFound)
}

func TestGenerateReportRejectsBadRange(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.service.GenerateReport(context.Background(), &payroll.GenerateReportRequest{
		FromDate: "2025-03-10",
		ToDate:   "2025-03-01",
	})
	assert.Error(t, err)
}

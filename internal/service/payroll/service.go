package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/edulab-vn/center-backend-go/internal/config"
	"github.com/edulab-vn/center-backend-go/internal/domain/attendance"
	"github.com/edulab-vn/center-backend-go/internal/domain/overtime"
	"github.com/edulab-vn/center-backend-go/internal/domain/payroll"
	"github.com/edulab-vn/center-backend-go/internal/domain/schedule"
	"github.com/edulab-vn/center-backend-go/internal/domain/staff"
)

type PayrollServiceImpl struct {
	staffRepo      staff.StaffRepository
	scheduleRepo   schedule.ScheduleRepository
	attendanceRepo attendance.EventRepository
	otRepo         overtime.RequestRepository

	cfg    config.PayrollConfig
	loc    *time.Location
	logger *slog.Logger
}

func NewPayrollService(
	staffRepo staff.StaffRepository,
	scheduleRepo schedule.ScheduleRepository,
	attendanceRepo attendance.EventRepository,
	otRepo overtime.RequestRepository,
	cfg config.PayrollConfig,
	logger *slog.Logger,
) (payroll.PayrollService, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll timezone %q: %w", cfg.Timezone, err)
	}
	return &PayrollServiceImpl{
		staffRepo:      staffRepo,
		scheduleRepo:   scheduleRepo,
		attendanceRepo: attendanceRepo,
		otRepo:         otRepo,
		cfg:            cfg,
		loc:            loc,
		logger:         logger,
	}, nil
}

func (s *PayrollServiceImpl) GenerateReport(ctx context.Context, req *payroll.GenerateReportRequest) (*payroll.Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Attendance is fetched by instant, so the window runs from local
	// midnight of fromDate up to local midnight after toDate.
	windowStart, err := timeAtMidnight(req.FromDate, s.loc)
	if err != nil {
		return nil, err
	}
	windowEnd, err := timeAtMidnight(req.ToDate, s.loc)
	if err != nil {
		return nil, err
	}
	windowEnd = windowEnd.AddDate(0, 0, 1)

	var (
		staffList  []staff.Staff
		schedules  []schedule.StaffSchedule
		events     []attendance.Event
		otRequests []overtime.Request
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		staffList, err = s.staffRepo.Find(gctx, req.StaffID)
		if err != nil {
			return fmt.Errorf("failed to load staff: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		schedules, err = s.scheduleRepo.FindByDateRange(gctx, req.FromDate, req.ToDate, req.StaffID)
		if err != nil {
			return fmt.Errorf("failed to load schedules: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		events, err = s.attendanceRepo.FindByTimestampRange(gctx, windowStart, windowEnd, req.StaffID)
		if err != nil {
			return fmt.Errorf("failed to load attendance events: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		otRequests, err = s.otRepo.FindByDateRange(gctx, req.FromDate, req.ToDate, req.StaffID, nil)
		if err != nil {
			return fmt.Errorf("failed to load overtime requests: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if req.StaffID != nil && len(staffList) == 0 {
		return nil, payroll.ErrNoStaffFound
	}

	report := &payroll.Report{
		FromDate: req.FromDate,
		ToDate:   req.ToDate,
		Staffs:   []payroll.StaffReport{},
	}

	if len(events) == 0 && len(otRequests) == 0 {
		return report, nil
	}

	eventsByStaff := make(map[string][]attendance.Event)
	for _, e := range events {
		eventsByStaff[e.StaffID] = append(eventsByStaff[e.StaffID], e)
	}
	schedulesByStaff := make(map[string][]schedule.StaffSchedule)
	for _, sch := range schedules {
		schedulesByStaff[sch.StaffID] = append(schedulesByStaff[sch.StaffID], sch)
	}

	otByStaffDate := make(map[string]overtime.Request)
	otsByStaff := make(map[string][]overtime.Request)
	for _, ot := range otRequests {
		otByStaffDate[ot.StaffID+"|"+ot.DateKey()] = ot
		otsByStaff[ot.StaffID] = append(otsByStaff[ot.StaffID], ot)
	}

	for _, st := range staffList {
		// Staff without rates only show up when they have overtime on file.
		if len(st.Rates) == 0 && len(otsByStaff[st.ID]) == 0 {
			continue
		}

		staffReport, err := s.buildStaffReport(ctx, st,
			eventsByStaff[st.ID], schedulesByStaff[st.ID],
			otByStaffDate, otsByStaff[st.ID])
		if err != nil {
			return nil, err
		}
		report.Staffs = append(report.Staffs, *staffReport)
	}

	return report, nil
}

func (s *PayrollServiceImpl) buildStaffReport(
	ctx context.Context,
	st staff.Staff,
	events []attendance.Event,
	schedules []schedule.StaffSchedule,
	otByStaffDate map[string]overtime.Request,
	staffOTs []overtime.Request,
) (*payroll.StaffReport, error) {
	totalPay := decimal.Zero
	var days []payroll.DailyBreakdown

	eventsByDate := s.groupEventsByDate(events)

	dates := make([]string, 0, len(eventsByDate))
	for date := range eventsByDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		day, err := s.buildDay(ctx, st, date, eventsByDate[date], schedules, otByStaffDate)
		if err != nil {
			return nil, err
		}
		totalPay = totalPay.Add(day.DailyPay)
		days = append(days, *day)
	}

	// Approved overtime on days without any attendance still pays out.
	for _, ot := range staffOTs {
		if _, hasAttendance := eventsByDate[ot.DateKey()]; hasAttendance {
			continue
		}
		if !ot.IsApproved() {
			continue
		}
		day := s.buildOTOnlyDay(st, ot)
		if day == nil {
			continue
		}
		totalPay = totalPay.Add(day.DailyPay)
		days = append(days, *day)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return &payroll.StaffReport{
		StaffID:        st.ID,
		StaffName:      st.FullName,
		TotalPay:       totalPay.Round(0),
		DailyBreakdown: days,
	}, nil
}

// groupEventsByDate buckets events by their local calendar day. Events with
// a zero timestamp cannot be placed on any day and are dropped with a
// warning.
func (s *PayrollServiceImpl) groupEventsByDate(events []attendance.Event) map[string][]attendance.Event {
	grouped := make(map[string][]attendance.Event)
	for _, e := range events {
		if e.Timestamp.IsZero() {
			s.logger.Warn("skipping attendance event with malformed timestamp",
				slog.String("event_id", e.ID),
				slog.String("staff_id", e.StaffID))
			continue
		}
		date := e.Timestamp.In(s.loc).Format("2006-01-02")
		grouped[date] = append(grouped[date], e)
	}
	return grouped
}

func timeAtMidnight(date string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return day, nil
}

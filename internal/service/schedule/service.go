package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/edulab-vn/center-backend-go/internal/config"
	"github.com/edulab-vn/center-backend-go/internal/domain/classsession"
	"github.com/edulab-vn/center-backend-go/internal/domain/master/shift"
	"github.com/edulab-vn/center-backend-go/internal/domain/schedule"
	"github.com/edulab-vn/center-backend-go/internal/domain/staff"
	"github.com/edulab-vn/center-backend-go/internal/pkg/database"
	"github.com/edulab-vn/center-backend-go/internal/pkg/timeutil"
	"github.com/edulab-vn/center-backend-go/internal/repository/postgresql"
)

type ScheduleServiceImpl struct {
	db           *database.DB
	scheduleRepo schedule.ScheduleRepository
	shiftRepo    shift.ShiftRepository
	sessionRepo  classsession.ClassSessionRepository
	staffRepo    staff.StaffRepository

	cfg    config.PayrollConfig
	loc    *time.Location
	logger *slog.Logger

	// runInTx executes fn with every repository call sharing one
	// transaction.
	runInTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewScheduleService(
	db *database.DB,
	scheduleRepo schedule.ScheduleRepository,
	shiftRepo shift.ShiftRepository,
	sessionRepo classsession.ClassSessionRepository,
	staffRepo staff.StaffRepository,
	cfg config.PayrollConfig,
	logger *slog.Logger,
) (schedule.ScheduleService, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.Timezone, err)
	}
	s := &ScheduleServiceImpl{
		db:           db,
		scheduleRepo: scheduleRepo,
		shiftRepo:    shiftRepo,
		sessionRepo:  sessionRepo,
		staffRepo:    staffRepo,
		cfg:          cfg,
		loc:          loc,
		logger:       logger,
	}
	s.runInTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, s.db, fn)
	}
	return s, nil
}

func (s *ScheduleServiceImpl) Create(ctx context.Context, req *schedule.CreateScheduleRequest) (*schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.staffRepo.GetByID(ctx, req.StaffID); err != nil {
		return nil, err
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	newSchedule := schedule.StaffSchedule{
		ID:      uuid.NewString(),
		StaffID: req.StaffID,
		Date:    day,
		RoleKey: req.RoleKey,
	}

	if req.ShiftID != nil && *req.ShiftID != "" {
		sh, err := s.shiftRepo.GetByID(ctx, *req.ShiftID)
		if err != nil {
			return nil, err
		}
		newSchedule.ShiftID = &sh.ID
		newSchedule.Shift = &sh
	} else {
		session, err := s.sessionRepo.GetByID(ctx, *req.ClassSessionID)
		if err != nil {
			return nil, err
		}
		newSchedule.ClassSessionID = &session.ID
		newSchedule.ClassSession = &session
	}

	conflict, err := s.hasConflict(ctx, newSchedule)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, schedule.ErrScheduleConflict
	}

	created, err := s.scheduleRepo.Create(ctx, newSchedule)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}
	created.Shift = newSchedule.Shift
	created.ClassSession = newSchedule.ClassSession

	return s.toResponse(created), nil
}

func (s *ScheduleServiceImpl) GetByID(ctx context.Context, id string) (*schedule.ScheduleResponse, error) {
	sch, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(sch), nil
}

func (s *ScheduleServiceImpl) List(ctx context.Context, filter *schedule.ScheduleFilter) ([]schedule.ScheduleResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	schedules, err := s.scheduleRepo.FindByDateRange(ctx, filter.FromDate, filter.ToDate, filter.StaffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	responses := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, sch := range schedules {
		responses = append(responses, *s.toResponse(sch))
	}
	return responses, nil
}

func (s *ScheduleServiceImpl) Update(ctx context.Context, req *schedule.UpdateScheduleRequest) (*schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sch, err := s.scheduleRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.ShiftID != nil {
		// Session assignments are tied to their session; re-pointing the
		// shift is only meaningful for shift schedules.
		if !sch.IsShiftBased() {
			return nil, schedule.ErrShiftOnlyUpdate
		}
		sh, err := s.shiftRepo.GetByID(ctx, *req.ShiftID)
		if err != nil {
			return nil, err
		}
		sch.ShiftID = &sh.ID
		sch.Shift = &sh
	}
	if req.RoleKey != nil {
		sch.RoleKey = req.RoleKey
	}

	updated, err := s.scheduleRepo.Update(ctx, sch)
	if err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}
	updated.Shift = sch.Shift
	updated.ClassSession = sch.ClassSession

	return s.toResponse(updated), nil
}

func (s *ScheduleServiceImpl) Delete(ctx context.Context, id string) error {
	return s.scheduleRepo.Delete(ctx, id)
}

func (s *ScheduleServiceImpl) AssignShiftRange(ctx context.Context, req *schedule.AssignShiftRangeRequest) (*schedule.AssignShiftRangeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.staffRepo.GetByID(ctx, req.StaffID); err != nil {
		return nil, err
	}
	sh, err := s.shiftRepo.GetByID(ctx, req.ShiftID)
	if err != nil {
		return nil, err
	}

	startDay, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date %q: %w", req.StartDate, err)
	}
	endDay, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end_date %q: %w", req.EndDate, err)
	}

	wantedDays := make(map[time.Weekday]bool, len(req.DaysOfWeek))
	for _, d := range req.DaysOfWeek {
		wantedDays[time.Weekday(d)] = true
	}

	resp := &schedule.AssignShiftRangeResponse{SkippedDates: []string{}}

	// All days land in one transaction, so a failure partway through the
	// range leaves no schedules behind.
	err = s.runInTx(ctx, func(ctx context.Context) error {
		for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
			if !wantedDays[day.Weekday()] {
				continue
			}

			candidate := schedule.StaffSchedule{
				ID:      uuid.NewString(),
				StaffID: req.StaffID,
				Date:    day,
				ShiftID: &sh.ID,
				RoleKey: req.RoleKey,
				Shift:   &sh,
			}

			conflict, err := s.hasConflict(ctx, candidate)
			if err != nil {
				return err
			}
			if conflict {
				resp.SkippedDates = append(resp.SkippedDates, candidate.DateKey())
				continue
			}

			if _, err := s.scheduleRepo.Create(ctx, candidate); err != nil {
				return fmt.Errorf("failed to create schedule for %s: %w", candidate.DateKey(), err)
			}
			resp.CreatedCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("assigned shift across range",
		slog.String("staff_id", req.StaffID),
		slog.String("shift_id", req.ShiftID),
		slog.Int("created", resp.CreatedCount),
		slog.Int("skipped", len(resp.SkippedDates)))

	return resp, nil
}

// hasConflict reports whether the staff member already has a schedule whose
// paid window overlaps the candidate's on the same date.
func (s *ScheduleServiceImpl) hasConflict(ctx context.Context, candidate schedule.StaffSchedule) (bool, error) {
	window, ok := s.paidWindow(candidate)
	if !ok {
		return false, nil
	}

	existing, err := s.scheduleRepo.FindByStaffAndDate(ctx, candidate.StaffID, candidate.DateKey())
	if err != nil {
		return false, fmt.Errorf("failed to check schedule conflicts: %w", err)
	}

	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}
		otherWindow, ok := s.paidWindow(other)
		if ok && window.Overlaps(otherWindow) {
			return true, nil
		}
	}
	return false, nil
}

// paidWindow mirrors the payroll engine's view of a schedule: sessions pay
// a buffered window around their start, shifts pay their literal hours.
func (s *ScheduleServiceImpl) paidWindow(sch schedule.StaffSchedule) (timeutil.Interval, bool) {
	date := sch.DateKey()

	switch {
	case sch.ClassSession != nil:
		start, err := timeutil.AtClock(date, sch.ClassSession.StartTime, s.loc)
		if err != nil {
			return timeutil.Interval{}, false
		}
		buffer := time.Duration(s.cfg.SessionBufferMinutes) * time.Minute
		length := time.Duration(s.cfg.SessionMinutes) * time.Minute
		return timeutil.NewInterval(start.Add(-buffer), start.Add(length+buffer)), true

	case sch.Shift != nil:
		window, err := timeutil.ClockInterval(date, sch.Shift.StartTime, sch.Shift.EndTime, s.loc)
		if err != nil || !window.IsValid() {
			return timeutil.Interval{}, false
		}
		return window, true
	}

	return timeutil.Interval{}, false
}

func (s *ScheduleServiceImpl) toResponse(sch schedule.StaffSchedule) *schedule.ScheduleResponse {
	resp := &schedule.ScheduleResponse{
		ID:             sch.ID,
		StaffID:        sch.StaffID,
		Date:           sch.DateKey(),
		ShiftID:        sch.ShiftID,
		ClassSessionID: sch.ClassSessionID,
		RoleKey:        sch.RoleKey,
	}

	if sch.Shift != nil {
		resp.ShiftName = &sch.Shift.Name
		resp.StartTime = &sch.Shift.StartTime
		resp.EndTime = &sch.Shift.EndTime
	}
	if sch.ClassSession != nil {
		resp.ClassName = sch.ClassSession.ClassName
		resp.StartTime = &sch.ClassSession.StartTime
	}
	return resp
}

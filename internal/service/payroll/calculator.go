package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/edulab-vn/center-backend-go/internal/domain/attendance"
	"github.com/edulab-vn/center-backend-go/internal/domain/overtime"
	"github.com/edulab-vn/center-backend-go/internal/domain/payroll"
	"github.com/edulab-vn/center-backend-go/internal/domain/schedule"
	"github.com/edulab-vn/center-backend-go/internal/domain/staff"
	"github.com/edulab-vn/center-backend-go/internal/pkg/timeutil"
)

var (
	sixty                      = decimal.NewFromInt(60)
	defaultBreakdownMultiplier = decimal.NewFromFloat(1.5)
	defaultLegacyMultiplier    = decimal.NewFromInt(1)
)

// ratedInterval is a slice of payable time attributed to one role.
type ratedInterval struct {
	interval timeutil.Interval
	roleKey  string
	priority int
}

func (s *PayrollServiceImpl) buildDay(
	ctx context.Context,
	st staff.Staff,
	date string,
	dayEvents []attendance.Event,
	allSchedules []schedule.StaffSchedule,
	otByStaffDate map[string]overtime.Request,
) (*payroll.DailyBreakdown, error) {
	day := &payroll.DailyBreakdown{
		Date:     date,
		CheckIn:  "N/A",
		CheckOut: "N/A",
		Blocks:   []payroll.WorkBlock{},
		OTPay:    decimal.Zero,
		DailyPay: decimal.Zero,
	}

	sortEventsByTimestamp(dayEvents)
	for _, e := range dayEvents {
		if e.IsCheckIn() {
			day.CheckIn = e.Timestamp.In(s.loc).Format("15:04:05")
			break
		}
	}
	for i := len(dayEvents) - 1; i >= 0; i-- {
		if dayEvents[i].IsCheckOut() {
			day.CheckOut = dayEvents[i].Timestamp.In(s.loc).Format("15:04:05")
			break
		}
	}

	if len(dayEvents) >= 2 {
		payableIntervals, totalPayable := s.pairPayableIntervals(st.ID, date, dayEvents)

		var dailySchedules []schedule.StaffSchedule
		for _, sch := range allSchedules {
			if sch.DateKey() == date {
				dailySchedules = append(dailySchedules, sch)
			}
		}

		if len(dailySchedules) > 0 {
			intersections := s.scheduleIntersections(date, dailySchedules, payableIntervals)
			day.Blocks = s.resolveOverlappingBlocks(intersections, st)

			var standard time.Duration
			for _, block := range day.Blocks {
				standard += time.Duration(block.Duration) * time.Minute
			}

			residual := totalPayable - standard
			if residual < time.Duration(s.cfg.OvertimeThresholdMinutes)*time.Minute {
				residual = 0
			}
			day.PotentialOTMinutes = timeutil.Minutes(residual)

			if err := s.syncDetectedOvertime(ctx, st.ID, date, residual); err != nil {
				return nil, err
			}
		} else if st.HasRate(s.cfg.DefaultRoleKey) {
			// No schedule on file, but the staff member has a base rate:
			// every payable minute is paid at it.
			day.Blocks = append(day.Blocks, payroll.WorkBlock{
				Type:     s.cfg.DefaultRoleKey,
				Duration: timeutil.Minutes(totalPayable),
				Pay:      decimal.Zero,
			})
		}
	}

	// Standard pay: rate per hour, block durations in minutes.
	standardPay := decimal.Zero
	for i := range day.Blocks {
		block := &day.Blocks[i]
		rate, ok := st.Rate(block.Type, s.cfg.DefaultRoleKey)
		if ok && rate.IsPositive() && block.Duration > 0 {
			pay := decimal.NewFromInt(int64(block.Duration)).Div(sixty).Mul(rate)
			standardPay = standardPay.Add(pay)
			block.Pay = pay.Round(0)
		} else {
			block.Pay = decimal.Zero
		}
	}

	// Approved overtime pays on top of the standard blocks.
	otPay := decimal.Zero
	approvedOTMinutes := 0
	if ot, ok := otByStaffDate[st.ID+"|"+date]; ok && ot.IsApproved() {
		otBlocks, pay, minutes := s.approvedOvertimeBlocks(st, ot)
		day.Blocks = append(day.Blocks, otBlocks...)
		otPay = pay
		approvedOTMinutes = minutes
	}

	day.ApprovedOTMinutes = approvedOTMinutes
	day.OTPay = otPay.Round(0)
	day.DailyPay = standardPay.Add(otPay).Round(0)
	return day, nil
}

// pairPayableIntervals walks the day's events in timestamp order and pairs
// each check-in with the check-out that immediately follows it. A pair that
// strictly spans the lunch window has lunch carved out of it. Events that
// do not form a valid pair are skipped.
func (s *PayrollServiceImpl) pairPayableIntervals(staffID, date string, dayEvents []attendance.Event) ([]timeutil.Interval, time.Duration) {
	lunch, err := timeutil.ClockInterval(date, s.cfg.LunchStart, s.cfg.LunchEnd, s.loc)
	if err != nil {
		// Config is validated at startup; an invalid window here means the
		// date string is broken, and no interval can be built from it.
		s.logger.Error("failed to build lunch window", slog.String("date", date), slog.Any("error", err))
		return nil, 0
	}

	var payable []timeutil.Interval
	var total time.Duration

	for i := 0; i < len(dayEvents)-1; i++ {
		current := dayEvents[i]
		next := dayEvents[i+1]
		if !current.IsCheckIn() || !next.IsCheckOut() {
			continue
		}

		in := current.Timestamp.In(s.loc)
		out := next.Timestamp.In(s.loc)
		if !out.After(in) {
			s.logger.Warn("skipping attendance pair with check-out before check-in",
				slog.String("staff_id", staffID),
				slog.String("date", date),
				slog.Time("check_in", in),
				slog.Time("check_out", out))
			i++
			continue
		}

		worked := timeutil.NewInterval(in, out)

		// Lunch is only unpaid when the pair starts before it and ends
		// after it. Working through part of lunch stays paid.
		parts := []timeutil.Interval{worked}
		if worked.Start.Before(lunch.Start) && worked.End.After(lunch.End) {
			parts = worked.Subtract(lunch)
		}

		for _, part := range parts {
			payable = append(payable, part)
			total += part.Duration()
		}

		i++ // consume the check-out
	}

	return payable, total
}

// scheduleIntersections clips each schedule's paid window against the
// payable intervals. Class sessions pay from buffer minutes before start
// until session length plus buffer after; shifts pay their literal window.
func (s *PayrollServiceImpl) scheduleIntersections(
	date string,
	dailySchedules []schedule.StaffSchedule,
	payableIntervals []timeutil.Interval,
) []ratedInterval {
	var intersections []ratedInterval

	for _, sch := range dailySchedules {
		var (
			window  timeutil.Interval
			roleKey string
			ok      bool
		)

		switch {
		case sch.ClassSession != nil:
			start, err := timeutil.AtClock(date, sch.ClassSession.StartTime, s.loc)
			if err != nil {
				s.logger.Warn("skipping class session with invalid start time",
					slog.String("schedule_id", sch.ID), slog.Any("error", err))
				continue
			}
			buffer := time.Duration(s.cfg.SessionBufferMinutes) * time.Minute
			length := time.Duration(s.cfg.SessionMinutes) * time.Minute
			window = timeutil.NewInterval(start.Add(-buffer), start.Add(length+buffer))
			roleKey = s.cfg.DefaultRoleKey
			if sch.RoleKey != nil && *sch.RoleKey != "" {
				roleKey = *sch.RoleKey
			}
			ok = true

		case sch.Shift != nil:
			window, _ = s.shiftWindow(date, sch.Shift.StartTime, sch.Shift.EndTime)
			if !window.IsValid() {
				continue
			}
			roleKey = s.cfg.DefaultRoleKey
			if sch.RoleKey != nil && *sch.RoleKey != "" {
				roleKey = *sch.RoleKey
			}
			ok = true
		}

		if !ok {
			continue
		}

		priority := s.cfg.RolePriority[roleKey]
		for _, payable := range payableIntervals {
			if clipped, overlaps := payable.Intersect(window); overlaps {
				intersections = append(intersections, ratedInterval{
					interval: clipped,
					roleKey:  roleKey,
					priority: priority,
				})
			}
		}
	}

	return intersections
}

func (s *PayrollServiceImpl) shiftWindow(date, startClock, endClock string) (timeutil.Interval, error) {
	window, err := timeutil.ClockInterval(date, startClock, endClock, s.loc)
	if err != nil {
		s.logger.Warn("skipping shift with invalid clock times",
			slog.String("date", date), slog.Any("error", err))
		return timeutil.Interval{}, err
	}
	return window, nil
}

// syncDetectedOvertime keeps the pending request for (staffID, date) in step
// with the residual just computed: upsert when there is residual overtime,
// drop any stale pending request when there is none.
func (s *PayrollServiceImpl) syncDetectedOvertime(ctx context.Context, staffID, date string, residual time.Duration) error {
	if residual > time.Duration(s.cfg.OvertimeThresholdMinutes)*time.Minute {
		_, changed, err := s.otRepo.UpsertDetected(ctx, staffID, date, residual)
		if err != nil {
			return fmt.Errorf("failed to record detected overtime: %w", err)
		}
		if changed {
			s.logger.Info("recorded detected overtime",
				slog.String("staff_id", staffID),
				slog.String("date", date),
				slog.String("duration", timeutil.FormatDuration(residual)))
		}
		return nil
	}

	if err := s.otRepo.DeletePending(ctx, staffID, date); err != nil {
		return fmt.Errorf("failed to clear stale overtime request: %w", err)
	}
	return nil
}

// approvedOvertimeBlocks prices an approved overtime request. A breakdown
// splits the hours across roles; without one the legacy single-duration
// fields apply. Roles without a configured rate contribute no pay.
func (s *PayrollServiceImpl) approvedOvertimeBlocks(st staff.Staff, ot overtime.Request) ([]payroll.WorkBlock, decimal.Decimal, int) {
	var blocks []payroll.WorkBlock
	pay := decimal.Zero
	minutes := 0

	if len(ot.Breakdown) > 0 {
		for _, item := range ot.Breakdown {
			multiplier := item.Multiplier
			if multiplier.IsZero() {
				multiplier = defaultBreakdownMultiplier
			}

			itemMinutes := parseBreakdownMinutes(item.Duration)
			rate := st.Rates[item.Role]

			if itemMinutes > 0 && rate.IsPositive() {
				itemPay := decimal.NewFromInt(int64(itemMinutes)).Div(sixty).Mul(rate).Mul(multiplier)
				pay = pay.Add(itemPay)
				minutes += itemMinutes
				blocks = append(blocks, payroll.WorkBlock{
					Type:     fmt.Sprintf("OT-%s (x%s)", item.Role, multiplier.String()),
					Duration: itemMinutes,
					Pay:      itemPay.Round(0),
				})
			}
		}
		return blocks, pay, minutes
	}

	if ot.ApprovedDuration != nil && ot.ApprovedRoleKey != nil {
		roleKey := *ot.ApprovedRoleKey
		multiplier := defaultLegacyMultiplier
		if ot.ApprovedMultiplier != nil && !ot.ApprovedMultiplier.IsZero() {
			multiplier = *ot.ApprovedMultiplier
		}

		otMinutes := timeutil.Minutes(*ot.ApprovedDuration)
		minutes += otMinutes

		rate := st.Rates[roleKey]
		if rate.IsPositive() && otMinutes > 0 {
			otPay := decimal.NewFromInt(int64(otMinutes)).Div(sixty).Mul(rate).Mul(multiplier)
			pay = pay.Add(otPay)
			blocks = append(blocks, payroll.WorkBlock{
				Type:     fmt.Sprintf("OT (%s)", roleKey),
				Duration: otMinutes,
				Pay:      otPay.Round(0),
			})
		}
	}

	return blocks, pay, minutes
}

// buildOTOnlyDay emits a breakdown entry for approved overtime on a day
// without attendance. Returns nil when the request prices to nothing.
func (s *PayrollServiceImpl) buildOTOnlyDay(st staff.Staff, ot overtime.Request) *payroll.DailyBreakdown {
	blocks, pay, minutes := s.approvedOvertimeBlocks(st, ot)
	if !pay.IsPositive() {
		return nil
	}

	return &payroll.DailyBreakdown{
		Date:              ot.DateKey(),
		CheckIn:           "N/A",
		CheckOut:          "N/A",
		Blocks:            blocks,
		ApprovedOTMinutes: minutes,
		OTPay:             pay.Round(0),
		DailyPay:          pay.Round(0),
	}
}

// parseBreakdownMinutes reads a breakdown item's "HH:mm" duration. Items
// were validated on approval; anything unreadable counts as zero.
func parseBreakdownMinutes(value string) int {
	parts := strings.Split(value, ":")
	if len(parts) < 2 {
		return 0
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return hours*60 + mins
}

func sortEventsByTimestamp(events []attendance.Event) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
}

package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/edulab-vn/center-backend-go/internal/domain/payroll"
)

// OvertimeJobs keeps detected overtime rows current without waiting for
// someone to open a payroll report. Generating a report for yesterday
// has the side effect of upserting or clearing pending requests.
type OvertimeJobs struct {
	payrollSvc payroll.PayrollService
	loc        *time.Location
	logger     *slog.Logger
}

func NewOvertimeJobs(payrollSvc payroll.PayrollService, loc *time.Location, logger *slog.Logger) *OvertimeJobs {
	return &OvertimeJobs{payrollSvc: payrollSvc, loc: loc, logger: logger}
}

func (j *OvertimeJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sync_detected_overtime", 1*time.Hour, j.SyncDetectedOvertime)
}

// SyncDetectedOvertime recomputes yesterday's payroll during the first
// hour of the local day, which refreshes pending overtime requests.
func (j *OvertimeJobs) SyncDetectedOvertime(ctx context.Context) error {
	now := time.Now().In(j.loc)
	if now.Hour() != 1 {
		return nil
	}

	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	report, err := j.payrollSvc.GenerateReport(ctx, &payroll.GenerateReportRequest{
		FromDate: yesterday,
		ToDate:   yesterday,
	})
	if err != nil {
		return err
	}

	j.logger.Info("detected overtime synced",
		slog.String("date", yesterday),
		slog.Int("staff_count", len(report.Staffs)))
	return nil
}

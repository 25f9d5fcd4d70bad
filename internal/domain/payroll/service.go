package payroll

import "context"

type PayrollService interface {
	// GenerateReport computes pay for every staff member (or one, when
	// StaffID is set) over the date range. As a side effect it keeps
	// pending overtime requests in sync with detected residual overtime.
	GenerateReport(ctx context.Context, req *GenerateReportRequest) (*Report, error)
}

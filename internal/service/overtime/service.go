package overtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/edulab-vn/center-backend-go/internal/domain/overtime"
	"github.com/edulab-vn/center-backend-go/internal/pkg/timeutil"
)

var defaultBreakdownMultiplier = decimal.NewFromFloat(1.5)

type OvertimeServiceImpl struct {
	otRepo overtime.RequestRepository
	logger *slog.Logger
}

func NewOvertimeService(otRepo overtime.RequestRepository, logger *slog.Logger) overtime.OvertimeService {
	return &OvertimeServiceImpl{otRepo: otRepo, logger: logger}
}

func (s *OvertimeServiceImpl) List(ctx context.Context, filter *overtime.ListFilter) ([]overtime.RequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, err := s.otRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime requests: %w", err)
	}

	responses := make([]overtime.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, *toResponse(req))
	}
	return responses, nil
}

func (s *OvertimeServiceImpl) GetByID(ctx context.Context, id string) (*overtime.RequestResponse, error) {
	request, err := s.otRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(request), nil
}

func (s *OvertimeServiceImpl) Approve(ctx context.Context, req *overtime.ApproveRequest) (*overtime.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	request, err := s.otRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if !request.IsPending() {
		return nil, overtime.ErrNotPending
	}

	request.Status = overtime.StatusApproved
	request.ApproverID = &req.ApproverID
	request.Notes = req.Notes

	if len(req.Breakdown) > 0 {
		request.Breakdown = make([]overtime.BreakdownItem, 0, len(req.Breakdown))
		for _, item := range req.Breakdown {
			multiplier := defaultBreakdownMultiplier
			if item.Multiplier != nil {
				multiplier = *item.Multiplier
			}
			request.Breakdown = append(request.Breakdown, overtime.BreakdownItem{
				Role:       item.Role,
				Duration:   item.Duration,
				Multiplier: multiplier,
			})
		}
	} else {
		if req.ApprovedDuration != nil {
			approved, err := timeutil.ParseDuration(*req.ApprovedDuration)
			if err != nil {
				return nil, err
			}
			request.ApprovedDuration = &approved
		} else {
			// Approving without an explicit duration accepts what was
			// detected.
			detected := request.DetectedDuration
			request.ApprovedDuration = &detected
		}
		request.ApprovedRoleKey = req.ApprovedRoleKey
		request.ApprovedMultiplier = req.ApprovedMultiplier
	}

	resolved, err := s.otRepo.Resolve(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to approve overtime request: %w", err)
	}

	s.logger.Info("overtime request approved",
		slog.String("request_id", resolved.ID),
		slog.String("staff_id", resolved.StaffID),
		slog.String("date", resolved.DateKey()),
		slog.String("approver_id", req.ApproverID))

	return toResponse(resolved), nil
}

func (s *OvertimeServiceImpl) Reject(ctx context.Context, req *overtime.RejectRequest) (*overtime.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	request, err := s.otRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if !request.IsPending() {
		return nil, overtime.ErrNotPending
	}

	request.Status = overtime.StatusRejected
	request.ApproverID = &req.ApproverID
	request.Notes = req.Notes
	request.ApprovedDuration = nil
	request.ApprovedRoleKey = nil
	request.ApprovedMultiplier = nil
	request.Breakdown = nil

	resolved, err := s.otRepo.Resolve(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to reject overtime request: %w", err)
	}

	s.logger.Info("overtime request rejected",
		slog.String("request_id", resolved.ID),
		slog.String("staff_id", resolved.StaffID),
		slog.String("date", resolved.DateKey()),
		slog.String("approver_id", req.ApproverID))

	return toResponse(resolved), nil
}

func toResponse(request overtime.Request) *overtime.RequestResponse {
	resp := &overtime.RequestResponse{
		ID:                 request.ID,
		StaffID:            request.StaffID,
		Date:               request.DateKey(),
		DetectedDuration:   timeutil.FormatDuration(request.DetectedDuration),
		ApprovedRoleKey:    request.ApprovedRoleKey,
		ApprovedMultiplier: request.ApprovedMultiplier,
		Breakdown:          request.Breakdown,
		Reason:             request.Reason,
		Notes:              request.Notes,
		Status:             request.Status,
		ApproverID:         request.ApproverID,
	}
	if request.ApprovedDuration != nil {
		formatted := timeutil.FormatDuration(*request.ApprovedDuration)
		resp.ApprovedDuration = &formatted
	}
	if request.StaffName != nil {
		resp.StaffName = *request.StaffName
	}
	return resp
}

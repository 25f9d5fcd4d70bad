package master

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/edulab-vn/center-backend-go/internal/domain/master/role"
	"github.com/edulab-vn/center-backend-go/internal/domain/master/shift"
	"github.com/edulab-vn/center-backend-go/internal/pkg/timeutil"
)

type MasterService interface {
	// Shift operations
	CreateShift(ctx context.Context, req *shift.CreateShiftRequest) (*shift.ShiftResponse, error)
	GetShift(ctx context.Context, id string) (*shift.ShiftResponse, error)
	ListShifts(ctx context.Context) ([]shift.ShiftResponse, error)
	UpdateShift(ctx context.Context, req *shift.UpdateShiftRequest) (*shift.ShiftResponse, error)
	DeleteShift(ctx context.Context, id string) error

	// Role operations
	CreateRole(ctx context.Context, req *role.CreateRoleRequest) (*role.RoleResponse, error)
	GetRole(ctx context.Context, id string) (*role.RoleResponse, error)
	ListRoles(ctx context.Context) ([]role.RoleResponse, error)
	UpdateRole(ctx context.Context, req *role.UpdateRoleRequest) (*role.RoleResponse, error)
	DeleteRole(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	shiftRepo shift.ShiftRepository
	roleRepo  role.RoleRepository
}

func NewMasterService(shiftRepo shift.ShiftRepository, roleRepo role.RoleRepository) MasterService {
	return &masterServiceImpl{
		shiftRepo: shiftRepo,
		roleRepo:  roleRepo,
	}
}

// ==================== SHIFT OPERATIONS ====================

func (s *masterServiceImpl) CreateShift(ctx context.Context, req *shift.CreateShiftRequest) (*shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	breakDuration := time.Duration(0)
	if req.BreakDuration != nil {
		parsed, err := timeutil.ParseDuration(*req.BreakDuration)
		if err != nil {
			return nil, err
		}
		breakDuration = parsed
	}

	otMultiplier := decimal.NewFromInt(1)
	if req.OTMultiplier != nil {
		otMultiplier = *req.OTMultiplier
	}

	created, err := s.shiftRepo.Create(ctx, shift.Shift{
		ID:            uuid.NewString(),
		Name:          req.Name,
		StartTime:     normalizeClock(req.StartTime),
		EndTime:       normalizeClock(req.EndTime),
		BreakDuration: breakDuration,
		OTMultiplier:  otMultiplier,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, shift.ErrShiftNameExists
		}
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}

	return shiftResponse(created), nil
}

func (s *masterServiceImpl) GetShift(ctx context.Context, id string) (*shift.ShiftResponse, error) {
	sh, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return shiftResponse(sh), nil
}

func (s *masterServiceImpl) ListShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	shifts, err := s.shiftRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, *shiftResponse(sh))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateShift(ctx context.Context, req *shift.UpdateShiftRequest) (*shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sh, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sh.Name = *req.Name
	}
	if req.StartTime != nil {
		sh.StartTime = normalizeClock(*req.StartTime)
	}
	if req.EndTime != nil {
		sh.EndTime = normalizeClock(*req.EndTime)
	}
	if req.BreakDuration != nil {
		parsed, err := timeutil.ParseDuration(*req.BreakDuration)
		if err != nil {
			return nil, err
		}
		sh.BreakDuration = parsed
	}
	if req.OTMultiplier != nil {
		sh.OTMultiplier = *req.OTMultiplier
	}

	updated, err := s.shiftRepo.Update(ctx, sh)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, shift.ErrShiftNameExists
		}
		return nil, fmt.Errorf("failed to update shift: %w", err)
	}

	return shiftResponse(updated), nil
}

func (s *masterServiceImpl) DeleteShift(ctx context.Context, id string) error {
	if err := s.shiftRepo.Delete(ctx, id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return shift.ErrShiftInUse
		}
		return err
	}
	return nil
}

// ==================== ROLE OPERATIONS ====================

func (s *masterServiceImpl) CreateRole(ctx context.Context, req *role.CreateRoleRequest) (*role.RoleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.roleRepo.Create(ctx, role.Role{
		ID:   uuid.NewString(),
		Name: req.Name,
		Key:  req.Key,
	})
	if err != nil {
		return nil, mapRoleUniqueViolation(err)
	}

	return roleResponse(created), nil
}

func (s *masterServiceImpl) GetRole(ctx context.Context, id string) (*role.RoleResponse, error) {
	r, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return roleResponse(r), nil
}

func (s *masterServiceImpl) ListRoles(ctx context.Context) ([]role.RoleResponse, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	responses := make([]role.RoleResponse, 0, len(roles))
	for _, r := range roles {
		responses = append(responses, *roleResponse(r))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateRole(ctx context.Context, req *role.UpdateRoleRequest) (*role.RoleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r, err := s.roleRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		r.Name = *req.Name
	}
	if req.Key != nil {
		r.Key = *req.Key
	}

	updated, err := s.roleRepo.Update(ctx, r)
	if err != nil {
		return nil, mapRoleUniqueViolation(err)
	}

	return roleResponse(updated), nil
}

func (s *masterServiceImpl) DeleteRole(ctx context.Context, id string) error {
	return s.roleRepo.Delete(ctx, id)
}

// ==================== HELPERS ====================

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapRoleUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "key") {
			return role.ErrRoleKeyExists
		}
		return role.ErrRoleNameExists
	}
	return err
}

// normalizeClock pads "HH:mm" to "HH:mm:ss" so stored shift times are
// uniform.
func normalizeClock(clock string) string {
	if strings.Count(clock, ":") == 1 {
		return clock + ":00"
	}
	return clock
}

func shiftResponse(sh shift.Shift) *shift.ShiftResponse {
	return &shift.ShiftResponse{
		ID:            sh.ID,
		Name:          sh.Name,
		StartTime:     sh.StartTime,
		EndTime:       sh.EndTime,
		BreakDuration: timeutil.FormatDuration(sh.BreakDuration),
		OTMultiplier:  sh.OTMultiplier,
	}
}

func roleResponse(r role.Role) *role.RoleResponse {
	return &role.RoleResponse{
		ID:   r.ID,
		Name: r.Name,
		Key:  r.Key,
	}
}

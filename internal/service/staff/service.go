package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/edulab-vn/center-backend-go/internal/domain/staff"
)

type StaffServiceImpl struct {
	staffRepo staff.StaffRepository
}

func NewStaffService(staffRepo staff.StaffRepository) staff.StaffService {
	return &StaffServiceImpl{staffRepo: staffRepo}
}

func (s *StaffServiceImpl) Create(ctx context.Context, req *staff.CreateStaffRequest) (*staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	dateOfBirth, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("invalid date_of_birth %q: %w", req.DateOfBirth, err)
	}

	created, err := s.staffRepo.Create(ctx, staff.Staff{
		ID:                     uuid.NewString(),
		FullName:               req.FullName,
		PhoneNumber:            req.PhoneNumber,
		DateOfBirth:            dateOfBirth,
		Email:                  req.Email,
		Address:                req.Address,
		IdentityCardNumber:     req.IdentityCardNumber,
		EmergencyContactNumber: req.EmergencyContactNumber,
		Title:                  req.Title,
		Rates:                  req.Rates,
	})
	if err != nil {
		return nil, mapUniqueViolation(err)
	}

	return toResponse(created), nil
}

func (s *StaffServiceImpl) GetByID(ctx context.Context, id string) (*staff.StaffResponse, error) {
	st, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(st), nil
}

func (s *StaffServiceImpl) List(ctx context.Context) ([]staff.StaffResponse, error) {
	staffs, err := s.staffRepo.Find(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	responses := make([]staff.StaffResponse, 0, len(staffs))
	for _, st := range staffs {
		responses = append(responses, *toResponse(st))
	}
	return responses, nil
}

func (s *StaffServiceImpl) Update(ctx context.Context, req *staff.UpdateStaffRequest) (*staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	st, err := s.staffRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		st.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		st.PhoneNumber = *req.PhoneNumber
	}
	if req.DateOfBirth != nil {
		dateOfBirth, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("invalid date_of_birth %q: %w", *req.DateOfBirth, err)
		}
		st.DateOfBirth = dateOfBirth
	}
	if req.Email != nil {
		st.Email = *req.Email
	}
	if req.Address != nil {
		st.Address = *req.Address
	}
	if req.IdentityCardNumber != nil {
		st.IdentityCardNumber = *req.IdentityCardNumber
	}
	if req.EmergencyContactNumber != nil {
		st.EmergencyContactNumber = *req.EmergencyContactNumber
	}
	if req.Title != nil {
		st.Title = *req.Title
	}
	if req.Rates != nil {
		st.Rates = *req.Rates
	}

	updated, err := s.staffRepo.Update(ctx, st)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}

	return toResponse(updated), nil
}

func (s *StaffServiceImpl) Delete(ctx context.Context, id string) error {
	return s.staffRepo.Delete(ctx, id)
}

// mapUniqueViolation turns a unique-constraint error from Postgres into
// the matching domain error.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "email"):
			return staff.ErrEmailExists
		case strings.Contains(pgErr.ConstraintName, "identity_card"):
			return staff.ErrIdentityCardExists
		}
	}
	return err
}

func toResponse(st staff.Staff) *staff.StaffResponse {
	return &staff.StaffResponse{
		ID:                     st.ID,
		FullName:               st.FullName,
		PhoneNumber:            st.PhoneNumber,
		DateOfBirth:            st.DateOfBirth.Format("2006-01-02"),
		Email:                  st.Email,
		Address:                st.Address,
		IdentityCardNumber:     st.IdentityCardNumber,
		EmergencyContactNumber: st.EmergencyContactNumber,
		Title:                  st.Title,
		Rates:                  st.Rates,
		CreatedAt:              st.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              st.UpdatedAt.Format(time.RFC3339),
	}
}

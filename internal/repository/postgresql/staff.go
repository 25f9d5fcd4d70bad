package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/edulab-vn/center-backend-go/internal/domain/staff"
	"github.com/edulab-vn/center-backend-go/internal/pkg/database"
)

type StaffRepositoryImpl struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &StaffRepositoryImpl{db: db}
}

func (r *StaffRepositoryImpl) Create(ctx context.Context, st staff.Staff) (staff.Staff, error) {
	querier := GetQuerier(ctx, r.db)

	rates, err := json.Marshal(st.Rates)
	if err != nil {
		return staff.Staff{}, fmt.Errorf("failed to marshal rates: %w", err)
	}

	query := `
		INSERT INTO staffs (
			id, full_name, phone_number, date_of_birth, email, address,
			identity_card_number, emergency_contact_number, title, rates
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err = querier.QueryRow(ctx, query,
		st.ID, st.FullName, st.PhoneNumber, st.DateOfBirth, st.Email, st.Address,
		st.IdentityCardNumber, st.EmergencyContactNumber, st.Title, rates,
	).Scan(&st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return staff.Staff{}, fmt.Errorf("failed to create staff: %w", err)
	}

	return st, nil
}

func (r *StaffRepositoryImpl) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, phone_number, date_of_birth, email, address,
		       identity_card_number, emergency_contact_number, title, rates,
		       created_at, updated_at
		FROM staffs
		WHERE id = $1`

	st, err := scanStaff(querier.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to get staff: %w", err)
	}

	return st, nil
}

func (r *StaffRepositoryImpl) Find(ctx context.Context, staffID *string) ([]staff.Staff, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, phone_number, date_of_birth, email, address,
		       identity_card_number, emergency_contact_number, title, rates,
		       created_at, updated_at
		FROM staffs`
	args := []interface{}{}

	if staffID != nil {
		query += ` WHERE id = $1`
		args = append(args, *staffID)
	}
	query += ` ORDER BY full_name ASC`

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find staff: %w", err)
	}
	defer rows.Close()

	var staffs []staff.Staff
	for rows.Next() {
		st, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		staffs = append(staffs, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate staff rows: %w", err)
	}

	return staffs, nil
}

func (r *StaffRepositoryImpl) Update(ctx context.Context, st staff.Staff) (staff.Staff, error) {
	querier := GetQuerier(ctx, r.db)

	rates, err := json.Marshal(st.Rates)
	if err != nil {
		return staff.Staff{}, fmt.Errorf("failed to marshal rates: %w", err)
	}

	query := `
		UPDATE staffs
		SET full_name = $2, phone_number = $3, date_of_birth = $4, email = $5,
		    address = $6, identity_card_number = $7, emergency_contact_number = $8,
		    title = $9, rates = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err = querier.QueryRow(ctx, query,
		st.ID, st.FullName, st.PhoneNumber, st.DateOfBirth, st.Email, st.Address,
		st.IdentityCardNumber, st.EmergencyContactNumber, st.Title, rates,
	).Scan(&st.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to update staff: %w", err)
	}

	return st, nil
}

func (r *StaffRepositoryImpl) Delete(ctx context.Context, id string) error {
	querier := GetQuerier(ctx, r.db)

	tag, err := querier.Exec(ctx, `DELETE FROM staffs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}

	return nil
}

func scanStaff(row pgx.Row) (staff.Staff, error) {
	var st staff.Staff
	var rates []byte

	err := row.Scan(
		&st.ID, &st.FullName, &st.PhoneNumber, &st.DateOfBirth, &st.Email,
		&st.Address, &st.IdentityCardNumber, &st.EmergencyContactNumber,
		&st.Title, &rates, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return staff.Staff{}, err
	}

	if len(rates) > 0 {
		if err := json.Unmarshal(rates, &st.Rates); err != nil {
			return staff.Staff{}, fmt.Errorf("failed to unmarshal rates: %w", err)
		}
	}
	if st.Rates == nil {
		st.Rates = map[string]decimal.Decimal{}
	}

	return st, nil
}

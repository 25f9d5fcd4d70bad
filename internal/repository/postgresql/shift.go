package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/edulab-vn/center-backend-go/internal/domain/master/shift"
	"github.com/edulab-vn/center-backend-go/internal/pkg/database"
)

type ShiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &ShiftRepositoryImpl{db: db}
}

func (r *ShiftRepositoryImpl) Create(ctx context.Context, sh shift.Shift) (shift.Shift, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (id, name, start_time, end_time, break_duration_seconds, ot_multiplier)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := querier.QueryRow(ctx, query,
		sh.ID, sh.Name, sh.StartTime, sh.EndTime,
		int64(sh.BreakDuration/time.Second), sh.OTMultiplier,
	).Scan(&sh.CreatedAt, &sh.UpdatedAt)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return sh, nil
}

func (r *ShiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_time, end_time, break_duration_seconds, ot_multiplier,
		       created_at, updated_at
		FROM shifts
		WHERE id = $1`

	sh, err := scanShift(querier.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return sh, nil
}

func (r *ShiftRepositoryImpl) List(ctx context.Context) ([]shift.Shift, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, start_time, end_time, break_duration_seconds, ot_multiplier,
		       created_at, updated_at
		FROM shifts
		ORDER BY start_time ASC, name ASC`

	rows, err := querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift rows: %w", err)
	}

	return shifts, nil
}

func (r *ShiftRepositoryImpl) Update(ctx context.Context, sh shift.Shift) (shift.Shift, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET name = $2, start_time = $3, end_time = $4, break_duration_seconds = $5,
		    ot_multiplier = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := querier.QueryRow(ctx, query,
		sh.ID, sh.Name, sh.StartTime, sh.EndTime,
		int64(sh.BreakDuration/time.Second), sh.OTMultiplier,
	).Scan(&sh.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return sh, nil
}

func (r *ShiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	querier := GetQuerier(ctx, r.db)

	tag, err := querier.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

func scanShift(row pgx.Row) (shift.Shift, error) {
	var sh shift.Shift
	var breakSeconds int64

	err := row.Scan(
		&sh.ID, &sh.Name, &sh.StartTime, &sh.EndTime, &breakSeconds,
		&sh.OTMultiplier, &sh.CreatedAt, &sh.UpdatedAt,
	)
	if err != nil {
		return shift.Shift{}, err
	}

	sh.BreakDuration = time.Duration(breakSeconds) * time.Second
	return sh, nil
}

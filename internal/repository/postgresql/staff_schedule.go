package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/edulab-vn/center-backend-go/internal/domain/classsession"
	"github.com/edulab-vn/center-backend-go/internal/domain/master/shift"
	"github.com/edulab-vn/center-backend-go/internal/domain/schedule"
	"github.com/edulab-vn/center-backend-go/internal/pkg/database"
)

type StaffScheduleRepositoryImpl struct {
	db *database.DB
}

func NewStaffScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &StaffScheduleRepositoryImpl{db: db}
}

// Every read hydrates the shift and class session so callers can build
// paid windows without extra queries.
const staffScheduleColumns = `
	ss.id, ss.staff_id, ss.date, ss.shift_id, ss.class_session_id, ss.role_key,
	ss.created_at, ss.updated_at,
	sh.name, sh.start_time, sh.end_time, sh.break_duration_seconds, sh.ot_multiplier,
	cs.class_id, cs.session_date, cs.start_time, cs.session_number, c.name`

const staffScheduleJoins = `
	LEFT JOIN shifts sh ON sh.id = ss.shift_id
	LEFT JOIN class_sessions cs ON cs.id = ss.class_session_id
	LEFT JOIN classes c ON c.id = cs.class_id`

func (r *StaffScheduleRepositoryImpl) Create(ctx context.Context, sch schedule.StaffSchedule) (schedule.StaffSchedule, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO staff_schedules (id, staff_id, date, shift_id, class_session_id, role_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := querier.QueryRow(ctx, query,
		sch.ID, sch.StaffID, sch.Date, sch.ShiftID, sch.ClassSessionID, sch.RoleKey,
	).Scan(&sch.CreatedAt, &sch.UpdatedAt)
	if err != nil {
		return schedule.StaffSchedule{}, fmt.Errorf("failed to create staff schedule: %w", err)
	}

	return sch, nil
}

func (r *StaffScheduleRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.StaffSchedule, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + staffScheduleColumns + `
		FROM staff_schedules ss` + staffScheduleJoins + `
		WHERE ss.id = $1`

	sch, err := scanStaffSchedule(querier.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.StaffSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.StaffSchedule{}, fmt.Errorf("failed to get staff schedule: %w", err)
	}

	return sch, nil
}

func (r *StaffScheduleRepositoryImpl) FindByDateRange(ctx context.Context, fromDate, toDate string, staffID *string) ([]schedule.StaffSchedule, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + staffScheduleColumns + `
		FROM staff_schedules ss` + staffScheduleJoins + `
		WHERE ss.date >= $1 AND ss.date <= $2`
	args := []interface{}{fromDate, toDate}

	if staffID != nil {
		query += ` AND ss.staff_id = $3`
		args = append(args, *staffID)
	}
	query += ` ORDER BY ss.date ASC`

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find staff schedules: %w", err)
	}
	defer rows.Close()

	return collectStaffSchedules(rows)
}

func (r *StaffScheduleRepositoryImpl) FindByStaffAndDate(ctx context.Context, staffID, date string) ([]schedule.StaffSchedule, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + staffScheduleColumns + `
		FROM staff_schedules ss` + staffScheduleJoins + `
		WHERE ss.staff_id = $1 AND ss.date = $2`

	rows, err := querier.Query(ctx, query, staffID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to find staff schedules: %w", err)
	}
	defer rows.Close()

	return collectStaffSchedules(rows)
}

func (r *StaffScheduleRepositoryImpl) Update(ctx context.Context, sch schedule.StaffSchedule) (schedule.StaffSchedule, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff_schedules
		SET shift_id = $2, role_key = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := querier.QueryRow(ctx, query, sch.ID, sch.ShiftID, sch.RoleKey).Scan(&sch.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.StaffSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.StaffSchedule{}, fmt.Errorf("failed to update staff schedule: %w", err)
	}

	return sch, nil
}

func (r *StaffScheduleRepositoryImpl) Delete(ctx context.Context, id string) error {
	querier := GetQuerier(ctx, r.db)

	tag, err := querier.Exec(ctx, `DELETE FROM staff_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}

	return nil
}

func collectStaffSchedules(rows pgx.Rows) ([]schedule.StaffSchedule, error) {
	var schedules []schedule.StaffSchedule
	for rows.Next() {
		sch, err := scanStaffSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff schedule: %w", err)
		}
		schedules = append(schedules, sch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate staff schedule rows: %w", err)
	}
	return schedules, nil
}

func scanStaffSchedule(row pgx.Row) (schedule.StaffSchedule, error) {
	var sch schedule.StaffSchedule
	var (
		shiftName         *string
		shiftStart        *string
		shiftEnd          *string
		shiftBreakSeconds *int64
		shiftMultiplier   *decimal.Decimal

		sessionClassID *string
		sessionDate    *time.Time
		sessionStart   *string
		sessionNumber  *int
		className      *string
	)

	err := row.Scan(
		&sch.ID, &sch.StaffID, &sch.Date, &sch.ShiftID, &sch.ClassSessionID,
		&sch.RoleKey, &sch.CreatedAt, &sch.UpdatedAt,
		&shiftName, &shiftStart, &shiftEnd, &shiftBreakSeconds, &shiftMultiplier,
		&sessionClassID, &sessionDate, &sessionStart, &sessionNumber, &className,
	)
	if err != nil {
		return schedule.StaffSchedule{}, err
	}

	if sch.ShiftID != nil && shiftName != nil {
		sch.Shift = &shift.Shift{
			ID:            *sch.ShiftID,
			Name:          *shiftName,
			StartTime:     *shiftStart,
			EndTime:       *shiftEnd,
			BreakDuration: time.Duration(*shiftBreakSeconds) * time.Second,
			OTMultiplier:  *shiftMultiplier,
		}
	}

	if sch.ClassSessionID != nil && sessionClassID != nil {
		sch.ClassSession = &classsession.ClassSession{
			ID:            *sch.ClassSessionID,
			ClassID:       *sessionClassID,
			SessionDate:   *sessionDate,
			StartTime:     *sessionStart,
			SessionNumber: sessionNumber,
			ClassName:     className,
		}
	}

	return sch, nil
}

package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/edulab-vn/center-backend-go/internal/domain/attendance"
	"github.com/edulab-vn/center-backend-go/internal/pkg/database"
)

type AttendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.EventRepository {
	return &AttendanceRepositoryImpl{db: db}
}

func (r *AttendanceRepositoryImpl) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO staff_attendances (id, staff_id, timestamp, type)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := querier.QueryRow(ctx, query,
		event.ID, event.StaffID, event.Timestamp, event.Type,
	).Scan(&event.CreatedAt)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return event, nil
}

func (r *AttendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Event, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ae.id, ae.staff_id, ae.timestamp, ae.type, ae.created_at, s.full_name
		FROM staff_attendances ae
		LEFT JOIN staffs s ON s.id = ae.staff_id
		WHERE ae.id = $1`

	var event attendance.Event
	err := querier.QueryRow(ctx, query, id).Scan(
		&event.ID, &event.StaffID, &event.Timestamp, &event.Type,
		&event.CreatedAt, &event.StaffName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Event{}, attendance.ErrEventNotFound
		}
		return attendance.Event{}, fmt.Errorf("failed to get attendance event: %w", err)
	}

	return event, nil
}

func (r *AttendanceRepositoryImpl) LastOfWindow(ctx context.Context, staffID string, from, to time.Time) (attendance.Event, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT id, staff_id, timestamp, type, created_at
		FROM staff_attendances
		WHERE staff_id = $1 AND timestamp >= $2 AND timestamp < $3
		ORDER BY timestamp DESC
		LIMIT 1`

	var event attendance.Event
	err := querier.QueryRow(ctx, query, staffID, from, to).Scan(
		&event.ID, &event.StaffID, &event.Timestamp, &event.Type, &event.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Event{}, attendance.ErrEventNotFound
		}
		return attendance.Event{}, fmt.Errorf("failed to get last attendance event: %w", err)
	}

	return event, nil
}

func (r *AttendanceRepositoryImpl) FindByTimestampRange(ctx context.Context, from, to time.Time, staffID *string) ([]attendance.Event, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ae.id, ae.staff_id, ae.timestamp, ae.type, ae.created_at, s.full_name
		FROM staff_attendances ae
		LEFT JOIN staffs s ON s.id = ae.staff_id
		WHERE ae.timestamp >= $1 AND ae.timestamp < $2`
	args := []interface{}{from, to}

	if staffID != nil {
		query += ` AND ae.staff_id = $3`
		args = append(args, *staffID)
	}
	query += ` ORDER BY ae.timestamp ASC`

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var event attendance.Event
		err := rows.Scan(
			&event.ID, &event.StaffID, &event.Timestamp, &event.Type,
			&event.CreatedAt, &event.StaffName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance event rows: %w", err)
	}

	return events, nil
}

func (r *AttendanceRepositoryImpl) Update(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff_attendances
		SET timestamp = $2, type = $3
		WHERE id = $1`

	tag, err := querier.Exec(ctx, query, event.ID, event.Timestamp, event.Type)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to update attendance event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.Event{}, attendance.ErrEventNotFound
	}

	return event, nil
}

func (r *AttendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	querier := GetQuerier(ctx, r.db)

	tag, err := querier.Exec(ctx, `DELETE FROM staff_attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrEventNotFound
	}

	return nil
}

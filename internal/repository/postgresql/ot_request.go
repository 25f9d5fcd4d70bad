package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edulab-vn/center-backend-go/internal/domain/overtime"
	"github.com/edulab-vn/center-backend-go/internal/pkg/database"
)

type OvertimeRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.RequestRepository {
	return &OvertimeRepositoryImpl{db: db}
}

const otRequestColumns = `
	ot.id, ot.staff_id, ot.date, ot.detected_duration_seconds,
	ot.approved_duration_seconds, ot.approved_role_key, ot.approved_multiplier,
	ot.breakdown, ot.reason, ot.notes, ot.status, ot.approver_id,
	ot.created_at, ot.updated_at, s.full_name`

func (r *OvertimeRepositoryImpl) GetByID(ctx context.Context, id string) (overtime.Request, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + otRequestColumns + `
		FROM ot_requests ot
		LEFT JOIN staffs s ON s.id = ot.staff_id
		WHERE ot.id = $1`

	req, err := scanOvertimeRequest(querier.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return overtime.Request{}, overtime.ErrRequestNotFound
		}
		return overtime.Request{}, fmt.Errorf("failed to get overtime request: %w", err)
	}

	return req, nil
}

func (r *OvertimeRepositoryImpl) FindByDateRange(ctx context.Context, fromDate, toDate string, staffID, status *string) ([]overtime.Request, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + otRequestColumns + `
		FROM ot_requests ot
		LEFT JOIN staffs s ON s.id = ot.staff_id
		WHERE ot.date >= $1 AND ot.date <= $2`
	args := []interface{}{fromDate, toDate}

	if staffID != nil {
		args = append(args, *staffID)
		query += fmt.Sprintf(` AND ot.staff_id = $%d`, len(args))
	}
	if status != nil {
		args = append(args, *status)
		query += fmt.Sprintf(` AND ot.status = $%d`, len(args))
	}
	query += ` ORDER BY ot.date ASC`

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find overtime requests: %w", err)
	}
	defer rows.Close()

	return collectOvertimeRequests(rows)
}

func (r *OvertimeRepositoryImpl) List(ctx context.Context, filter *overtime.ListFilter) ([]overtime.Request, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + otRequestColumns + `
		FROM ot_requests ot
		LEFT JOIN staffs s ON s.id = ot.staff_id
		WHERE 1=1`
	args := []interface{}{}

	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		query += fmt.Sprintf(` AND ot.date >= $%d`, len(args))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		query += fmt.Sprintf(` AND ot.date <= $%d`, len(args))
	}
	if filter.StaffID != nil {
		args = append(args, *filter.StaffID)
		query += fmt.Sprintf(` AND ot.staff_id = $%d`, len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(` AND ot.status = $%d`, len(args))
	}
	query += ` ORDER BY ot.date DESC, ot.created_at DESC`

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	defer rows.Close()

	return collectOvertimeRequests(rows)
}

func (r *OvertimeRepositoryImpl) UpsertDetected(ctx context.Context, staffID, date string, detected time.Duration) (overtime.Request, bool, error) {
	querier := GetQuerier(ctx, r.db)

	// The conditional update keeps resolved rows untouched and makes the
	// write a no-op when the detected duration did not move, so repeated
	// payroll runs over the same range stay idempotent.
	query := `
		INSERT INTO ot_requests (id, staff_id, date, detected_duration_seconds, status)
		VALUES ($1, $2, $3, $4, 'pending')
		ON CONFLICT (staff_id, date) DO UPDATE
		SET detected_duration_seconds = EXCLUDED.detected_duration_seconds,
		    updated_at = NOW()
		WHERE ot_requests.status = 'pending'
		  AND ot_requests.detected_duration_seconds IS DISTINCT FROM EXCLUDED.detected_duration_seconds`

	tag, err := querier.Exec(ctx, query,
		uuid.NewString(), staffID, date, int64(detected/time.Second))
	if err != nil {
		return overtime.Request{}, false, fmt.Errorf("failed to upsert detected overtime: %w", err)
	}
	changed := tag.RowsAffected() > 0

	selectQuery := `
		SELECT ` + otRequestColumns + `
		FROM ot_requests ot
		LEFT JOIN staffs s ON s.id = ot.staff_id
		WHERE ot.staff_id = $1 AND ot.date = $2`

	req, err := scanOvertimeRequest(querier.QueryRow(ctx, selectQuery, staffID, date))
	if err != nil {
		return overtime.Request{}, false, fmt.Errorf("failed to read upserted overtime request: %w", err)
	}

	return req, changed, nil
}

func (r *OvertimeRepositoryImpl) DeletePending(ctx context.Context, staffID, date string) error {
	querier := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM ot_requests
		WHERE staff_id = $1 AND date = $2 AND status = 'pending'`

	if _, err := querier.Exec(ctx, query, staffID, date); err != nil {
		return fmt.Errorf("failed to delete pending overtime request: %w", err)
	}

	return nil
}

func (r *OvertimeRepositoryImpl) Resolve(ctx context.Context, req overtime.Request) (overtime.Request, error) {
	querier := GetQuerier(ctx, r.db)

	var breakdown []byte
	if len(req.Breakdown) > 0 {
		var err error
		breakdown, err = json.Marshal(req.Breakdown)
		if err != nil {
			return overtime.Request{}, fmt.Errorf("failed to marshal breakdown: %w", err)
		}
	}

	var approvedSeconds *int64
	if req.ApprovedDuration != nil {
		seconds := int64(*req.ApprovedDuration / time.Second)
		approvedSeconds = &seconds
	}

	query := `
		UPDATE ot_requests
		SET status = $2, approved_duration_seconds = $3, approved_role_key = $4,
		    approved_multiplier = $5, breakdown = $6, notes = $7, approver_id = $8,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING updated_at`

	err := querier.QueryRow(ctx, query,
		req.ID, req.Status, approvedSeconds, req.ApprovedRoleKey,
		req.ApprovedMultiplier, breakdown, req.Notes, req.ApproverID,
	).Scan(&req.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return overtime.Request{}, overtime.ErrNotPending
		}
		return overtime.Request{}, fmt.Errorf("failed to resolve overtime request: %w", err)
	}

	return req, nil
}

func collectOvertimeRequests(rows pgx.Rows) ([]overtime.Request, error) {
	var requests []overtime.Request
	for rows.Next() {
		req, err := scanOvertimeRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate overtime request rows: %w", err)
	}
	return requests, nil
}

func scanOvertimeRequest(row pgx.Row) (overtime.Request, error) {
	var req overtime.Request
	var detectedSeconds int64
	var approvedSeconds *int64
	var breakdown []byte

	err := row.Scan(
		&req.ID, &req.StaffID, &req.Date, &detectedSeconds,
		&approvedSeconds, &req.ApprovedRoleKey, &req.ApprovedMultiplier,
		&breakdown, &req.Reason, &req.Notes, &req.Status, &req.ApproverID,
		&req.CreatedAt, &req.UpdatedAt, &req.StaffName,
	)
	if err != nil {
		return overtime.Request{}, err
	}

	req.DetectedDuration = time.Duration(detectedSeconds) * time.Second
	if approvedSeconds != nil {
		approved := time.Duration(*approvedSeconds) * time.Second
		req.ApprovedDuration = &approved
	}
	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &req.Breakdown); err != nil {
			return overtime.Request{}, fmt.Errorf("failed to unmarshal breakdown: %w", err)
		}
	}

	return req, nil
}

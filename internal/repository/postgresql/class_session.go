package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/edulab-vn/center-backend-go/internal/domain/classsession"
	"github.com/edulab-vn/center-backend-go/internal/pkg/database"
)

type ClassSessionRepositoryImpl struct {
	db *database.DB
}

func NewClassSessionRepository(db *database.DB) classsession.ClassSessionRepository {
	return &ClassSessionRepositoryImpl{db: db}
}

const classSessionColumns = `
	cs.id, cs.class_id, cs.session_date, cs.start_time, cs.session_number,
	cs.created_at, cs.updated_at, c.name AS class_name`

func (r *ClassSessionRepositoryImpl) GetByID(ctx context.Context, id string) (classsession.ClassSession, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + classSessionColumns + `
		FROM class_sessions cs
		LEFT JOIN classes c ON c.id = cs.class_id
		WHERE cs.id = $1`

	session, err := scanClassSession(querier.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return classsession.ClassSession{}, classsession.ErrSessionNotFound
		}
		return classsession.ClassSession{}, fmt.Errorf("failed to get class session: %w", err)
	}

	return session, nil
}

func (r *ClassSessionRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]classsession.ClassSession, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + classSessionColumns + `
		FROM class_sessions cs
		LEFT JOIN classes c ON c.id = cs.class_id
		WHERE cs.id = ANY($1)`

	rows, err := querier.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get class sessions: %w", err)
	}
	defer rows.Close()

	return collectClassSessions(rows)
}

func (r *ClassSessionRepositoryImpl) FindByDateRange(ctx context.Context, fromDate, toDate string) ([]classsession.ClassSession, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + classSessionColumns + `
		FROM class_sessions cs
		LEFT JOIN classes c ON c.id = cs.class_id
		WHERE cs.session_date >= $1 AND cs.session_date <= $2
		ORDER BY cs.session_date ASC, cs.start_time ASC`

	rows, err := querier.Query(ctx, query, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to find class sessions: %w", err)
	}
	defer rows.Close()

	return collectClassSessions(rows)
}

func collectClassSessions(rows pgx.Rows) ([]classsession.ClassSession, error) {
	var sessions []classsession.ClassSession
	for rows.Next() {
		session, err := scanClassSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan class session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate class session rows: %w", err)
	}
	return sessions, nil
}

func scanClassSession(row pgx.Row) (classsession.ClassSession, error) {
	var session classsession.ClassSession
	err := row.Scan(
		&session.ID, &session.ClassID, &session.SessionDate, &session.StartTime,
		&session.SessionNumber, &session.CreatedAt, &session.UpdatedAt,
		&session.ClassName,
	)
	if err != nil {
		return classsession.ClassSession{}, err
	}
	return session, nil
}

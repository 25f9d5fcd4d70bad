package classsession

import "context"

type ClassSessionRepository interface {
	GetByID(ctx context.Context, id string) (ClassSession, error)
	GetByIDs(ctx context.Context, ids []string) ([]ClassSession, error)
	FindByDateRange(ctx context.Context, fromDate, toDate string) ([]ClassSession, error)
}

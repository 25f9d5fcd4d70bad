package overtime

import "context"

type OvertimeService interface {
	List(ctx context.Context, filter *ListFilter) ([]RequestResponse, error)
	GetByID(ctx context.Context, id string) (*RequestResponse, error)
	Approve(ctx context.Context, req *ApproveRequest) (*RequestResponse, error)
	Reject(ctx context.Context, req *RejectRequest) (*RequestResponse, error)
}

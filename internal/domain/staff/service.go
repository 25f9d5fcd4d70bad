package staff

import "context"

type StaffService interface {
	Create(ctx context.Context, req *CreateStaffRequest) (*StaffResponse, error)
	GetByID(ctx context.Context, id string) (*StaffResponse, error)
	List(ctx context.Context) ([]StaffResponse, error)
	Update(ctx context.Context, req *UpdateStaffRequest) (*StaffResponse, error)
	Delete(ctx context.Context, id string) error
}

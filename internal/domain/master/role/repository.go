package role

import "context"

type RoleRepository interface {
	Create(ctx context.Context, role Role) (Role, error)
	GetByID(ctx context.Context, id string) (Role, error)
	GetByKey(ctx context.Context, key string) (Role, error)
	List(ctx context.Context) ([]Role, error)
	Update(ctx context.Context, role Role) (Role, error)
	Delete(ctx context.Context, id string) error
}

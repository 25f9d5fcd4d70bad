package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/edulab-vn/center-backend-go/internal/domain/master/role"
	"github.com/edulab-vn/center-backend-go/internal/pkg/database"
)

type RoleRepositoryImpl struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) role.RoleRepository {
	return &RoleRepositoryImpl{db: db}
}

func (r *RoleRepositoryImpl) Create(ctx context.Context, ro role.Role) (role.Role, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO roles (id, name, key)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := querier.QueryRow(ctx, query, ro.ID, ro.Name, ro.Key).
		Scan(&ro.CreatedAt, &ro.UpdatedAt)
	if err != nil {
		return role.Role{}, fmt.Errorf("failed to create role: %w", err)
	}

	return ro, nil
}

func (r *RoleRepositoryImpl) GetByID(ctx context.Context, id string) (role.Role, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, key, created_at, updated_at
		FROM roles
		WHERE id = $1`

	var ro role.Role
	err := querier.QueryRow(ctx, query, id).
		Scan(&ro.ID, &ro.Name, &ro.Key, &ro.CreatedAt, &ro.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return role.Role{}, role.ErrRoleNotFound
		}
		return role.Role{}, fmt.Errorf("failed to get role: %w", err)
	}

	return ro, nil
}

func (r *RoleRepositoryImpl) GetByKey(ctx context.Context, key string) (role.Role, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, key, created_at, updated_at
		FROM roles
		WHERE key = $1`

	var ro role.Role
	err := querier.QueryRow(ctx, query, key).
		Scan(&ro.ID, &ro.Name, &ro.Key, &ro.CreatedAt, &ro.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return role.Role{}, role.ErrRoleNotFound
		}
		return role.Role{}, fmt.Errorf("failed to get role by key: %w", err)
	}

	return ro, nil
}

func (r *RoleRepositoryImpl) List(ctx context.Context) ([]role.Role, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, key, created_at, updated_at
		FROM roles
		ORDER BY name ASC`

	rows, err := querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []role.Role
	for rows.Next() {
		var ro role.Role
		if err := rows.Scan(&ro.ID, &ro.Name, &ro.Key, &ro.CreatedAt, &ro.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, ro)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate role rows: %w", err)
	}

	return roles, nil
}

func (r *RoleRepositoryImpl) Update(ctx context.Context, ro role.Role) (role.Role, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		UPDATE roles
		SET name = $2, key = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := querier.QueryRow(ctx, query, ro.ID, ro.Name, ro.Key).Scan(&ro.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return role.Role{}, role.ErrRoleNotFound
		}
		return role.Role{}, fmt.Errorf("failed to update role: %w", err)
	}

	return ro, nil
}

func (r *RoleRepositoryImpl) Delete(ctx context.Context, id string) error {
	querier := GetQuerier(ctx, r.db)

	tag, err := querier.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return role.ErrRoleNotFound
	}

	return nil
}

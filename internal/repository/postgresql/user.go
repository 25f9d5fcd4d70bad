package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/edulab-vn/center-backend-go/internal/domain/user"
	"github.com/edulab-vn/center-backend-go/internal/pkg/database"
)

type UserRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (id, email, full_name, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := querier.QueryRow(ctx, query,
		newUser.ID, newUser.Email, newUser.FullName, newUser.PasswordHash, newUser.Role,
	).Scan(&newUser.CreatedAt, &newUser.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepositoryImpl) getBy(ctx context.Context, column, value string) (user.User, error) {
	querier := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT id, email, full_name, password_hash, role, created_at, updated_at
		FROM users
		WHERE %s = $1`, column)

	var u user.User
	err := querier.QueryRow(ctx, query, value).Scan(
		&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.Role,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

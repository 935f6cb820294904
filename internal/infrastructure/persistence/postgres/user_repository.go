package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
	"github.com/danispp/Task-Management/internal/infrastructure/persistence/db"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// pgCode returns the SQLSTATE and constraint of a Postgres error, or empty strings.
func pgCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

const (
	createUserSQL     = `INSERT INTO users (id, email, password_hash, full_name, created_at) VALUES ($1, $2, $3, $4, $5)`
	userColumns       = `id, email, password_hash, full_name, created_at`
	getUserByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	getUserByIDSQL    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	listUsersSQL      = `SELECT ` + userColumns + ` FROM users ORDER BY email LIMIT $1 OFFSET $2`

	// children before parents
	unassignUserSQL       = `UPDATE tasks SET assigned_to_user_id = NULL WHERE assigned_to_user_id = $1`
	deleteOwnedTasksSQL   = `DELETE FROM tasks WHERE project_id IN (SELECT id FROM projects WHERE owner_id = $1)`
	deleteOwnedProjectSQL = `DELETE FROM projects WHERE owner_id = $1`
	deleteUserSQL         = `DELETE FROM users WHERE id = $1`
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := conn(ctx, r.pool).Exec(ctx, createUserSQL,
		user.ID.UUID, user.Email, user.PasswordHash, user.FullName, user.CreatedAt)
	if err != nil {
		if code, _ := pgCode(err); code == uniqueViolation {
			return domerrors.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, getUserByEmailSQL, email)
}

func (r *UserRepository) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	return r.getOne(ctx, getUserByIDSQL, userID.UUID)
}

func (r *UserRepository) getOne(ctx context.Context, sql string, arg any) (*domain.User, error) {
	var u db.User
	err := conn(ctx, r.pool).QueryRow(ctx, sql, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return dbUserToDomain(u), nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, listUsersSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.User, error) {
		var u db.User
		if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.CreatedAt); err != nil {
			return nil, err
		}
		return dbUserToDomain(u), nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	return users, nil
}

// Delete runs the cascade explicitly so the outcome does not depend on FK definitions.
func (r *UserRepository) Delete(ctx context.Context, userID domain.UserID) (bool, error) {
	var deleted bool
	err := inTx(ctx, r.pool, func(q db.DBTX) error {
		for _, stmt := range []string{unassignUserSQL, deleteOwnedTasksSQL, deleteOwnedProjectSQL} {
			if _, err := q.Exec(ctx, stmt, userID.UUID); err != nil {
				return fmt.Errorf("delete user cascade: %w", err)
			}
		}
		tag, err := q.Exec(ctx, deleteUserSQL, userID.UUID)
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		deleted = tag.RowsAffected() == 1
		return nil
	})
	return deleted, err
}

func dbUserToDomain(u db.User) *domain.User {
	return &domain.User{
		ID:           domain.NewUserID(u.ID),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		CreatedAt:    u.CreatedAt,
	}
}

// Ensure UserRepository implements ports.UserRepository.
var _ ports.UserRepository = (*UserRepository)(nil)

// Package db holds the row shapes and schema of the PostgreSQL store.
package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
}

type Project struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description pgtype.Text
	CreatedAt   time.Time
}

// Task is a tasks row joined with its project name and optional assignee columns.
type Task struct {
	ID             uuid.UUID
	ProjectID      uuid.UUID
	Title          string
	Description    pgtype.Text
	Status         int16
	Priority       int16
	CreatedAt      time.Time
	DueDate        pgtype.Timestamptz
	AssignedTo     pgtype.UUID
	ProjectName    string
	AssigneeEmail  pgtype.Text
	AssigneeName   pgtype.Text
	AssigneeJoined pgtype.Timestamptz
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
	"github.com/danispp/Task-Management/internal/infrastructure/persistence/db"
)

const (
	createProjectSQL      = `INSERT INTO projects (id, owner_id, name, description, created_at) VALUES ($1, $2, $3, $4, $5)`
	getProjectForOwnerSQL = `SELECT id, owner_id, name, description, created_at FROM projects WHERE id = $1 AND owner_id = $2`
	listProjectsSQL       = `
SELECT p.id, p.owner_id, p.name, p.description, p.created_at, COUNT(t.id)
FROM projects p
LEFT JOIN tasks t ON t.project_id = p.id
WHERE p.owner_id = $1
GROUP BY p.id
ORDER BY p.created_at DESC`
	updateProjectSQL      = `UPDATE projects SET name = $3, description = $4 WHERE id = $1 AND owner_id = $2`
	deleteProjectTasksSQL = `DELETE FROM tasks WHERE project_id = (SELECT id FROM projects WHERE id = $1 AND owner_id = $2)`
	deleteProjectSQL      = `DELETE FROM projects WHERE id = $1 AND owner_id = $2`
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

// Create returns errors.ErrUserNotFound when the owner row is gone.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	_, err := conn(ctx, r.pool).Exec(ctx, createProjectSQL,
		p.ID.UUID, p.OwnerID.UUID, p.Name, textOrNull(p.Description), p.CreatedAt)
	if err != nil {
		if code, _ := pgCode(err); code == foreignKeyViolation {
			return domerrors.ErrUserNotFound
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) GetForOwner(ctx context.Context, ownerID domain.UserID, projectID domain.ProjectID) (*domain.Project, error) {
	var p db.Project
	err := conn(ctx, r.pool).QueryRow(ctx, getProjectForOwnerSQL, projectID.UUID, ownerID.UUID).
		Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select project: %w", err)
	}
	return dbProjectToDomain(p), nil
}

func (r *ProjectRepository) ListForOwner(ctx context.Context, ownerID domain.UserID) ([]*domain.ProjectSummary, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, listProjectsSQL, ownerID.UUID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.ProjectSummary, error) {
		var p db.Project
		var count int64
		if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &count); err != nil {
			return nil, err
		}
		return &domain.ProjectSummary{Project: *dbProjectToDomain(p), TaskCount: int(count)}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan projects: %w", err)
	}
	return list, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) (bool, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx, updateProjectSQL, p.ID.UUID, p.OwnerID.UUID, p.Name, textOrNull(p.Description))
	if err != nil {
		return false, fmt.Errorf("update project: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, ownerID domain.UserID, projectID domain.ProjectID) (bool, error) {
	var deleted bool
	err := inTx(ctx, r.pool, func(q db.DBTX) error {
		if _, err := q.Exec(ctx, deleteProjectTasksSQL, projectID.UUID, ownerID.UUID); err != nil {
			return fmt.Errorf("delete project tasks: %w", err)
		}
		tag, err := q.Exec(ctx, deleteProjectSQL, projectID.UUID, ownerID.UUID)
		if err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		deleted = tag.RowsAffected() == 1
		return nil
	})
	return deleted, err
}

func dbProjectToDomain(p db.Project) *domain.Project {
	return &domain.Project{
		ID:          domain.NewProjectID(p.ID),
		OwnerID:     domain.NewUserID(p.OwnerID),
		Name:        p.Name,
		Description: textPtr(p.Description),
		CreatedAt:   p.CreatedAt,
	}
}

func textOrNull(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

// Ensure ProjectRepository implements ports.ProjectRepository.
var _ ports.ProjectRepository = (*ProjectRepository)(nil)

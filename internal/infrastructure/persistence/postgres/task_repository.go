package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
	"github.com/danispp/Task-Management/internal/infrastructure/persistence/db"
)

// taskViewSelect joins the owning project (for the ownership filter and name) and the assignee.
const taskViewSelect = `
SELECT t.id, t.project_id, t.title, t.description, t.status, t.priority, t.created_at, t.due_date,
       t.assigned_to_user_id, p.name, u.email, u.full_name, u.created_at
FROM tasks t
JOIN projects p ON p.id = t.project_id
LEFT JOIN users u ON u.id = t.assigned_to_user_id`

const (
	createTaskSQL = `
INSERT INTO tasks (id, project_id, title, description, status, priority, created_at, due_date, assigned_to_user_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	getTaskForOwnerSQL    = taskViewSelect + ` WHERE t.id = $1 AND p.owner_id = $2`
	listTasksForOwnerSQL  = taskViewSelect + ` WHERE p.owner_id = $1 ORDER BY t.created_at DESC`
	listTasksByProjectSQL = taskViewSelect + ` WHERE t.project_id = $1 AND p.owner_id = $2 ORDER BY t.created_at`
	updateTaskSQL         = `
UPDATE tasks t SET title = $3, description = $4, status = $5, priority = $6, due_date = $7, assigned_to_user_id = $8
FROM projects p
WHERE t.id = $1 AND p.id = t.project_id AND p.owner_id = $2`
	updateTaskStatusSQL = `
UPDATE tasks t SET status = $3
FROM projects p
WHERE t.id = $1 AND p.id = t.project_id AND p.owner_id = $2`
	deleteTaskSQL = `
DELETE FROM tasks t
USING projects p
WHERE t.id = $1 AND p.id = t.project_id AND p.owner_id = $2`
)

// taskForeignKeyErr maps a violated tasks foreign key to the domain error for the missing row.
func taskForeignKeyErr(constraint string) error {
	if constraint == "tasks_assigned_to_user_id_fkey" {
		return domerrors.ErrAssigneeNotFound
	}
	return domerrors.ErrProjectNotFound
}

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	_, err := conn(ctx, r.pool).Exec(ctx, createTaskSQL,
		t.ID.UUID, t.ProjectID.UUID, t.Title, textOrNull(t.Description), int16(t.Status), int16(t.Priority),
		t.CreatedAt, timeOrNull(t.DueDate), uuidOrNull(t.AssignedTo))
	if err != nil {
		if code, constraint := pgCode(err); code == foreignKeyViolation {
			return taskForeignKeyErr(constraint)
		}
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetForOwner(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID) (*domain.TaskView, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, getTaskForOwnerSQL, taskID.UUID, ownerID.UUID)
	if err != nil {
		return nil, fmt.Errorf("select task: %w", err)
	}
	v, err := pgx.CollectExactlyOneRow(rows, scanTaskView)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return v, nil
}

func (r *TaskRepository) ListForOwner(ctx context.Context, ownerID domain.UserID) ([]*domain.TaskView, error) {
	return r.list(ctx, listTasksForOwnerSQL, ownerID.UUID)
}

func (r *TaskRepository) ListByProject(ctx context.Context, ownerID domain.UserID, projectID domain.ProjectID) ([]*domain.TaskView, error) {
	return r.list(ctx, listTasksByProjectSQL, projectID.UUID, ownerID.UUID)
}

func (r *TaskRepository) list(ctx context.Context, sql string, args ...any) ([]*domain.TaskView, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	views, err := pgx.CollectRows(rows, scanTaskView)
	if err != nil {
		return nil, fmt.Errorf("scan tasks: %w", err)
	}
	return views, nil
}

func (r *TaskRepository) Update(ctx context.Context, ownerID domain.UserID, t *domain.Task) (bool, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx, updateTaskSQL,
		t.ID.UUID, ownerID.UUID, t.Title, textOrNull(t.Description), int16(t.Status), int16(t.Priority),
		timeOrNull(t.DueDate), uuidOrNull(t.AssignedTo))
	if err != nil {
		if code, constraint := pgCode(err); code == foreignKeyViolation {
			return false, taskForeignKeyErr(constraint)
		}
		return false, fmt.Errorf("update task: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID, status domain.TaskStatus) (bool, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx, updateTaskStatusSQL, taskID.UUID, ownerID.UUID, int16(status))
	if err != nil {
		return false, fmt.Errorf("update task status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID) (bool, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx, deleteTaskSQL, taskID.UUID, ownerID.UUID)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanTaskView(row pgx.CollectableRow) (*domain.TaskView, error) {
	var t db.Task
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.CreatedAt,
		&t.DueDate, &t.AssignedTo, &t.ProjectName, &t.AssigneeEmail, &t.AssigneeName, &t.AssigneeJoined); err != nil {
		return nil, err
	}
	return dbTaskToDomain(t), nil
}

func dbTaskToDomain(t db.Task) *domain.TaskView {
	v := &domain.TaskView{
		Task: domain.Task{
			ID:          domain.NewTaskID(t.ID),
			ProjectID:   domain.NewProjectID(t.ProjectID),
			Title:       t.Title,
			Description: textPtr(t.Description),
			Status:      domain.TaskStatus(t.Status),
			Priority:    domain.Priority(t.Priority),
			CreatedAt:   t.CreatedAt,
		},
		ProjectName: t.ProjectName,
	}
	if t.DueDate.Valid {
		d := t.DueDate.Time
		v.DueDate = &d
	}
	if t.AssignedTo.Valid {
		id := domain.NewUserID(t.AssignedTo.Bytes)
		v.AssignedTo = &id
		if t.AssigneeEmail.Valid {
			v.Assignee = &domain.User{
				ID:        id,
				Email:     t.AssigneeEmail.String,
				FullName:  t.AssigneeName.String,
				CreatedAt: t.AssigneeJoined.Time,
			}
		}
	}
	return v
}

func timeOrNull(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func uuidOrNull(id *domain.UserID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: id.UUID, Valid: true}
}

// Ensure TaskRepository implements ports.TaskRepository.
var _ ports.TaskRepository = (*TaskRepository)(nil)

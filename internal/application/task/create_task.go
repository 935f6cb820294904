package task

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danispp/Task-Management/internal/application/ownership"
	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

type CreateTaskInput struct {
	UserID      domain.UserID
	ProjectID   domain.ProjectID
	Title       string
	Description *string
	Priority    *domain.Priority // nil means Medium
	DueDate     *time.Time
	AssignedTo  *domain.UserID
}

// CreateTask adds a task to one of the caller's projects. New tasks start in Todo.
type CreateTask struct {
	tx       ports.Transactor
	guard    *ownership.Guard
	users    ports.UserRepository
	tasks    ports.TaskRepository
	enqueuer ports.TaskEnqueuer
}

func NewCreateTask(tx ports.Transactor, guard *ownership.Guard, users ports.UserRepository, tasks ports.TaskRepository, enqueuer ports.TaskEnqueuer) *CreateTask {
	return &CreateTask{tx: tx, guard: guard, users: users, tasks: tasks, enqueuer: enqueuer}
}

func (uc *CreateTask) Execute(ctx context.Context, input CreateTaskInput) (*domain.TaskView, error) {
	title, err := cleanTitle(input.Title)
	if err != nil {
		return nil, err
	}
	priority := domain.PriorityMedium
	if input.Priority != nil {
		priority = *input.Priority
	}
	if !priority.Valid() {
		return nil, domerrors.NewValidationError("priority", "must be Low, Medium or High")
	}

	var view *domain.TaskView
	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := uc.guard.Project(ctx, input.UserID, input.ProjectID)
		if err != nil {
			return err
		}
		assignee, err := loadAssignee(ctx, uc.users, input.AssignedTo)
		if err != nil {
			return err
		}
		t := domain.Task{
			ID:          domain.NewTaskID(uuid.New()),
			ProjectID:   p.ID,
			Title:       title,
			Description: domain.TrimOptional(input.Description),
			Status:      domain.StatusTodo,
			Priority:    priority,
			CreatedAt:   time.Now().UTC(),
			DueDate:     utcOrNil(input.DueDate),
			AssignedTo:  input.AssignedTo,
		}
		if err := uc.tasks.Create(ctx, &t); err != nil {
			return err
		}
		view = &domain.TaskView{Task: t, ProjectName: p.Name, Assignee: assignee}
		return nil
	})
	if err != nil {
		return nil, err
	}
	notifyAssignee(ctx, uc.enqueuer, view)
	return view, nil
}

// loadAssignee returns nil for an unassigned task and errors.ErrAssigneeNotFound for a dangling id.
func loadAssignee(ctx context.Context, users ports.UserRepository, id *domain.UserID) (*domain.User, error) {
	if id == nil {
		return nil, nil
	}
	u, err := users.GetByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domerrors.ErrAssigneeNotFound
	}
	return u, nil
}

// notifyAssignee is best effort; the enqueuer logs its own failures.
func notifyAssignee(ctx context.Context, enqueuer ports.TaskEnqueuer, view *domain.TaskView) {
	if view.Assignee == nil {
		return
	}
	_ = enqueuer.EnqueueAssignmentEmail(ctx, view.Assignee.Email, view.Assignee.FullName, view.Title, view.ProjectName)
}

func cleanTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", domerrors.NewValidationError("title", "is required")
	}
	return title, nil
}

func utcOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

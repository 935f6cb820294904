package task

import (
	"context"
	"time"

	"github.com/danispp/Task-Management/internal/application/ownership"
	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

// UpdateTaskInput replaces every mutable field; nil optionals clear them.
type UpdateTaskInput struct {
	UserID      domain.UserID
	TaskID      domain.TaskID
	Title       string
	Description *string
	Status      domain.TaskStatus
	Priority    domain.Priority
	DueDate     *time.Time
	AssignedTo  *domain.UserID
}

type UpdateTask struct {
	tx       ports.Transactor
	guard    *ownership.Guard
	users    ports.UserRepository
	tasks    ports.TaskRepository
	enqueuer ports.TaskEnqueuer
}

func NewUpdateTask(tx ports.Transactor, guard *ownership.Guard, users ports.UserRepository, tasks ports.TaskRepository, enqueuer ports.TaskEnqueuer) *UpdateTask {
	return &UpdateTask{tx: tx, guard: guard, users: users, tasks: tasks, enqueuer: enqueuer}
}

func (uc *UpdateTask) Execute(ctx context.Context, input UpdateTaskInput) error {
	title, err := cleanTitle(input.Title)
	if err != nil {
		return err
	}
	if !input.Status.Valid() {
		return domerrors.NewValidationError("status", "must be Todo, InProgress or Done")
	}
	if !input.Priority.Valid() {
		return domerrors.NewValidationError("priority", "must be Low, Medium or High")
	}

	var updated *domain.TaskView
	var reassigned bool
	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := uc.guard.Task(ctx, input.UserID, input.TaskID)
		if err != nil {
			return err
		}
		assignee, err := loadAssignee(ctx, uc.users, input.AssignedTo)
		if err != nil {
			return err
		}
		reassigned = assignee != nil && (current.AssignedTo == nil || *current.AssignedTo != assignee.ID)

		t := current.Task
		t.Title = title
		t.Description = domain.TrimOptional(input.Description)
		t.Status = input.Status
		t.Priority = input.Priority
		t.DueDate = utcOrNil(input.DueDate)
		t.AssignedTo = input.AssignedTo
		ok, err := uc.tasks.Update(ctx, input.UserID, &t)
		if err != nil {
			return err
		}
		if !ok {
			return domerrors.ErrTaskNotFound
		}
		updated = &domain.TaskView{Task: t, ProjectName: current.ProjectName, Assignee: assignee}
		return nil
	})
	if err != nil {
		return err
	}
	if reassigned {
		notifyAssignee(ctx, uc.enqueuer, updated)
	}
	return nil
}

// UpdateTaskStatus moves a task to any status; there is no ordering between states.
type UpdateTaskStatus struct {
	tx    ports.Transactor
	guard *ownership.Guard
	tasks ports.TaskRepository
}

func NewUpdateTaskStatus(tx ports.Transactor, guard *ownership.Guard, tasks ports.TaskRepository) *UpdateTaskStatus {
	return &UpdateTaskStatus{tx: tx, guard: guard, tasks: tasks}
}

func (uc *UpdateTaskStatus) Execute(ctx context.Context, userID domain.UserID, taskID domain.TaskID, status domain.TaskStatus) error {
	if !status.Valid() {
		return domerrors.NewValidationError("status", "must be Todo, InProgress or Done")
	}
	return uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := uc.guard.Task(ctx, userID, taskID); err != nil {
			return err
		}
		ok, err := uc.tasks.UpdateStatus(ctx, userID, taskID, status)
		if err != nil {
			return err
		}
		if !ok {
			return domerrors.ErrTaskNotFound
		}
		return nil
	})
}

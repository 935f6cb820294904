package task

import (
	"context"

	"github.com/danispp/Task-Management/internal/application/ownership"
	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
)

// ListTasks returns every task in the caller's projects, newest first.
type ListTasks struct {
	tasks ports.TaskRepository
}

func NewListTasks(tasks ports.TaskRepository) *ListTasks {
	return &ListTasks{tasks: tasks}
}

func (uc *ListTasks) Execute(ctx context.Context, userID domain.UserID) ([]*domain.TaskView, error) {
	return uc.tasks.ListForOwner(ctx, userID)
}

// ListProjectTasks returns the tasks of one of the caller's projects.
type ListProjectTasks struct {
	tx    ports.Transactor
	guard *ownership.Guard
	tasks ports.TaskRepository
}

func NewListProjectTasks(tx ports.Transactor, guard *ownership.Guard, tasks ports.TaskRepository) *ListProjectTasks {
	return &ListProjectTasks{tx: tx, guard: guard, tasks: tasks}
}

func (uc *ListProjectTasks) Execute(ctx context.Context, userID domain.UserID, projectID domain.ProjectID) ([]*domain.TaskView, error) {
	var out []*domain.TaskView
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := uc.guard.Project(ctx, userID, projectID); err != nil {
			return err
		}
		var err error
		out, err = uc.tasks.ListByProject(ctx, userID, projectID)
		return err
	})
	return out, err
}

package project

import (
	"context"

	"github.com/danispp/Task-Management/internal/application/ownership"
	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

// ProjectDetail is a project with its owner and tasks.
type ProjectDetail struct {
	Project *domain.Project
	Owner   *domain.User
	Tasks   []*domain.TaskView
}

type GetProject struct {
	tx    ports.Transactor
	guard *ownership.Guard
	users ports.UserRepository
	tasks ports.TaskRepository
}

func NewGetProject(tx ports.Transactor, guard *ownership.Guard, users ports.UserRepository, tasks ports.TaskRepository) *GetProject {
	return &GetProject{tx: tx, guard: guard, users: users, tasks: tasks}
}

func (uc *GetProject) Execute(ctx context.Context, userID domain.UserID, projectID domain.ProjectID) (*ProjectDetail, error) {
	var detail ProjectDetail
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := uc.guard.Project(ctx, userID, projectID)
		if err != nil {
			return err
		}
		owner, err := uc.users.GetByID(ctx, p.OwnerID)
		if err != nil {
			return err
		}
		if owner == nil {
			return domerrors.ErrProjectNotFound
		}
		tasks, err := uc.tasks.ListByProject(ctx, userID, p.ID)
		if err != nil {
			return err
		}
		detail = ProjectDetail{Project: p, Owner: owner, Tasks: tasks}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

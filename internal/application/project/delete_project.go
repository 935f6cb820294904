package project

import (
	"context"

	"github.com/danispp/Task-Management/internal/application/ownership"
	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

// DeleteProject removes a project and all of its tasks.
type DeleteProject struct {
	tx       ports.Transactor
	guard    *ownership.Guard
	projects ports.ProjectRepository
}

func NewDeleteProject(tx ports.Transactor, guard *ownership.Guard, projects ports.ProjectRepository) *DeleteProject {
	return &DeleteProject{tx: tx, guard: guard, projects: projects}
}

func (uc *DeleteProject) Execute(ctx context.Context, userID domain.UserID, projectID domain.ProjectID) error {
	return uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := uc.guard.Project(ctx, userID, projectID); err != nil {
			return err
		}
		ok, err := uc.projects.Delete(ctx, userID, projectID)
		if err != nil {
			return err
		}
		if !ok {
			return domerrors.ErrProjectNotFound
		}
		return nil
	})
}

package project

import (
	"context"

	"github.com/danispp/Task-Management/internal/application/ownership"
	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

type UpdateProjectInput struct {
	UserID      domain.UserID
	ProjectID   domain.ProjectID
	Name        string
	Description *string
}

// UpdateProject replaces name and description.
type UpdateProject struct {
	tx       ports.Transactor
	guard    *ownership.Guard
	projects ports.ProjectRepository
}

func NewUpdateProject(tx ports.Transactor, guard *ownership.Guard, projects ports.ProjectRepository) *UpdateProject {
	return &UpdateProject{tx: tx, guard: guard, projects: projects}
}

func (uc *UpdateProject) Execute(ctx context.Context, input UpdateProjectInput) error {
	name, err := cleanName(input.Name)
	if err != nil {
		return err
	}
	return uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := uc.guard.Project(ctx, input.UserID, input.ProjectID)
		if err != nil {
			return err
		}
		p.Name = name
		p.Description = domain.TrimOptional(input.Description)
		ok, err := uc.projects.Update(ctx, p)
		if err != nil {
			return err
		}
		if !ok {
			return domerrors.ErrProjectNotFound
		}
		return nil
	})
}

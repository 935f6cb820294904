package project

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

// CreateProjectInput is the project name and optional description.
type CreateProjectInput struct {
	OwnerID     domain.UserID
	Name        string
	Description *string
}

// CreateProject creates a project owned by the caller.
type CreateProject struct {
	tx       ports.Transactor
	users    ports.UserRepository
	projects ports.ProjectRepository
}

// NewCreateProject builds the use case.
func NewCreateProject(tx ports.Transactor, users ports.UserRepository, projects ports.ProjectRepository) *CreateProject {
	return &CreateProject{tx: tx, users: users, projects: projects}
}

// Execute stores the project and returns it. A token can outlive its account, so the
// owner is looked up first; a deleted owner yields errors.ErrUserNotFound.
func (uc *CreateProject) Execute(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	name, err := cleanName(input.Name)
	if err != nil {
		return nil, err
	}
	project := &domain.Project{
		ID:          domain.NewProjectID(uuid.New()),
		OwnerID:     input.OwnerID,
		Name:        name,
		Description: domain.TrimOptional(input.Description),
		CreatedAt:   time.Now().UTC(),
	}
	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		owner, err := uc.users.GetByID(ctx, input.OwnerID)
		if err != nil {
			return err
		}
		if owner == nil {
			return domerrors.ErrUserNotFound
		}
		return uc.projects.Create(ctx, project)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domerrors.NewValidationError("name", "is required")
	}
	return name, nil
}

// Package ownership scopes project and task access to the authenticated user.
//
// A resource owned by someone else is reported exactly like a missing one, so callers
// cannot discover other users' ids. Lookups are never cached: every use case asks again.
package ownership

import (
	"context"
	"fmt"

	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

type Guard struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
}

func NewGuard(projects ports.ProjectRepository, tasks ports.TaskRepository) *Guard {
	return &Guard{projects: projects, tasks: tasks}
}

// Project returns the project when userID owns it, else errors.ErrProjectNotFound.
func (g *Guard) Project(ctx context.Context, userID domain.UserID, projectID domain.ProjectID) (*domain.Project, error) {
	p, err := g.projects.GetForOwner(ctx, userID, projectID)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if p == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	return p, nil
}

// Task returns the task when userID owns its project, else errors.ErrTaskNotFound.
func (g *Guard) Task(ctx context.Context, userID domain.UserID, taskID domain.TaskID) (*domain.TaskView, error) {
	t, err := g.tasks.GetForOwner(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("load task: %w", err)
	}
	if t == nil {
		return nil, domerrors.ErrTaskNotFound
	}
	return t, nil
}

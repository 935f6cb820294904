package project

import (
	"context"

	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
)

// ListProjects returns the caller's projects, newest first, with task counts.
type ListProjects struct {
	projects ports.ProjectRepository
}

func NewListProjects(projects ports.ProjectRepository) *ListProjects {
	return &ListProjects{projects: projects}
}

func (uc *ListProjects) Execute(ctx context.Context, userID domain.UserID) ([]*domain.ProjectSummary, error) {
	return uc.projects.ListForOwner(ctx, userID)
}

package memory

import (
	"context"
	"sort"

	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

type ProjectRepository struct {
	s *Store
}

func NewProjectRepository(s *Store) *ProjectRepository {
	return &ProjectRepository{s: s}
}

// Create returns errors.ErrUserNotFound when the owner no longer exists.
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[project.OwnerID]; !ok {
		return domerrors.ErrUserNotFound
	}
	r.s.projects[project.ID] = *project
	return nil
}

func (r *ProjectRepository) GetForOwner(ctx context.Context, ownerID domain.UserID, projectID domain.ProjectID) (*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.projects[projectID]
	if !ok || p.OwnerID != ownerID {
		return nil, nil
	}
	return &p, nil
}

func (r *ProjectRepository) ListForOwner(ctx context.Context, ownerID domain.UserID) ([]*domain.ProjectSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := make(map[domain.ProjectID]int)
	for _, t := range r.s.tasks {
		counts[t.ProjectID]++
	}
	out := []*domain.ProjectSummary{}
	for _, p := range r.s.projects {
		if p.OwnerID == ownerID {
			out = append(out, &domain.ProjectSummary{Project: p, TaskCount: counts[p.ID]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[project.ID]
	if !ok || p.OwnerID != project.OwnerID {
		return false, nil
	}
	p.Name = project.Name
	p.Description = project.Description
	r.s.projects[p.ID] = p
	return true, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, ownerID domain.UserID, projectID domain.ProjectID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[projectID]
	if !ok || p.OwnerID != ownerID {
		return false, nil
	}
	for id, t := range r.s.tasks {
		if t.ProjectID == projectID {
			delete(r.s.tasks, id)
		}
	}
	delete(r.s.projects, projectID)
	return true, nil
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)

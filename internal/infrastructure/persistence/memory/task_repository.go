package memory

import (
	"context"
	"sort"

	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

type TaskRepository struct {
	s *Store
}

func NewTaskRepository(s *Store) *TaskRepository {
	return &TaskRepository{s: s}
}

// Create mirrors the foreign keys of the SQL schema: the project and any assignee must exist.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[task.ProjectID]; !ok {
		return domerrors.ErrProjectNotFound
	}
	if task.AssignedTo != nil {
		if _, ok := r.s.users[*task.AssignedTo]; !ok {
			return domerrors.ErrAssigneeNotFound
		}
	}
	r.s.tasks[task.ID] = *task
	return nil
}

// owned reports whether the task's project belongs to ownerID; callers hold the lock.
func (r *TaskRepository) owned(ownerID domain.UserID, t domain.Task) bool {
	p, ok := r.s.projects[t.ProjectID]
	return ok && p.OwnerID == ownerID
}

func (r *TaskRepository) GetForOwner(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID) (*domain.TaskView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tasks[taskID]
	if !ok || !r.owned(ownerID, t) {
		return nil, nil
	}
	return r.s.view(t), nil
}

func (r *TaskRepository) ListForOwner(ctx context.Context, ownerID domain.UserID) ([]*domain.TaskView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*domain.TaskView{}
	for _, t := range r.s.tasks {
		if r.owned(ownerID, t) {
			out = append(out, r.s.view(t))
		}
	}
	sortTasksNewestFirst(out)
	return out, nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, ownerID domain.UserID, projectID domain.ProjectID) ([]*domain.TaskView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*domain.TaskView{}
	for _, t := range r.s.tasks {
		if t.ProjectID == projectID && r.owned(ownerID, t) {
			out = append(out, r.s.view(t))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *TaskRepository) Update(ctx context.Context, ownerID domain.UserID, task *domain.Task) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[task.ID]
	if !ok || !r.owned(ownerID, t) {
		return false, nil
	}
	if task.AssignedTo != nil {
		if _, ok := r.s.users[*task.AssignedTo]; !ok {
			return false, domerrors.ErrAssigneeNotFound
		}
	}
	t.Title = task.Title
	t.Description = task.Description
	t.Status = task.Status
	t.Priority = task.Priority
	t.DueDate = task.DueDate
	t.AssignedTo = task.AssignedTo
	r.s.tasks[t.ID] = t
	return true, nil
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID, status domain.TaskStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[taskID]
	if !ok || !r.owned(ownerID, t) {
		return false, nil
	}
	t.Status = status
	r.s.tasks[taskID] = t
	return true, nil
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[taskID]
	if !ok || !r.owned(ownerID, t) {
		return false, nil
	}
	delete(r.s.tasks, taskID)
	return true, nil
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

package ports

import (
	"context"

	"github.com/danispp/Task-Management/internal/domain"
)

// Transactor runs fn inside one transaction. Repositories called with the ctx passed to fn
// take part in it; returning an error rolls everything back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create stores a new user; returns errors.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) error
	// GetByEmail returns nil, nil when no user has that email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByID returns nil, nil when the user does not exist.
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
	// Delete removes the user with their projects and tasks, and clears any assignment
	// that points at them. Returns false when the user did not exist.
	Delete(ctx context.Context, userID domain.UserID) (bool, error)
}

// ProjectRepository defines owner-scoped persistence for projects. Every lookup and
// mutation filters on ownerID; a project owned by someone else behaves as missing.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	// GetForOwner returns nil, nil when there is no such project for ownerID.
	GetForOwner(ctx context.Context, ownerID domain.UserID, projectID domain.ProjectID) (*domain.Project, error)
	// ListForOwner returns the owner's projects, newest first, with task counts.
	ListForOwner(ctx context.Context, ownerID domain.UserID) ([]*domain.ProjectSummary, error)
	// Update writes name and description; returns false when nothing matched.
	Update(ctx context.Context, project *domain.Project) (bool, error)
	// Delete removes the project and its tasks; returns false when nothing matched.
	Delete(ctx context.Context, ownerID domain.UserID, projectID domain.ProjectID) (bool, error)
}

// TaskRepository defines persistence for tasks, scoped through the project owner.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	// GetForOwner returns nil, nil when the task is missing or its project is not ownerID's.
	GetForOwner(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID) (*domain.TaskView, error)
	// ListForOwner returns every task in the owner's projects, newest first.
	ListForOwner(ctx context.Context, ownerID domain.UserID) ([]*domain.TaskView, error)
	// ListByProject returns the tasks of one project, oldest first. The caller checks ownership.
	ListByProject(ctx context.Context, ownerID domain.UserID, projectID domain.ProjectID) ([]*domain.TaskView, error)
	// Update writes every mutable field; returns false when nothing matched.
	Update(ctx context.Context, ownerID domain.UserID, task *domain.Task) (bool, error)
	UpdateStatus(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID, status domain.TaskStatus) (bool, error)
	Delete(ctx context.Context, ownerID domain.UserID, taskID domain.TaskID) (bool, error)
}

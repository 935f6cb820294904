// Package memory is an in-process implementation of the repositories, used by tests and
// by STORAGE_DRIVER=memory for local runs. Each call is atomic; WithinTx does not add
// isolation across calls.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
)

type Store struct {
	mu       sync.RWMutex
	users    map[domain.UserID]domain.User
	emails   map[string]domain.UserID
	projects map[domain.ProjectID]domain.Project
	tasks    map[domain.TaskID]domain.Task
}

func NewStore() *Store {
	return &Store{
		users:    make(map[domain.UserID]domain.User),
		emails:   make(map[string]domain.UserID),
		projects: make(map[domain.ProjectID]domain.Project),
		tasks:    make(map[domain.TaskID]domain.Task),
	}
}

// Transactor runs fn directly.
type Transactor struct{}

func (Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// view builds a TaskView; callers hold at least a read lock.
func (s *Store) view(t domain.Task) *domain.TaskView {
	v := &domain.TaskView{Task: t, ProjectName: s.projects[t.ProjectID].Name}
	if t.AssignedTo != nil {
		if u, ok := s.users[*t.AssignedTo]; ok {
			v.Assignee = &u
		}
	}
	return v
}

func sortTasksNewestFirst(views []*domain.TaskView) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
}

var _ ports.Transactor = Transactor{}

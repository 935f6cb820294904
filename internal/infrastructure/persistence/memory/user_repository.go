package memory

import (
	"context"
	"sort"

	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

type UserRepository struct {
	s *Store
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{s: s}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.emails[user.Email]; taken {
		return domerrors.ErrUserExists
	}
	r.s.users[user.ID] = *user
	r.s.emails[user.Email] = user.ID
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.emails[email]
	if !ok {
		return nil, nil
	}
	u := r.s.users[id]
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		u := u
		all = append(all, &u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	if offset >= len(all) {
		return []*domain.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// Delete applies the same order as the SQL implementation: unassign, tasks, projects, user.
func (r *UserRepository) Delete(ctx context.Context, userID domain.UserID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return false, nil
	}
	for id, t := range r.s.tasks {
		if t.AssignedTo != nil && *t.AssignedTo == userID {
			t.AssignedTo = nil
			r.s.tasks[id] = t
		}
	}
	for pid, p := range r.s.projects {
		if p.OwnerID != userID {
			continue
		}
		for tid, t := range r.s.tasks {
			if t.ProjectID == pid {
				delete(r.s.tasks, tid)
			}
		}
		delete(r.s.projects, pid)
	}
	delete(r.s.emails, u.Email)
	delete(r.s.users, userID)
	return true, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)

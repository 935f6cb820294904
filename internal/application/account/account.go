// Package account holds use cases on the authenticated user's own record.
package account

import (
	"context"

	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// GetCurrentUser loads the user a token was issued to.
type GetCurrentUser struct {
	users ports.UserRepository
}

func NewGetCurrentUser(users ports.UserRepository) *GetCurrentUser {
	return &GetCurrentUser{users: users}
}

// Execute returns errors.ErrUserNotFound when the account was deleted after the token was issued.
func (uc *GetCurrentUser) Execute(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domerrors.ErrUserNotFound
	}
	return u, nil
}

// ListUsers pages through the user directory, used to pick task assignees.
type ListUsers struct {
	users ports.UserRepository
}

func NewListUsers(users ports.UserRepository) *ListUsers {
	return &ListUsers{users: users}
}

func (uc *ListUsers) Execute(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return uc.users.List(ctx, limit, offset)
}

// DeleteAccount removes the user together with their projects and those projects' tasks.
// Tasks elsewhere that were merely assigned to the user survive, unassigned.
type DeleteAccount struct {
	tx    ports.Transactor
	users ports.UserRepository
}

func NewDeleteAccount(tx ports.Transactor, users ports.UserRepository) *DeleteAccount {
	return &DeleteAccount{tx: tx, users: users}
}

func (uc *DeleteAccount) Execute(ctx context.Context, userID domain.UserID) error {
	return uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		deleted, err := uc.users.Delete(ctx, userID)
		if err != nil {
			return err
		}
		if !deleted {
			return domerrors.ErrUserNotFound
		}
		return nil
	})
}

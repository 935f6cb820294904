package account

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
	"github.com/danispp/Task-Management/internal/infrastructure/persistence/memory"
)

func TestAccount(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	current := NewGetCurrentUser(users)
	list := NewListUsers(users)
	remove := NewDeleteAccount(memory.Transactor{}, users)

	var ids []domain.UserID
	for i := 0; i < 3; i++ {
		u := &domain.User{ID: domain.NewUserID(uuid.New()), Email: fmt.Sprintf("user%d@example.com", i), FullName: "User"}
		if err := users.Create(ctx, u); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, u.ID)
	}

	u, err := current.Execute(ctx, ids[0])
	if err != nil || u.Email != "user0@example.com" {
		t.Fatalf("current = %+v, %v", u, err)
	}

	all, err := list.Execute(ctx, 0, -5)
	if err != nil || len(all) != 3 {
		t.Fatalf("list = %d, %v", len(all), err)
	}
	page, _ := list.Execute(ctx, 1, 1)
	if len(page) != 1 || page[0].Email != "user1@example.com" {
		t.Fatalf("page = %+v", page)
	}

	if err := remove.Execute(ctx, ids[0]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := current.Execute(ctx, ids[0]); !errors.Is(err, domerrors.ErrUserNotFound) {
		t.Errorf("current after delete err = %v", err)
	}
	if err := remove.Execute(ctx, ids[0]); !errors.Is(err, domerrors.ErrUserNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

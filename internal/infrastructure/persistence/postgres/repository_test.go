package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
	"github.com/danispp/Task-Management/internal/infrastructure/persistence/db"
)

// testPool connects to TASKMAN_TEST_DATABASE_URL and migrates a throwaway schema
// that is dropped when the test ends.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TASKMAN_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TASKMAN_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	schema := "taskman_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := pgx.Connect(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := admin.Exec(ctx, "CREATE SCHEMA "+schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		_ = admin.Close(context.Background())
	})

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		t.Fatal(err)
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(pool.Close)
	if err := db.Migrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}

type pgFixture struct {
	users    *UserRepository
	projects *ProjectRepository
	tasks    *TaskRepository
}

func newPGFixture(t *testing.T) *pgFixture {
	pool := testPool(t)
	return &pgFixture{
		users:    NewUserRepository(pool),
		projects: NewProjectRepository(pool),
		tasks:    NewTaskRepository(pool),
	}
}

func (f *pgFixture) user(t *testing.T, email string) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Email:        email,
		PasswordHash: "hash",
		FullName:     email,
		CreatedAt:    time.Now().UTC(),
	}
	if err := f.users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (f *pgFixture) project(t *testing.T, owner domain.UserID, name string) *domain.Project {
	t.Helper()
	p := &domain.Project{ID: domain.NewProjectID(uuid.New()), OwnerID: owner, Name: name, CreatedAt: time.Now().UTC()}
	if err := f.projects.Create(context.Background(), p); err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func (f *pgFixture) task(t *testing.T, project domain.ProjectID, title string, assignee *domain.UserID) *domain.Task {
	t.Helper()
	task := &domain.Task{
		ID:         domain.NewTaskID(uuid.New()),
		ProjectID:  project,
		Title:      title,
		Status:     domain.StatusTodo,
		Priority:   domain.PriorityMedium,
		CreatedAt:  time.Now().UTC(),
		AssignedTo: assignee,
	}
	if err := f.tasks.Create(context.Background(), task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func TestPostgres_DuplicateEmail(t *testing.T) {
	f := newPGFixture(t)
	f.user(t, "alice@example.com")
	err := f.users.Create(context.Background(), &domain.User{
		ID: domain.NewUserID(uuid.New()), Email: "alice@example.com", PasswordHash: "hash", FullName: "Again", CreatedAt: time.Now().UTC(),
	})
	if !errors.Is(err, domerrors.ErrUserExists) {
		t.Fatalf("err = %v, want ErrUserExists", err)
	}
}

func TestPostgres_ForeignKeysMapToDomainErrors(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice@example.com")
	p := f.project(t, alice.ID, "Launch")
	ghost := domain.NewUserID(uuid.New())

	err := f.projects.Create(ctx, &domain.Project{ID: domain.NewProjectID(uuid.New()), OwnerID: ghost, Name: "Orphan", CreatedAt: time.Now().UTC()})
	if !errors.Is(err, domerrors.ErrUserNotFound) {
		t.Errorf("project with missing owner: err = %v", err)
	}

	tests := []struct {
		name    string
		task    domain.Task
		wantErr error
	}{
		{name: "missing project", task: domain.Task{ProjectID: domain.NewProjectID(uuid.New())}, wantErr: domerrors.ErrProjectNotFound},
		{name: "missing assignee", task: domain.Task{ProjectID: p.ID, AssignedTo: &ghost}, wantErr: domerrors.ErrAssigneeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := tt.task
			task.ID = domain.NewTaskID(uuid.New())
			task.Title = "Draft brief"
			task.CreatedAt = time.Now().UTC()
			if err := f.tasks.Create(ctx, &task); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	existing := f.task(t, p.ID, "Draft brief", nil)
	existing.AssignedTo = &ghost
	if _, err := f.tasks.Update(ctx, alice.ID, existing); !errors.Is(err, domerrors.ErrAssigneeNotFound) {
		t.Errorf("update with missing assignee: err = %v", err)
	}
}

func TestPostgres_OwnerScopedQueries(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice@example.com")
	bob := f.user(t, "bob@example.com")
	p := f.project(t, alice.ID, "Launch")
	task := f.task(t, p.ID, "Draft brief", &bob.ID)

	if got, err := f.projects.GetForOwner(ctx, bob.ID, p.ID); err != nil || got != nil {
		t.Errorf("bob GetForOwner = %v, %v; want nil", got, err)
	}
	if got, err := f.tasks.GetForOwner(ctx, bob.ID, task.ID); err != nil || got != nil {
		t.Errorf("assignee GetForOwner = %v, %v; want nil", got, err)
	}
	if list, _ := f.projects.ListForOwner(ctx, bob.ID); len(list) != 0 {
		t.Errorf("bob sees %d projects", len(list))
	}

	renamed := *p
	renamed.OwnerID = bob.ID
	renamed.Name = "Hijacked"
	if ok, err := f.projects.Update(ctx, &renamed); err != nil || ok {
		t.Errorf("bob Update = %v, %v; want false", ok, err)
	}
	if ok, err := f.projects.Delete(ctx, bob.ID, p.ID); err != nil || ok {
		t.Errorf("bob Delete project = %v, %v; want false", ok, err)
	}
	if ok, err := f.tasks.UpdateStatus(ctx, bob.ID, task.ID, domain.StatusDone); err != nil || ok {
		t.Errorf("bob UpdateStatus = %v, %v; want false", ok, err)
	}
	if ok, err := f.tasks.Delete(ctx, bob.ID, task.ID); err != nil || ok {
		t.Errorf("bob Delete task = %v, %v; want false", ok, err)
	}

	list, err := f.projects.ListForOwner(ctx, alice.ID)
	if err != nil || len(list) != 1 || list[0].Name != "Launch" || list[0].TaskCount != 1 {
		t.Fatalf("alice projects = %+v, %v", list, err)
	}
	view, err := f.tasks.GetForOwner(ctx, alice.ID, task.ID)
	if err != nil || view == nil {
		t.Fatalf("alice GetForOwner = %v, %v", view, err)
	}
	if view.ProjectName != "Launch" || view.Assignee == nil || view.Assignee.ID != bob.ID {
		t.Errorf("view = %+v", view)
	}

	if ok, err := f.tasks.UpdateStatus(ctx, alice.ID, task.ID, domain.StatusDone); err != nil || !ok {
		t.Errorf("alice UpdateStatus = %v, %v", ok, err)
	}
	if ok, err := f.projects.Delete(ctx, alice.ID, p.ID); err != nil || !ok {
		t.Fatalf("alice Delete project = %v, %v", ok, err)
	}
	if got, _ := f.tasks.GetForOwner(ctx, alice.ID, task.ID); got != nil {
		t.Error("tasks must go with their project")
	}
}

func TestPostgres_DeleteUserCascades(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice@example.com")
	bob := f.user(t, "bob@example.com")
	bobProject := f.project(t, bob.ID, "Bob's")
	bobTask := f.task(t, bobProject.ID, "Bob's task", nil)
	aliceProject := f.project(t, alice.ID, "Launch")
	assigned := f.task(t, aliceProject.ID, "Draft brief", &bob.ID)

	ok, err := f.users.Delete(ctx, bob.ID)
	if err != nil || !ok {
		t.Fatalf("Delete = %v, %v", ok, err)
	}
	if u, _ := f.users.GetByID(ctx, bob.ID); u != nil {
		t.Error("user still present")
	}
	if got, _ := f.projects.GetForOwner(ctx, bob.ID, bobProject.ID); got != nil {
		t.Error("owned project survived")
	}
	if got, _ := f.tasks.GetForOwner(ctx, bob.ID, bobTask.ID); got != nil {
		t.Error("owned task survived")
	}
	view, err := f.tasks.GetForOwner(ctx, alice.ID, assigned.ID)
	if err != nil || view == nil {
		t.Fatalf("assigned task = %v, %v", view, err)
	}
	if view.AssignedTo != nil || view.Assignee != nil {
		t.Errorf("task still assigned: %+v", view)
	}
	if ok, err := f.users.Delete(ctx, bob.ID); err != nil || ok {
		t.Errorf("second Delete = %v, %v; want false", ok, err)
	}
}

func TestPostgres_ListUsersPages(t *testing.T) {
	f := newPGFixture(t)
	for i := 0; i < 3; i++ {
		f.user(t, fmt.Sprintf("user%d@example.com", i))
	}
	page, err := f.users.List(context.Background(), 2, 0)
	if err != nil || len(page) != 2 {
		t.Fatalf("page 1 = %d, %v", len(page), err)
	}
	page, err = f.users.List(context.Background(), 2, 2)
	if err != nil || len(page) != 1 {
		t.Fatalf("page 2 = %d, %v", len(page), err)
	}
}

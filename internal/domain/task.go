package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskID is a value object for task identity.
type TaskID struct{ uuid.UUID }

// NewTaskID creates a new TaskID from uuid.
func NewTaskID(id uuid.UUID) TaskID { return TaskID{UUID: id} }

// ParseTaskID parses the canonical string form.
func ParseTaskID(s string) (TaskID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TaskID{}, err
	}
	return TaskID{UUID: id}, nil
}

// String returns the canonical string form.
func (t TaskID) String() string { return t.UUID.String() }

// TaskStatus is the workflow state of a task. Any state may move to any other.
type TaskStatus int

const (
	StatusTodo TaskStatus = iota
	StatusInProgress
	StatusDone
)

var statusNames = [...]string{"Todo", "InProgress", "Done"}

func (s TaskStatus) Valid() bool { return s >= StatusTodo && s <= StatusDone }

func (s TaskStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("TaskStatus(%d)", int(s))
	}
	return statusNames[s]
}

// ParseTaskStatus accepts a status name, case-insensitively.
func ParseTaskStatus(s string) (TaskStatus, error) {
	i, err := parseEnum(s, statusNames[:])
	if err != nil {
		return 0, fmt.Errorf("unknown task status %q", s)
	}
	return TaskStatus(i), nil
}

func (s TaskStatus) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid task status %d", int(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the name ("Done") or the ordinal (2) used by older clients.
func (s *TaskStatus) UnmarshalJSON(b []byte) error {
	i, err := unmarshalEnum(b, statusNames[:])
	if err != nil {
		return fmt.Errorf("task status: %w", err)
	}
	*s = TaskStatus(i)
	return nil
}

// Priority of a task.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

var priorityNames = [...]string{"Low", "Medium", "High"}

func (p Priority) Valid() bool { return p >= PriorityLow && p <= PriorityHigh }

func (p Priority) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Priority(%d)", int(p))
	}
	return priorityNames[p]
}

// ParsePriority accepts a priority name, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	i, err := parseEnum(s, priorityNames[:])
	if err != nil {
		return 0, fmt.Errorf("unknown priority %q", s)
	}
	return Priority(i), nil
}

func (p Priority) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid priority %d", int(p))
	}
	return json.Marshal(p.String())
}

func (p *Priority) UnmarshalJSON(b []byte) error {
	i, err := unmarshalEnum(b, priorityNames[:])
	if err != nil {
		return fmt.Errorf("priority: %w", err)
	}
	*p = Priority(i)
	return nil
}

func parseEnum(s string, names []string) (int, error) {
	for i, n := range names {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown value %q", s)
}

func unmarshalEnum(b []byte, names []string) (int, error) {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		return parseEnum(name, names)
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return 0, fmt.Errorf("expected name or number, got %s", string(b))
	}
	if n < 0 || n >= len(names) {
		return 0, fmt.Errorf("value %d out of range", n)
	}
	return n, nil
}

// Task belongs to a project; its effective owner is the project's owner.
// AssignedTo is informational and grants no access.
type Task struct {
	ID          TaskID
	ProjectID   ProjectID
	Title       string
	Description *string
	Status      TaskStatus
	Priority    Priority
	CreatedAt   time.Time
	DueDate     *time.Time
	AssignedTo  *UserID
}

// TaskView is a task joined with its project name and assignee, as returned to clients.
type TaskView struct {
	Task
	ProjectName string
	Assignee    *User
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectID is a value object for project identity.
type ProjectID struct{ uuid.UUID }

// NewProjectID creates a new ProjectID from uuid.
func NewProjectID(id uuid.UUID) ProjectID { return ProjectID{UUID: id} }

// ParseProjectID parses the canonical string form.
func ParseProjectID(s string) (ProjectID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ProjectID{}, err
	}
	return ProjectID{UUID: id}, nil
}

// String returns the canonical string form.
func (p ProjectID) String() string { return p.UUID.String() }

// Project is owned by exactly one user.
type Project struct {
	ID          ProjectID
	OwnerID     UserID
	Name        string
	Description *string
	CreatedAt   time.Time
}

// ProjectSummary is a project with its task count, as listed on the dashboard.
type ProjectSummary struct {
	Project
	TaskCount int
}

package handlers

import (
	"time"

	"github.com/danispp/Task-Management/internal/application/project"
	"github.com/danispp/Task-Management/internal/domain"
)

// UserResponse is the public shape of a user; the password hash never leaves the server.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UserID      string    `json:"userId"`
	TaskCount   int       `json:"taskCount"`
}

// ProjectDetailResponse embeds the owner and the project's tasks.
type ProjectDetailResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	CreatedAt   time.Time      `json:"createdAt"`
	User        UserResponse   `json:"user"`
	Tasks       []TaskResponse `json:"tasks"`
}

type TaskResponse struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      *string           `json:"description"`
	Status           domain.TaskStatus `json:"status"`
	Priority         domain.Priority   `json:"priority"`
	CreatedAt        time.Time         `json:"createdAt"`
	DueDate          *time.Time        `json:"dueDate"`
	ProjectID        string            `json:"projectId"`
	ProjectName      string            `json:"projectName"`
	AssignedToUserID *string           `json:"assignedToUserId"`
	AssignedToUser   *UserResponse     `json:"assignedToUser"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}

func toProjectResponse(p *domain.Project, taskCount int) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UserID:      p.OwnerID.String(),
		TaskCount:   taskCount,
	}
}

func toProjectDetailResponse(d *project.ProjectDetail) ProjectDetailResponse {
	return ProjectDetailResponse{
		ID:          d.Project.ID.String(),
		Name:        d.Project.Name,
		Description: d.Project.Description,
		CreatedAt:   d.Project.CreatedAt,
		User:        toUserResponse(d.Owner),
		Tasks:       toTaskResponses(d.Tasks),
	}
}

func toTaskResponse(v *domain.TaskView) TaskResponse {
	resp := TaskResponse{
		ID:          v.ID.String(),
		Title:       v.Title,
		Description: v.Description,
		Status:      v.Status,
		Priority:    v.Priority,
		CreatedAt:   v.CreatedAt,
		DueDate:     v.DueDate,
		ProjectID:   v.ProjectID.String(),
		ProjectName: v.ProjectName,
	}
	if v.AssignedTo != nil {
		id := v.AssignedTo.String()
		resp.AssignedToUserID = &id
	}
	if v.Assignee != nil {
		u := toUserResponse(v.Assignee)
		resp.AssignedToUser = &u
	}
	return resp
}

func toTaskResponses(views []*domain.TaskView) []TaskResponse {
	out := make([]TaskResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toTaskResponse(v))
	}
	return out
}

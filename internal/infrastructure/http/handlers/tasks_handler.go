package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/danispp/Task-Management/internal/application/task"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
	"github.com/danispp/Task-Management/internal/infrastructure/http/middleware"
)

// TasksHandler serves /api/tasks. A task is reachable only through a project the caller owns.
type TasksHandler struct {
	create       *task.CreateTask
	get          *task.GetTask
	list         *task.ListTasks
	listProject  *task.ListProjectTasks
	update       *task.UpdateTask
	updateStatus *task.UpdateTaskStatus
	remove       *task.DeleteTask
	validate     *validator.Validate
	log          zerolog.Logger
}

// TaskUseCases bundles the task use cases for NewTasksHandler.
type TaskUseCases struct {
	Create        *task.CreateTask
	Get           *task.GetTask
	List          *task.ListTasks
	ListByProject *task.ListProjectTasks
	Update        *task.UpdateTask
	UpdateStatus  *task.UpdateTaskStatus
	Delete        *task.DeleteTask
}

func NewTasksHandler(uc TaskUseCases, log zerolog.Logger) *TasksHandler {
	return &TasksHandler{
		create:       uc.Create,
		get:          uc.Get,
		list:         uc.List,
		listProject:  uc.ListByProject,
		update:       uc.Update,
		updateStatus: uc.UpdateStatus,
		remove:       uc.Delete,
		validate:     newValidator(),
		log:          log,
	}
}

type createTaskRequest struct {
	Title            string          `json:"title" validate:"required,max=200"`
	Description      *string         `json:"description"`
	ProjectID        string          `json:"projectId" validate:"required"`
	Priority         json.RawMessage `json:"priority"`
	DueDate          *string         `json:"dueDate"`
	AssignedToUserID *string         `json:"assignedToUserId"`
}

type updateTaskRequest struct {
	Title            string          `json:"title" validate:"required,max=200"`
	Description      *string         `json:"description"`
	Status           json.RawMessage `json:"status"`
	Priority         json.RawMessage `json:"priority"`
	DueDate          *string         `json:"dueDate"`
	AssignedToUserID *string         `json:"assignedToUserId"`
}

func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	id := middleware.AuthFromContext(r.Context())
	if id == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	views, err := h.list.Execute(r.Context(), id.UserID)
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponses(views))
}

func (h *TasksHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	id := middleware.AuthFromContext(r.Context())
	if id == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	projectID, ok := projectIDParam(w, r, "projectId")
	if !ok {
		return
	}
	views, err := h.listProject.Execute(r.Context(), id.UserID, projectID)
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponses(views))
}

func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := middleware.AuthFromContext(r.Context())
	if id == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}
	view, err := h.get.Execute(r.Context(), id.UserID, taskID)
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(view))
}

func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := middleware.AuthFromContext(r.Context())
	if id == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	var body createTaskRequest
	if err := decodeBody(r, &body); err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	verr := validateStruct(h.validate, &body)
	var projectID domain.ProjectID
	if body.ProjectID != "" {
		var err error
		if projectID, err = domain.ParseProjectID(body.ProjectID); err != nil {
			verr = mergeFields(verr, "projectId", "must be a valid id")
		}
	}
	var priority *domain.Priority
	if present(body.Priority) {
		var p domain.Priority
		if err := json.Unmarshal(body.Priority, &p); err != nil {
			verr = mergeFields(verr, "priority", "must be one of Low, Medium, High")
		} else {
			priority = &p
		}
	}
	dueDate, err := parseDueDate(body.DueDate)
	if err != nil {
		verr = mergeFields(verr, "dueDate", err.Error())
	}
	assignee, aerr := parseAssignee(body.AssignedToUserID)
	if aerr != nil {
		verr = mergeFields(verr, "assignedToUserId", "must be a valid id")
	}
	if verr != nil {
		writeValidationErr(w, verr)
		return
	}
	view, err := h.create.Execute(r.Context(), task.CreateTaskInput{
		UserID:      id.UserID,
		ProjectID:   projectID,
		Title:       body.Title,
		Description: body.Description,
		Priority:    priority,
		DueDate:     dueDate,
		AssignedTo:  assignee,
	})
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	w.Header().Set("Location", "/api/tasks/"+view.ID.String())
	writeJSON(w, http.StatusCreated, toTaskResponse(view))
}

// Update replaces every mutable field; status and priority are required.
func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := middleware.AuthFromContext(r.Context())
	if id == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}
	var body updateTaskRequest
	if err := decodeBody(r, &body); err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	verr := validateStruct(h.validate, &body)
	var status domain.TaskStatus
	switch {
	case !present(body.Status):
		verr = mergeFields(verr, "status", "is required")
	case json.Unmarshal(body.Status, &status) != nil:
		verr = mergeFields(verr, "status", "must be one of Todo, InProgress, Done")
	}
	var priority domain.Priority
	switch {
	case !present(body.Priority):
		verr = mergeFields(verr, "priority", "is required")
	case json.Unmarshal(body.Priority, &priority) != nil:
		verr = mergeFields(verr, "priority", "must be one of Low, Medium, High")
	}
	dueDate, err := parseDueDate(body.DueDate)
	if err != nil {
		verr = mergeFields(verr, "dueDate", err.Error())
	}
	assignee, aerr := parseAssignee(body.AssignedToUserID)
	if aerr != nil {
		verr = mergeFields(verr, "assignedToUserId", "must be a valid id")
	}
	if verr != nil {
		writeValidationErr(w, verr)
		return
	}
	err = h.update.Execute(r.Context(), task.UpdateTaskInput{
		UserID:      id.UserID,
		TaskID:      taskID,
		Title:       body.Title,
		Description: body.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		AssignedTo:  assignee,
	})
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatus accepts either a bare status ("Done" or 2) or {"status": ...}.
func (h *TasksHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := middleware.AuthFromContext(r.Context())
	if id == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}
	var raw json.RawMessage
	if err := decodeBody(r, &raw); err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var wrapped struct {
			Status json.RawMessage `json:"status"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			writeValidationErr(w, domerrors.NewValidationError("body", "malformed JSON"))
			return
		}
		raw = wrapped.Status
	}
	if !present(raw) {
		writeValidationErr(w, domerrors.NewValidationError("status", "is required"))
		return
	}
	var status domain.TaskStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		writeValidationErr(w, domerrors.NewValidationError("status", "must be one of Todo, InProgress, Done"))
		return
	}
	if err := h.updateStatus.Execute(r.Context(), id.UserID, taskID, status); err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := middleware.AuthFromContext(r.Context())
	if id == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}
	if err := h.remove.Execute(r.Context(), id.UserID, taskID); err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func taskIDParam(w http.ResponseWriter, r *http.Request) (domain.TaskID, bool) {
	taskID, err := domain.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		writeValidationErr(w, domerrors.NewValidationError("id", "must be a valid id"))
		return domain.TaskID{}, false
	}
	return taskID, true
}

// parseAssignee treats a missing or blank id as "unassigned".
func parseAssignee(s *string) (*domain.UserID, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	uid, err := domain.ParseUserID(strings.TrimSpace(*s))
	if err != nil {
		return nil, err
	}
	return &uid, nil
}

// present reports whether a raw JSON field was sent with a non-null value.
func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/danispp/Task-Management/internal/application/project"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
	"github.com/danispp/Task-Management/internal/infrastructure/http/middleware"
)

// ProjectsHandler serves /api/projects. Every operation is scoped to the caller.
type ProjectsHandler struct {
	create   *project.CreateProject
	get      *project.GetProject
	list     *project.ListProjects
	update   *project.UpdateProject
	remove   *project.DeleteProject
	validate *validator.Validate
	log      zerolog.Logger
}

// ProjectUseCases bundles the project use cases for NewProjectsHandler.
type ProjectUseCases struct {
	Create *project.CreateProject
	Get    *project.GetProject
	List   *project.ListProjects
	Update *project.UpdateProject
	Delete *project.DeleteProject
}

func NewProjectsHandler(uc ProjectUseCases, log zerolog.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		create:   uc.Create,
		get:      uc.Get,
		list:     uc.List,
		update:   uc.Update,
		remove:   uc.Delete,
		validate: newValidator(),
		log:      log,
	}
}

type projectRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description"`
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	id := middleware.AuthFromContext(r.Context())
	if id == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	summaries, err := h.list.Execute(r.Context(), id.UserID)
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	items := make([]ProjectResponse, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, toProjectResponse(&s.Project, s.TaskCount))
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := middleware.AuthFromContext(r.Context())
	if id == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	projectID, ok := projectIDParam(w, r, "id")
	if !ok {
		return
	}
	detail, err := h.get.Execute(r.Context(), id.UserID, projectID)
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectDetailResponse(detail))
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := middleware.AuthFromContext(r.Context())
	if id == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	var body projectRequest
	if err := decodeBody(r, &body); err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	if verr := validateStruct(h.validate, &body); verr != nil {
		writeValidationErr(w, verr)
		return
	}
	p, err := h.create.Execute(r.Context(), project.CreateProjectInput{
		OwnerID:     id.UserID,
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	w.Header().Set("Location", "/api/projects/"+p.ID.String())
	writeJSON(w, http.StatusCreated, toProjectResponse(p, 0))
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := middleware.AuthFromContext(r.Context())
	if id == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	projectID, ok := projectIDParam(w, r, "id")
	if !ok {
		return
	}
	var body projectRequest
	if err := decodeBody(r, &body); err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	if verr := validateStruct(h.validate, &body); verr != nil {
		writeValidationErr(w, verr)
		return
	}
	err := h.update.Execute(r.Context(), project.UpdateProjectInput{
		UserID:      id.UserID,
		ProjectID:   projectID,
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := middleware.AuthFromContext(r.Context())
	if id == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	projectID, ok := projectIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.remove.Execute(r.Context(), id.UserID, projectID); err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// projectIDParam parses a project id from the route; on failure it writes a 400 and returns false.
func projectIDParam(w http.ResponseWriter, r *http.Request, name string) (domain.ProjectID, bool) {
	projectID, err := domain.ParseProjectID(chi.URLParam(r, name))
	if err != nil {
		writeValidationErr(w, domerrors.NewValidationError(name, "must be a valid id"))
		return domain.ProjectID{}, false
	}
	return projectID, true
}

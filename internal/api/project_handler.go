package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasktrack-api/internal/api/shared"
	"github.com/phrazzld/tasktrack-api/internal/platform/logger"
	"github.com/phrazzld/tasktrack-api/internal/service"
)

// ProjectHandler handles /projects requests. Every operation is scoped to
// the authenticated caller.
type ProjectHandler struct {
	projectService service.ProjectService
	logger         *slog.Logger
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService service.ProjectService, logger *slog.Logger) *ProjectHandler {
	if projectService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("projectService cannot be nil for ProjectHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ProjectHandler{
		projectService: projectService,
		logger:         logger.With(slog.String("component", "project_handler")),
	}
}

// ListProjects handles GET /projects?search=
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)

	projects, err := h.projectService.List(r.Context(), userID, r.URL.Query().Get("search"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list projects")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, projects)
}

// GetProject handles GET /projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, projectID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	project, err := h.projectService.Get(r.Context(), projectID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get project")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, project)
}

// CreateProject handles POST /projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID := getUserIDFromContext(r)

	var req ProjectRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	project, err := h.projectService.Create(r.Context(), service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	}, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create project")
		return
	}

	log.Debug("project created",
		slog.Int64("project_id", project.ID),
		slog.Int64("user_id", userID))
	shared.RespondCreated(w, r, fmt.Sprintf("/api/projects/%d", project.ID), project)
}

// UpdateProject handles PUT /projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, projectID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	var req ProjectRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	project, err := h.projectService.Update(r.Context(), projectID, service.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	}, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update project")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, project)
}

// DeleteProject handles DELETE /projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, projectID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.projectService.Delete(r.Context(), projectID, userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete project")
		return
	}

	log.Debug("project deleted",
		slog.Int64("project_id", projectID),
		slog.Int64("user_id", userID))
	shared.RespondNoContent(w)
}

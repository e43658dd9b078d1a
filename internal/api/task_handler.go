package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasktrack-api/internal/api/shared"
	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/platform/logger"
	"github.com/phrazzld/tasktrack-api/internal/service"
)

// TaskHandler handles /tasks requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// parseTaskFilter reads the optional projectId and status query parameters.
func parseTaskFilter(r *http.Request) (domain.TaskFilter, error) {
	var filter domain.TaskFilter
	query := r.URL.Query()

	if raw := query.Get("projectId"); raw != "" {
		projectID, err := parseID("projectId", raw)
		if err != nil {
			return filter, err
		}
		filter.ProjectID = &projectID
	}

	if raw := query.Get("status"); raw != "" {
		status, err := domain.ParseTaskStatus(raw)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ListTasks handles GET /tasks?projectId=&status=
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)

	filter, err := parseTaskFilter(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.taskService.List(r.Context(), userID, filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetTask handles GET /tasks/{id}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), taskID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// CreateTask handles POST /tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID := getUserIDFromContext(r)

	var req TaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	task, err := h.taskService.Create(r.Context(), req.toCreateInput(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Debug("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("project_id", task.ProjectID))
	shared.RespondCreated(w, r, fmt.Sprintf("/api/tasks/%d", task.ID), task)
}

// UpdateTask handles PUT /tasks/{id}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	var req TaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	task, err := h.taskService.Update(r.Context(), taskID, req.toUpdateInput(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// UpdateTaskStatus handles PATCH /tasks/{id}/status
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	var req TaskStatusRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	task, err := h.taskService.UpdateStatus(r.Context(), taskID, req.Status, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task status")
		return
	}

	log.Debug("task status changed",
		slog.Int64("task_id", taskID),
		slog.String("status", string(task.Status)))
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// AssignTask handles PATCH /tasks/{id}/assign
func (h *TaskHandler) AssignTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	var req AssignTaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	task, err := h.taskService.Assign(r.Context(), taskID, req.AssignedUserID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to assign task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), taskID, userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	shared.RespondNoContent(w)
}

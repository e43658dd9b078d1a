package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasktrack-api/internal/api/shared"
	"github.com/phrazzld/tasktrack-api/internal/platform/logger"
	"github.com/phrazzld/tasktrack-api/internal/service"
)

// CommentHandler handles /comments requests. Comments are visible to the
// owner of the task's project and mutable only by their author.
type CommentHandler struct {
	commentService service.CommentService
	logger         *slog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService service.CommentService, logger *slog.Logger) *CommentHandler {
	if commentService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("commentService cannot be nil for CommentHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CommentHandler{
		commentService: commentService,
		logger:         logger.With(slog.String("component", "comment_handler")),
	}
}

// ListTaskComments handles GET /comments/task/{taskId}. An unknown or
// foreign task yields an empty list.
func (h *CommentHandler) ListTaskComments(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathID(w, r, "taskId", log)
	if !ok {
		return
	}

	comments, err := h.commentService.ListByTask(r.Context(), taskID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list comments")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, comments)
}

// GetComment handles GET /comments/{id}
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, commentID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	comment, err := h.commentService.Get(r.Context(), commentID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get comment")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, comment)
}

// CreateComment handles POST /comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID := getUserIDFromContext(r)

	var req CreateCommentRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	comment, err := h.commentService.Create(r.Context(), service.CreateCommentInput{
		Text:   req.Text,
		TaskID: req.TaskID,
	}, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create comment")
		return
	}

	log.Debug("comment created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("task_id", comment.TaskID))
	shared.RespondCreated(w, r, fmt.Sprintf("/api/comments/%d", comment.ID), comment)
}

// UpdateComment handles PUT /comments/{id}
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, commentID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	comment, err := h.commentService.Update(r.Context(), commentID, service.UpdateCommentInput{
		Text: req.Text,
	}, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update comment")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, comment)
}

// DeleteComment handles DELETE /comments/{id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, commentID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.commentService.Delete(r.Context(), commentID, userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete comment")
		return
	}

	shared.RespondNoContent(w)
}

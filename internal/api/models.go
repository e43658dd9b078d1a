package api

import (
	"time"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/service"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// AccessToken is the JWT used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT used to obtain a new token pair
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is the RFC 3339 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`

	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ProjectRequest is the body of project create and update.
type ProjectRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// TaskRequest is the body of task create and update. A missing status means
// ToDo; status accepts a name or its ordinal.
type TaskRequest struct {
	Title          string            `json:"title"            validate:"required,max=200"`
	Description    string            `json:"description"      validate:"max=1000"`
	Status         domain.TaskStatus `json:"status"`
	DueDate        time.Time         `json:"due_date"`
	ProjectID      int64             `json:"project_id"       validate:"required,gt=0"`
	AssignedUserID *int64            `json:"assigned_user_id" validate:"omitempty,gt=0"`
}

// TaskStatusRequest is the body of PATCH /tasks/{id}/status.
type TaskStatusRequest struct {
	Status domain.TaskStatus `json:"status" validate:"required"`
}

// AssignTaskRequest is the body of PATCH /tasks/{id}/assign. A null or
// missing assigned_user_id unassigns the task.
type AssignTaskRequest struct {
	AssignedUserID *int64 `json:"assigned_user_id" validate:"omitempty,gt=0"`
}

// CreateCommentRequest is the body of POST /comments.
type CreateCommentRequest struct {
	Text   string `json:"text"    validate:"required,max=1000"`
	TaskID int64  `json:"task_id" validate:"required,gt=0"`
}

// UpdateCommentRequest is the body of PUT /comments/{id}.
type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}

func (r TaskRequest) toCreateInput() service.CreateTaskInput {
	return service.CreateTaskInput{
		Title:          r.Title,
		Description:    r.Description,
		Status:         r.Status,
		DueDate:        r.DueDate,
		ProjectID:      r.ProjectID,
		AssignedUserID: r.AssignedUserID,
	}
}

func (r TaskRequest) toUpdateInput() service.UpdateTaskInput {
	return service.UpdateTaskInput{
		Title:          r.Title,
		Description:    r.Description,
		Status:         r.Status,
		DueDate:        r.DueDate,
		ProjectID:      r.ProjectID,
		AssignedUserID: r.AssignedUserID,
	}
}

package service

import (
	"time"

	"github.com/phrazzld/tasktrack-api/internal/domain"
)

// ProjectDTO is the transfer shape of a project.
type ProjectDTO struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	OwnerID       int64     `json:"owner_id"`
	OwnerUsername string    `json:"owner_username"`
	TaskCount     int       `json:"task_count"`
}

// TaskDTO is the transfer shape of a task. AssignedUserID and
// AssignedUsername are null when the task is unassigned.
type TaskDTO struct {
	ID               int64             `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Status           domain.TaskStatus `json:"status"`
	DueDate          time.Time         `json:"due_date"`
	ProjectID        int64             `json:"project_id"`
	ProjectName      string            `json:"project_name"`
	AssignedUserID   *int64            `json:"assigned_user_id"`
	AssignedUsername *string           `json:"assigned_username"`
	CommentCount     int               `json:"comment_count"`
}

// CommentDTO is the transfer shape of a comment.
type CommentDTO struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	TaskID    int64     `json:"task_id"`
	TaskTitle string    `json:"task_title"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
}

// CreateProjectInput carries the caller-supplied fields of a new project.
type CreateProjectInput struct {
	Name        string
	Description string
}

// UpdateProjectInput carries the mutable fields of a project.
type UpdateProjectInput struct {
	Name        string
	Description string
}

// CreateTaskInput carries the caller-supplied fields of a new task. An empty
// Status means ToDo.
type CreateTaskInput struct {
	Title          string
	Description    string
	Status         domain.TaskStatus
	DueDate        time.Time
	ProjectID      int64
	AssignedUserID *int64
}

// UpdateTaskInput replaces every mutable field of a task.
type UpdateTaskInput struct {
	Title          string
	Description    string
	Status         domain.TaskStatus
	DueDate        time.Time
	ProjectID      int64
	AssignedUserID *int64
}

// CreateCommentInput carries the caller-supplied fields of a new comment.
type CreateCommentInput struct {
	Text   string
	TaskID int64
}

// UpdateCommentInput carries the only mutable field of a comment.
type UpdateCommentInput struct {
	Text string
}

// ToProjectDTO maps a project with its read-time projections.
func ToProjectDTO(p domain.ProjectDetails) ProjectDTO {
	return ProjectDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		CreatedAt:     p.CreatedAt,
		OwnerID:       p.OwnerID,
		OwnerUsername: p.OwnerUsername,
		TaskCount:     p.TaskCount,
	}
}

// ToTaskDTO maps a task with its read-time projections.
func ToTaskDTO(t domain.TaskDetails) TaskDTO {
	return TaskDTO{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		Status:           t.Status,
		DueDate:          t.DueDate,
		ProjectID:        t.ProjectID,
		ProjectName:      t.ProjectName,
		AssignedUserID:   t.AssignedUserID,
		AssignedUsername: t.AssignedUsername,
		CommentCount:     t.CommentCount,
	}
}

// ToCommentDTO maps a comment with its task title and author username.
func ToCommentDTO(c domain.CommentDetails) CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		TaskID:    c.TaskID,
		TaskTitle: c.TaskTitle,
		UserID:    c.AuthorID,
		Username:  c.AuthorUsername,
	}
}

func toProjectDTOs(projects []domain.ProjectDetails) []ProjectDTO {
	out := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		out = append(out, ToProjectDTO(p))
	}
	return out
}

func toTaskDTOs(tasks []domain.TaskDetails) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ToTaskDTO(t))
	}
	return out
}

func toCommentDTOs(comments []domain.CommentDetails) []CommentDTO {
	out := make([]CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, ToCommentDTO(c))
	}
	return out
}

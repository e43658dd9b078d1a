package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Task field limits.
const (
	MaxTaskTitleLength       = 200
	MaxTaskDescriptionLength = 1000
)

// TaskStatus is the workflow state of a task. Any status may move to any
// other status.
type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "ToDo"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusDone       TaskStatus = "Done"
)

// taskStatusOrdinals keeps the numeric form older clients send (0, 1, 2).
var taskStatusOrdinals = []TaskStatus{TaskStatusToDo, TaskStatusInProgress, TaskStatusDone}

// ParseTaskStatus accepts a status name (case-insensitive) or its ordinal.
func ParseTaskStatus(s string) (TaskStatus, error) {
	s = strings.TrimSpace(s)
	for _, status := range taskStatusOrdinals {
		if strings.EqualFold(s, string(status)) {
			return status, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < len(taskStatusOrdinals) {
		return taskStatusOrdinals[n], nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, s)
}

// IsValid reports whether s is a known status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	parsed, err := ParseTaskStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Task belongs to a project and may be assigned to a user. It has no owner
// of its own; access follows the project's owner.
type Task struct {
	ID             int64
	Title          string
	Description    string
	Status         TaskStatus
	DueDate        time.Time
	ProjectID      int64
	AssignedUserID *int64
}

// TaskDetails is a task together with the values projected at read time.
type TaskDetails struct {
	Task
	ProjectName      string
	AssignedUsername *string
	CommentCount     int
}

// TaskFilter narrows a task listing. Nil fields do not filter.
type TaskFilter struct {
	ProjectID *int64
	Status    *TaskStatus
}

// NewTask creates a task with trimmed text fields. An empty status
// defaults to ToDo.
func NewTask(
	title, description string,
	status TaskStatus,
	dueDate time.Time,
	projectID int64,
	assignedUserID *int64,
) (*Task, error) {
	if status == "" {
		status = TaskStatusToDo
	}

	t := &Task{
		Title:          strings.TrimSpace(title),
		Description:    strings.TrimSpace(description),
		Status:         status,
		DueDate:        dueDate.UTC(),
		ProjectID:      projectID,
		AssignedUserID: assignedUserID,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.Title == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyContent)
	}
	if utf8.RuneCountInString(t.Title) > MaxTaskTitleLength {
		return NewValidationError("title", "must be at most 200 characters", ErrContentTooLong)
	}
	if utf8.RuneCountInString(t.Description) > MaxTaskDescriptionLength {
		return NewValidationError("description", "must be at most 1000 characters", ErrContentTooLong)
	}
	if !t.Status.IsValid() {
		return NewValidationError("status", "must be one of ToDo, InProgress, Done", ErrInvalidTaskStatus)
	}
	if t.ProjectID <= 0 {
		return NewValidationError("project_id", "must be a positive integer", ErrInvalidID)
	}
	if t.AssignedUserID != nil && *t.AssignedUserID <= 0 {
		return NewValidationError("assigned_user_id", "must be a positive integer", ErrInvalidID)
	}
	return nil
}

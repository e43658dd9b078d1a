package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxCommentTextLength is the column limit for comment text.
const MaxCommentTextLength = 1000

// Comment is a note on a task. Visibility follows the task's project owner;
// mutation is reserved for the author.
type Comment struct {
	ID        int64
	Text      string
	CreatedAt time.Time
	TaskID    int64
	AuthorID  int64
}

// CommentDetails is a comment together with its task title and the
// author's username.
type CommentDetails struct {
	Comment
	TaskTitle      string
	AuthorUsername string
}

// NewComment creates a comment authored by authorID with trimmed text and a
// UTC creation timestamp.
func NewComment(text string, taskID, authorID int64) (*Comment, error) {
	c := &Comment{
		Text:      strings.TrimSpace(text),
		CreatedAt: time.Now().UTC(),
		TaskID:    taskID,
		AuthorID:  authorID,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks if the Comment has valid data.
func (c *Comment) Validate() error {
	if err := ValidateCommentText(c.Text); err != nil {
		return err
	}
	if c.TaskID <= 0 {
		return NewValidationError("task_id", "must be a positive integer", ErrInvalidID)
	}
	if c.AuthorID <= 0 {
		return NewValidationError("author_id", "must be a positive integer", ErrInvalidID)
	}
	return nil
}

// ValidateCommentText checks already-trimmed comment text.
func ValidateCommentText(text string) error {
	if text == "" {
		return NewValidationError("text", "cannot be empty", ErrEmptyContent)
	}
	if utf8.RuneCountInString(text) > MaxCommentTextLength {
		return NewValidationError("text", "must be at most 1000 characters", ErrContentTooLong)
	}
	return nil
}

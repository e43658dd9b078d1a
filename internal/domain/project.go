package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Project field limits.
const (
	MaxProjectNameLength        = 100
	MaxProjectDescriptionLength = 500
)

// Project is the root of the ownership chain. It is the only entity with a
// persisted owner reference; tasks and comments inherit access through it.
type Project struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	OwnerID     int64
}

// ProjectDetails is a project together with the values projected at read
// time: the owner's username and the current number of tasks.
type ProjectDetails struct {
	Project
	OwnerUsername string
	TaskCount     int
}

// NewProject creates a project owned by ownerID with trimmed text fields and
// a UTC creation timestamp.
func NewProject(name, description string, ownerID int64) (*Project, error) {
	p := &Project{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
		OwnerID:     ownerID,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the Project has valid data.
func (p *Project) Validate() error {
	if p.OwnerID <= 0 {
		return NewValidationError("owner_id", "must be a positive integer", ErrInvalidID)
	}
	if p.Name == "" {
		return NewValidationError("name", "cannot be empty", ErrEmptyContent)
	}
	if utf8.RuneCountInString(p.Name) > MaxProjectNameLength {
		return NewValidationError("name", "must be at most 100 characters", ErrContentTooLong)
	}
	if utf8.RuneCountInString(p.Description) > MaxProjectDescriptionLength {
		return NewValidationError("description", "must be at most 500 characters", ErrContentTooLong)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/tasktrack-api/internal/domain"
)

// ProjectStore defines the interface for project persistence. Every method
// except Create is restricted to projects whose owner is ownerID.
type ProjectStore interface {
	// List returns the owner's projects ordered by id. A non-empty search
	// keeps projects whose name or description contains it (case-sensitive).
	List(ctx context.Context, ownerID int64, search string) ([]domain.ProjectDetails, error)

	// GetByID returns the project with its owner username and task count.
	// Returns ErrProjectNotFound when missing or owned by someone else.
	GetByID(ctx context.Context, id, ownerID int64) (*domain.ProjectDetails, error)

	// IsOwnedBy reports whether the project exists and belongs to ownerID.
	IsOwnedBy(ctx context.Context, id, ownerID int64) (bool, error)

	// Create saves a new project and sets project.ID.
	Create(ctx context.Context, project *domain.Project) error

	// Update overwrites name and description. CreatedAt and OwnerID are never
	// changed. Returns ErrProjectNotFound when not owned by project.OwnerID.
	Update(ctx context.Context, project *domain.Project) error

	// Delete removes the project together with its tasks and their comments.
	// Returns ErrProjectNotFound when not owned.
	Delete(ctx context.Context, id, ownerID int64) error

	// WithTx returns a new ProjectStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ProjectStore
}

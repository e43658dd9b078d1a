package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/tasktrack-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and sets user.ID. The caller must have hashed
	// the password into user.HashedPassword.
	// Returns ErrUsernameExists or ErrEmailExists on a unique violation.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by exact username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// ExistsByUsernameOrEmail reports whether any user holds the username or the email.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// Exists reports whether a user with the given id exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// Delete removes a user. Owned projects and authored comments are
	// removed with it; tasks assigned to the user become unassigned.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}

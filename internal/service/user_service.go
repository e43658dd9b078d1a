package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/platform/logger"
	"github.com/phrazzld/tasktrack-api/internal/redact"
	"github.com/phrazzld/tasktrack-api/internal/service/auth"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// UserService provides account registration and credential checks.
type UserService interface {
	// Register creates an account. Username and email are trimmed; a taken
	// username or email yields ErrUserExists.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)

	// Authenticate returns the user for a valid username and password.
	// Unknown users and wrong passwords both yield ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore  store.UserStore
	transactor store.Transactor
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	logger     *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	transactor store.Transactor,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if transactor == nil {
		return nil, domain.NewValidationError("transactor", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		userStore:  userStore,
		transactor: transactor,
		hasher:     hasher,
		verifier:   verifier,
		logger:     logger.With(slog.String("component", "user_service")),
	}, nil
}

// Register validates, hashes, and stores a new user.
// The duplicate check and the insert share one transaction; a concurrent
// registration that slips past the check is caught by the unique constraints
// and reported the same way.
func (s *UserServiceImpl) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(username, email, password)
	if err != nil {
		log.Debug("rejected registration input", redact.ErrorAttr(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	user.HashedPassword, err = s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", redact.ErrorAttr(err))
		return nil, NewServiceError("user", "register", err)
	}
	user.Password = ""

	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		users := s.userStore.WithTx(tx)

		taken, err := users.ExistsByUsernameOrEmail(ctx, user.Username, user.Email)
		if err != nil {
			return err
		}
		if taken {
			return ErrUserExists
		}

		if err := users.Create(ctx, user); err != nil {
			if store.IsDuplicateError(err) {
				return ErrUserExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			log.Debug("attempted to register an existing username or email",
				slog.String("username", user.Username))
			return nil, ErrUserExists
		}
		log.Error("failed to register user",
			redact.ErrorAttr(err),
			slog.String("username", user.Username))
		return nil, translateStoreError("user", "register", err)
	}

	log.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username))

	return user, nil
}

// Authenticate checks a username and password.
func (s *UserServiceImpl) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("login for unknown username")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user for login", redact.ErrorAttr(err))
		return nil, NewServiceError("user", "authenticate", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login with wrong password", slog.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve user",
				redact.ErrorAttr(err),
				slog.Int64("user_id", userID))
		}
		return nil, translateStoreError("user", "get", err)
	}
	return user, nil
}

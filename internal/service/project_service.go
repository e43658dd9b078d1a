package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/platform/logger"
	"github.com/phrazzld/tasktrack-api/internal/redact"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// ProjectService provides project operations scoped to the calling owner.
type ProjectService interface {
	// List returns the owner's projects. A non-blank search keeps projects
	// whose name or description contains it.
	List(ctx context.Context, ownerID int64, search string) ([]ProjectDTO, error)

	// Get returns one owned project. Returns ErrNotFound otherwise.
	Get(ctx context.Context, projectID, ownerID int64) (*ProjectDTO, error)

	// Create adds a project owned by ownerID.
	Create(ctx context.Context, input CreateProjectInput, ownerID int64) (*ProjectDTO, error)

	// Update overwrites name and description of an owned project.
	Update(ctx context.Context, projectID int64, input UpdateProjectInput, ownerID int64) (*ProjectDTO, error)

	// Delete removes an owned project with its tasks and their comments.
	Delete(ctx context.Context, projectID, ownerID int64) error
}

type projectServiceImpl struct {
	projectStore store.ProjectStore
	logger       *slog.Logger
}

// NewProjectService creates a new ProjectService.
// It returns an error if any of the required dependencies are nil.
func NewProjectService(projectStore store.ProjectStore, logger *slog.Logger) (ProjectService, error) {
	if projectStore == nil {
		return nil, domain.NewValidationError("projectStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &projectServiceImpl{
		projectStore: projectStore,
		logger:       logger.With(slog.String("component", "project_service")),
	}, nil
}

func (s *projectServiceImpl) List(ctx context.Context, ownerID int64, search string) ([]ProjectDTO, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	projects, err := s.projectStore.List(ctx, ownerID, strings.TrimSpace(search))
	if err != nil {
		log.Error("failed to list projects",
			redact.ErrorAttr(err),
			slog.Int64("owner_id", ownerID))
		return nil, translateStoreError("project", "list", err)
	}

	return toProjectDTOs(projects), nil
}

func (s *projectServiceImpl) Get(ctx context.Context, projectID, ownerID int64) (*ProjectDTO, error) {
	project, err := s.projectStore.GetByID(ctx, projectID, ownerID)
	if err != nil {
		s.logFailure(ctx, "get", err, projectID, ownerID)
		return nil, translateStoreError("project", "get", err)
	}

	dto := ToProjectDTO(*project)
	return &dto, nil
}

func (s *projectServiceImpl) Create(
	ctx context.Context,
	input CreateProjectInput,
	ownerID int64,
) (*ProjectDTO, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	project, err := domain.NewProject(input.Name, input.Description, ownerID)
	if err != nil {
		log.Debug("rejected project input", redact.ErrorAttr(err))
		return nil, err
	}

	if err := s.projectStore.Create(ctx, project); err != nil {
		log.Error("failed to create project",
			redact.ErrorAttr(err),
			slog.Int64("owner_id", ownerID))
		return nil, translateStoreError("project", "create", err)
	}

	log.Info("project created",
		slog.Int64("project_id", project.ID),
		slog.Int64("owner_id", ownerID))

	return s.Get(ctx, project.ID, ownerID)
}

func (s *projectServiceImpl) Update(
	ctx context.Context,
	projectID int64,
	input UpdateProjectInput,
	ownerID int64,
) (*ProjectDTO, error) {
	project := &domain.Project{
		ID:          projectID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		OwnerID:     ownerID,
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}

	if err := s.projectStore.Update(ctx, project); err != nil {
		s.logFailure(ctx, "update", err, projectID, ownerID)
		return nil, translateStoreError("project", "update", err)
	}

	return s.Get(ctx, projectID, ownerID)
}

func (s *projectServiceImpl) Delete(ctx context.Context, projectID, ownerID int64) error {
	if err := s.projectStore.Delete(ctx, projectID, ownerID); err != nil {
		s.logFailure(ctx, "delete", err, projectID, ownerID)
		return translateStoreError("project", "delete", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("project deleted",
		slog.Int64("project_id", projectID),
		slog.Int64("owner_id", ownerID))
	return nil
}

// logFailure logs caller-facing outcomes at debug and everything else at error.
func (s *projectServiceImpl) logFailure(ctx context.Context, op string, err error, projectID, ownerID int64) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	attrs := []any{
		slog.String("op", op),
		redact.ErrorAttr(err),
		slog.Int64("project_id", projectID),
		slog.Int64("owner_id", ownerID),
	}
	if isExpected(err) {
		log.Debug("project operation rejected", attrs...)
		return
	}
	log.Error("project operation failed", attrs...)
}

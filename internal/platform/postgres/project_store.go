package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/platform/logger"
	"github.com/phrazzld/tasktrack-api/internal/redact"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

const projectColumns = `p.id, p.name, p.description, p.created_at, p.owner_id, u.username,
	(SELECT COUNT(*) FROM tasks ct WHERE ct.project_id = p.id)`

// PostgresProjectStore implements the store.ProjectStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProjectStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProjectStore creates a new PostgreSQL implementation of the ProjectStore interface.
func NewPostgresProjectStore(db store.DBTX, logger *slog.Logger) *PostgresProjectStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProjectStore{
		db:     db,
		logger: logger.With(slog.String("component", "project_store")),
	}
}

var _ store.ProjectStore = (*PostgresProjectStore)(nil)

// WithTx implements store.ProjectStore.WithTx
func (s *PostgresProjectStore) WithTx(tx *sql.Tx) store.ProjectStore {
	return &PostgresProjectStore{db: tx, logger: s.logger}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (domain.ProjectDetails, error) {
	var p domain.ProjectDetails
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.CreatedAt,
		&p.OwnerID,
		&p.OwnerUsername,
		&p.TaskCount,
	)
	p.CreatedAt = p.CreatedAt.UTC()
	return p, err
}

// List implements store.ProjectStore.List
func (s *PostgresProjectStore) List(ctx context.Context, ownerID int64, search string) ([]domain.ProjectDetails, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	q := projectScope.forOwner(ownerID)
	if search != "" {
		q.where("(strpos(p.name, ?) > 0 OR strpos(p.description, ?) > 0)", search)
	}
	query, args := q.build(projectColumns, "p.id")

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list projects", redact.ErrorAttr(err))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	projects := make([]domain.ProjectDetails, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	log.Debug("listed projects", slog.Int("count", len(projects)))
	return projects, nil
}

// GetByID implements store.ProjectStore.GetByID
func (s *PostgresProjectStore) GetByID(ctx context.Context, id, ownerID int64) (*domain.ProjectDetails, error) {
	query, args := projectScope.forOwner(ownerID).where("p.id = ?", id).build(projectColumns, "")

	p, err := scanProject(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProjectNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get project",
			slog.Int64("project_id", id), redact.ErrorAttr(err))
		return nil, MapError(err)
	}
	return &p, nil
}

// IsOwnedBy implements store.ProjectStore.IsOwnedBy
func (s *PostgresProjectStore) IsOwnedBy(ctx context.Context, id, ownerID int64) (bool, error) {
	var owned bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1 AND owner_id = $2)`,
		id, ownerID,
	).Scan(&owned)
	if err != nil {
		return false, MapError(err)
	}
	return owned, nil
}

// Create implements store.ProjectStore.Create
func (s *PostgresProjectStore) Create(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := project.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO projects (name, description, created_at, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		project.Name,
		project.Description,
		project.CreatedAt,
		project.OwnerID,
	).Scan(&project.ID)
	if err != nil {
		log.Error("failed to create project", redact.ErrorAttr(err))
		return MapError(err)
	}

	log.Info("project created",
		slog.Int64("project_id", project.ID),
		slog.Int64("owner_id", project.OwnerID))
	return nil
}

// Update implements store.ProjectStore.Update
func (s *PostgresProjectStore) Update(ctx context.Context, project *domain.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE projects SET name = $1, description = $2 WHERE id = $3 AND owner_id = $4`,
		project.Name,
		project.Description,
		project.ID,
		project.OwnerID,
	)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update project",
			slog.Int64("project_id", project.ID), redact.ErrorAttr(err))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrProjectNotFound)
}

// Delete implements store.ProjectStore.Delete
func (s *PostgresProjectStore) Delete(ctx context.Context, id, ownerID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		log.Error("failed to delete project",
			slog.Int64("project_id", id), redact.ErrorAttr(err))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrProjectNotFound); err != nil {
		return err
	}

	log.Info("project deleted", slog.Int64("project_id", id))
	return nil
}

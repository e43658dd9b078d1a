package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	apiMiddleware "github.com/phrazzld/tasktrack-api/internal/api/middleware"
	"github.com/phrazzld/tasktrack-api/internal/config"
	"github.com/phrazzld/tasktrack-api/internal/platform/postgres"
	"github.com/phrazzld/tasktrack-api/internal/redact"
	"github.com/phrazzld/tasktrack-api/internal/service"
	"github.com/phrazzld/tasktrack-api/internal/service/auth"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore    store.UserStore
	projectStore store.ProjectStore
	taskStore    store.TaskStore
	commentStore store.CommentStore

	// Services
	jwtService     auth.JWTService
	userService    service.UserService
	projectService service.ProjectService
	taskService    service.TaskService
	commentService service.CommentService

	authLimiter *apiMiddleware.IPRateLimiter
}

// newApplication wires stores, services and the auth rate limiter on top of
// an established database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes,
		"refresh_token_lifetime_minutes", cfg.Auth.RefreshTokenLifetimeMinutes)

	passwords := auth.NewBcryptVerifier(cfg.Auth.BCryptCost)
	transactor := store.NewDBTransactor(db)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.projectStore = postgres.NewPostgresProjectStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.commentStore = postgres.NewPostgresCommentStore(db, logger)

	app.userService, err = service.NewUserService(app.userStore, transactor, passwords, passwords, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.projectService, err = service.NewProjectService(app.projectStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create project service: %w", err)
	}

	app.taskService, err = service.NewTaskService(
		app.taskStore,
		app.projectStore,
		app.userStore,
		transactor,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.commentService, err = service.NewCommentService(
		app.commentStore,
		app.taskStore,
		transactor,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment service: %w", err)
	}

	app.authLimiter = apiMiddleware.NewAuthRateLimiter(cfg.RateLimit)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", redact.ErrorAttr(err))
		}
	}

	app.logger.Info("Application shutdown completed")
}

package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/platform/logger"
	"github.com/phrazzld/tasktrack-api/internal/redact"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// TaskService provides task operations. A task is visible to the owner of
// its project.
type TaskService interface {
	// List returns the caller's tasks, narrowed by filter.
	List(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]TaskDTO, error)

	// Get returns one visible task.
	Get(ctx context.Context, taskID, ownerID int64) (*TaskDTO, error)

	// Create adds a task to a project the caller owns. Returns
	// ErrProjectAccessDenied for any other project and ErrAssigneeNotFound
	// for an unknown assignee.
	Create(ctx context.Context, input CreateTaskInput, ownerID int64) (*TaskDTO, error)

	// Update overwrites every mutable field. Moving the task requires
	// ownership of the target project.
	Update(ctx context.Context, taskID int64, input UpdateTaskInput, ownerID int64) (*TaskDTO, error)

	// UpdateStatus changes only the status. Any transition is allowed.
	UpdateStatus(ctx context.Context, taskID int64, status domain.TaskStatus, ownerID int64) (*TaskDTO, error)

	// Assign sets the assigned user. A nil assignee unassigns the task.
	Assign(ctx context.Context, taskID int64, assigneeID *int64, ownerID int64) (*TaskDTO, error)

	// Delete removes the task and its comments.
	Delete(ctx context.Context, taskID, ownerID int64) error
}

type taskServiceImpl struct {
	taskStore    store.TaskStore
	projectStore store.ProjectStore
	userStore    store.UserStore
	transactor   store.Transactor
	logger       *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskStore store.TaskStore,
	projectStore store.ProjectStore,
	userStore store.UserStore,
	transactor store.Transactor,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if projectStore == nil {
		return nil, domain.NewValidationError("projectStore", "cannot be nil", domain.ErrValidation)
	}
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if transactor == nil {
		return nil, domain.NewValidationError("transactor", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore:    taskStore,
		projectStore: projectStore,
		userStore:    userStore,
		transactor:   transactor,
		logger:       logger.With(slog.String("component", "task_service")),
	}, nil
}

func (s *taskServiceImpl) List(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]TaskDTO, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, domain.NewValidationError("status", "must be one of ToDo, InProgress, Done", domain.ErrInvalidTaskStatus)
	}

	tasks, err := s.taskStore.List(ctx, ownerID, filter)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			redact.ErrorAttr(err),
			slog.Int64("owner_id", ownerID))
		return nil, translateStoreError("task", "list", err)
	}

	return toTaskDTOs(tasks), nil
}

func (s *taskServiceImpl) Get(ctx context.Context, taskID, ownerID int64) (*TaskDTO, error) {
	task, err := s.taskStore.GetByID(ctx, taskID, ownerID)
	if err != nil {
		s.logFailure(ctx, "get", err, taskID, ownerID)
		return nil, translateStoreError("task", "get", err)
	}

	dto := ToTaskDTO(*task)
	return &dto, nil
}

func (s *taskServiceImpl) Create(ctx context.Context, input CreateTaskInput, ownerID int64) (*TaskDTO, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(
		input.Title,
		input.Description,
		input.Status,
		input.DueDate,
		input.ProjectID,
		input.AssignedUserID,
	)
	if err != nil {
		log.Debug("rejected task input", redact.ErrorAttr(err))
		return nil, err
	}

	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.requireOwnedProject(ctx, s.projectStore.WithTx(tx), task.ProjectID, ownerID); err != nil {
			return err
		}
		if err := requireAssignee(ctx, s.userStore.WithTx(tx), task.AssignedUserID); err != nil {
			return err
		}
		return s.taskStore.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		s.logFailure(ctx, "create", err, 0, ownerID)
		return nil, translateStoreError("task", "create", err)
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("project_id", task.ProjectID),
		slog.Int64("owner_id", ownerID))

	return s.Get(ctx, task.ID, ownerID)
}

func (s *taskServiceImpl) Update(
	ctx context.Context,
	taskID int64,
	input UpdateTaskInput,
	ownerID int64,
) (*TaskDTO, error) {
	task, err := domain.NewTask(
		input.Title,
		input.Description,
		input.Status,
		input.DueDate,
		input.ProjectID,
		input.AssignedUserID,
	)
	if err != nil {
		return nil, err
	}
	task.ID = taskID

	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.taskStore.WithTx(tx)

		current, err := tasks.GetByID(ctx, taskID, ownerID)
		if err != nil {
			return err
		}
		if current.ProjectID != task.ProjectID {
			if err := s.requireOwnedProject(ctx, s.projectStore.WithTx(tx), task.ProjectID, ownerID); err != nil {
				return err
			}
		}
		if err := requireAssignee(ctx, s.userStore.WithTx(tx), task.AssignedUserID); err != nil {
			return err
		}
		return tasks.Update(ctx, task, ownerID)
	})
	if err != nil {
		s.logFailure(ctx, "update", err, taskID, ownerID)
		return nil, translateStoreError("task", "update", err)
	}

	return s.Get(ctx, taskID, ownerID)
}

func (s *taskServiceImpl) UpdateStatus(
	ctx context.Context,
	taskID int64,
	status domain.TaskStatus,
	ownerID int64,
) (*TaskDTO, error) {
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "must be one of ToDo, InProgress, Done", domain.ErrInvalidTaskStatus)
	}

	if err := s.taskStore.UpdateStatus(ctx, taskID, status, ownerID); err != nil {
		s.logFailure(ctx, "update_status", err, taskID, ownerID)
		return nil, translateStoreError("task", "update_status", err)
	}

	return s.Get(ctx, taskID, ownerID)
}

func (s *taskServiceImpl) Assign(
	ctx context.Context,
	taskID int64,
	assigneeID *int64,
	ownerID int64,
) (*TaskDTO, error) {
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.taskStore.WithTx(tx)

		if _, err := tasks.GetByID(ctx, taskID, ownerID); err != nil {
			return err
		}
		if err := requireAssignee(ctx, s.userStore.WithTx(tx), assigneeID); err != nil {
			return err
		}
		return tasks.UpdateAssignee(ctx, taskID, assigneeID, ownerID)
	})
	if err != nil {
		s.logFailure(ctx, "assign", err, taskID, ownerID)
		return nil, translateStoreError("task", "assign", err)
	}

	return s.Get(ctx, taskID, ownerID)
}

func (s *taskServiceImpl) Delete(ctx context.Context, taskID, ownerID int64) error {
	if err := s.taskStore.Delete(ctx, taskID, ownerID); err != nil {
		s.logFailure(ctx, "delete", err, taskID, ownerID)
		return translateStoreError("task", "delete", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted",
		slog.Int64("task_id", taskID),
		slog.Int64("owner_id", ownerID))
	return nil
}

func (s *taskServiceImpl) requireOwnedProject(
	ctx context.Context,
	projects store.ProjectStore,
	projectID, ownerID int64,
) error {
	owned, err := projects.IsOwnedBy(ctx, projectID, ownerID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrProjectAccessDenied
	}
	return nil
}

// requireAssignee accepts a nil assignee and otherwise checks the user exists.
func requireAssignee(ctx context.Context, users store.UserStore, assigneeID *int64) error {
	if assigneeID == nil {
		return nil
	}
	exists, err := users.Exists(ctx, *assigneeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrAssigneeNotFound
	}
	return nil
}

func (s *taskServiceImpl) logFailure(ctx context.Context, op string, err error, taskID, ownerID int64) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	attrs := []any{
		slog.String("op", op),
		redact.ErrorAttr(err),
		slog.Int64("task_id", taskID),
		slog.Int64("owner_id", ownerID),
	}
	if isExpected(err) {
		log.Debug("task operation rejected", attrs...)
		return
	}
	log.Error("task operation failed", attrs...)
}

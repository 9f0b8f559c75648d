package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/trilhaapi/tarefa-api/internal/domain"
	"github.com/trilhaapi/tarefa-api/internal/platform/logger"
	"github.com/trilhaapi/tarefa-api/internal/store"
)

// TaskService provides task-related operations.
type TaskService interface {
	// GetByID returns the task with the given id, or nil when there is none.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// GetAll returns every task ordered by due date.
	GetAll(ctx context.Context) ([]*domain.Task, error)

	// GetPage returns one page of tasks ordered by due date. page is 1-based.
	GetPage(ctx context.Context, page, pageSize int) (*TaskPage, error)

	// GetByTitle returns the tasks whose title contains text.
	GetByTitle(ctx context.Context, text string) ([]*domain.Task, error)

	// GetByDate returns the tasks due on the calendar day of date.
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Task, error)

	// GetByStatus returns the tasks with the given status.
	GetByStatus(ctx context.Context, status domain.Status) ([]*domain.Task, error)

	// Create validates and persists task, populating task.ID on success.
	Create(ctx context.Context, task *domain.Task) (domain.Result, error)

	// Update overwrites the task identified by id with the fields of task.
	Update(ctx context.Context, id int64, task *domain.Task) (domain.Result, error)

	// Delete removes the task with the given id and reports whether it existed.
	Delete(ctx context.Context, id int64) (bool, error)

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}

// TaskPage is one page of a task listing.
type TaskPage struct {
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Items    []*domain.Task `json:"items"`
}

type taskServiceImpl struct {
	store  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the store is nil.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskStore cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		store:  taskStore,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// GetByID implements TaskService.GetByID.
func (s *taskServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, NewTaskServiceError("get_by_id", "failed to retrieve task", err)
	}
	return task, nil
}

// GetAll implements TaskService.GetAll.
func (s *taskServiceImpl) GetAll(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, NewTaskServiceError("get_all", "failed to list tasks", err)
	}
	return tasks, nil
}

// GetPage implements TaskService.GetPage.
func (s *taskServiceImpl) GetPage(ctx context.Context, page, pageSize int) (*TaskPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, NewTaskServiceError("get_page", "failed to count tasks", err)
	}

	items := []*domain.Task{}
	offset := (page - 1) * pageSize
	if offset < total {
		items, err = s.store.ListPage(ctx, pageSize, offset)
		if err != nil {
			return nil, NewTaskServiceError("get_page", "failed to list tasks", err)
		}
	}

	return &TaskPage{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Items:    items,
	}, nil
}

// GetByTitle implements TaskService.GetByTitle.
func (s *taskServiceImpl) GetByTitle(ctx context.Context, text string) ([]*domain.Task, error) {
	tasks, err := s.store.FindByTitle(ctx, text)
	if err != nil {
		return nil, NewTaskServiceError("get_by_title", "failed to search tasks by title", err)
	}
	return tasks, nil
}

// GetByDate implements TaskService.GetByDate.
func (s *taskServiceImpl) GetByDate(ctx context.Context, date time.Time) ([]*domain.Task, error) {
	tasks, err := s.store.FindByDate(ctx, date)
	if err != nil {
		return nil, NewTaskServiceError("get_by_date", "failed to search tasks by date", err)
	}
	return tasks, nil
}

// GetByStatus implements TaskService.GetByStatus.
func (s *taskServiceImpl) GetByStatus(ctx context.Context, status domain.Status) ([]*domain.Task, error) {
	tasks, err := s.store.FindByStatus(ctx, status)
	if err != nil {
		return nil, NewTaskServiceError("get_by_status", "failed to search tasks by status", err)
	}
	return tasks, nil
}

// Create implements TaskService.Create.
// The uniqueness check and the insert are separate statements, so two
// concurrent creates of the same title and day can both succeed.
func (s *taskServiceImpl) Create(ctx context.Context, task *domain.Task) (domain.Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !task.HasTitle() {
		return domain.Fail(domain.FailureValidation, MsgTitleRequired), nil
	}
	if err := task.Validate(); err != nil {
		return domain.Fail(domain.FailureValidation, err.Error()), nil
	}

	exists, err := s.store.ExistsByTitleAndDate(ctx, task.Title, task.DueDate, nil)
	if err != nil {
		return domain.Result{}, NewTaskServiceError("create", "failed to check for duplicates", err)
	}
	if exists {
		log.Debug("duplicate task rejected", slog.String("title", task.Title))
		return domain.Fail(domain.FailureConflict, MsgDuplicateTask), nil
	}

	task.ID = 0
	if err := s.store.Create(ctx, task); err != nil {
		if store.IsDuplicateError(err) {
			return domain.Fail(domain.FailureConflict, MsgDuplicateTask), nil
		}
		return domain.Result{}, NewTaskServiceError("create", "failed to save task", err)
	}

	log.Info("task created successfully", slog.Int64("task_id", task.ID))
	return domain.Ok(), nil
}

// Update implements TaskService.Update.
// Like Create, the read, the uniqueness check and the write are not atomic.
func (s *taskServiceImpl) Update(ctx context.Context, id int64, task *domain.Task) (domain.Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return domain.Fail(domain.FailureNotFound, MsgTaskNotFound), nil
		}
		return domain.Result{}, NewTaskServiceError("update", "failed to load task", err)
	}

	if !task.HasTitle() {
		return domain.Fail(domain.FailureValidation, MsgTitleRequired), nil
	}
	if err := task.Validate(); err != nil {
		return domain.Fail(domain.FailureValidation, err.Error()), nil
	}

	exists, err := s.store.ExistsByTitleAndDate(ctx, task.Title, task.DueDate, &id)
	if err != nil {
		return domain.Result{}, NewTaskServiceError("update", "failed to check for duplicates", err)
	}
	if exists {
		log.Debug("conflicting update rejected",
			slog.Int64("task_id", id),
			slog.String("title", task.Title))
		return domain.Fail(domain.FailureConflict, MsgDuplicateOtherTask), nil
	}

	existing.ApplyChanges(task)
	if err := s.store.Update(ctx, existing); err != nil {
		switch {
		case store.IsNotFoundError(err):
			return domain.Fail(domain.FailureNotFound, MsgTaskNotFound), nil
		case store.IsDuplicateError(err):
			return domain.Fail(domain.FailureConflict, MsgDuplicateOtherTask), nil
		}
		return domain.Result{}, NewTaskServiceError("update", "failed to save task", err)
	}

	log.Info("task updated successfully", slog.Int64("task_id", id))
	return domain.Ok(), nil
}

// Delete implements TaskService.Delete.
func (s *taskServiceImpl) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return false, nil
		}
		return false, NewTaskServiceError("delete", "failed to delete task", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted successfully", slog.Int64("task_id", id))
	return true, nil
}

// Ping implements TaskService.Ping.
func (s *taskServiceImpl) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return NewTaskServiceError("ping", "store unavailable", err)
	}
	return nil
}

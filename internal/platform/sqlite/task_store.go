package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/trilhaapi/tarefa-api/internal/domain"
	"github.com/trilhaapi/tarefa-api/internal/platform/logger"
	"github.com/trilhaapi/tarefa-api/internal/store"
	"gorm.io/gorm"
)

const orderByDueDate = "due_date ASC, id ASC"

// TaskStore implements store.TaskStore on top of gorm.
type TaskStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewTaskStore creates a TaskStore. If logger is nil, a default logger is used.
func NewTaskStore(db *gorm.DB, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if id <= 0 {
		return nil, store.ErrTaskNotFound
	}

	var m taskModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrTaskNotFound
		}
		s.logError(ctx, "failed to get task by ID", err, slog.Int64("task_id", id))
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return m.toDomain(), nil
}

// ListAll implements store.TaskStore.ListAll.
func (s *TaskStore) ListAll(ctx context.Context) ([]*domain.Task, error) {
	return s.find(ctx, "list_all", s.db.WithContext(ctx))
}

// ListPage implements store.TaskStore.ListPage.
func (s *TaskStore) ListPage(ctx context.Context, limit, offset int) ([]*domain.Task, error) {
	if limit <= 0 {
		return []*domain.Task{}, nil
	}
	if offset < 0 {
		offset = 0
	}
	return s.find(ctx, "list_page", s.db.WithContext(ctx).Limit(limit).Offset(offset))
}

// Count implements store.TaskStore.Count.
func (s *TaskStore) Count(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&taskModel{}).Count(&n).Error; err != nil {
		s.logError(ctx, "failed to count tasks", err)
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return int(n), nil
}

// FindByTitle implements store.TaskStore.FindByTitle.
func (s *TaskStore) FindByTitle(ctx context.Context, text string) ([]*domain.Task, error) {
	q := s.db.WithContext(ctx).Where(`title LIKE ? ESCAPE '\'`, store.LikePattern(text))
	return s.find(ctx, "find_by_title", q)
}

// FindByDate implements store.TaskStore.FindByDate.
func (s *TaskStore) FindByDate(ctx context.Context, day time.Time) ([]*domain.Task, error) {
	start, end := domain.DayBounds(day)
	q := s.db.WithContext(ctx).Where("due_date >= ? AND due_date < ?", start.UTC(), end.UTC())
	return s.find(ctx, "find_by_date", q)
}

// FindByStatus implements store.TaskStore.FindByStatus.
func (s *TaskStore) FindByStatus(ctx context.Context, status domain.Status) ([]*domain.Task, error) {
	q := s.db.WithContext(ctx).Where("status = ?", string(status))
	return s.find(ctx, "find_by_status", q)
}

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	m := fromDomain(task)
	m.ID = 0
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		s.logError(ctx, "failed to create task", err, slog.String("title", task.Title))
		return store.NewStoreError("task", "create", "failed to insert task", err)
	}
	task.ID = m.ID

	logger.FromContextOrDefault(ctx, s.logger).Info("task created",
		slog.Int64("task_id", task.ID),
		slog.String("status", string(task.Status)))
	return nil
}

// Update implements store.TaskStore.Update.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	m := fromDomain(task)
	// Select all columns so zero values (an empty description) are written too.
	result := s.db.WithContext(ctx).
		Model(&taskModel{}).
		Where("id = ?", task.ID).
		Select("title", "description", "due_date", "status").
		Updates(m)
	if err := result.Error; err != nil {
		s.logError(ctx, "failed to update task", err, slog.Int64("task_id", task.ID))
		return store.NewStoreError("task", "update", "failed to save task", err)
	}
	if result.RowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task updated", slog.Int64("task_id", task.ID))
	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&taskModel{}, "id = ?", id)
	if err := result.Error; err != nil {
		s.logError(ctx, "failed to delete task", err, slog.Int64("task_id", id))
		return store.NewStoreError("task", "delete", "failed to remove task", err)
	}
	if result.RowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// ExistsByTitleAndDate implements store.TaskStore.ExistsByTitleAndDate.
func (s *TaskStore) ExistsByTitleAndDate(
	ctx context.Context,
	title string,
	date time.Time,
	excludeID *int64,
) (bool, error) {
	start, end := domain.DayBounds(date)
	q := s.db.WithContext(ctx).
		Model(&taskModel{}).
		Where("title = ? AND due_date >= ? AND due_date < ?", title, start.UTC(), end.UTC())
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		s.logError(ctx, "failed to check task existence", err, slog.String("title", title))
		return false, fmt.Errorf("failed to check task existence: %w", err)
	}
	return n > 0, nil
}

// Ping implements store.TaskStore.Ping.
func (s *TaskStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (s *TaskStore) find(ctx context.Context, op string, q *gorm.DB) ([]*domain.Task, error) {
	var models []taskModel
	if err := q.Order(orderByDueDate).Find(&models).Error; err != nil {
		s.logError(ctx, "failed to query tasks", err, slog.String("operation", op))
		return nil, fmt.Errorf("failed to query tasks (%s): %w", op, err)
	}

	tasks := make([]*domain.Task, 0, len(models))
	for i := range models {
		tasks = append(tasks, models[i].toDomain())
	}
	return tasks, nil
}

func (s *TaskStore) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs)+1)
	args = append(args, slog.String("error", err.Error()))
	for _, a := range attrs {
		args = append(args, a)
	}
	logger.FromContextOrDefault(ctx, s.logger).Error(msg, args...)
}

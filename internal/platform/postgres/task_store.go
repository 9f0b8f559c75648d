package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/trilhaapi/tarefa-api/internal/domain"
	"github.com/trilhaapi/tarefa-api/internal/platform/logger"
	"github.com/trilhaapi/tarefa-api/internal/store"
)

const taskColumns = `id, title, description, due_date, status`

// taskRow is the database representation of a task.
type taskRow struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	DueDate     time.Time `db:"due_date"`
	Status      string    `db:"status"`
}

func (r taskRow) toDomain() *domain.Task {
	return &domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Status:      domain.Status(r.Status),
	}
}

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that is managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// GetByID implements store.TaskStore.GetByID.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if id <= 0 {
		return nil, store.ErrTaskNotFound
	}

	var row taskRow
	err := s.db.GetContext(ctx, &row, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get task: %w", mapped)
	}

	return row.toDomain(), nil
}

// ListAll implements store.TaskStore.ListAll.
func (s *PostgresTaskStore) ListAll(ctx context.Context) ([]*domain.Task, error) {
	return s.selectTasks(ctx, "list_all",
		`SELECT `+taskColumns+` FROM tasks ORDER BY due_date ASC, id ASC`)
}

// ListPage implements store.TaskStore.ListPage.
func (s *PostgresTaskStore) ListPage(ctx context.Context, limit, offset int) ([]*domain.Task, error) {
	if limit <= 0 {
		return []*domain.Task{}, nil
	}
	if offset < 0 {
		offset = 0
	}
	return s.selectTasks(ctx, "list_page",
		`SELECT `+taskColumns+` FROM tasks ORDER BY due_date ASC, id ASC LIMIT $1 OFFSET $2`,
		limit, offset)
}

// Count implements store.TaskStore.Count.
func (s *PostgresTaskStore) Count(ctx context.Context) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM tasks`); err != nil {
		log.Error("failed to count tasks", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to count tasks: %w", MapError(err))
	}
	return n, nil
}

// FindByTitle implements store.TaskStore.FindByTitle.
func (s *PostgresTaskStore) FindByTitle(ctx context.Context, text string) ([]*domain.Task, error) {
	return s.selectTasks(ctx, "find_by_title",
		`SELECT `+taskColumns+` FROM tasks
		WHERE title LIKE $1 ESCAPE '\'
		ORDER BY due_date ASC, id ASC`,
		store.LikePattern(text))
}

// FindByDate implements store.TaskStore.FindByDate.
func (s *PostgresTaskStore) FindByDate(ctx context.Context, day time.Time) ([]*domain.Task, error) {
	start, end := domain.DayBounds(day)
	return s.selectTasks(ctx, "find_by_date",
		`SELECT `+taskColumns+` FROM tasks
		WHERE due_date >= $1 AND due_date < $2
		ORDER BY due_date ASC, id ASC`,
		start, end)
}

// FindByStatus implements store.TaskStore.FindByStatus.
func (s *PostgresTaskStore) FindByStatus(ctx context.Context, status domain.Status) ([]*domain.Task, error) {
	return s.selectTasks(ctx, "find_by_status",
		`SELECT `+taskColumns+` FROM tasks
		WHERE status = $1
		ORDER BY due_date ASC, id ASC`,
		string(status))
}

// Create implements store.TaskStore.Create.
// The generated id is written back to task.ID.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO tasks (title, description, due_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowxContext(ctx, query,
		task.Title,
		task.Description,
		task.DueDate,
		string(task.Status),
	).Scan(&task.ID)
	if err != nil {
		log.Error("failed to create task",
			slog.String("title", task.Title),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create task: %w", MapError(err))
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.String("status", string(task.Status)))
	return nil
}

// Update implements store.TaskStore.Update.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, status = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.DueDate,
		string(task.Status),
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.Int64("task_id", task.ID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to update task: %w", MapError(err))
	}

	if err := checkRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for update", slog.Int64("task_id", task.ID))
			return err
		}
		return fmt.Errorf("failed to update task: %w", err)
	}

	log.Info("task updated", slog.Int64("task_id", task.ID))
	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete task: %w", MapError(err))
	}

	if err := checkRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for delete", slog.Int64("task_id", id))
			return err
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// ExistsByTitleAndDate implements store.TaskStore.ExistsByTitleAndDate.
func (s *PostgresTaskStore) ExistsByTitleAndDate(
	ctx context.Context,
	title string,
	date time.Time,
	excludeID *int64,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	start, end := domain.DayBounds(date)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM tasks
			WHERE title = $1 AND due_date >= $2 AND due_date < $3
			  AND ($4::bigint IS NULL OR id <> $4::bigint)
		)
	`

	var exclude interface{}
	if excludeID != nil {
		exclude = *excludeID
	}

	var exists bool
	if err := s.db.GetContext(ctx, &exists, query, title, start, end, exclude); err != nil {
		log.Error("failed to check task existence",
			slog.String("title", title),
			slog.String("error", err.Error()))
		return false, fmt.Errorf("failed to check task existence: %w", MapError(err))
	}
	return exists, nil
}

// Ping implements store.TaskStore.Ping.
func (s *PostgresTaskStore) Ping(ctx context.Context) error {
	p, ok := s.db.(pinger)
	if !ok {
		return nil
	}
	if err := p.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (s *PostgresTaskStore) selectTasks(
	ctx context.Context,
	op string,
	query string,
	args ...interface{},
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var rows []taskRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		log.Error("failed to query tasks",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to query tasks (%s): %w", op, MapError(err))
	}

	tasks := make([]*domain.Task, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, r.toDomain())
	}

	log.Debug("tasks queried",
		slog.String("operation", op),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

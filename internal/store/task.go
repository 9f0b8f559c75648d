package store

import (
	"context"
	"strings"
	"time"

	"github.com/trilhaapi/tarefa-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Every mutating method commits on its own; no operation spans a transaction
// with another call.
type TaskStore interface {
	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist or id <= 0.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// ListAll returns every task ordered by due date ascending.
	ListAll(ctx context.Context) ([]*domain.Task, error)

	// ListPage returns at most limit tasks, skipping offset, in the same order as ListAll.
	ListPage(ctx context.Context, limit, offset int) ([]*domain.Task, error)

	// Count returns the total number of tasks.
	Count(ctx context.Context) (int, error)

	// FindByTitle returns tasks whose title contains text, ordered by due date.
	FindByTitle(ctx context.Context, text string) ([]*domain.Task, error)

	// FindByDate returns tasks due within the calendar day of day
	// (midnight inclusive, next midnight exclusive), ordered by due date.
	FindByDate(ctx context.Context, day time.Time) ([]*domain.Task, error)

	// FindByStatus returns tasks with exactly the given status, ordered by due date.
	FindByStatus(ctx context.Context, status domain.Status) ([]*domain.Task, error)

	// Create inserts the task and sets task.ID to the assigned identifier.
	Create(ctx context.Context, task *domain.Task) error

	// Update overwrites the stored task identified by task.ID.
	// Returns ErrTaskNotFound if no such task exists.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task with the given id.
	// Returns ErrTaskNotFound if no such task exists.
	Delete(ctx context.Context, id int64) error

	// ExistsByTitleAndDate reports whether a task with exactly this title is due
	// on the same calendar day as date. If excludeID is non-nil, the task with
	// that id is ignored.
	ExistsByTitleAndDate(ctx context.Context, title string, date time.Time, excludeID *int64) (bool, error)

	// Ping checks that the backing database is reachable.
	Ping(ctx context.Context) error
}

// LikePattern builds a SQL LIKE pattern matching any value that contains text.
// The LIKE wildcards in text are escaped with a backslash, so the pattern must
// be used together with ESCAPE '\'.
func LikePattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

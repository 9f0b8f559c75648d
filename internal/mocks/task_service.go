package mocks

import (
	"context"
	"time"

	"github.com/trilhaapi/tarefa-api/internal/domain"
	"github.com/trilhaapi/tarefa-api/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Custom behavior functions
	GetByIDFn     func(ctx context.Context, id int64) (*domain.Task, error)
	GetAllFn      func(ctx context.Context) ([]*domain.Task, error)
	GetPageFn     func(ctx context.Context, page, pageSize int) (*service.TaskPage, error)
	GetByTitleFn  func(ctx context.Context, text string) ([]*domain.Task, error)
	GetByDateFn   func(ctx context.Context, date time.Time) ([]*domain.Task, error)
	GetByStatusFn func(ctx context.Context, status domain.Status) ([]*domain.Task, error)
	CreateFn      func(ctx context.Context, task *domain.Task) (domain.Result, error)
	UpdateFn      func(ctx context.Context, id int64, task *domain.Task) (domain.Result, error)
	DeleteFn      func(ctx context.Context, id int64) (bool, error)
	PingFn        func(ctx context.Context) error

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	DefaultError error
}

var _ service.TaskService = (*MockTaskService)(nil)

// GetByID implements the TaskService.GetByID method
func (m *MockTaskService) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Task, m.DefaultError
}

// GetAll implements the TaskService.GetAll method
func (m *MockTaskService) GetAll(ctx context.Context) ([]*domain.Task, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// GetPage implements the TaskService.GetPage method.
// Without GetPageFn it pages over Tasks.
func (m *MockTaskService) GetPage(ctx context.Context, page, pageSize int) (*service.TaskPage, error) {
	if m.GetPageFn != nil {
		return m.GetPageFn(ctx, page, pageSize)
	}
	if m.DefaultError != nil {
		return nil, m.DefaultError
	}

	items := []*domain.Task{}
	start := (page - 1) * pageSize
	if start < len(m.Tasks) {
		end := start + pageSize
		if end > len(m.Tasks) {
			end = len(m.Tasks)
		}
		items = m.Tasks[start:end]
	}
	return &service.TaskPage{Total: len(m.Tasks), Page: page, PageSize: pageSize, Items: items}, nil
}

// GetByTitle implements the TaskService.GetByTitle method
func (m *MockTaskService) GetByTitle(ctx context.Context, text string) ([]*domain.Task, error) {
	if m.GetByTitleFn != nil {
		return m.GetByTitleFn(ctx, text)
	}
	return m.Tasks, m.DefaultError
}

// GetByDate implements the TaskService.GetByDate method
func (m *MockTaskService) GetByDate(ctx context.Context, date time.Time) ([]*domain.Task, error) {
	if m.GetByDateFn != nil {
		return m.GetByDateFn(ctx, date)
	}
	return m.Tasks, m.DefaultError
}

// GetByStatus implements the TaskService.GetByStatus method
func (m *MockTaskService) GetByStatus(ctx context.Context, status domain.Status) ([]*domain.Task, error) {
	if m.GetByStatusFn != nil {
		return m.GetByStatusFn(ctx, status)
	}
	return m.Tasks, m.DefaultError
}

// Create implements the TaskService.Create method
func (m *MockTaskService) Create(ctx context.Context, task *domain.Task) (domain.Result, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if m.DefaultError != nil {
		return domain.Result{}, m.DefaultError
	}
	return domain.Ok(), nil
}

// Update implements the TaskService.Update method
func (m *MockTaskService) Update(ctx context.Context, id int64, task *domain.Task) (domain.Result, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, task)
	}
	if m.DefaultError != nil {
		return domain.Result{}, m.DefaultError
	}
	return domain.Ok(), nil
}

// Delete implements the TaskService.Delete method
func (m *MockTaskService) Delete(ctx context.Context, id int64) (bool, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError == nil, m.DefaultError
}

// Ping implements the TaskService.Ping method
func (m *MockTaskService) Ping(ctx context.Context) error {
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return m.DefaultError
}

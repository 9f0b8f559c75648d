package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trilhaapi/tarefa-api/internal/api/shared"
	"github.com/trilhaapi/tarefa-api/internal/domain"
	"github.com/trilhaapi/tarefa-api/internal/mocks"
	"github.com/trilhaapi/tarefa-api/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(svc service.TaskService) http.Handler {
	h := NewTaskHandler(svc, discardLogger())

	r := chi.NewRouter()
	r.Route("/Tarefa", func(r chi.Router) {
		r.Get("/ObterTodos", h.GetAll)
		r.Get("/ObterPorTitulo", h.GetByTitle)
		r.Get("/ObterPorData", h.GetByDate)
		r.Get("/ObterPorStatus", h.GetByStatus)
		r.Get("/{id}", h.GetByID)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func serve(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func sampleTask(id int64) *domain.Task {
	return &domain.Task{
		ID:          id,
		Title:       fmt.Sprintf("Tarefa %d", id),
		Description: "descricao",
		DueDate:     time.Date(2026, 1, 18, 9, 0, 0, 0, time.UTC),
		Status:      domain.StatusPending,
	}
}

func sampleTasks(n int) []*domain.Task {
	tasks := make([]*domain.Task, n)
	for i := range tasks {
		tasks[i] = sampleTask(int64(i + 1))
	}
	return tasks
}

var errDatabaseDown = errors.New("dial tcp 10.0.0.5:5432: connection refused")

func TestNewTaskHandlerPanicsOnNilService(t *testing.T) {
	assert.Panics(t, func() { NewTaskHandler(nil, nil) })
}

func TestTaskHandlerGetByID(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		svc        *mocks.MockTaskService
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "found",
			target:     "/Tarefa/1",
			svc:        &mocks.MockTaskService{Task: sampleTask(1)},
			wantStatus: http.StatusOK,
		},
		{
			name:       "not found",
			target:     "/Tarefa/7",
			svc:        &mocks.MockTaskService{},
			wantStatus: http.StatusNotFound,
			wantMsg:    MsgTaskNotFound,
		},
		{
			name:       "non numeric id",
			target:     "/Tarefa/abc",
			svc:        &mocks.MockTaskService{},
			wantStatus: http.StatusBadRequest,
			wantMsg:    MsgInvalidID,
		},
		{
			name:       "zero id",
			target:     "/Tarefa/0",
			svc:        &mocks.MockTaskService{},
			wantStatus: http.StatusBadRequest,
			wantMsg:    MsgInvalidID,
		},
		{
			name:       "service error",
			target:     "/Tarefa/1",
			svc:        &mocks.MockTaskService{DefaultError: errDatabaseDown},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    MsgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, newTestRouter(tt.svc), http.MethodGet, tt.target, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, errorMessage(t, rec))
				assert.NotContains(t, rec.Body.String(), "10.0.0.5")
				return
			}

			var got domain.Task
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, int64(1), got.ID)
			assert.Equal(t, "Tarefa 1", got.Title)
			assert.Equal(t, domain.StatusPending, got.Status)
		})
	}
}

func TestTaskHandlerGetAll(t *testing.T) {
	t.Run("second page", func(t *testing.T) {
		svc := &mocks.MockTaskService{Tasks: sampleTasks(25)}

		rec := serve(t, newTestRouter(svc), http.MethodGet, "/Tarefa/ObterTodos?page=2&pageSize=10", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "25", rec.Header().Get(HeaderTotalCount))
		assert.Equal(t, "2", rec.Header().Get(HeaderPage))
		assert.Equal(t, "10", rec.Header().Get(HeaderPageSize))

		var page service.TaskPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, 25, page.Total)
		require.Len(t, page.Items, 10)
		assert.Equal(t, int64(11), page.Items[0].ID)
		assert.Equal(t, int64(20), page.Items[9].ID)
	})

	t.Run("defaults", func(t *testing.T) {
		var gotPage, gotSize int
		svc := &mocks.MockTaskService{
			GetPageFn: func(_ context.Context, page, pageSize int) (*service.TaskPage, error) {
				gotPage, gotSize = page, pageSize
				return &service.TaskPage{Total: 1, Page: page, PageSize: pageSize, Items: sampleTasks(1)}, nil
			},
		}

		rec := serve(t, newTestRouter(svc), http.MethodGet, "/Tarefa/ObterTodos", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, DefaultPage, gotPage)
		assert.Equal(t, DefaultPageSize, gotSize)
	})

	t.Run("page beyond the end", func(t *testing.T) {
		svc := &mocks.MockTaskService{Tasks: sampleTasks(5)}

		rec := serve(t, newTestRouter(svc), http.MethodGet, "/Tarefa/ObterTodos?page=3&pageSize=10", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var page service.TaskPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, 5, page.Total)
		assert.Empty(t, page.Items)
	})

	t.Run("no tasks", func(t *testing.T) {
		rec := serve(t, newTestRouter(&mocks.MockTaskService{}), http.MethodGet, "/Tarefa/ObterTodos", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	for _, query := range []string{"?page=0", "?pageSize=0", "?pageSize=101", "?page=x"} {
		t.Run("invalid "+query, func(t *testing.T) {
			rec := serve(t, newTestRouter(&mocks.MockTaskService{}), http.MethodGet, "/Tarefa/ObterTodos"+query, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, MsgInvalidPaging, errorMessage(t, rec))
		})
	}

	t.Run("service error", func(t *testing.T) {
		svc := &mocks.MockTaskService{DefaultError: errDatabaseDown}

		rec := serve(t, newTestRouter(svc), http.MethodGet, "/Tarefa/ObterTodos", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestTaskHandlerGetByTitle(t *testing.T) {
	t.Run("found with trimmed text", func(t *testing.T) {
		var gotText string
		svc := &mocks.MockTaskService{
			GetByTitleFn: func(_ context.Context, text string) ([]*domain.Task, error) {
				gotText = text
				return sampleTasks(2), nil
			},
		}

		rec := serve(t, newTestRouter(svc), http.MethodGet, "/Tarefa/ObterPorTitulo?titulo=%20relat%20", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "relat", gotText)
		var tasks []domain.Task
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
		assert.Len(t, tasks, 2)
	})

	t.Run("missing parameter", func(t *testing.T) {
		for _, target := range []string{"/Tarefa/ObterPorTitulo", "/Tarefa/ObterPorTitulo?titulo=%20%20"} {
			rec := serve(t, newTestRouter(&mocks.MockTaskService{}), http.MethodGet, target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, MsgTitleRequired, errorMessage(t, rec))
		}
	})

	t.Run("no match", func(t *testing.T) {
		rec := serve(t, newTestRouter(&mocks.MockTaskService{}), http.MethodGet, "/Tarefa/ObterPorTitulo?titulo=nada", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, errorMessage(t, rec), "'nada'")
	})
}

func TestTaskHandlerGetByDate(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		var gotDate time.Time
		svc := &mocks.MockTaskService{
			GetByDateFn: func(_ context.Context, date time.Time) ([]*domain.Task, error) {
				gotDate = date
				return sampleTasks(1), nil
			},
		}

		rec := serve(t, newTestRouter(svc), http.MethodGet, "/Tarefa/ObterPorData?data=2026-01-18", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC), gotDate)
	})

	t.Run("no tasks on date", func(t *testing.T) {
		rec := serve(t, newTestRouter(&mocks.MockTaskService{}), http.MethodGet, "/Tarefa/ObterPorData?data=2026-01-18", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, errorMessage(t, rec), "2026-01-18")
	})

	for _, target := range []string{"/Tarefa/ObterPorData", "/Tarefa/ObterPorData?data=ontem", "/Tarefa/ObterPorData?data=0001-01-01"} {
		t.Run("invalid "+target, func(t *testing.T) {
			rec := serve(t, newTestRouter(&mocks.MockTaskService{}), http.MethodGet, target, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, MsgDateRequired, errorMessage(t, rec))
		})
	}
}

func TestTaskHandlerGetByStatus(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		tasks      []*domain.Task
		wantStatus int
		wantParsed domain.Status
	}{
		{"by name", "?status=Finalizado", sampleTasks(1), http.StatusOK, domain.StatusDone},
		{"case insensitive", "?status=emandamento", sampleTasks(1), http.StatusOK, domain.StatusInProgress},
		{"by ordinal", "?status=0", sampleTasks(1), http.StatusOK, domain.StatusPending},
		{"no tasks", "?status=2", nil, http.StatusNoContent, domain.StatusDone},
		{"missing", "", nil, http.StatusBadRequest, ""},
		{"unknown name", "?status=Cancelado", nil, http.StatusBadRequest, ""},
		{"ordinal out of range", "?status=3", nil, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.Status
			svc := &mocks.MockTaskService{
				GetByStatusFn: func(_ context.Context, status domain.Status) ([]*domain.Task, error) {
					got = status
					return tt.tasks, nil
				},
			}

			rec := serve(t, newTestRouter(svc), http.MethodGet, "/Tarefa/ObterPorStatus"+tt.query, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantParsed, got)
		})
	}
}

func TestTaskHandlerCreate(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		var received *domain.Task
		svc := &mocks.MockTaskService{
			CreateFn: func(_ context.Context, task *domain.Task) (domain.Result, error) {
				received = task
				task.ID = 7
				return domain.Ok(), nil
			},
		}

		rec := serve(t, newTestRouter(svc), http.MethodPost, "/Tarefa",
			`{"id":0,"titulo":"Relatorio","descricao":"Mensal","data":"2026-01-18"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "/Tarefa/7", rec.Header().Get("Location"))
		require.NotNil(t, received)
		assert.Equal(t, domain.StatusPending, received.Status)

		var got domain.Task
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, "Relatorio", got.Title)
	})

	tests := []struct {
		name       string
		body       string
		result     domain.Result
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "empty body",
			body:       "",
			wantStatus: http.StatusBadRequest,
			wantMsg:    MsgBodyRequired,
		},
		{
			name:       "malformed json",
			body:       `{"titulo":`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    MsgInvalidBody,
		},
		{
			name:       "invalid status",
			body:       `{"titulo":"a","data":"2026-01-18","status":"Cancelado"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    MsgInvalidStatus,
		},
		{
			name:       "invalid date",
			body:       `{"titulo":"a","data":"18/01/2026"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    MsgInvalidDate,
		},
		{
			name:       "missing date",
			body:       `{"titulo":"a"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    MsgInvalidDate,
		},
		{
			name:       "client supplied id",
			body:       `{"id":5,"titulo":"a","data":"2026-01-18"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    MsgIDNotAllowed,
		},
		{
			name:       "title required",
			body:       `{"titulo":"  ","data":"2026-01-18"}`,
			result:     domain.Fail(domain.FailureValidation, service.MsgTitleRequired),
			wantStatus: http.StatusBadRequest,
			wantMsg:    service.MsgTitleRequired,
		},
		{
			name:       "duplicate",
			body:       `{"titulo":"a","data":"2026-01-18"}`,
			result:     domain.Fail(domain.FailureConflict, service.MsgDuplicateTask),
			wantStatus: http.StatusConflict,
			wantMsg:    service.MsgDuplicateTask,
		},
		{
			name:       "service error",
			body:       `{"titulo":"a","data":"2026-01-18"}`,
			err:        errDatabaseDown,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    MsgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mocks.MockTaskService{
				CreateFn: func(context.Context, *domain.Task) (domain.Result, error) {
					return tt.result, tt.err
				},
			}

			rec := serve(t, newTestRouter(svc), http.MethodPost, "/Tarefa", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(t, rec))
			assert.Empty(t, rec.Header().Get("Location"))
		})
	}
}

func TestTaskHandlerUpdate(t *testing.T) {
	validBody := `{"titulo":"Novo","descricao":"d","data":"2026-02-01","status":"EmAndamento"}`

	t.Run("updated", func(t *testing.T) {
		var gotID int64
		var gotTask *domain.Task
		svc := &mocks.MockTaskService{
			UpdateFn: func(_ context.Context, id int64, task *domain.Task) (domain.Result, error) {
				gotID, gotTask = id, task
				return domain.Ok(), nil
			},
		}

		rec := serve(t, newTestRouter(svc), http.MethodPut, "/Tarefa/4", validBody)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, int64(4), gotID)
		require.NotNil(t, gotTask)
		assert.Equal(t, int64(4), gotTask.ID)
		assert.Equal(t, domain.StatusInProgress, gotTask.Status)
	})

	t.Run("matching body id", func(t *testing.T) {
		rec := serve(t, newTestRouter(&mocks.MockTaskService{}), http.MethodPut, "/Tarefa/4",
			`{"id":4,"titulo":"Novo","data":"2026-02-01"}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	tests := []struct {
		name       string
		target     string
		body       string
		result     domain.Result
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "id mismatch",
			target:     "/Tarefa/4",
			body:       `{"id":5,"titulo":"Novo","data":"2026-02-01"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    MsgIDMismatch,
		},
		{
			name:       "invalid id",
			target:     "/Tarefa/x",
			body:       validBody,
			wantStatus: http.StatusBadRequest,
			wantMsg:    MsgInvalidID,
		},
		{
			name:       "not found",
			target:     "/Tarefa/4",
			body:       validBody,
			result:     domain.Fail(domain.FailureNotFound, service.MsgTaskNotFound),
			wantStatus: http.StatusNotFound,
			wantMsg:    service.MsgTaskNotFound,
		},
		{
			name:       "duplicate of another task",
			target:     "/Tarefa/4",
			body:       validBody,
			result:     domain.Fail(domain.FailureConflict, service.MsgDuplicateOtherTask),
			wantStatus: http.StatusConflict,
			wantMsg:    service.MsgDuplicateOtherTask,
		},
		{
			name:       "service error",
			target:     "/Tarefa/4",
			body:       validBody,
			err:        errDatabaseDown,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    MsgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mocks.MockTaskService{
				UpdateFn: func(context.Context, int64, *domain.Task) (domain.Result, error) {
					return tt.result, tt.err
				},
			}

			rec := serve(t, newTestRouter(svc), http.MethodPut, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(t, rec))
		})
	}
}

func TestTaskHandlerDelete(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		deleted    bool
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"deleted", "/Tarefa/3", true, nil, http.StatusNoContent, ""},
		{"missing", "/Tarefa/3", false, nil, http.StatusNotFound, MsgNothingDeleted},
		{"invalid id", "/Tarefa/-3", false, nil, http.StatusBadRequest, MsgInvalidID},
		{"service error", "/Tarefa/3", false, errDatabaseDown, http.StatusInternalServerError, MsgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mocks.MockTaskService{
				DeleteFn: func(context.Context, int64) (bool, error) {
					return tt.deleted, tt.err
				},
			}

			rec := serve(t, newTestRouter(svc), http.MethodDelete, tt.target, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg == "" {
				assert.Empty(t, rec.Body.String())
				return
			}
			assert.Equal(t, tt.wantMsg, errorMessage(t, rec))
		})
	}
}

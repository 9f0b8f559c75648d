package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/trilhaapi/tarefa-api/internal/api/shared"
	"github.com/trilhaapi/tarefa-api/internal/domain"
	"github.com/trilhaapi/tarefa-api/internal/platform/logger"
	"github.com/trilhaapi/tarefa-api/internal/service"
)

// Pagination response headers set by GetAll.
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderPage       = "X-Page"
	HeaderPageSize   = "X-Page-Size"
)

// TaskHandler handles task-related HTTP requests under /Tarefa.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// GetByID handles GET /Tarefa/{id}.
func (h *TaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidID)
		return
	}

	task, err := h.taskService.GetByID(r.Context(), id)
	if err != nil {
		h.respondInternal(w, r, err)
		return
	}
	if task == nil {
		shared.RespondWithError(w, r, http.StatusNotFound, MsgTaskNotFound)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// GetAll handles GET /Tarefa/ObterTodos?page=&pageSize=.
// It responds 204 when there are no tasks at all.
func (h *TaskHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := getPageParams(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidPaging)
		return
	}

	result, err := h.taskService.GetPage(r.Context(), page, pageSize)
	if err != nil {
		h.respondInternal(w, r, err)
		return
	}
	if result.Total == 0 {
		shared.RespondNoContent(w)
		return
	}

	w.Header().Set(HeaderTotalCount, strconv.Itoa(result.Total))
	w.Header().Set(HeaderPage, strconv.Itoa(result.Page))
	w.Header().Set(HeaderPageSize, strconv.Itoa(result.PageSize))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetByTitle handles GET /Tarefa/ObterPorTitulo?titulo=.
func (h *TaskHandler) GetByTitle(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("titulo"))
	if title == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgTitleRequired)
		return
	}

	tasks, err := h.taskService.GetByTitle(r.Context(), title)
	if err != nil {
		h.respondInternal(w, r, err)
		return
	}
	if len(tasks) == 0 {
		shared.RespondWithError(w, r, http.StatusNotFound,
			fmt.Sprintf("No task found with the given title: '%s'", title))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetByDate handles GET /Tarefa/ObterPorData?data=.
func (h *TaskHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	date, err := parseDate(r.URL.Query().Get("data"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgDateRequired)
		return
	}

	tasks, err := h.taskService.GetByDate(r.Context(), date)
	if err != nil {
		h.respondInternal(w, r, err)
		return
	}
	if len(tasks) == 0 {
		day := date.Format("2006-01-02")
		log.Info("no tasks found for date", slog.String("date", day))
		shared.RespondWithError(w, r, http.StatusNotFound,
			fmt.Sprintf("No task found for the given date: %s", day))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetByStatus handles GET /Tarefa/ObterPorStatus?status=.
// It responds 204 when no task has the status.
func (h *TaskHandler) GetByStatus(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("status")
	if strings.TrimSpace(raw) == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgStatusRequired)
		return
	}
	status, err := domain.ParseStatus(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidStatus)
		return
	}

	tasks, err := h.taskService.GetByStatus(r.Context(), status)
	if err != nil {
		h.respondInternal(w, r, err)
		return
	}
	if len(tasks) == 0 {
		shared.RespondNoContent(w)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Create handles POST /Tarefa.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	req, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}
	if req.ID != 0 {
		log.Warn("id supplied on create", slog.Int64("body_id", req.ID))
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgIDNotAllowed)
		return
	}

	task := req.ToDomain()
	result, err := h.taskService.Create(r.Context(), task)
	if err != nil {
		h.respondInternal(w, r, err)
		return
	}
	if !result.Success() {
		log.Info("task creation rejected",
			slog.String("reason", result.Kind().String()),
			slog.String("message", result.Message()))
		shared.RespondWithError(w, r, StatusForFailure(result.Kind()), result.Message())
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/Tarefa/%d", task.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// Update handles PUT /Tarefa/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		log.Warn("invalid id on update", slog.String("id", r.URL.Path))
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidID)
		return
	}

	req, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}
	if req.ID != 0 && req.ID != id {
		log.Warn("route id differs from body id",
			slog.Int64("route_id", id),
			slog.Int64("body_id", req.ID))
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgIDMismatch)
		return
	}

	task := req.ToDomain()
	task.ID = id
	result, err := h.taskService.Update(r.Context(), id, task)
	if err != nil {
		h.respondInternal(w, r, err)
		return
	}
	if !result.Success() {
		log.Info("task update rejected",
			slog.Int64("task_id", id),
			slog.String("reason", result.Kind().String()),
			slog.String("message", result.Message()))
		shared.RespondWithError(w, r, StatusForFailure(result.Kind()), result.Message())
		return
	}

	shared.RespondNoContent(w)
}

// Delete handles DELETE /Tarefa/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidID)
		return
	}

	deleted, err := h.taskService.Delete(r.Context(), id)
	if err != nil {
		h.respondInternal(w, r, err)
		return
	}
	if !deleted {
		shared.RespondWithError(w, r, http.StatusNotFound, MsgNothingDeleted)
		return
	}

	shared.RespondNoContent(w)
}

// decodeTaskRequest reads and validates a task body, writing a 400 response
// when it cannot be used.
func (h *TaskHandler) decodeTaskRequest(w http.ResponseWriter, r *http.Request) (*TaskRequest, bool) {
	var req TaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		msg := MsgInvalidBody
		switch {
		case errors.Is(err, shared.ErrEmptyBody):
			msg = MsgBodyRequired
		case errors.Is(err, domain.ErrInvalidStatus):
			msg = MsgInvalidStatus
		case errors.Is(err, domain.ErrInvalidDueDate):
			msg = MsgInvalidDate
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msg, err)
		return nil, false
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return nil, false
	}

	if req.DueDate.IsZero() {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidDate)
		return nil, false
	}

	return &req, true
}

// respondInternal logs err and writes a generic 500 response.
func (h *TaskHandler) respondInternal(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

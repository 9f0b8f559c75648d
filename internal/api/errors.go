package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/trilhaapi/tarefa-api/internal/domain"
	"github.com/trilhaapi/tarefa-api/internal/store"
)

// Client-facing error messages.
const (
	MsgInternalError    = "Internal error while processing the request"
	MsgInvalidID        = "Invalid id"
	MsgTaskNotFound     = "No task found with the given id"
	MsgInvalidPaging    = "Invalid parameters: 'page' and 'pageSize' must be positive and 'pageSize' at most 100"
	MsgTitleRequired    = "The 'titulo' parameter is required"
	MsgDateRequired     = "The 'data' parameter is required and must be a valid date (e.g. 2026-01-18)"
	MsgStatusRequired   = "The 'status' parameter is required"
	MsgInvalidStatus    = "Invalid 'status' value"
	MsgBodyRequired     = "Task body is required"
	MsgInvalidBody      = "Invalid request body"
	MsgInvalidDate      = "Invalid date"
	MsgIDMismatch       = "The resource id does not match the route id"
	MsgIDNotAllowed     = "The id is assigned by the server and must be omitted or 0"
	MsgNothingDeleted   = "ID not found, no task was deleted"
	MsgServiceUnhealthy = "Service unavailable"
)

// StatusForFailure maps a business rule failure to an HTTP status code.
func StatusForFailure(kind domain.FailureKind) int {
	switch kind {
	case domain.FailureConflict:
		return http.StatusConflict
	case domain.FailureNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrInvalidDueDate),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &verrs):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgInternalError
	}

	var verr *domain.ValidationError
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verr):
		return fmt.Sprintf("Invalid %s: %s", verr.Field, verr.Message)
	case errors.As(err, &verrs):
		return SanitizeValidationError(err)
	case errors.Is(err, domain.ErrInvalidID):
		return MsgInvalidID
	case errors.Is(err, domain.ErrInvalidStatus):
		return MsgInvalidStatus
	case errors.Is(err, domain.ErrInvalidDueDate):
		return MsgInvalidDate
	case errors.Is(err, store.ErrNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrDuplicate):
		return "Task already exists"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid task data"
	default:
		return MsgInternalError
	}
}

// SanitizeValidationError turns validator errors into a short message naming
// the offending fields without exposing Go type names.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag())))
	}
	return strings.Join(parts, "; ")
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte", "gt":
		return "too small"
	case "max", "lte", "lt":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

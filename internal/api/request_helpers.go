package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/trilhaapi/tarefa-api/internal/domain"
)

// Paging limits for ObterTodos.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// dateLayouts are tried in order by parseDate.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate parses a date or timestamp. The zero time is rejected.
func parseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, value, time.UTC)
		if err != nil {
			continue
		}
		if t.IsZero() {
			break
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDueDate, raw)
}

// getPathID extracts a positive integer id from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}
	return id, nil
}

// getPageParams reads page and pageSize from the query string, applying
// defaults for absent values.
func getPageParams(r *http.Request) (int, int, error) {
	q := r.URL.Query()

	page, err := intParam(q.Get("page"), DefaultPage)
	if err != nil || page < 1 {
		return 0, 0, domain.NewValidationError("page", "must be a positive integer", nil)
	}

	pageSize, err := intParam(q.Get("pageSize"), DefaultPageSize)
	if err != nil || pageSize < 1 || pageSize > MaxPageSize {
		return 0, 0, domain.NewValidationError("pageSize", "must be between 1 and 100", nil)
	}

	return page, pageSize, nil
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

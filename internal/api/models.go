package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/trilhaapi/tarefa-api/internal/domain"
)

// TaskRequest defines the payload for creating or updating a task.
type TaskRequest struct {
	// ID must be 0 or absent on create; on update it must be 0 or match the route id.
	ID          int64          `json:"id"        validate:"gte=0"`
	Title       string         `json:"titulo"`
	Description string         `json:"descricao"`
	DueDate     Date           `json:"data"`
	Status      *domain.Status `json:"status"`
}

// ToDomain converts the request into a task. A missing status defaults to
// domain.StatusPending.
func (r *TaskRequest) ToDomain() *domain.Task {
	status := domain.StatusPending
	if r.Status != nil {
		status = *r.Status
	}
	return &domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate.Time,
		Status:      status,
	}
}

// Date is a time accepted either as a calendar date (2006-01-02) or as a
// timestamp with or without a zone. Values without a zone are taken as UTC.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler. null leaves the zero value.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidDueDate, string(data))
	}
	if raw == "" {
		return nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

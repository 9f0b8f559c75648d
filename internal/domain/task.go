package domain

import (
	"strings"
	"time"
)

// Task is a unit of work tracked by the application.
// ID is assigned by the store when the task is first persisted.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"titulo"`
	Description string    `json:"descricao"`
	DueDate     time.Time `json:"data"`
	Status      Status    `json:"status"`
}

// HasTitle reports whether the task has a title with at least one
// non-whitespace character.
func (t *Task) HasTitle() bool {
	return strings.TrimSpace(t.Title) != ""
}

// Validate checks that the task carries the fields required for persistence.
// It does not check uniqueness, which needs the store.
func (t *Task) Validate() error {
	if !t.HasTitle() {
		return NewValidationError("titulo", "is required", ErrEmptyTitle)
	}
	if t.DueDate.IsZero() {
		return NewValidationError("data", "must be a valid date", ErrInvalidDueDate)
	}
	if !t.Status.IsValid() {
		return NewValidationError("status", "is not a valid status", ErrInvalidStatus)
	}
	return nil
}

// ApplyChanges overwrites the mutable fields of t with those of other.
// The ID of t is left untouched.
func (t *Task) ApplyChanges(other *Task) {
	t.Title = other.Title
	t.Description = other.Description
	t.DueDate = other.DueDate
	t.Status = other.Status
}

// DayBounds returns the half-open interval [start, end) covering the calendar
// day of d, always taken in UTC.
func DayBounds(d time.Time) (time.Time, time.Time) {
	d = d.UTC()
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

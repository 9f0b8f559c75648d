package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Status represents the progress state of a task.
type Status string

// Possible task status values. The order defines the ordinal accepted by ParseStatus.
const (
	StatusPending    Status = "Pendente"
	StatusInProgress Status = "EmAndamento"
	StatusDone       Status = "Finalizado"
)

// Statuses lists every valid status in ordinal order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusDone}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a status name (case-insensitive) or its ordinal
// ("0", "1", "2") into a Status.
func ParseStatus(raw string) (Status, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", ErrInvalidStatus
	}

	if n, err := strconv.Atoi(value); err == nil {
		if n < 0 || n >= len(Statuses) {
			return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
		}
		return Statuses[n], nil
	}

	for _, s := range Statuses {
		if strings.EqualFold(string(s), value) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// UnmarshalJSON accepts either the status name or its ordinal number.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseStatus(name)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}

	var ordinal int
	if err := json.Unmarshal(data, &ordinal); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, string(data))
	}
	parsed, err := ParseStatus(strconv.Itoa(ordinal))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Package service contains the task use cases. It enforces the business rules
// that need the store to check (a non-empty title and the uniqueness of a
// title on a given day) and reports rule violations as domain.Result values.
//
// Infrastructure failures are never folded into a Result; they come back as
// errors wrapped in TaskServiceError so callers can tell "the request broke a
// rule" apart from "the request could not be processed".
//
// The service depends only on the store.TaskStore interface and never on a
// concrete database implementation.
package service

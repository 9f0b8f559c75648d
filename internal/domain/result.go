package domain

// FailureKind classifies why a mutating operation did not succeed.
type FailureKind int

// Failure kinds reported by Result. The zero value means no failure.
const (
	FailureNone FailureKind = iota
	FailureValidation
	FailureConflict
	FailureNotFound
)

// String implements fmt.Stringer.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureValidation:
		return "validation"
	case FailureConflict:
		return "conflict"
	case FailureNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Result is the outcome of a create or update. Business rule violations are
// reported here; infrastructure failures are returned as errors instead.
type Result struct {
	success bool
	message string
	kind    FailureKind
}

// Ok returns a successful Result.
func Ok() Result {
	return Result{success: true}
}

// Fail returns a failed Result of the given kind.
func Fail(kind FailureKind, message string) Result {
	return Result{kind: kind, message: message}
}

// Success reports whether the operation succeeded.
func (r Result) Success() bool { return r.success }

// Message describes the violated rule. It is empty on success.
func (r Result) Message() string { return r.message }

// Kind returns the failure classification, FailureNone on success.
func (r Result) Kind() FailureKind { return r.kind }

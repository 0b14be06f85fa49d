package attractor

import (
	"errors"
	"fmt"
)

// Domain errors for search operations.
var (
	// ErrInvalidParams indicates evaluation limits outside their valid range.
	ErrInvalidParams = errors.New("attractor: invalid evaluation parameters")

	// ErrAttemptsExhausted indicates the per-attractor attempt cap was reached.
	ErrAttemptsExhausted = errors.New("attractor: attempt cap reached without an accepted candidate")

	// ErrBudgetExhausted indicates the per-attractor wall-clock budget ran out.
	ErrBudgetExhausted = errors.New("attractor: time budget exhausted without an accepted candidate")
)

// SearchError wraps a search failure with the index of the attractor being
// searched for and the number of attempts spent on it.
type SearchError struct {
	Index    int
	Attempts int
	Wrapped  error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("attractor %d after %d attempts: %v", e.Index+1, e.Attempts, e.Wrapped)
}

func (e *SearchError) Unwrap() error {
	return e.Wrapped
}

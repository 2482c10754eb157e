package multierror

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/exp/constraints"

	"github.com/maxpoletaev/kivi-group/internal/generic"
)

// Error is a generic error type that allows to combine multiple errors into one,
// keyed by the entity that produced them.
type Error[T constraints.Ordered] struct {
	mu     sync.Mutex
	errors map[T]error
}

// New creates a new Error.
func New[T constraints.Ordered]() *Error[T] {
	return &Error[T]{
		errors: make(map[T]error),
	}
}

// Error returns a string representation of the error. Keys are sorted so the
// message is stable between calls.
func (m *Error[T]) Error() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	parts := make([]string, 0, len(m.errors))
	for _, k := range generic.SortedKeys(m.errors) {
		parts = append(parts, fmt.Sprintf("%v:%s", k, m.errors[k]))
	}

	return strings.Join(parts, "; ")
}

// Unwrap returns a slice of errors.
func (m *Error[T]) Unwrap() []error {
	m.mu.Lock()
	defer m.mu.Unlock()

	errs := make([]error, 0, len(m.errors))
	for _, k := range generic.SortedKeys(m.errors) {
		errs = append(errs, m.errors[k])
	}

	return errs
}

// Len returns the number of errors.
func (m *Error[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.errors)
}

// Add adds an error to the Error. Nil errors are ignored.
func (m *Error[T]) Add(key T, err error) {
	if err == nil {
		return
	}

	m.mu.Lock()
	m.errors[key] = err
	m.mu.Unlock()
}

// Ret returns the Error if it contains any errors, nil otherwise.
func (m *Error[T]) Ret() error {
	if m.Len() == 0 {
		return nil
	}

	return m
}

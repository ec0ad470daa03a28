package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when an operation references an id that is not in
// the collection. It signals a caller/UI desync, not a fatal condition.
var ErrNotFound = errors.New("record not found")

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

// ValidationError carries the per-field messages for an input that must not
// be persisted. The invoice store returns the same mapping the validator
// produced so the form surface can render inline messages.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// PersistenceError wraps a failed storage write or read. The in-memory
// collection remains the source of truth for the rest of the session, so
// callers surface it as a non-blocking warning rather than rolling back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

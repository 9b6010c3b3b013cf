package service

import (
	"errors"
	"fmt"

	"github.com/bayscom/procurement/internal/procurement/repository"
)

// ValidationError rejects a single write because of one offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ReferenceError rejects a write whose referenced record does not exist.
type ReferenceError struct {
	Field string
	ID    string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s refers to a record that does not exist: %s", e.Field, e.ID)
}

// refCheck turns a failed lookup of a referenced record into a
// ReferenceError, keeping other failures as-is.
func refCheck(err error, field, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &ReferenceError{Field: field, ID: id}
	}
	return err
}

// TransitionError rejects a status move that is not adjacent in the
// entity's chain.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

// canTransition reports whether to is directly reachable from from in the
// given adjacency map. Terminal statuses have no entry, so nothing is
// reachable from them.
func canTransition(valid map[string][]string, from, to string) bool {
	for _, next := range valid[from] {
		if next == to {
			return true
		}
	}
	return false
}

// oneOf reports membership in a closed status set.
func oneOf(value string, set []string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

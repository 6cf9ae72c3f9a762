// Package order contains the pure business logic for service-order
// operations. Guards are pure functions that evaluate preconditions
// without side effects.
package order

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a referenced order or schedule id does not
// exist in the store.
var ErrNotFound = errors.New("not found")

// PreconditionError indicates required context is missing before an
// operation may run (e.g. no operator identity configured). No partial
// state is written.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %s", e.Reason)
}

// ValidationError indicates a business-rule violation on the operation
// input or the current record state. No state is mutated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// DocumentError indicates the document generation bridge failed. It
// never rolls back an already-persisted order transition; the order
// can be re-rendered from stored data later.
type DocumentError struct {
	OrderID string
	Err     error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document generation failed for order %s: %v", e.OrderID, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

package order

import (
	"errors"
	"fmt"

	"bakeshop/internal/validation"
)

// ErrUnknownCollection is returned when a delete targets a collection that
// is not one of the order collections.
var ErrUnknownCollection = errors.New("unknown order collection")

// ValidationFailure carries the ordered field errors of a rejected
// submission. Nothing is charged or persisted when it is returned.
type ValidationFailure struct {
	Errors validation.Errors
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("submission rejected with %d field errors", len(e.Errors))
}

// PaymentFailure carries the gateway's message for a declined or faulted
// charge. No record is persisted for a failed charge.
type PaymentFailure struct {
	Message string
}

func (e *PaymentFailure) Error() string {
	return "payment failed: " + e.Message
}

// PersistenceFailure wraps a store error. It is reported generically to
// clients and with full detail to operators.
type PersistenceFailure struct {
	Err error
}

func (e *PersistenceFailure) Error() string {
	return "persistence failed: " + e.Err.Error()
}

func (e *PersistenceFailure) Unwrap() error {
	return e.Err
}

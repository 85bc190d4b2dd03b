package content

import (
	"fmt"

	"bakeshop/internal/validation"
)

// ValidationFailure carries the field errors of a rejected submission.
type ValidationFailure struct {
	Errors validation.Errors
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("validation failed with %d errors", len(e.Errors))
}

// BlobFailure is a storage-side image problem reported to the client with
// its own message instead of the generic database error.
type BlobFailure struct {
	Msg string
}

func (e *BlobFailure) Error() string {
	return e.Msg
}

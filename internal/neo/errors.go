// internal/neo/errors.go
package neo

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldMissing reports a required record field that is absent or null.
	ErrFieldMissing = errors.New("required field missing")
	// ErrTypeMismatch reports a field whose JSON type is not the expected one.
	ErrTypeMismatch = errors.New("field has unexpected type")
	// ErrNumericParse reports a numeric string that does not hold a finite number.
	ErrNumericParse = errors.New("field is not a valid number")
	// ErrInvalidValue reports a value outside its physical range.
	ErrInvalidValue = errors.New("field value out of range")
	// ErrNoRecord is returned when a feed holds no record for the requested date or index.
	ErrNoRecord = errors.New("no NEO record")
)

// RecordError locates a parse failure in a NEO record. Err is one of the
// sentinel errors above, possibly wrapping a lower level cause.
type RecordError struct {
	Field string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("neo record field %q: %v", e.Field, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

func fieldError(field string, kind error, cause error) error {
	if cause == nil {
		return &RecordError{Field: field, Err: kind}
	}
	return &RecordError{Field: field, Err: fmt.Errorf("%w: %v", kind, cause)}
}

package services

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrEntryNotFound is returned when no entry exists for the requested date
var ErrEntryNotFound = errors.New("no entry found for this date")

// ValidationError reports input rejected before reaching the store
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// PersistenceError wraps a store failure caught at a mutation boundary
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistenceFailure(op string, err error) error {
	return &PersistenceError{Op: op, Err: pkgerrors.WithStack(err)}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsPersistence reports whether err is a PersistenceError
func IsPersistence(err error) bool {
	var p *PersistenceError
	return errors.As(err, &p)
}

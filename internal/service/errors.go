package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/noah-isme/projeval-api/internal/repository"
)

var (
	// ErrNotFound indicates the operation referenced a key that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a duplicate key or a referential integrity violation.
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput indicates a malformed request or a missing required field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStoreUnavailable indicates the store could not be reached or a write could not be committed.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Error carries one of the failure kinds together with its cause. It unwraps
// to both, so errors.Is matches the kind and errors.As reaches the cause.
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

// Unwrap exposes the kind and the cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Retryable reports whether a caller may retry the failed operation unchanged.
func Retryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// KindOf returns a short label for the failure kind of err, or "ok" for nil.
func KindOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "store_unavailable"
	}
}

func invalidInput(format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalidInput, Err: fmt.Errorf(format, args...)}
}

// classify maps store and validation failures onto the failure kinds.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return err
	}

	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		return &Error{Kind: ErrInvalidInput, Err: err}
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Kind: ErrNotFound, Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, repository.ErrReferenceNotFound),
		errors.Is(err, repository.ErrDependentRecords):
		return &Error{Kind: ErrConflict, Err: err}
	case errors.Is(err, repository.ErrAccountsUnsupported),
		errors.Is(err, gorm.ErrInvalidData),
		errors.Is(err, gorm.ErrInvalidValue),
		errors.Is(err, gorm.ErrEmptySlice):
		return &Error{Kind: ErrInvalidInput, Err: err}
	default:
		// Unreachable stores, deadlines and failed commits all land here.
		return &Error{Kind: ErrStoreUnavailable, Err: err}
	}
}

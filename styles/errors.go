package styles

import (
	"errors"
	"fmt"
)

// Sentinel errors for error type checking
var (
	// ErrDuplicate indicates a style name registered twice in one document
	ErrDuplicate = errors.New("duplicate style")

	// ErrUnknown indicates a style name referenced but never defined
	ErrUnknown = errors.New("unknown style")
)

// DuplicateError represents a second registration of an already-registered
// style name.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate style %q", e.Name)
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicate
}

// NewDuplicateError creates a new duplicate style error
func NewDuplicateError(name string) error {
	return &DuplicateError{Name: name}
}

// UnknownError represents a reference to a style name that was never
// registered.
type UnknownError struct {
	Name string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown style %q", e.Name)
}

func (e *UnknownError) Unwrap() error {
	return ErrUnknown
}

// NewUnknownError creates a new unknown style error
func NewUnknownError(name string) error {
	return &UnknownError{Name: name}
}

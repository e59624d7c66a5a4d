package bind

import (
	"errors"
	"fmt"

	"bennypowers.dev/uidl/tree"
)

// ErrUnresolved indicates a placeholder referencing a variable the host
// never supplied. Recoverable by policy: the binder surfaces it, but the
// index is still usable with the placeholder kept as literal text.
var ErrUnresolved = errors.New("unresolved variable")

// UnresolvedVariableError represents a placeholder whose variable name has
// no value in the supplied mapping.
type UnresolvedVariableError struct {
	Name    string
	Element tree.ElementID
	Key     string
}

func (e *UnresolvedVariableError) Error() string {
	return fmt.Sprintf("unresolved variable %q in attribute %q of element %d", e.Name, e.Key, int(e.Element))
}

func (e *UnresolvedVariableError) Unwrap() error {
	return ErrUnresolved
}

// NewUnresolvedVariableError creates a new unresolved variable error
func NewUnresolvedVariableError(name string, element tree.ElementID, key string) error {
	return &UnresolvedVariableError{Name: name, Element: element, Key: key}
}

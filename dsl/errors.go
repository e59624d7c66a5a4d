package dsl

import (
	"errors"
	"fmt"
)

// Sentinel errors for error type checking
var (
	// ErrLex indicates a malformed token in the source text
	ErrLex = errors.New("lex error")

	// ErrParse indicates a grammar violation
	ErrParse = errors.New("parse error")
)

// LexError represents a malformed token. It aborts tokenization and reports
// the position of the offending character.
type LexError struct {
	Loc     Location
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Message)
}

func (e *LexError) Unwrap() error {
	return ErrLex
}

// NewLexError creates a new lex error
func NewLexError(loc Location, format string, args ...any) error {
	return &LexError{Loc: loc, Message: fmt.Sprintf(format, args...)}
}

// ParseError represents a grammar violation. It aborts parsing and reports
// the position, the expected construct, and what was found instead.
type ParseError struct {
	Loc      Location
	Expected string
	Found    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: expected %s, found %s", e.Loc, e.Expected, e.Found)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// NewParseError creates a new parse error
func NewParseError(loc Location, expected, found string) error {
	return &ParseError{Loc: loc, Expected: expected, Found: found}
}

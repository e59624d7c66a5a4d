package dsl

import (
	"fmt"

	"bennypowers.dev/uidl/value"
)

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	// TokenEOF is the end-of-input sentinel, always the final token
	TokenEOF TokenKind = iota
	// TokenIdent is an identifier: [A-Za-z_][A-Za-z0-9_]*
	TokenIdent
	// TokenString is a quoted string literal with escape processing
	TokenString
	// TokenNumber is an integer or decimal literal
	TokenNumber
	// TokenPercent is a number glued to %w or %h (no intervening space)
	TokenPercent
	// TokenLParen is '('
	TokenLParen
	// TokenRParen is ')'
	TokenRParen
	// TokenLBrace is '{'
	TokenLBrace
	// TokenRBrace is '}'
	TokenRBrace
	// TokenLBracket is '['
	TokenLBracket
	// TokenRBracket is ']'
	TokenRBracket
	// TokenComma is ','
	TokenComma
	// TokenEquals is '='
	TokenEquals
)

var tokenNames = map[TokenKind]string{
	TokenEOF:      "end of input",
	TokenIdent:    "identifier",
	TokenString:   "string",
	TokenNumber:   "number",
	TokenPercent:  "percent literal",
	TokenLParen:   "'('",
	TokenRParen:   "')'",
	TokenLBrace:   "'{'",
	TokenRBrace:   "'}'",
	TokenLBracket: "'['",
	TokenRBracket: "']'",
	TokenComma:    "','",
	TokenEquals:   "'='",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(k))
}

// Location is a position in the source text.
// Line is 1-based; Column is a 0-based character offset within the line.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("line %d, col %d", l.Line, l.Column)
}

// Token is a lexical unit with its decoded payload and source position.
type Token struct {
	Kind   TokenKind
	Lexeme string     // exact source slice
	Str    string     // decoded literal for TokenString
	Num    float64    // magnitude for TokenNumber and TokenPercent
	Axis   value.Axis // axis for TokenPercent
	Loc    Location
}

// describe renders a token for "expected X, found Y" diagnostics.
func (t Token) describe() string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenIdent, TokenNumber, TokenPercent:
		return fmt.Sprintf("'%s'", t.Lexeme)
	case TokenString:
		return fmt.Sprintf("string %q", t.Str)
	default:
		return t.Kind.String()
	}
}

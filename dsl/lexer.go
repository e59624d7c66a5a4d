package dsl

import (
	"strconv"
	"strings"

	"bennypowers.dev/uidl/value"
)

// Tokenize scans source text into a token stream ending with a TokenEOF
// token. It fails with a *LexError on the first malformed token.
func Tokenize(source string) ([]Token, error) {
	lx := &lexer{src: source, line: 1}
	var toks []Token
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func (lx *lexer) loc() Location {
	return Location{Line: lx.line, Column: lx.col}
}

func (lx *lexer) peek() byte {
	if lx.pos >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos]
}

func (lx *lexer) advance() byte {
	ch := lx.src[lx.pos]
	lx.pos++
	if ch == '\n' {
		lx.line++
		lx.col = 0
	} else {
		lx.col++
	}
	return ch
}

func (lx *lexer) skipBlanksAndComments() {
	for lx.pos < len(lx.src) {
		switch lx.peek() {
		case ' ', '\t', '\r', '\n':
			lx.advance()
		case '#':
			// line comment: runs to end of line
			for lx.pos < len(lx.src) && lx.peek() != '\n' {
				lx.advance()
			}
		default:
			return
		}
	}
}

var punctuation = map[byte]TokenKind{
	'(': TokenLParen,
	')': TokenRParen,
	'{': TokenLBrace,
	'}': TokenRBrace,
	'[': TokenLBracket,
	']': TokenRBracket,
	',': TokenComma,
	'=': TokenEquals,
}

func (lx *lexer) next() (Token, error) {
	lx.skipBlanksAndComments()
	loc := lx.loc()

	if lx.pos >= len(lx.src) {
		return Token{Kind: TokenEOF, Loc: loc}, nil
	}

	ch := lx.peek()
	switch {
	case isIdentStart(ch):
		return lx.lexIdent(loc), nil
	case ch == '"' || ch == '\'':
		return lx.lexString(loc)
	case isDigit(ch) || ch == '-':
		return lx.lexNumber(loc)
	}

	if kind, ok := punctuation[ch]; ok {
		lx.advance()
		return Token{Kind: kind, Lexeme: string(ch), Loc: loc}, nil
	}

	return Token{}, NewLexError(loc, "unexpected character %q", string(ch))
}

func (lx *lexer) lexIdent(loc Location) Token {
	start := lx.pos
	for lx.pos < len(lx.src) && isIdentPart(lx.peek()) {
		lx.advance()
	}
	return Token{Kind: TokenIdent, Lexeme: lx.src[start:lx.pos], Loc: loc}
}

func (lx *lexer) lexString(loc Location) (Token, error) {
	quote := lx.advance()
	var sb strings.Builder
	start := lx.pos - 1
	for {
		if lx.pos >= len(lx.src) || lx.peek() == '\n' {
			return Token{}, NewLexError(loc, "unterminated string")
		}
		ch := lx.advance()
		if ch == quote {
			break
		}
		if ch == '\\' {
			if lx.pos >= len(lx.src) {
				return Token{}, NewLexError(loc, "unterminated string")
			}
			esc := lx.advance()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '\\', '"', '\'':
				sb.WriteByte(esc)
			default:
				return Token{}, NewLexError(loc, "invalid escape sequence '\\%s'", string(esc))
			}
			continue
		}
		sb.WriteByte(ch)
	}
	return Token{Kind: TokenString, Lexeme: lx.src[start:lx.pos], Str: sb.String(), Loc: loc}, nil
}

func (lx *lexer) lexNumber(loc Location) (Token, error) {
	start := lx.pos
	if lx.peek() == '-' {
		lx.advance()
		if !isDigit(lx.peek()) {
			return Token{}, NewLexError(loc, "malformed number: '-' without digits")
		}
	}
	for lx.pos < len(lx.src) && isDigit(lx.peek()) {
		lx.advance()
	}
	if lx.peek() == '.' {
		lx.advance()
		if !isDigit(lx.peek()) {
			return Token{}, NewLexError(loc, "malformed number: missing digits after '.'")
		}
		for lx.pos < len(lx.src) && isDigit(lx.peek()) {
			lx.advance()
		}
	}

	lexeme := lx.src[start:lx.pos]
	num, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return Token{}, NewLexError(loc, "malformed number %q", lexeme)
	}

	// A '%w' or '%h' suffix with no intervening whitespace makes this a
	// single percent token carrying the axis.
	if lx.peek() == '%' {
		lx.advance()
		axisCh := lx.peek()
		var axis value.Axis
		switch axisCh {
		case 'w':
			axis = value.AxisWidth
		case 'h':
			axis = value.AxisHeight
		default:
			return Token{}, NewLexError(loc, "expected 'w' or 'h' after '%%' in percent literal")
		}
		lx.advance()
		if isIdentPart(lx.peek()) {
			return Token{}, NewLexError(loc, "unexpected trailing characters after percent literal")
		}
		return Token{Kind: TokenPercent, Lexeme: lx.src[start:lx.pos], Num: num, Axis: axis, Loc: loc}, nil
	}

	// Any other identifier glued to the number is malformed (e.g. "10px").
	if isIdentStart(lx.peek()) {
		return Token{}, NewLexError(loc, "unexpected identifier after number %q", lexeme)
	}

	return Token{Kind: TokenNumber, Lexeme: lexeme, Num: num, Loc: loc}, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

package dsl

import (
	"fmt"

	"bennypowers.dev/uidl/value"
)

// Interaction-state names, canonical form.
const (
	StateNormal   = "normal"
	StateHover    = "hover"
	StatePress    = "press"
	StateDisabled = "disabled"
)

// CanonicalState maps a state-block name to its canonical form.
// "press" and "pressed" are synonyms for the same overlay slot.
func CanonicalState(name string) (string, bool) {
	switch name {
	case StateNormal, StateHover, StatePress, StateDisabled:
		return name, true
	case "pressed":
		return StatePress, true
	}
	return "", false
}

var elementTypes = map[string]NodeKind{
	"group":         NodeGroup,
	"button":        NodeElement,
	"label":         NodeElement,
	"input_text":    NodeElement,
	"text_area":     NodeElement,
	"space":         NodeElement,
	"dummy":         NodeElement,
	"sprite_widget": NodeElement,
}

// IsElementType reports whether name is a recognized element or group block
// identifier.
func IsElementType(name string) bool {
	_, ok := elementTypes[name]
	return ok
}

// Parse tokenizes and parses a source text. On success the result is a
// complete document: the root is an implicit group whose direct children are
// the top-level element/group blocks, and style blocks are extracted into
// Document.Styles without becoming tree nodes. Parsing is all-or-nothing; no
// partial document is returned on error.
func Parse(source string) (*Document, error) {
	toks, err := Tokenize(source)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	doc := &Document{
		Root: &Node{Kind: NodeGroup, Type: "group", Loc: Location{Line: 1}},
	}

	for p.peek().Kind != TokenEOF {
		tok := p.peek()
		if tok.Kind != TokenIdent {
			return nil, NewParseError(tok.Loc, "a top-level block", tok.describe())
		}
		if tok.Lexeme == "style" {
			style, err := p.parseStyleBlock()
			if err != nil {
				return nil, err
			}
			doc.Styles = append(doc.Styles, style)
			continue
		}
		node, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		doc.Root.Children = append(doc.Root.Children, node)
	}

	return doc, nil
}

type parser struct {
	toks []Token
	pos  int
}

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

func (p *parser) advance() Token {
	tok := p.toks[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return Token{}, NewParseError(tok.Loc, kind.String(), tok.describe())
	}
	return p.advance(), nil
}

// parseBlock parses IDENT "(" arg_list? ")" ( "{" block* "}" )?
func (p *parser) parseBlock() (*Node, error) {
	ident := p.advance()
	kind, known := elementTypes[ident.Lexeme]
	if !known {
		return nil, NewParseError(ident.Loc, "an element or group block", ident.describe())
	}

	node := &Node{Kind: kind, Type: ident.Lexeme, Loc: ident.Loc}

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	attrs, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	node.Attrs = attrs

	if p.peek().Kind != TokenLBrace {
		return node, nil
	}
	lbrace := p.advance()
	for p.peek().Kind != TokenRBrace {
		tok := p.peek()
		if tok.Kind == TokenEOF {
			// Anchor unbalanced-brace errors to the opening line.
			return nil, NewParseError(lbrace.Loc, "'}' closing this block", tok.describe())
		}
		if tok.Kind != TokenIdent {
			return nil, NewParseError(tok.Loc, "a child block or '}'", tok.describe())
		}
		if tok.Lexeme == "style" {
			return nil, NewParseError(tok.Loc, "a child block ('style' is only legal at document top level)", tok.describe())
		}
		child, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	p.advance() // '}'
	return node, nil
}

// parseArgList parses arg ("," arg)* up to the closing ')'.
func (p *parser) parseArgList() ([]Attr, error) {
	if p.peek().Kind == TokenRParen {
		p.advance()
		return nil, nil
	}

	var attrs []Attr
	for {
		attr, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)

		tok := p.peek()
		switch tok.Kind {
		case TokenRParen:
			p.advance()
			return attrs, nil
		case TokenComma:
			p.advance()
			if next := p.peek(); next.Kind == TokenRParen {
				return nil, NewParseError(next.Loc, "an argument after ','", next.describe())
			}
		default:
			return nil, NewParseError(tok.Loc, "',' or ')'", tok.describe())
		}
	}
}

// parseArg parses IDENT "=" value.
func (p *parser) parseArg() (Attr, error) {
	key, err := p.expect(TokenIdent)
	if err != nil {
		return Attr{}, err
	}
	if _, err := p.expect(TokenEquals); err != nil {
		return Attr{}, err
	}
	val, err := p.parseValue()
	if err != nil {
		return Attr{}, err
	}
	return Attr{Key: key.Lexeme, Value: val, Loc: key.Loc}, nil
}

// parseValue parses STRING | NUMBER | PERCENT | BOOL | tuple | array.
func (p *parser) parseValue() (value.Value, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokenString:
		p.advance()
		return value.String(tok.Str), nil
	case TokenNumber:
		p.advance()
		return value.Number(tok.Num), nil
	case TokenPercent:
		p.advance()
		return value.Percent(tok.Num, tok.Axis), nil
	case TokenIdent:
		switch tok.Lexeme {
		case "true":
			p.advance()
			return value.Bool(true), nil
		case "false":
			p.advance()
			return value.Bool(false), nil
		}
		return value.Value{}, NewParseError(tok.Loc, "a literal value", tok.describe())
	case TokenLParen:
		return p.parseTuple()
	case TokenLBracket:
		return p.parseArray()
	}
	return value.Value{}, NewParseError(tok.Loc, "a literal value", tok.describe())
}

// parseTuple parses "(" NUMBER ("," NUMBER){2,3} ")" into a color value.
func (p *parser) parseTuple() (value.Value, error) {
	open := p.advance() // '('
	var components []float64
	for {
		num, err := p.expect(TokenNumber)
		if err != nil {
			return value.Value{}, err
		}
		components = append(components, num.Num)

		tok := p.peek()
		if tok.Kind == TokenComma {
			p.advance()
			if next := p.peek(); next.Kind == TokenRParen {
				return value.Value{}, NewParseError(next.Loc, "a number after ','", next.describe())
			}
			continue
		}
		if tok.Kind == TokenRParen {
			p.advance()
			break
		}
		return value.Value{}, NewParseError(tok.Loc, "',' or ')'", tok.describe())
	}

	v, err := value.ColorTuple(components)
	if err != nil {
		return value.Value{}, NewParseError(open.Loc, "a tuple of 3 or 4 numbers", fmt.Sprintf("%d components", len(components)))
	}
	return v, nil
}

// parseArray parses "[" (STRING ("," STRING)*)? "]" into a string list.
func (p *parser) parseArray() (value.Value, error) {
	p.advance() // '['
	if p.peek().Kind == TokenRBracket {
		p.advance()
		return value.StringList(), nil
	}

	var items []string
	for {
		str, err := p.expect(TokenString)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, str.Str)

		tok := p.peek()
		if tok.Kind == TokenComma {
			p.advance()
			if next := p.peek(); next.Kind == TokenRBracket {
				return value.Value{}, NewParseError(next.Loc, "a string after ','", next.describe())
			}
			continue
		}
		if tok.Kind == TokenRBracket {
			p.advance()
			return value.StringList(items...), nil
		}
		return value.Value{}, NewParseError(tok.Loc, "',' or ']'", tok.describe())
	}
}

// parseStyleBlock parses "style" "(" "name" "=" STRING ")" "{" style_body "}"
// where style_body is (attr | state_block)*.
func (p *parser) parseStyleBlock() (StyleBlock, error) {
	p.advance() // 'style'

	if _, err := p.expect(TokenLParen); err != nil {
		return StyleBlock{}, err
	}
	nameKey, err := p.expect(TokenIdent)
	if err != nil {
		return StyleBlock{}, err
	}
	if nameKey.Lexeme != "name" {
		return StyleBlock{}, NewParseError(nameKey.Loc, "'name'", nameKey.describe())
	}
	if _, err := p.expect(TokenEquals); err != nil {
		return StyleBlock{}, err
	}
	nameVal, err := p.expect(TokenString)
	if err != nil {
		return StyleBlock{}, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return StyleBlock{}, err
	}

	style := StyleBlock{Name: nameVal.Str, States: map[string][]Attr{}, Loc: nameVal.Loc}

	lbrace, err := p.expect(TokenLBrace)
	if err != nil {
		return StyleBlock{}, err
	}
	for p.peek().Kind != TokenRBrace {
		if p.peek().Kind == TokenEOF {
			return StyleBlock{}, NewParseError(lbrace.Loc, "'}' closing this style block", p.peek().describe())
		}
		key, err := p.expect(TokenIdent)
		if err != nil {
			return StyleBlock{}, err
		}

		// A state name followed by '{' opens a state overlay; anything
		// else must be a base attribute.
		if state, ok := CanonicalState(key.Lexeme); ok && p.peek().Kind == TokenLBrace {
			attrs, err := p.parseStateBody()
			if err != nil {
				return StyleBlock{}, err
			}
			style.States[state] = append(style.States[state], attrs...)
			continue
		}

		if _, err := p.expect(TokenEquals); err != nil {
			return StyleBlock{}, err
		}
		val, err := p.parseValue()
		if err != nil {
			return StyleBlock{}, err
		}
		style.Base = append(style.Base, Attr{Key: key.Lexeme, Value: val, Loc: key.Loc})
	}
	p.advance() // '}'
	return style, nil
}

// parseStateBody parses "{" attr* "}" inside a style block.
func (p *parser) parseStateBody() ([]Attr, error) {
	p.advance() // '{'
	var attrs []Attr
	for p.peek().Kind != TokenRBrace {
		attr, err := p.parseStyleAttr()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	p.advance() // '}'
	return attrs, nil
}

// parseStyleAttr parses IDENT "=" value (no comma separators in style bodies).
func (p *parser) parseStyleAttr() (Attr, error) {
	key, err := p.expect(TokenIdent)
	if err != nil {
		return Attr{}, err
	}
	if _, err := p.expect(TokenEquals); err != nil {
		return Attr{}, err
	}
	val, err := p.parseValue()
	if err != nil {
		return Attr{}, err
	}
	return Attr{Key: key.Lexeme, Value: val, Loc: key.Loc}, nil
}

// Package uidl ties the pipeline together: parse a UI description source,
// register its styles, resolve the descriptor tree against a viewport, and
// bind dynamic variables. Hosts that want per-frame updates use Session.
package uidl

import (
	"errors"
	"fmt"

	"bennypowers.dev/uidl/bind"
	"bennypowers.dev/uidl/dsl"
	"bennypowers.dev/uidl/internal/collections"
	"bennypowers.dev/uidl/resolve"
	"bennypowers.dev/uidl/styles"
	"bennypowers.dev/uidl/tree"
	"bennypowers.dev/uidl/value"
)

// Parse parses a source text into its document and style registry.
func Parse(source string) (*dsl.Document, *styles.Registry, error) {
	doc, err := dsl.Parse(source)
	if err != nil {
		return nil, nil, err
	}
	registry, err := styles.Build(doc.Styles)
	if err != nil {
		return nil, nil, err
	}
	return doc, registry, nil
}

// ResolveTree resolves a parsed document into the descriptor tree handed to
// the renderer.
func ResolveTree(doc *dsl.Document, registry *styles.Registry, vp value.Viewport) (*tree.Tree, error) {
	return resolve.Tree(doc, registry, vp)
}

// BindVariables substitutes dynamic variables into the tree's string
// attributes and returns the binding index used for incremental updates.
func BindVariables(t *tree.Tree, vars bind.Variables) (*bind.Index, error) {
	return bind.Bind(t, vars)
}

// ApplyUpdate re-applies a binding index with a new variable snapshot and
// returns the IDs of elements whose attributes changed, in ascending order.
func ApplyUpdate(ix *bind.Index, vars bind.Variables) []tree.ElementID {
	changed := ix.Apply(vars)
	if len(changed) == 0 {
		return nil
	}
	return collections.SortedMembers(changed)
}

// Build runs the whole pipeline: parse, register styles, resolve against the
// viewport, and bind the initial variable snapshot. Unresolved variables are
// reported but do not discard the result: the tree and index come back valid
// with the placeholders kept literal, so the host chooses its own policy.
func Build(source string, vp value.Viewport, vars bind.Variables) (*tree.Tree, *bind.Index, error) {
	doc, registry, err := Parse(source)
	if err != nil {
		return nil, nil, err
	}
	t, err := ResolveTree(doc, registry, vp)
	if err != nil {
		return nil, nil, err
	}
	ix, err := BindVariables(t, vars)
	if err != nil {
		return t, ix, fmt.Errorf("failed to bind variables: %w", err)
	}
	return t, ix, nil
}

// Severity grades a diagnostic.
type Severity int

const (
	// SeverityError marks source the pipeline rejects
	SeverityError Severity = iota
	// SeverityWarning marks source that resolves but is probably a mistake
	SeverityWarning
)

// Diagnostic is one editor-facing finding against a source text.
type Diagnostic struct {
	Loc      dsl.Location
	Severity Severity
	Code     string
	Message  string
}

// legacyAttrs maps superseded attribute spellings to their current names.
var legacyAttrs = map[string]string{
	"style_name": resolve.StyleAttr,
}

// Validate checks a source text without building a tree and returns every
// finding it can recover: lexical and syntactic errors, duplicate style
// names, references to unregistered styles, and superseded attribute
// spellings. A lex or parse error ends the analysis, since no document
// exists to check further.
func Validate(source string) []Diagnostic {
	doc, err := dsl.Parse(source)
	if err != nil {
		return []Diagnostic{parseDiagnostic(err)}
	}

	var diags []Diagnostic

	// Register styles one at a time so a duplicate name yields a finding
	// but later styles still land in the registry.
	registry := styles.NewRegistry()
	for _, block := range doc.Styles {
		if regErr := registry.Register(styles.DefinitionFromBlock(block)); regErr != nil {
			diags = append(diags, Diagnostic{
				Loc:      block.Loc,
				Severity: SeverityError,
				Code:     "duplicate-style",
				Message:  regErr.Error(),
			})
		}
	}

	doc.Root.Walk(func(n *dsl.Node) {
		for _, attr := range n.Attrs {
			if current, ok := legacyAttrs[attr.Key]; ok {
				diags = append(diags, Diagnostic{
					Loc:      attr.Loc,
					Severity: SeverityWarning,
					Code:     "unknown-attribute",
					Message:  fmt.Sprintf("unknown attribute %q; use %q", attr.Key, current),
				})
				continue
			}
			if attr.Key == resolve.StyleAttr && attr.Value.Kind == value.KindString && !registry.Has(attr.Value.Str) {
				diags = append(diags, Diagnostic{
					Loc:      attr.Loc,
					Severity: SeverityError,
					Code:     "unknown-style",
					Message:  fmt.Sprintf("unknown style %q", attr.Value.Str),
				})
			}
		}
	})

	return diags
}

// parseDiagnostic converts a lexer or parser error into a located diagnostic.
func parseDiagnostic(err error) Diagnostic {
	var lexErr *dsl.LexError
	if errors.As(err, &lexErr) {
		return Diagnostic{Loc: lexErr.Loc, Severity: SeverityError, Code: "lex", Message: lexErr.Message}
	}
	var parseErr *dsl.ParseError
	if errors.As(err, &parseErr) {
		return Diagnostic{
			Loc:      parseErr.Loc,
			Severity: SeverityError,
			Code:     "parse",
			Message:  fmt.Sprintf("expected %s, found %s", parseErr.Expected, parseErr.Found),
		}
	}
	return Diagnostic{Severity: SeverityError, Code: "parse", Message: err.Error()}
}

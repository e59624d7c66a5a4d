// Package styles collects named reusable attribute bundles and resolves them
// by name, with optional per-interaction-state overlays.
package styles

import (
	"bennypowers.dev/uidl/dsl"
	"bennypowers.dev/uidl/value"
)

// Definition is a named style: a base attribute map plus state-name →
// attribute-overlay maps. State keys are canonical dsl state names.
type Definition struct {
	Name   string
	Base   map[string]value.Value
	States map[string]map[string]value.Value
	Loc    dsl.Location
}

// DefinitionFromBlock converts a raw parsed style block into a Definition.
// Later declarations of the same key win, matching source reading order.
func DefinitionFromBlock(block dsl.StyleBlock) Definition {
	def := Definition{
		Name:   block.Name,
		Base:   attrMap(block.Base),
		States: make(map[string]map[string]value.Value, len(block.States)),
		Loc:    block.Loc,
	}
	for state, attrs := range block.States {
		def.States[state] = attrMap(attrs)
	}
	return def
}

func attrMap(attrs []dsl.Attr) map[string]value.Value {
	m := make(map[string]value.Value, len(attrs))
	for _, attr := range attrs {
		m[attr.Key] = attr.Value
	}
	return m
}

// Registry owns the document's style definitions, keyed by unique name.
// Styles are late-bound: elements reference them by name, so forward
// references and reuse need no ordering rules.
type Registry struct {
	defs  map[string]*Definition
	order []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Build registers every style block of a parsed document.
// It fails with a *DuplicateError on the first repeated name.
func Build(blocks []dsl.StyleBlock) (*Registry, error) {
	r := NewRegistry()
	for _, block := range blocks {
		if err := r.Register(DefinitionFromBlock(block)); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a definition. Style names are unique across the document;
// a repeated name fails with a *DuplicateError.
func (r *Registry) Register(def Definition) error {
	if _, exists := r.defs[def.Name]; exists {
		return NewDuplicateError(def.Name)
	}
	d := def
	r.defs[def.Name] = &d
	r.order = append(r.order, def.Name)
	return nil
}

// Has reports whether a style with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Names returns registered style names in declaration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Resolve returns the style's base attributes overlaid by the named state's
// overlay when one exists. A style with no state sub-blocks behaves as having
// only a normal state equal to its base attributes, so it resolves
// identically for every requested state. The returned map is a fresh copy.
func (r *Registry) Resolve(name, state string) (map[string]value.Value, error) {
	def, ok := r.defs[name]
	if !ok {
		return nil, NewUnknownError(name)
	}

	resolved := make(map[string]value.Value, len(def.Base))
	for k, v := range def.Base {
		resolved[k] = v
	}
	if overlay, ok := def.States[state]; ok {
		for k, v := range overlay {
			resolved[k] = v
		}
	}
	return resolved, nil
}

// StatesFor returns every interaction state's fully-resolved attribute map
// (base overlaid by that state's overlay). States the style does not declare
// resolve to the base attributes, so the renderer always receives all four.
func (r *Registry) StatesFor(name string) (map[string]map[string]value.Value, error) {
	if !r.Has(name) {
		return nil, NewUnknownError(name)
	}

	states := make(map[string]map[string]value.Value, 4)
	for _, state := range []string{dsl.StateNormal, dsl.StateHover, dsl.StatePress, dsl.StateDisabled} {
		resolved, err := r.Resolve(name, state)
		if err != nil {
			return nil, err
		}
		states[state] = resolved
	}
	return states, nil
}

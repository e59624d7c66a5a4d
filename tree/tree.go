// Package tree holds the renderer-facing descriptor tree: one immutable node
// per element with its resolved attributes, tags, interaction-state attribute
// sets, and ordered children. The only sanctioned mutations after build are
// variable-binding updates and percent re-resolution on viewport change.
package tree

import (
	"sort"

	"bennypowers.dev/uidl/value"
)

// ElementID is a stable identifier for one descriptor: its document-order
// index. IDs survive viewport changes and binding updates, so side tables
// (like the binding index) can address elements without re-walking the tree.
type ElementID int

// AttributeSet is one element's flat resolved attribute map. Percent-tagged
// source values are kept beside their pixel resolution so a viewport change
// re-walks only those entries instead of re-resolving the document.
type AttributeSet struct {
	values   map[string]value.Value
	percents map[string]value.Value
}

// NewAttributeSet resolves attrs against the viewport. Values are normalized
// (quoted percent and hex color strings take their richer shape) and percent
// values are converted to pixels, with the percent source retained.
func NewAttributeSet(attrs map[string]value.Value, vp value.Viewport) *AttributeSet {
	s := &AttributeSet{
		values: make(map[string]value.Value, len(attrs)),
	}
	for key, v := range attrs {
		v = v.Normalize()
		if v.Kind == value.KindPercent {
			if s.percents == nil {
				s.percents = make(map[string]value.Value)
			}
			s.percents[key] = v
			v = v.Resolve(vp)
		}
		s.values[key] = v
	}
	return s
}

// Get returns the value for key, if present.
func (s *AttributeSet) Get(key string) (value.Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Len returns the number of attributes in the set.
func (s *AttributeSet) Len() int {
	return len(s.values)
}

// Keys returns the attribute keys in ascending order.
func (s *AttributeSet) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Set overwrites one attribute value. Reserved for the variable-binding
// update path; everything else treats the set as immutable.
func (s *AttributeSet) Set(key string, v value.Value) {
	s.values[key] = v
}

// Reresolve recomputes the pixel value of every percent-tagged attribute
// against a new viewport. Non-percent attributes are untouched.
func (s *AttributeSet) Reresolve(vp value.Viewport) {
	for key, percent := range s.percents {
		s.values[key] = percent.Resolve(vp)
	}
}

// Element is one node of the descriptor tree.
type Element struct {
	// ID is the element's document-order index in the tree
	ID ElementID

	// Type is the widget type tag (button, label, group, ...)
	Type string

	// Name is the element's explicit id attribute, empty if none
	Name string

	// Tags is the element's resolved tag set: its own tags unioned with
	// every ancestor group's, duplicates removed, in ascending order
	Tags []string

	// Attrs is the element's resolved attribute set
	Attrs *AttributeSet

	// States holds the interaction-state attribute sets from the
	// element's named style (normal/hover/press/disabled), retained for
	// the renderer to wire to real input events. Nil without a style.
	States map[string]*AttributeSet

	// Children are the element's descriptors in document order
	Children []*Element
}

// HasTag reports whether the element's resolved tag set contains tag.
func (e *Element) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Tree is the assembled descriptor tree for one document.
type Tree struct {
	root     *Element
	elements []*Element
}

// New assembles a tree from its root and the document-order element list.
// Element IDs must equal their index in elements.
func New(root *Element, elements []*Element) *Tree {
	return &Tree{root: root, elements: elements}
}

// Root returns the root descriptor (the document's implicit group).
func (t *Tree) Root() *Element {
	return t.root
}

// Element returns the descriptor with the given ID, or nil.
func (t *Tree) Element(id ElementID) *Element {
	if id < 0 || int(id) >= len(t.elements) {
		return nil
	}
	return t.elements[id]
}

// Elements returns every descriptor in document order.
func (t *Tree) Elements() []*Element {
	return t.elements
}

// Len returns the number of descriptors in the tree.
func (t *Tree) Len() int {
	return len(t.elements)
}

// ByName returns the first descriptor with the given explicit id attribute.
func (t *Tree) ByName(name string) *Element {
	for _, el := range t.elements {
		if el.Name == name {
			return el
		}
	}
	return nil
}

// ByTag returns every descriptor whose resolved tag set contains tag, in
// document order.
func (t *Tree) ByTag(tag string) []*Element {
	var matched []*Element
	for _, el := range t.elements {
		if el.HasTag(tag) {
			matched = append(matched, el)
		}
	}
	return matched
}

// Reresolve recomputes every percent-tagged attribute (including those in
// interaction-state sets) against a new viewport. Cost is proportional to
// the number of percent attributes, not to document size.
func (t *Tree) Reresolve(vp value.Viewport) {
	for _, el := range t.elements {
		el.Attrs.Reresolve(vp)
		for _, state := range el.States {
			state.Reresolve(vp)
		}
	}
}

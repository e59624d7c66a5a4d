package dsl

import "bennypowers.dev/uidl/value"

// NodeKind distinguishes structural groups from renderable elements.
type NodeKind int

const (
	// NodeGroup is a container block whose attributes cascade to descendants
	NodeGroup NodeKind = iota
	// NodeElement is a renderable widget block
	NodeElement
)

// Attr is one raw key=value pair as declared in the source, pre-resolution.
type Attr struct {
	Key   string
	Value value.Value
	Loc   Location
}

// Node is one block in the abstract syntax tree. The tree is acyclic and
// single-parented; only group and element nodes appear in it (style blocks
// are extracted separately into Document.Styles).
type Node struct {
	Kind     NodeKind
	Type     string // "group", "button", "label", ...
	Attrs    []Attr // declared attributes, in source order
	Children []*Node
	Loc      Location
}

// Attr returns the last declared value for key, if any.
func (n *Node) Attr(key string) (value.Value, bool) {
	for i := len(n.Attrs) - 1; i >= 0; i-- {
		if n.Attrs[i].Key == key {
			return n.Attrs[i].Value, true
		}
	}
	return value.Value{}, false
}

// Walk visits n and every descendant in document order.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, child := range n.Children {
		child.Walk(visit)
	}
}

// StyleBlock is a raw top-level style(name=...) block: a base attribute list
// plus optional named interaction-state overlays. State names are canonical
// ("pressed" has already been folded into "press").
type StyleBlock struct {
	Name   string
	Base   []Attr
	States map[string][]Attr
	Loc    Location
}

// Document is a fully parsed source text: one implicit root group wrapping
// the top-level element/group blocks, plus the extracted style blocks in
// declaration order.
type Document struct {
	Root   *Node
	Styles []StyleBlock
}

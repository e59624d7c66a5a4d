// Package resolve computes each element's effective attribute set by merging
// the four attribute sources in precedence order (type defaults, enclosing
// group scopes, the named style, the element's own declarations), converts
// percent units against the viewport, and assembles the descriptor tree.
package resolve

import (
	"bennypowers.dev/uidl/dsl"
	"bennypowers.dev/uidl/internal/collections"
	"bennypowers.dev/uidl/styles"
	"bennypowers.dev/uidl/tree"
	"bennypowers.dev/uidl/value"
)

// StyleAttr is the attribute key that late-binds an element to a named style.
// It cascades through group scopes like any other attribute.
const StyleAttr = "style"

// Tree resolves a parsed document against its style registry and the current
// viewport, producing the descriptor tree handed to the renderer. It fails
// with a *styles.UnknownError when an element references an unregistered
// style name; no partial tree is returned.
func Tree(doc *dsl.Document, registry *styles.Registry, vp value.Viewport) (*tree.Tree, error) {
	b := &builder{registry: registry, vp: vp}
	root, err := b.build(doc.Root, scope{attrs: map[string]value.Value{}})
	if err != nil {
		return nil, err
	}
	return tree.New(root, b.elements), nil
}

type builder struct {
	registry *styles.Registry
	vp       value.Viewport
	elements []*tree.Element
}

// scope is the explicit attribute stack passed top-down: the merged declared
// attributes of every enclosing group (nearest ancestor already overlaid on
// farthest) plus the accumulated tag union.
type scope struct {
	attrs map[string]value.Value
	tags  collections.Set[string]
}

func (b *builder) build(n *dsl.Node, sc scope) (*tree.Element, error) {
	own := make(map[string]value.Value, len(n.Attrs))
	for _, attr := range n.Attrs {
		own[attr.Key] = attr.Value.Normalize()
	}

	// Precedence, lowest to highest: type defaults, inherited group
	// attributes, named style (normal state), own declarations.
	merged := defaults(n.Type)
	for k, v := range sc.attrs {
		merged[k] = v
	}

	styleName := effectiveStyle(own, sc.attrs)
	if styleName != "" {
		styleAttrs, err := b.registry.Resolve(styleName, dsl.StateNormal)
		if err != nil {
			return nil, err
		}
		for k, v := range styleAttrs {
			merged[k] = v.Normalize()
		}
	}
	for k, v := range own {
		merged[k] = v
	}

	// Tags union across inheritance rather than override.
	tags := sc.tags
	if ownTags, ok := own["tags"]; ok && ownTags.Kind == value.KindStringList {
		tags = tags.Union(collections.NewSet(ownTags.List...))
	}

	name := ""
	if id, ok := own["id"]; ok && id.Kind == value.KindString {
		name = id.Str
	} else if nm, ok := own["name"]; ok && nm.Kind == value.KindString {
		name = nm.Str
	}

	// Tags and ids live on the descriptor itself, not in the attribute set.
	delete(merged, "tags")
	delete(merged, "id")

	el := &tree.Element{
		ID:    tree.ElementID(len(b.elements)),
		Type:  n.Type,
		Name:  name,
		Tags:  collections.SortedMembers(tags),
		Attrs: tree.NewAttributeSet(merged, b.vp),
	}
	b.elements = append(b.elements, el)

	// Interaction-state attribute sets are retained alongside, not
	// collapsed, so the renderer can react to runtime state.
	if styleName != "" {
		stateMaps, err := b.registry.StatesFor(styleName)
		if err != nil {
			return nil, err
		}
		el.States = make(map[string]*tree.AttributeSet, len(stateMaps))
		for state, attrs := range stateMaps {
			el.States[state] = tree.NewAttributeSet(attrs, b.vp)
		}
	}

	childScope := sc
	if n.Kind == dsl.NodeGroup {
		// Only a group's own declared attributes cascade; defaults and
		// style expansion do not.
		childAttrs := make(map[string]value.Value, len(sc.attrs)+len(own))
		for k, v := range sc.attrs {
			childAttrs[k] = v
		}
		for k, v := range own {
			if k == "tags" || k == "id" || k == "name" {
				continue
			}
			childAttrs[k] = v
		}
		childScope = scope{attrs: childAttrs, tags: tags}
	}

	for _, child := range n.Children {
		childEl, err := b.build(child, childScope)
		if err != nil {
			return nil, err
		}
		el.Children = append(el.Children, childEl)
	}

	return el, nil
}

// effectiveStyle returns the style name in force for a node: its own style
// attribute when declared, else the inherited one.
func effectiveStyle(own, inherited map[string]value.Value) string {
	if v, ok := own[StyleAttr]; ok && v.Kind == value.KindString {
		return v.Str
	}
	if v, ok := inherited[StyleAttr]; ok && v.Kind == value.KindString {
		return v.Str
	}
	return ""
}

// Package bind substitutes <<name>> dynamic-variable placeholders into
// resolved string attributes and maintains a side-table index so later
// variable updates touch only the recorded spans, never the whole tree.
package bind

import (
	"errors"
	"regexp"
	"strings"

	"bennypowers.dev/uidl/internal/collections"
	"bennypowers.dev/uidl/tree"
	"bennypowers.dev/uidl/value"
)

// Variables is the host-owned dynamic variable mapping. The tree never
// mutates it; new snapshots arrive through Apply.
type Variables map[string]string

// placeholderPattern matches one <<name>> placeholder span.
var placeholderPattern = regexp.MustCompile(`<<([A-Za-z_][A-Za-z0-9_]*)>>`)

// binding records one bound attribute: which element, which key, the
// original template text, and the variable names its spans reference.
type binding struct {
	element  tree.ElementID
	key      string
	template string
	names    []string
	last     string
}

// Index is the binding side table for one descriptor tree. It addresses
// elements by stable ID, so updates never re-walk or re-allocate the tree.
type Index struct {
	tree     *tree.Tree
	bindings []binding
}

// Bind scans every resolved string attribute of every descriptor for
// placeholder spans, substitutes the current variable values in place, and
// records a binding per templated attribute. A template is literal text with
// zero or more spans, each resolved independently and concatenated.
//
// Placeholders naming a missing variable are kept as literal text and
// reported through a joined *UnresolvedVariableError per miss; the returned
// index is still valid, so the host decides whether that is fatal.
func Bind(t *tree.Tree, vars Variables) (*Index, error) {
	ix := &Index{tree: t}
	var errs []error

	for _, el := range t.Elements() {
		for _, key := range el.Attrs.Keys() {
			str, ok := stringValue(el, key)
			if !ok {
				continue
			}
			names := placeholderNames(str)
			if len(names) == 0 {
				continue
			}

			bd := binding{element: el.ID, key: key, template: str, names: names}
			rendered, missing := render(str, vars)
			for _, name := range missing {
				errs = append(errs, NewUnresolvedVariableError(name, el.ID, key))
			}
			bd.last = rendered
			setString(el, key, rendered)
			ix.bindings = append(ix.bindings, bd)
		}
	}

	return ix, errors.Join(errs...)
}

// Apply re-substitutes every recorded binding using the current variable
// values and returns the IDs of elements whose attribute values changed.
// Applying the same snapshot twice yields an empty set the second time.
// Work is proportional to the number of bindings, not to tree size.
func (ix *Index) Apply(vars Variables) collections.Set[tree.ElementID] {
	changed := collections.NewSet[tree.ElementID]()
	for i := range ix.bindings {
		bd := &ix.bindings[i]
		rendered, _ := render(bd.template, vars)
		if rendered == bd.last {
			continue
		}
		bd.last = rendered
		setString(ix.tree.Element(bd.element), bd.key, rendered)
		changed.Add(bd.element)
	}
	return changed
}

// Len returns the number of recorded bindings.
func (ix *Index) Len() int {
	return len(ix.bindings)
}

// Variables returns the distinct variable names the index depends on, in
// first-seen order.
func (ix *Index) Variables() []string {
	seen := collections.NewSet[string]()
	var names []string
	for _, bd := range ix.bindings {
		for _, name := range bd.names {
			if !seen.Has(name) {
				seen.Add(name)
				names = append(names, name)
			}
		}
	}
	return names
}

// render substitutes every placeholder span in template. Spans naming a
// missing variable stay literal and are reported in missing.
func render(template string, vars Variables) (rendered string, missing []string) {
	rendered = placeholderPattern.ReplaceAllStringFunc(template, func(span string) string {
		name := span[2 : len(span)-2]
		if val, ok := vars[name]; ok {
			return val
		}
		missing = append(missing, name)
		return span
	})
	return rendered, missing
}

// placeholderNames returns the variable names referenced by a template, in
// span order.
func placeholderNames(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// stringValue fetches a string attribute, with a fast reject for values
// that cannot contain a placeholder.
func stringValue(el *tree.Element, key string) (string, bool) {
	v, ok := el.Attrs.Get(key)
	if !ok || v.Kind != value.KindString {
		return "", false
	}
	if !strings.Contains(v.Str, "<<") {
		return "", false
	}
	return v.Str, true
}

// setString overwrites a bound attribute with its rendered text.
func setString(el *tree.Element, key, rendered string) {
	el.Attrs.Set(key, value.String(rendered))
}

package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/uidl/dsl"
	"bennypowers.dev/uidl/value"
)

// TestParseImplicitRoot tests that top-level blocks become children of an
// implicit root group
func TestParseImplicitRoot(t *testing.T) {
	doc, err := dsl.Parse(`
		label(text="a")
		button(text="b")
	`)
	require.NoError(t, err)

	root := doc.Root
	assert.Equal(t, dsl.NodeGroup, root.Kind)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "label", root.Children[0].Type)
	assert.Equal(t, "button", root.Children[1].Type)
}

// TestParseNestedGroups tests block nesting and attribute capture
func TestParseNestedGroups(t *testing.T) {
	doc, err := dsl.Parse(`
		group(x=10, y=20) {
			group(x=5) {
				label(text="deep")
			}
			button(text="shallow")
		}
	`)
	require.NoError(t, err)

	outer := doc.Root.Children[0]
	assert.Equal(t, dsl.NodeGroup, outer.Kind)
	require.Len(t, outer.Children, 2)

	x, ok := outer.Attr("x")
	require.True(t, ok)
	assert.Equal(t, 10.0, x.Num)

	inner := outer.Children[0]
	require.Len(t, inner.Children, 1)
	assert.Equal(t, "label", inner.Children[0].Type)

	text, ok := inner.Children[0].Attr("text")
	require.True(t, ok)
	assert.Equal(t, "deep", text.Str)
}

// TestParseValueShapes tests every literal value form in one block
func TestParseValueShapes(t *testing.T) {
	doc, err := dsl.Parse(`dummy(
		s="str", n=3.5, b=true, p=50%w,
		c=(255, 0, 0), ca=(0, 0, 0, 128),
		tags=["hud", "menu"]
	)`)
	require.NoError(t, err)

	el := doc.Root.Children[0]

	s, _ := el.Attr("s")
	assert.Equal(t, value.KindString, s.Kind)

	n, _ := el.Attr("n")
	assert.Equal(t, 3.5, n.Num)

	b, _ := el.Attr("b")
	assert.True(t, b.Bool)

	p, _ := el.Attr("p")
	require.Equal(t, value.KindPercent, p.Kind)
	assert.Equal(t, value.AxisWidth, p.Axis)

	c, _ := el.Attr("c")
	require.Equal(t, value.KindColor, c.Kind)
	assert.Equal(t, "#ff0000", c.Color.HexString())

	ca, _ := el.Attr("ca")
	require.Equal(t, value.KindColor, ca.Kind)
	assert.InDelta(t, 128.0/255, ca.Color.A, 0.001)

	tags, _ := el.Attr("tags")
	require.Equal(t, value.KindStringList, tags.Kind)
	assert.Equal(t, []string{"hud", "menu"}, tags.List)
}

// TestParseStyleBlocks tests style extraction with base attrs and state
// overlays, including the pressed synonym
func TestParseStyleBlocks(t *testing.T) {
	doc, err := dsl.Parse(`
		style(name="primary") {
			color = (0, 0, 255)
			font_size = 14
			hover {
				color = (0, 0, 200)
			}
			pressed {
				color = (0, 0, 150)
			}
		}
		button(style="primary")
	`)
	require.NoError(t, err)

	assert.Empty(t, doc.Root.Children[0].Children)
	require.Len(t, doc.Styles, 1)

	style := doc.Styles[0]
	assert.Equal(t, "primary", style.Name)
	require.Len(t, style.Base, 2)
	assert.Equal(t, "color", style.Base[0].Key)

	// "pressed" folds into the canonical "press" slot
	assert.Contains(t, style.States, dsl.StatePress)
	assert.Contains(t, style.States, dsl.StateHover)
	assert.NotContains(t, style.States, "pressed")
}

// TestParseStyleNotATreeNode tests that style blocks never become children
func TestParseStyleNotATreeNode(t *testing.T) {
	doc, err := dsl.Parse(`
		style(name="a") { x = 1 }
		label(text="t")
		style(name="b") { y = 2 }
	`)
	require.NoError(t, err)
	assert.Len(t, doc.Root.Children, 1)
	assert.Len(t, doc.Styles, 2)
}

// TestParseErrors tests syntactic failure modes
func TestParseErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"unknown block type", `widget(x=1)`},
		{"trailing comma", `button(x=1,)`},
		{"missing comma", `button(x=1 y=2)`},
		{"bare identifier value", `button(x=foo)`},
		{"tuple with two components", `button(color=(1, 2))`},
		{"tuple with five components", `button(color=(1, 2, 3, 4, 5))`},
		{"non-string in array", `button(tags=[1])`},
		{"nested style block", `group() { style(name="s") { x = 1 } }`},
		{"style without name", `style(title="s") { }`},
		{"stray closing brace", `}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dsl.Parse(tc.source)
			require.Error(t, err)
			var parseErr *dsl.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.ErrorIs(t, err, dsl.ErrParse)
		})
	}
}

// TestParseUnbalancedBraceAnchorsOpeningLine tests that a missing '}' reports
// the line of the brace left open
func TestParseUnbalancedBraceAnchorsOpeningLine(t *testing.T) {
	_, err := dsl.Parse("group(x=1) {\n\tlabel(text=\"a\")\n")
	require.Error(t, err)

	var parseErr *dsl.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, parseErr.Loc.Line)
	assert.Contains(t, parseErr.Expected, "'}'")
}

// TestCanonicalState tests state-name canonicalization
func TestCanonicalState(t *testing.T) {
	state, ok := dsl.CanonicalState("pressed")
	require.True(t, ok)
	assert.Equal(t, dsl.StatePress, state)

	state, ok = dsl.CanonicalState("hover")
	require.True(t, ok)
	assert.Equal(t, "hover", state)

	_, ok = dsl.CanonicalState("focus")
	assert.False(t, ok)
}

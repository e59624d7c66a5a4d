package bind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/uidl/bind"
	"bennypowers.dev/uidl/dsl"
	"bennypowers.dev/uidl/resolve"
	"bennypowers.dev/uidl/styles"
	"bennypowers.dev/uidl/tree"
	"bennypowers.dev/uidl/value"
)

func buildTree(t *testing.T, source string) *tree.Tree {
	t.Helper()
	doc, err := dsl.Parse(source)
	require.NoError(t, err)
	registry, err := styles.Build(doc.Styles)
	require.NoError(t, err)
	tr, err := resolve.Tree(doc, registry, value.Viewport{Width: 1920, Height: 1080})
	require.NoError(t, err)
	return tr
}

func textOf(t *testing.T, el *tree.Element) string {
	t.Helper()
	v, ok := el.Attrs.Get("text")
	require.True(t, ok)
	return v.Str
}

// TestBindSubstitutesPlaceholders tests mixed literal/placeholder templates
func TestBindSubstitutesPlaceholders(t *testing.T) {
	tr := buildTree(t, `
		label(id="score", text="Score: <<current_score>>")
		label(id="both", text="<<player>> has <<current_score>> points")
		label(id="static", text="Paused")
	`)

	ix, err := bind.Bind(tr, bind.Variables{
		"current_score": "42",
		"player":        "Ada",
	})
	require.NoError(t, err)

	assert.Equal(t, "Score: 42", textOf(t, tr.ByName("score")))
	assert.Equal(t, "Ada has 42 points", textOf(t, tr.ByName("both")))
	assert.Equal(t, "Paused", textOf(t, tr.ByName("static")))

	// Only templated attributes are indexed
	assert.Equal(t, 2, ix.Len())
	assert.Equal(t, []string{"current_score", "player"}, ix.Variables())
}

// TestApplyReportsChangedElements tests incremental updates and idempotence
func TestApplyReportsChangedElements(t *testing.T) {
	tr := buildTree(t, `
		label(id="score", text="Score: <<current_score>>")
		label(id="name", text="<<player>>")
	`)

	vars := bind.Variables{"current_score": "0", "player": "Ada"}
	ix, err := bind.Bind(tr, vars)
	require.NoError(t, err)

	// Same snapshot again: nothing changes
	changed := ix.Apply(vars)
	assert.Empty(t, changed)

	// One variable changes: only its element is reported
	changed = ix.Apply(bind.Variables{"current_score": "10", "player": "Ada"})
	require.Len(t, changed, 1)
	assert.True(t, changed.Has(tr.ByName("score").ID))
	assert.Equal(t, "Score: 10", textOf(t, tr.ByName("score")))
	assert.Equal(t, "Ada", textOf(t, tr.ByName("name")))

	// Applying the identical snapshot twice is a no-op the second time
	changed = ix.Apply(bind.Variables{"current_score": "10", "player": "Ada"})
	assert.Empty(t, changed)
}

// TestBindMissingVariable tests that unresolved placeholders stay literal and
// are reported without invalidating the index
func TestBindMissingVariable(t *testing.T) {
	tr := buildTree(t, `label(id="l", text="Hi <<who>>")`)

	ix, err := bind.Bind(tr, bind.Variables{})
	require.Error(t, err)
	assert.ErrorIs(t, err, bind.ErrUnresolved)

	var unresolved *bind.UnresolvedVariableError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "who", unresolved.Name)
	assert.Equal(t, "text", unresolved.Key)

	// Placeholder text stays literal until the variable arrives
	assert.Equal(t, "Hi <<who>>", textOf(t, tr.ByName("l")))

	require.NotNil(t, ix)
	changed := ix.Apply(bind.Variables{"who": "Ada"})
	assert.Len(t, changed, 1)
	assert.Equal(t, "Hi Ada", textOf(t, tr.ByName("l")))
}

// TestBindIgnoresNonStringAttributes tests the fast reject path
func TestBindIgnoresNonStringAttributes(t *testing.T) {
	tr := buildTree(t, `label(id="l", text="plain", width=50%w, font_size=12)`)

	ix, err := bind.Bind(tr, bind.Variables{})
	require.NoError(t, err)
	assert.Equal(t, 0, ix.Len())
	assert.Empty(t, ix.Variables())
}

// TestBindNonIdentifierSpansStayLiteral tests that malformed placeholder
// spans are not treated as bindings
func TestBindNonIdentifierSpansStayLiteral(t *testing.T) {
	tr := buildTree(t, `label(id="l", text="a << b >> c <<9lives>>")`)

	ix, err := bind.Bind(tr, bind.Variables{})
	require.NoError(t, err)
	assert.Equal(t, 0, ix.Len())
	assert.Equal(t, "a << b >> c <<9lives>>", textOf(t, tr.ByName("l")))
}

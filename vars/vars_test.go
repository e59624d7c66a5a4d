package vars_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/uidl/vars"
)

// TestLoadMappingJSON tests plain JSON and JSONC variable files
func TestLoadMappingJSON(t *testing.T) {
	mapping, err := vars.LoadMapping([]byte(`{
		// current run state
		"current_score": "42",
		"player": "Ada", /* display name */
	}`), vars.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"current_score": "42",
		"player":        "Ada",
	}, mapping)
}

// TestLoadMappingYAML tests YAML variable files
func TestLoadMappingYAML(t *testing.T) {
	mapping, err := vars.LoadMapping([]byte("current_score: \"42\"\nplayer: Ada\n"), vars.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"current_score": "42",
		"player":        "Ada",
	}, mapping)
}

// TestLoadMappingStringifiesScalars tests that numbers and booleans become
// their textual form
func TestLoadMappingStringifiesScalars(t *testing.T) {
	mapping, err := vars.LoadMapping([]byte(`{"score": 42, "lives": 2.5, "paused": true}`), vars.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "42", mapping["score"])
	assert.Equal(t, "2.5", mapping["lives"])
	assert.Equal(t, "true", mapping["paused"])
}

// TestLoadMappingRejectsNesting tests that non-flat documents fail
func TestLoadMappingRejectsNesting(t *testing.T) {
	_, err := vars.LoadMapping([]byte(`{"hud": {"score": 1}}`), vars.FormatJSON)
	require.Error(t, err)
	assert.ErrorIs(t, err, vars.ErrMapping)

	_, err = vars.LoadMapping([]byte(`{"tags": ["a"]}`), vars.FormatJSON)
	require.Error(t, err)
	assert.ErrorIs(t, err, vars.ErrMapping)
}

// TestLoadMappingMalformed tests parse failures in both formats
func TestLoadMappingMalformed(t *testing.T) {
	_, err := vars.LoadMapping([]byte(`{`), vars.FormatJSON)
	assert.Error(t, err)

	_, err = vars.LoadMapping([]byte(":\n :"), vars.FormatYAML)
	assert.Error(t, err)
}

// TestDiscoverDocuments tests recursive workspace globbing keyed by
// extensionless file name
func TestDiscoverDocuments(t *testing.T) {
	fsys := fstest.MapFS{
		"menu.dsl":          {Data: []byte(`label(text="menu")`)},
		"screens/hud.dsl":   {Data: []byte(`label(text="hud")`)},
		"screens/vars.ddsl": {Data: []byte(`{}`)},
		"notes/readme.md":   {Data: []byte("notes")},
	}

	docs, err := vars.DiscoverDocuments(fsys, "**/*.dsl")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, `label(text="menu")`, docs["menu"])
	assert.Equal(t, `label(text="hud")`, docs["hud"])
}

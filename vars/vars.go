// Package vars implements the variable-source collaborator: flat
// string-to-string variable mappings loaded from JSON (with comments
// tolerated) or YAML documents, and workspace discovery of UI description
// sources.
package vars

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/uidl/internal/log"
)

// Format identifies a variable file's encoding.
type Format int

const (
	// FormatJSON is a flat JSON object (JSONC accepted)
	FormatJSON Format = iota
	// FormatYAML is a flat YAML mapping
	FormatYAML
)

// ErrMapping indicates a variable document that is not a flat mapping of
// names to scalar values.
var ErrMapping = errors.New("invalid variable mapping")

// LoadMapping decodes a flat name → value mapping. Scalar values that are
// not strings (numbers, booleans) are stringified; nested objects or arrays
// fail, since a variable substitutes into text verbatim.
func LoadMapping(data []byte, format Format) (map[string]string, error) {
	var raw map[string]any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON variables: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML variables: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format", ErrMapping)
	}

	mapping := make(map[string]string, len(raw))
	for name, v := range raw {
		s, err := stringify(v)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		mapping[name] = s
	}
	return mapping, nil
}

func stringify(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("%w: value must be a scalar, got %T", ErrMapping, v)
	}
}

// LoadMappingFile loads a variable file, picking the format from its
// extension. The .ddsl convention is a JSON document.
func LoadMappingFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read variable file: %w", err)
	}

	format := FormatJSON
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		format = FormatYAML
	}

	mapping, err := LoadMapping(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug("Loaded %d variables from %s", len(mapping), path)
	return mapping, nil
}

// DiscoverDocuments globs a workspace for UI description sources and returns
// their contents keyed by file name without extension, the way screens are
// addressed by the host.
func DiscoverDocuments(fsys fs.FS, pattern string) (map[string]string, error) {
	paths, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid document pattern %q: %w", pattern, err)
	}

	docs := make(map[string]string, len(paths))
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read document %s: %w", path, err)
		}
		base := filepath.Base(path)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		docs[name] = string(data)
	}
	log.Debug("Discovered %d documents for pattern %q", len(docs), pattern)
	return docs, nil
}

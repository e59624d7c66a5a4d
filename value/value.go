// Package value defines the closed set of literal value shapes an attribute
// may carry, from raw parse through viewport resolution.
package value

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// Kind identifies the shape of a Value.
type Kind uint8

const (
	// KindString is a quoted string literal (possibly a placeholder template)
	KindString Kind = iota
	// KindNumber is an integer or decimal literal
	KindNumber
	// KindBool is a true/false literal
	KindBool
	// KindPercent is a viewport-relative measurement (magnitude + axis)
	KindPercent
	// KindColor is a 3/4-component numeric tuple or a string color literal
	KindColor
	// KindStringList is a bracketed array of strings (tags)
	KindStringList
	// KindPixels is an absolute measurement produced by percent resolution
	KindPixels
)

var kindNames = map[Kind]string{
	KindString:     "string",
	KindNumber:     "number",
	KindBool:       "bool",
	KindPercent:    "percent",
	KindColor:      "color",
	KindStringList: "string list",
	KindPixels:     "pixels",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Axis identifies which viewport dimension a percent value is relative to.
type Axis uint8

const (
	// AxisWidth resolves against the viewport width (%w)
	AxisWidth Axis = iota
	// AxisHeight resolves against the viewport height (%h)
	AxisHeight
)

func (a Axis) String() string {
	if a == AxisHeight {
		return "h"
	}
	return "w"
}

// Viewport is the current drawing surface size, in abstract units.
// Supplied by the host at resolve time and again on every resize.
type Viewport struct {
	Width  float64
	Height float64
}

// Value is a closed tagged variant. Exactly the fields implied by Kind are
// meaningful; the rest hold zero values.
type Value struct {
	Kind  Kind
	Str   string
	Num   float64
	Bool  bool
	Axis  Axis
	Color csscolorparser.Color
	List  []string
}

// String creates a string value
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number creates a numeric value
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// Bool creates a boolean value
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Percent creates a viewport-relative value
func Percent(magnitude float64, axis Axis) Value {
	return Value{Kind: KindPercent, Num: magnitude, Axis: axis}
}

// Pixels creates an absolute measurement
func Pixels(n float64) Value { return Value{Kind: KindPixels, Num: n} }

// StringList creates a tag-list value
func StringList(items ...string) Value {
	return Value{Kind: KindStringList, List: items}
}

// ColorTuple creates a color value from 3 or 4 channel components in 0-255.
// A missing alpha component defaults to fully opaque.
func ColorTuple(components []float64) (Value, error) {
	if len(components) != 3 && len(components) != 4 {
		return Value{}, fmt.Errorf("color tuple needs 3 or 4 components, got %d", len(components))
	}
	alpha := 255.0
	if len(components) == 4 {
		alpha = components[3]
	}
	c := csscolorparser.Color{
		R: clampChannel(components[0]) / 255,
		G: clampChannel(components[1]) / 255,
		B: clampChannel(components[2]) / 255,
		A: clampChannel(alpha) / 255,
	}
	return Value{Kind: KindColor, Color: c}, nil
}

// ColorString creates a color value from a CSS color literal ("#ff0000",
// "rgb(...)", named colors).
func ColorString(s string) (Value, error) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return Value{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Value{Kind: KindColor, Color: c}, nil
}

func clampChannel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// percentPattern matches a string whose entire content is a percent literal,
// so quoted forms like x="50%w" behave like the bare literal.
var percentPattern = regexp.MustCompile(`^(-?[0-9]+(?:\.[0-9]+)?)%([wh])$`)

// Normalize re-reads string values whose content denotes a richer shape:
// whole-string percent literals become percent values, and hex color strings
// become colors. All other values pass through unchanged.
func (v Value) Normalize() Value {
	if v.Kind != KindString {
		return v
	}
	if m := percentPattern.FindStringSubmatch(v.Str); m != nil {
		magnitude, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			axis := AxisWidth
			if m[2] == "h" {
				axis = AxisHeight
			}
			return Percent(magnitude, axis)
		}
	}
	if strings.HasPrefix(v.Str, "#") {
		if c, err := ColorString(v.Str); err == nil {
			return c
		}
	}
	return v
}

// Resolve converts a percent value to absolute pixels against the viewport.
// Non-percent values are returned unchanged.
func (v Value) Resolve(vp Viewport) Value {
	if v.Kind != KindPercent {
		return v
	}
	if v.Axis == AxisHeight {
		return Pixels(v.Num / 100 * vp.Height)
	}
	return Pixels(v.Num / 100 * vp.Width)
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == other.Str
	case KindNumber, KindPixels:
		return v.Num == other.Num
	case KindBool:
		return v.Bool == other.Bool
	case KindPercent:
		return v.Num == other.Num && v.Axis == other.Axis
	case KindColor:
		return v.Color == other.Color
	case KindStringList:
		return slices.Equal(v.List, other.List)
	}
	return false
}

// Text renders a canonical source-form representation of the value.
// Resolution is a pure function of its inputs, so re-reading this form and
// re-resolving yields an equal value.
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return strconv.Quote(v.Str)
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindPercent:
		return fmt.Sprintf("%s%%%s", strconv.FormatFloat(v.Num, 'f', -1, 64), v.Axis)
	case KindColor:
		return v.Color.HexString()
	case KindStringList:
		quoted := make([]string, len(v.List))
		for i, item := range v.List {
			quoted[i] = strconv.Quote(item)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case KindPixels:
		return strconv.FormatFloat(v.Num, 'f', -1, 64) + "px"
	}
	return ""
}

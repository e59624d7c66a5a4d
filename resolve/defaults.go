package resolve

import "bennypowers.dev/uidl/value"

// Built-in type defaults, the lowest-precedence attribute source. These
// mirror what the reference renderer assumes when an attribute is absent.

var (
	colorBlack       = mustColorTuple(0, 0, 0, 255)
	colorTransparent = mustColorTuple(0, 0, 0, 0)
	colorRed         = mustColorTuple(255, 0, 0, 255)
)

func mustColorTuple(components ...float64) value.Value {
	v, err := value.ColorTuple(components)
	if err != nil {
		panic(err)
	}
	return v
}

var commonDefaults = map[string]value.Value{
	"x":         value.Number(0),
	"y":         value.Number(0),
	"anchor":    value.String("top-left"),
	"bold":      value.Bool(false),
	"italic":    value.Bool(false),
	"multiline": value.Bool(false),
}

var typeDefaults = map[string]map[string]value.Value{
	"label": {
		"text":       value.String(""),
		"width":      value.Number(0),
		"height":     value.Number(0),
		"font_name":  value.String("Arial"),
		"font_size":  value.Number(14),
		"text_color": colorBlack,
	},
	"button": {
		"text":   value.String(""),
		"width":  value.Number(100),
		"height": value.Number(100),
	},
	"input_text": {
		"text":       value.String(""),
		"width":      value.Number(200),
		"height":     value.Number(30),
		"font_name":  value.String("Arial"),
		"font_size":  value.Number(14),
		"text_color": colorBlack,
	},
	"text_area": {
		"text":         value.String(""),
		"width":        value.Number(300),
		"height":       value.Number(100),
		"font_name":    value.String("Arial"),
		"font_size":    value.Number(12),
		"text_color":   colorBlack,
		"multiline":    value.Bool(true),
		"scroll_speed": value.Number(10),
	},
	"space": {
		"width":  value.Number(100),
		"height": value.Number(100),
		"color":  colorTransparent,
	},
	"dummy": {
		"width":  value.Number(100),
		"height": value.Number(100),
		"color":  colorRed,
	},
	"sprite_widget": {
		"width":  value.Number(64),
		"height": value.Number(64),
	},
	"group": {},
}

// defaults returns a fresh attribute map seeded with the built-in defaults
// for the given element type.
func defaults(elementType string) map[string]value.Value {
	perType := typeDefaults[elementType]
	m := make(map[string]value.Value, len(commonDefaults)+len(perType))
	if elementType != "group" {
		for k, v := range commonDefaults {
			m[k] = v
		}
	}
	for k, v := range perType {
		m[k] = v
	}
	return m
}

// Package styles defines the color palettes used by every render sink.
//
// A layout's style name picks a base palette; a caller may override the room
// fill with a primary color. Unknown style names fall back to [Modern].
package styles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/plan"
)

// Style names.
const (
	Modern      = "modern"
	Traditional = "traditional"
	Minimal     = "minimal"
)

// Names lists every known style in display order.
var Names = []string{Modern, Traditional, Minimal}

// Palette holds the colors for one style, as #rrggbb strings.
type Palette struct {
	Name     string `json:"name"`
	Primary  string `json:"primary"`
	Cell     string `json:"cell"`
	Wall     string `json:"wall"`
	Text     string `json:"text"`
	Muted    string `json:"muted"`
	Roof     string `json:"roof"`
	Ground   string `json:"ground"`
	Garden   string `json:"garden"`
	Parking  string `json:"parking"`
	Balcony  string `json:"balcony"`
	Backdrop string `json:"backdrop"`
}

var palettes = map[string]Palette{
	Modern: {
		Name:     Modern,
		Primary:  "#8fbf8f",
		Cell:     "#ffffff",
		Wall:     "#333333",
		Text:     "#111111",
		Muted:    "#555555",
		Roof:     "#b5651d",
		Ground:   "#f0f0f0",
		Garden:   "#a6d96a",
		Parking:  "#dddddd",
		Balcony:  "#ffdca6",
		Backdrop: "#eef2f5",
	},
	Traditional: {
		Name:     Traditional,
		Primary:  "#d9b99b",
		Cell:     "#fffaf0",
		Wall:     "#4a3728",
		Text:     "#2b1d12",
		Muted:    "#6b5646",
		Roof:     "#8b3a1a",
		Ground:   "#ece3d3",
		Garden:   "#88cc77",
		Parking:  "#cfc8bd",
		Balcony:  "#eeddaa",
		Backdrop: "#f6efe4",
	},
	Minimal: {
		Name:     Minimal,
		Primary:  "#e6e6e6",
		Cell:     "#ffffff",
		Wall:     "#555555",
		Text:     "#222222",
		Muted:    "#888888",
		Roof:     "#666666",
		Ground:   "#fafafa",
		Garden:   "#cfe8c0",
		Parking:  "#eeeeee",
		Balcony:  "#f3ead8",
		Backdrop: "#ffffff",
	},
}

// Known reports whether name is a defined style. Matching ignores case.
func Known(name string) bool {
	_, ok := palettes[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Validate returns an INVALID_STYLE error for unknown, non-empty names.
func Validate(name string) error {
	if name == "" || Known(name) {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidStyle,
		"unknown style %q (valid: %s)", name, strings.Join(Names, ", "))
}

// For returns the palette for a style name, falling back to modern.
func For(name string) Palette {
	if p, ok := palettes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p
	}
	return palettes[Modern]
}

// WithPrimary returns a copy of p using color as the room fill. Invalid
// colors leave p unchanged.
func (p Palette) WithPrimary(color string) Palette {
	if _, _, _, ok := ParseHex(color); ok {
		p.Primary = normalizeHex(color)
	}
	return p
}

// ExtraFill returns the fill color for an extra's swatch. Unknown extras get
// the muted color.
func (p Palette) ExtraFill(t plan.ExtraType) string {
	switch t {
	case plan.Garden:
		return p.Garden
	case plan.Parking:
		return p.Parking
	case plan.Balcony:
		return p.Balcony
	default:
		return p.Muted
	}
}

// ParseHex parses #rgb or #rrggbb into its components.
func ParseHex(s string) (r, g, b int, ok bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

// Hex24 returns s as a 0xRRGGBB integer, or 0 when it does not parse.
func Hex24(s string) int {
	r, g, b, ok := ParseHex(s)
	if !ok {
		return 0
	}
	return r<<16 | g<<8 | b
}

func normalizeHex(s string) string {
	r, g, b, _ := ParseHex(s)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

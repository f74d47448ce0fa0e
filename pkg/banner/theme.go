package banner

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/matzehuels/codebanner/pkg/errors"
)

// Color is an opaque RGB color. It marshals as "#rrggbb".
type Color struct {
	R, G, B uint8
}

// ParseHexColor parses "#rgb" or "#rrggbb" (the leading # is optional).
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, errors.New(errors.ErrCodeInvalidColor, "invalid color %q (want #rgb or #rrggbb)", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, errors.New(errors.ErrCodeInvalidColor, "invalid color %q (want #rgb or #rrggbb)", s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustParseHexColor is like ParseHexColor but panics on error.
func MustParseHexColor(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string { return c.Hex() }

// NRGBA returns the color with the given opacity in [0, 1].
func (c Color) NRGBA(opacity float64) color.NRGBA {
	a := max(0, min(1, opacity))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a*255 + 0.5)}
}

// RGBA implements color.Color for the opaque color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.Hex()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseHexColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Theme is a named background/text color pair.
type Theme struct {
	Name       string `json:"name"`
	Background Color  `json:"background"`
	Text       Color  `json:"text"`
}

// DefaultTheme is the theme used when none is configured.
const DefaultTheme = "default"

var themes = map[string]Theme{
	"default": {Name: "default", Background: MustParseHexColor("#0a0f17"), Text: MustParseHexColor("#00c9ff")},
	"matrix":  {Name: "matrix", Background: MustParseHexColor("#001100"), Text: MustParseHexColor("#00ff66")},
	"ocean":   {Name: "ocean", Background: MustParseHexColor("#001f3f"), Text: MustParseHexColor("#7FDBFF")},
	"sunset":  {Name: "sunset", Background: MustParseHexColor("#331100"), Text: MustParseHexColor("#ff9900")},
}

// LookupTheme returns the preset called name. Names are case-insensitive.
func LookupTheme(name string) (Theme, error) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	return t, nil
}

// Themes returns every preset sorted by name.
func Themes() []Theme {
	out := make([]Theme, 0, len(themes))
	for _, name := range ThemeNames() {
		out = append(out, themes[name])
	}
	return out
}

// ThemeNames returns the preset names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

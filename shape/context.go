package shape

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// LineStyle is the dash pattern of an outline.
type LineStyle int

const (
	LineSolid LineStyle = iota
	LineDash
	LineDot
	LineDashDot
	LineNone
)

// Context is the drawing style of a shape. The geometry never looks at it; it
// is carried for renderers.
type Context struct {
	LineColor color.RGBA
	// LineWidth in drawing units. Zero picks the renderer's default.
	LineWidth float64
	LineStyle LineStyle
	// FillColor fills closed shapes. A zero alpha means no fill.
	FillColor color.RGBA
}

// DefaultContext returns a thin black outline without fill.
func DefaultContext() Context {
	return Context{
		LineColor: color.RGBA{A: 0xff},
		LineWidth: 1,
	}
}

// HasFill reports whether closed shapes are filled.
func (c Context) HasFill() bool { return c.FillColor.A != 0 }

// ParseColor parses #rgb, #rrggbb and #rrggbbaa colors as well as SVG color
// names like "teal". "none" and "transparent" are fully transparent.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "none", "transparent":
		return color.RGBA{}, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("ParseColor: unknown color %q", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("ParseColor: bad length of %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("ParseColor: %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// FormatColor formats c as #rrggbb, or #rrggbbaa if it isn't opaque.
func FormatColor(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

package paint

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrBadColor is returned by ParseColor for input it cannot interpret.
var ErrBadColor = errors.New("paint: bad color")

// ParseColor parses "#RGB", "#RRGGBB", "#AARRGGBB" (alpha first) or an
// SVG color keyword such as "red" or "cornflowerblue". The leading '#' is
// optional for the hex forms. Colors without an alpha component are opaque.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}

	hex := strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}

	switch len(hex) {
	case 3:
		r, g, b := uint8(v>>8&0xf), uint8(v>>4&0xf), uint8(v&0xf)
		return color.NRGBA{R: r * 17, G: g * 17, B: b * 17, A: 0xff}, nil
	case 6:
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	case 8:
		return color.NRGBA{A: uint8(v >> 24), R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q has %d digits", ErrBadColor, s, len(hex))
}

// Hex formats the color part of c as "#RRGGBB", dropping alpha.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// OpacityPercent converts an alpha byte to the 0-100 scale shown in the
// tool options.
func OpacityPercent(a uint8) int {
	return int(a) * 100 / 255
}

// OpacityByte converts a 0-100 percentage to an alpha byte, clamping out of
// range input.
func OpacityByte(percent float64) uint8 {
	switch {
	case percent <= 0:
		return 0
	case percent >= 100:
		return 0xff
	}
	return uint8(percent*255/100 + 0.5)
}

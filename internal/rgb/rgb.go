// Package rgb parses textual colour specifications and blends 8-bit RGB colours.
package rgb

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrInvalidHexLength    = errors.New("hex code must be 6 characters long")
	ErrInvalidHexDigits    = errors.New("invalid hex code")
	ErrWrongComponentCount = errors.New("must be in R, G, B format")
	ErrComponentOutOfRange = errors.New("each value must be a number between 0 - 255")
)

// Color is an opaque 8-bit RGB colour.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Parse accepts "#RRGGBB", "RRGGBB" or a decimal "R,G,B" triple.
func Parse(s string) (Color, error) {
	if strings.HasPrefix(s, "#") || !strings.Contains(s, ",") {
		return parseHex(s)
	}
	return parseTriple(s)
}

func parseHex(s string) (Color, error) {
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 {
		return Color{}, fmt.Errorf("%w: %q has %d digits", ErrInvalidHexLength, s, len(digits))
	}
	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHexDigits, s)
	}
	return Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, nil
}

func parseTriple(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("%w: %q has %d components", ErrWrongComponentCount, s, len(parts))
	}
	var v [3]uint8
	for i, p := range parts {
		tok := strings.TrimSpace(p)
		// a single explicit plus sign is allowed, as in "+10"
		n, err := strconv.ParseUint(strings.TrimPrefix(tok, "+"), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrComponentOutOfRange, tok)
		}
		v[i] = uint8(n)
	}
	return Color{R: v[0], G: v[1], B: v[2]}, nil
}

// Interpolate blends a towards b by t in [0,1]. Channels are rounded half away
// from zero so t=0 yields a and t=1 yields b exactly.
func Interpolate(a, b Color, t float64) Color {
	t = math.Max(0, math.Min(1, t))
	c := a.scaled().BlendRgb(b.scaled(), t)
	return Color{R: channel(c.R), G: channel(c.G), B: channel(c.B)}
}

// Ramp returns n colours evenly spaced from a to b inclusive.
func Ramp(a, b Color, n int) color.Palette {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return color.Palette{a}
	}
	p := make(color.Palette, n)
	for i := range p {
		p[i] = Interpolate(a, b, float64(i)/float64(n-1))
	}
	return p
}

// Colorful converts to the unit-scaled go-colorful representation.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// scaled keeps channels on the 0-255 scale so blending and rounding stay exact
// at the endpoints.
func (c Color) scaled() colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

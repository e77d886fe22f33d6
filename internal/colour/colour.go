// Package colour provides the colour value type used for silhouette
// recolouring, along with the codecs and pixel operations built on it.
package colour

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
	// ErrInvalidColourFormat is returned when a textual colour cannot be decoded.
	ErrInvalidColourFormat = errors.New("invalid colour format")

	// ErrInvalidFactor is returned when a darkening factor is outside [0, 1].
	ErrInvalidFactor = errors.New("darkening factor must be between 0.0 and 1.0")

	// ErrInsufficientPalette is returned when an image has too few distinct
	// colours to infer a light and dark base colour.
	ErrInsufficientPalette = errors.New("insufficient palette")
)

// Colour is an 8-bit, non-premultiplied RGBA colour.
// Two colours are equal when all four channels match.
type Colour struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
	A uint8 `json:"a" yaml:"a"`
}

// Opaque returns c with its alpha channel forced to 255.
func (c Colour) Opaque() Colour {
	c.A = 255
	return c
}

// NRGBA returns c as a color.NRGBA.
func (c Colour) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGBA implements color.Color.
func (c Colour) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// FromColor converts any color.Color into a Colour.
func FromColor(c color.Color) Colour {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Colour{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Hex returns the RGB part of the colour as a hex string (e.g. "#8080ff").
func (c Colour) Hex() string {
	cf, _ := colorful.MakeColor(c.Opaque())
	return cf.Hex()
}

// Channels returns the colour in the comma separated "R,G,B,A" form
// accepted by ParseChannelList.
func (c Colour) Channels() string {
	return fmt.Sprintf("%d,%d,%d,%d", c.R, c.G, c.B, c.A)
}

// String returns the colour in the format "rgba(r, g, b, a)".
func (c Colour) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}

// HexToColour decodes a 6-digit hex code, with or without a leading '#',
// into an opaque colour.
func HexToColour(hex string) (Colour, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(digits) != 6 {
		return Colour{}, fmt.Errorf("%w: %q must have exactly 6 hex digits", ErrInvalidColourFormat, hex)
	}
	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return Colour{}, fmt.Errorf("%w: %q contains a non-hex character", ErrInvalidColourFormat, hex)
		}
	}

	cf, err := colorful.Hex("#" + digits)
	if err != nil {
		return Colour{}, fmt.Errorf("%w: %v", ErrInvalidColourFormat, err)
	}
	r, g, b := cf.RGB255()
	return Colour{R: r, G: g, B: b, A: 255}, nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// ParseChannelList parses "R,G,B" or "R,G,B,A". Alpha defaults to 255.
func ParseChannelList(text string) (Colour, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Colour{}, fmt.Errorf("%w: colour must be specified as 3 or 4 comma-separated integers (RGB or RGBA), got %q",
			ErrInvalidColourFormat, text)
	}

	values := [4]uint8{0, 0, 0, 255}
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Colour{}, fmt.Errorf("%w: colour values must be integers, got %q", ErrInvalidColourFormat, part)
		}
		if v < 0 || v > 255 {
			return Colour{}, fmt.Errorf("%w: colour values must be in the range of 0-255, got %d", ErrInvalidColourFormat, v)
		}
		values[i] = uint8(v)
	}

	return Colour{R: values[0], G: values[1], B: values[2], A: values[3]}, nil
}

// ValidateFactor checks that a darkening factor lies in [0, 1].
func ValidateFactor(factor float64) error {
	if math.IsNaN(factor) || factor < 0 || factor > 1 {
		return fmt.Errorf("%w (got %v)", ErrInvalidFactor, factor)
	}
	return nil
}

// Darken scales each of R, G and B by (1 - factor), rounding down.
// The result is always opaque. A factor of 0 leaves the colour unchanged
// and a factor of 1 yields black.
func Darken(c Colour, factor float64) (Colour, error) {
	if err := ValidateFactor(factor); err != nil {
		return Colour{}, err
	}

	scale := 1 - factor
	return Colour{
		R: scaleChannel(c.R, scale),
		G: scaleChannel(c.G, scale),
		B: scaleChannel(c.B, scale),
		A: 255,
	}, nil
}

func scaleChannel(v uint8, scale float64) uint8 {
	return uint8(math.Floor(float64(v) * scale))
}

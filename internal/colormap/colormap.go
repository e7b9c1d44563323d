// Package colormap maps audio frequencies to stroke colours.
//
// Two policies exist: a continuous rainbow hue ramp and a discrete table of
// seven chakra bands. Colours carry a CSS-style name next to their resolved
// RGBA value so surfaces and logs can show what was requested.
package colormap

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Mode selects a frequency-to-colour policy.
type Mode string

const (
	Rainbow Mode = "rainbow"
	Chakra  Mode = "chakra"
)

// Modes lists the supported policies in UI cycling order.
var Modes = []Mode{Rainbow, Chakra}

// ParseMode reports whether s names a supported policy.
func ParseMode(s string) (Mode, bool) {
	for _, m := range Modes {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// Color is a named colour sample. The zero value is invalid.
type Color struct {
	Name  string
	RGBA  color.NRGBA
	valid bool
}

// New returns a valid colour with the given name.
func New(name string, c color.Color) Color {
	return Color{Name: name, RGBA: color.NRGBAModel.Convert(c).(color.NRGBA), valid: true}
}

// Valid reports whether the colour can be used as a stroke style.
// DefaultColor is not valid.
func (c Color) Valid() bool { return c.valid }

func (c Color) String() string { return c.Name }

var (
	// DefaultColor is returned when no chakra band matches. Surfaces ignore it
	// and keep their previous stroke colour.
	DefaultColor = Color{Name: "DefaultColor"}

	// White is the webcam fallback.
	White = New("#FFFFFF", color.White)
)

// band is an inclusive frequency range in Hz.
type band struct {
	lo, hi float64
	color  Color
}

var chakraBands = []band{
	{200, 400, New("Red", colornames.Red)},
	{400, 800, New("Orange", colornames.Orange)},
	{800, 1500, New("Yellow", colornames.Yellow)},
	{1500, 3000, New("Green", colornames.Green)},
	{3000, 6000, New("Blue", colornames.Blue)},
	{6000, 10000, New("Indigo", colornames.Indigo)},
	{10000, 12000, New("Violet", colornames.Violet)},
}

// ForFrequency returns the colour for hz under mode. Unknown modes fall back
// to the chakra table.
func ForFrequency(hz float64, mode Mode) Color {
	if mode == Rainbow {
		return RainbowColor(hz)
	}
	return ChakraColor(hz)
}

// ChakraColor returns the first band containing hz, or DefaultColor.
func ChakraColor(hz float64) Color {
	for _, b := range chakraBands {
		if hz >= b.lo && hz <= b.hi {
			return b.color
		}
	}
	return DefaultColor
}

// RainbowHue maps hz onto a hue in degrees. The result is not clamped and
// frequencies outside the reference range extrapolate past [0, 360].
func RainbowHue(hz float64) float64 {
	normalized := (hz - 20) / (10000 - 200)
	return normalized * 360
}

// RainbowColor returns a fully saturated, 50% lightness colour at
// RainbowHue(hz). The RGB value wraps the hue modulo 360.
func RainbowColor(hz float64) Color {
	hue := RainbowHue(hz)
	r, g, b := colorful.Hsl(WrapHue(hue), 1, 0.5).RGB255()
	return New(fmt.Sprintf("hsl(%g, 100%%, 50%%)", hue), color.NRGBA{R: r, G: g, B: b, A: 255})
}

// WrapHue folds any hue into [0, 360).
func WrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Next returns the mode after m in Modes, wrapping around. Unknown modes
// restart at the first one.
func Next(m Mode) Mode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return Modes[0]
}

// Echo returns the translucent black laid over the previous frame before a
// new one is drawn. alpha is clamped to [0, 1]; 0 keeps every old frame and
// 1 clears the canvas.
func Echo(alpha float64) Color {
	a := min(max(alpha, 0), 1)
	return New(fmt.Sprintf("rgba(0, 0, 0, %g)", a), color.NRGBA{A: uint8(a*255 + 0.5)})
}

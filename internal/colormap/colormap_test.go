package colormap

import (
	"image/color"
	"math"
	"testing"
)

func TestRainbowHueFormula(t *testing.T) {
	for _, f := range []float64{200, 440, 1000, 5000, 9999, 10000} {
		want := (f - 20) / (10000 - 200) * 360
		if got := RainbowHue(f); math.Abs(got-want) > 1e-9 {
			t.Errorf("RainbowHue(%v): got %v, want %v", f, got, want)
		}
	}
}

func TestRainbowHueMonotonic(t *testing.T) {
	prev := RainbowHue(200)
	for f := 200.0; f <= 10000; f += 37 {
		h := RainbowHue(f)
		if h < prev {
			t.Fatalf("hue decreased at %v Hz: %v < %v", f, h, prev)
		}
		prev = h
	}
}

func TestRainbowHueExtrapolates(t *testing.T) {
	if h := RainbowHue(0); h >= 0 {
		t.Errorf("hue at 0 Hz should be negative, got %v", h)
	}
	if h := RainbowHue(20000); h <= 360 {
		t.Errorf("hue at 20 kHz should exceed 360, got %v", h)
	}
}

func TestRainbowColor(t *testing.T) {
	c := RainbowColor(20)
	if !c.Valid() {
		t.Fatal("rainbow colour should be valid")
	}
	if c.RGBA != (color.NRGBA{R: 255, G: 0, B: 0, A: 255}) {
		t.Errorf("hue 0: got %v, want pure red", c.RGBA)
	}
	if c.Name != "hsl(0, 100%, 50%)" {
		t.Errorf("name: got %q", c.Name)
	}

	// a hue of -120 wraps to 240, which is blue
	hz := 20 - 120.0/360*9800
	if got := RainbowColor(hz).RGBA; got != (color.NRGBA{R: 0, G: 0, B: 255, A: 255}) {
		t.Errorf("wrapped negative hue: got %v, want blue", got)
	}
}

func TestWrapHue(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{359, 359},
		{360, 0},
		{725, 5},
		{-10, 350},
		{-370, 350},
	}
	for _, tt := range tests {
		if got := WrapHue(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapHue(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestChakraColor(t *testing.T) {
	tests := []struct {
		hz   float64
		want string
	}{
		{300, "Red"},
		{600, "Orange"},
		{1000, "Yellow"},
		{2000, "Green"},
		{4000, "Blue"},
		{8000, "Indigo"},
		{11000, "Violet"},
		{150, "DefaultColor"},
		{13000, "DefaultColor"},
	}
	for _, tt := range tests {
		if got := ChakraColor(tt.hz); got.Name != tt.want {
			t.Errorf("ChakraColor(%v): got %s, want %s", tt.hz, got, tt.want)
		}
	}
}

func TestChakraBoundsInclusive(t *testing.T) {
	if got := ChakraColor(200).Name; got != "Red" {
		t.Errorf("200 Hz: got %s, want Red", got)
	}
	if got := ChakraColor(12000).Name; got != "Violet" {
		t.Errorf("12000 Hz: got %s, want Violet", got)
	}
	// shared edges resolve to the earlier band
	if got := ChakraColor(400).Name; got != "Red" {
		t.Errorf("400 Hz: got %s, want Red", got)
	}
}

func TestDefaultColorInvalid(t *testing.T) {
	if DefaultColor.Valid() {
		t.Error("DefaultColor must not be valid")
	}
	if ChakraColor(100).Valid() {
		t.Error("out-of-band chakra colour must not be valid")
	}
}

func TestForFrequencyDispatch(t *testing.T) {
	if got := ForFrequency(300, Chakra).Name; got != "Red" {
		t.Errorf("chakra: got %s", got)
	}
	if got := ForFrequency(20, Rainbow).Name; got != "hsl(0, 100%, 50%)" {
		t.Errorf("rainbow: got %s", got)
	}
}

func TestParseMode(t *testing.T) {
	if m, ok := ParseMode("chakra"); !ok || m != Chakra {
		t.Errorf("chakra: got %q, %v", m, ok)
	}
	if _, ok := ParseMode("sepia"); ok {
		t.Error("sepia should not parse")
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		in, want Mode
	}{
		{Rainbow, Chakra},
		{Chakra, Rainbow},
		{"sepia", Rainbow},
	}
	for _, tt := range tests {
		if got := Next(tt.in); got != tt.want {
			t.Errorf("Next(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEcho(t *testing.T) {
	tests := []struct {
		alpha float64
		a     uint8
		name  string
	}{
		{0.1, 26, "rgba(0, 0, 0, 0.1)"},
		{0, 0, "rgba(0, 0, 0, 0)"},
		{1, 255, "rgba(0, 0, 0, 1)"},
		{-2, 0, "rgba(0, 0, 0, 0)"},
		{7, 255, "rgba(0, 0, 0, 1)"},
	}
	for _, tt := range tests {
		c := Echo(tt.alpha)
		if !c.Valid() {
			t.Errorf("Echo(%v) is invalid", tt.alpha)
		}
		if c.RGBA != (color.NRGBA{A: tt.a}) {
			t.Errorf("Echo(%v): got %v, want alpha %d", tt.alpha, c.RGBA, tt.a)
		}
		if c.Name != tt.name {
			t.Errorf("Echo(%v) name: got %q, want %q", tt.alpha, c.Name, tt.name)
		}
	}
}

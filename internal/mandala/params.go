package mandala

import "github.com/iburimskiy/audio-mandala/internal/colormap"

// Shape names a per-bin drawing procedure.
type Shape string

const (
	Circle              Shape = "circle"
	Torus               Shape = "torus"
	Square              Shape = "square"
	FlowerOfLife        Shape = "flowerOfLife"
	MetatronsCube       Shape = "metatronsCube"
	InterlappingCircles Shape = "drawInterlappingCircles"
	Spiral              Shape = "spiral"

	// Experimental shapes are reachable by name but not offered in the
	// shape cycle.
	Merkaba            Shape = "merkaba"
	Dodecahedron       Shape = "dodecahedron"
	GoldenRatioFractal Shape = "goldenRatioFractal"
)

// Shapes lists the shapes offered by the controls, in cycling order.
var Shapes = []Shape{Circle, Torus, Square, FlowerOfLife, MetatronsCube, InterlappingCircles, Spiral}

// Experimental lists shapes that can be selected by name only.
var Experimental = []Shape{Merkaba, Dodecahedron, GoldenRatioFractal}

// ParseShape reports whether s names a known shape.
func ParseShape(s string) (Shape, bool) {
	for _, list := range [][]Shape{Shapes, Experimental} {
		for _, sh := range list {
			if string(sh) == s {
				return sh, true
			}
		}
	}
	return "", false
}

// NextShape returns the shape after cur in Shapes, wrapping around. A step
// of -1 goes backwards. Shapes outside the cycle restart at the first one.
func NextShape(cur Shape, step int) Shape {
	for i, sh := range Shapes {
		if sh == cur {
			n := len(Shapes)
			return Shapes[((i+step)%n+n)%n]
		}
	}
	return Shapes[0]
}

// Params are the user-controlled render settings read once per frame.
type Params struct {
	Shape           Shape
	ColorMode       colormap.Mode
	EchoAlpha       float64
	Falling         bool
	UseWebcamColors bool
}

// Geometry holds the fixed constants shared by shapes.
type Geometry struct {
	MajorRadius  float64 `yaml:"major_radius"`
	MinorRadius  float64 `yaml:"minor_radius"`
	FractalDepth int     `yaml:"fractal_depth"`
}

// DefaultGeometry returns the classic torus radii.
func DefaultGeometry() Geometry {
	return Geometry{
		MajorRadius:  150,
		MinorRadius:  50,
		FractalDepth: 4,
	}
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

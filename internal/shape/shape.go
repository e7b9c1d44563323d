// Package shape holds the parametric geometry drawn for every spectrum bin.
//
// Each procedure sets its stroke colour, builds one or more paths and strokes
// them. No procedure leaves transforms or partial paths behind.
package shape

import (
	"math"

	"github.com/iburimskiy/audio-mandala/internal/colormap"
)

const (
	fullTurn = 2 * math.Pi

	flowerCircles       = 6
	metatronCircles     = 12
	interlappingCircles = 21

	spiralTurns = 4 * math.Pi
	spiralStep  = 0.1

	torusDotRadius = 2
	torusScale     = 2

	// GoldenRatio is the shrink factor of each fractal level.
	GoldenRatio = 1.618
)

// Params describes one bin: the focus point, the bin magnitude (0-255),
// the bin angle U and the magnitude angle V, both in radians.
type Params struct {
	X, Y  float64
	Value float64
	U, V  float64
	Color colormap.Color
}

func circle(s Surface, x, y, r float64) {
	s.BeginPath()
	s.Arc(x, y, r, 0, fullTurn)
	s.Stroke()
}

func line(s Surface, x1, y1, x2, y2 float64) {
	s.BeginPath()
	s.MoveTo(x1, y1)
	s.LineTo(x2, y2)
	s.Stroke()
}

// ring returns n points spaced evenly on an ellipse with radii rx, ry.
func ring(cx, cy, rx, ry float64, n int) [][2]float64 {
	pts := make([][2]float64, n)
	for i := range pts {
		angle := float64(i) / float64(n) * fullTurn
		pts[i] = [2]float64{cx + rx*math.Cos(angle), cy + ry*math.Sin(angle)}
	}
	return pts
}

// Circle strokes one circle of radius Value*6.
func Circle(s Surface, p Params) {
	s.SetStrokeColor(p.Color)
	circle(s, p.X, p.Y, p.Value*6)
}

// Torus strokes a small dot at the torus parametrisation of (U, V),
// scaled by two around the focus point.
func Torus(s Surface, p Params, major, minor float64) {
	s.SetStrokeColor(p.Color)
	x := (major + minor*math.Cos(p.V)) * math.Cos(p.U)
	y := (major + minor*math.Cos(p.V)) * math.Sin(p.U)
	circle(s, p.X+x*torusScale, p.Y+y*torusScale, torusDotRadius)
}

// Square strokes a mirrored pair of Value-sized squares offset by
// Value*sin(U). The mirrored copy flips the sign of both sizes.
func Square(s Surface, p Params) {
	s.SetStrokeColor(p.Color)
	off := p.Value * math.Sin(p.U)
	s.BeginPath()
	s.Rect(p.X+off, p.Y+off, p.Value, -p.Value)
	s.Rect(p.X-off, p.Y-off, -p.Value, p.Value)
	s.Stroke()
}

// FlowerOfLife strokes the six-circle rosette. Circle radius and placement
// radius are both 2*Value.
func FlowerOfLife(s Surface, p Params) {
	s.SetStrokeColor(p.Color)
	r := p.Value * 2
	for _, pt := range ring(p.X, p.Y, r, r, flowerCircles) {
		circle(s, pt[0], pt[1], r)
	}
}

// MetatronsCube strokes twelve circles on a ring and a line from every point
// to every other point. Edges are drawn in both directions, giving n*(n-1)
// lines.
func MetatronsCube(s Surface, p Params) {
	s.SetStrokeColor(p.Color)
	r := p.Value * 2
	pts := ring(p.X, p.Y, r, r, metatronCircles)
	for i, a := range pts {
		circle(s, a[0], a[1], r)
		for j, b := range pts {
			if i != j {
				line(s, a[0], a[1], b[0], b[1])
			}
		}
	}
}

// InterlappingCircles strokes 21 circles of radius Value placed on an
// ellipse whose radii are Value and 2*Value.
func InterlappingCircles(s Surface, p Params) {
	s.SetStrokeColor(p.Color)
	r := p.Value * 2
	for _, pt := range ring(p.X, p.Y, r/2, r, interlappingCircles) {
		circle(s, pt[0], pt[1], p.Value)
	}
}

// SpiralSteps is the number of vertices of every spiral.
var SpiralSteps = int(math.Floor(spiralTurns/spiralStep)) + 1

// Spiral strokes one polyline sweeping two full turns. The radius grows
// with V; U rotates the whole curve.
func Spiral(s Surface, p Params) {
	s.SetStrokeColor(p.Color)
	s.BeginPath()
	for k := 0; k < SpiralSteps; k++ {
		i := float64(k) * spiralStep
		r := p.V * 6 * i
		s.LineTo(p.X+r*math.Cos(i+p.U), p.Y+r*math.Sin(i+p.U))
	}
	s.Stroke()
}

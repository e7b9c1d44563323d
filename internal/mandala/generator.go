// Package mandala turns one spectrum frame into shape draws.
package mandala

import (
	"math"

	"github.com/iburimskiy/audio-mandala/internal/colormap"
	"github.com/iburimskiy/audio-mandala/internal/shape"
)

// ColorSampler is an optional colour side channel such as a webcam.
type ColorSampler interface {
	// Ready reports whether SampleColor has real data to sample.
	Ready() bool
	SampleColor() colormap.Color
}

// Generator draws mandala frames.
type Generator struct {
	Geometry Geometry
}

// NewGenerator returns a generator using geo.
func NewGenerator(geo Geometry) *Generator {
	return &Generator{Geometry: geo}
}

// Generate draws one shape per spectrum bin onto s. stepHz is the width of a
// bin. cam may be nil. Unknown shapes draw nothing.
func (g *Generator) Generate(s shape.Surface, spectrum []uint8, stepHz float64, p Params, center Point, cam ColorSampler) {
	n := len(spectrum)
	draw := g.procedure(p.Shape)
	if draw == nil || n == 0 {
		return
	}
	useCam := p.UseWebcamColors && cam != nil && cam.Ready()

	for i, value := range spectrum {
		var c colormap.Color
		if useCam {
			c = cam.SampleColor()
		} else {
			c = colormap.ForFrequency(float64(i)*stepHz, p.ColorMode)
		}

		draw(s, shape.Params{
			X:     center.X,
			Y:     center.Y,
			Value: float64(value),
			U:     float64(i) / float64(n) * 2 * math.Pi,
			V:     float64(value) / 255 * 2 * math.Pi,
			Color: c,
		})
	}
}

type procedure func(s shape.Surface, p shape.Params)

func (g *Generator) procedure(sh Shape) procedure {
	geo := g.Geometry
	switch sh {
	case Circle:
		return shape.Circle
	case Torus:
		return func(s shape.Surface, p shape.Params) {
			shape.Torus(s, p, geo.MajorRadius, geo.MinorRadius)
		}
	case Square:
		return shape.Square
	case FlowerOfLife:
		return shape.FlowerOfLife
	case MetatronsCube:
		return shape.MetatronsCube
	case InterlappingCircles:
		return shape.InterlappingCircles
	case Spiral:
		return shape.Spiral
	case Merkaba:
		return func(s shape.Surface, p shape.Params) {
			shape.Merkaba(s, p, geo.MajorRadius, geo.MinorRadius)
		}
	case Dodecahedron:
		return func(s shape.Surface, p shape.Params) {
			shape.Dodecahedron(s, p, geo.MajorRadius)
		}
	case GoldenRatioFractal:
		return func(s shape.Surface, p shape.Params) {
			shape.GoldenRatioFractal(s, p.Color, p.X-p.Value, p.Y-p.Value, 2*p.Value, 2*p.Value, geo.FractalDepth)
		}
	}
	return nil
}

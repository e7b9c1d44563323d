package shape

import (
	"math"

	"github.com/iburimskiy/audio-mandala/internal/colormap"
)

// GoldenRatioFractal fills a rectangle and recurses into its four corners,
// shrinking both sides by GoldenRatio each level. Depth 0 draws nothing.
func GoldenRatioFractal(s Surface, c colormap.Color, x, y, w, h float64, depth int) {
	s.SetFillColor(c)
	goldenRatioFractal(s, x, y, w, h, depth)
}

func goldenRatioFractal(s Surface, x, y, w, h float64, depth int) {
	if depth <= 0 {
		return
	}
	s.FillRect(x, y, w, h)

	nw := w / GoldenRatio
	nh := h / GoldenRatio
	goldenRatioFractal(s, x, y, nw, nh, depth-1)
	goldenRatioFractal(s, x+w-nw, y, nw, nh, depth-1)
	goldenRatioFractal(s, x, y+h-nh, nw, nh, depth-1)
	goldenRatioFractal(s, x+w-nw, y+h-nh, nw, nh, depth-1)
}

// Merkaba strokes two tetrahedra that share a triangular base, one apex
// above and one below, flattened onto the surface. V stretches the major
// radius and shrinks the minor one.
func Merkaba(s Surface, p Params, major, minor float64) {
	s.SetStrokeColor(p.Color)
	minor -= p.V * 100
	major += p.V * 100

	ox := p.X + major*math.Cos(p.U)
	oy := p.Y + major*math.Sin(p.U)

	base := ring(ox, oy, minor, minor, 3)
	s.BeginPath()
	for _, v := range base {
		s.LineTo(v[0], v[1])
	}
	s.ClosePath()
	s.Stroke()

	for _, apexY := range []float64{oy - minor, oy + minor} {
		for _, v := range base {
			line(s, ox, apexY, v[0], v[1])
		}
	}
}

// Phi is the golden ratio used for the dodecahedron.
var Phi = (1 + math.Sqrt(5)) / 2

// DodecahedronVertices returns the 24 sign and axis permutations of
// (a, b, c).
func DodecahedronVertices(a, b, c float64) [][3]float64 {
	return [][3]float64{
		{a, b, c}, {a, b, -c}, {a, -b, c}, {a, -b, -c},
		{-a, b, c}, {-a, b, -c}, {-a, -b, c}, {-a, -b, -c},
		{b, c, a}, {b, c, -a}, {b, -c, a}, {b, -c, -a},
		{-b, c, a}, {-b, c, -a}, {-b, -c, a}, {-b, -c, -a},
		{c, a, b}, {c, a, -b}, {c, -a, b}, {c, -a, -b},
		{-c, a, b}, {-c, a, -b}, {-c, -a, b}, {-c, -a, -b},
	}
}

// DodecahedronEdges indexes pairs of DodecahedronVertices.
var DodecahedronEdges = [][2]int{
	{0, 8}, {0, 10}, {0, 16},
	{1, 9}, {1, 11}, {1, 17},
	{2, 8}, {2, 14}, {2, 18},
	{3, 9}, {3, 15}, {3, 19},
	{4, 12}, {4, 14}, {4, 20},
	{5, 13}, {5, 15}, {5, 21},
	{6, 12}, {6, 10}, {6, 22},
	{7, 13}, {7, 11}, {7, 23},
	{8, 12}, {8, 14},
	{9, 13}, {9, 15},
	{10, 16}, {10, 22},
	{11, 17}, {11, 23},
	{12, 20}, {13, 21},
	{14, 18}, {15, 19},
	{16, 18}, {17, 19},
	{20, 22}, {21, 23},
}

// Dodecahedron projects the (1, 1/Phi, Phi) vertex set onto the surface,
// scaled by major and squeezed by the bin angle U, and strokes its edges.
func Dodecahedron(s Surface, p Params, major float64) {
	s.SetStrokeColor(p.Color)
	verts := DodecahedronVertices(1, 1/Phi, Phi)
	pts := make([][2]float64, len(verts))
	for i, v := range verts {
		pts[i] = [2]float64{
			p.X + major*v[0]*math.Cos(p.U),
			p.Y + major*v[1]*math.Sin(p.U),
		}
	}
	for _, e := range DodecahedronEdges {
		a, b := pts[e[0]], pts[e[1]]
		line(s, a[0], a[1], b[0], b[1])
	}
}

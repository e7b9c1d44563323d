package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/audio-mandala/internal/colormap"
)

const strokeWidth = 1

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Surface draws mandala shapes onto an ebiten image.
type Surface struct {
	dst    *ebiten.Image
	stroke color.NRGBA
	fill   color.NRGBA

	path  vector.Path
	empty bool

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewSurface returns a surface drawing into dst with white stroke and fill.
func NewSurface(dst *ebiten.Image) *Surface {
	return &Surface{
		dst:    dst,
		stroke: colormap.White.RGBA,
		fill:   colormap.White.RGBA,
		empty:  true,
	}
}

// SetTarget redirects drawing to dst, e.g. after the canvas is recreated.
func (s *Surface) SetTarget(dst *ebiten.Image) { s.dst = dst }

func (s *Surface) SetStrokeColor(c colormap.Color) {
	if c.Valid() {
		s.stroke = c.RGBA
	}
}

func (s *Surface) SetFillColor(c colormap.Color) {
	if c.Valid() {
		s.fill = c.RGBA
	}
}

func (s *Surface) BeginPath() {
	s.path = vector.Path{}
	s.empty = true
}

func (s *Surface) MoveTo(x, y float64) {
	s.path.MoveTo(float32(x), float32(y))
	s.empty = false
}

func (s *Surface) LineTo(x, y float64) {
	if s.empty {
		s.MoveTo(x, y)
		return
	}
	s.path.LineTo(float32(x), float32(y))
}

func (s *Surface) Arc(x, y, radius, startAngle, endAngle float64) {
	s.path.Arc(float32(x), float32(y), float32(radius), float32(startAngle), float32(endAngle), vector.Clockwise)
	s.empty = false
}

func (s *Surface) Rect(x, y, w, h float64) {
	s.path.MoveTo(float32(x), float32(y))
	s.path.LineTo(float32(x+w), float32(y))
	s.path.LineTo(float32(x+w), float32(y+h))
	s.path.LineTo(float32(x), float32(y+h))
	s.path.Close()
	s.empty = false
}

func (s *Surface) ClosePath() {
	if !s.empty {
		s.path.Close()
	}
}

// Stroke outlines the current path with the stroke colour. The path is
// kept until the next BeginPath.
func (s *Surface) Stroke() {
	if s.empty || s.dst == nil {
		return
	}
	s.vertices, s.indices = s.path.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], &vector.StrokeOptions{
		Width:    strokeWidth,
		LineJoin: vector.LineJoinRound,
	})
	if len(s.indices) == 0 {
		return
	}
	r, g, b, a := float32(s.stroke.R)/0xff, float32(s.stroke.G)/0xff, float32(s.stroke.B)/0xff, float32(s.stroke.A)/0xff
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = r
		s.vertices[i].ColorG = g
		s.vertices[i].ColorB = b
		s.vertices[i].ColorA = a
	}
	s.dst.DrawTriangles(s.vertices, s.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// FillRect fills a rectangle with the fill colour, blending over what is
// already drawn. Negative sizes extend left or up.
func (s *Surface) FillRect(x, y, w, h float64) {
	if s.dst == nil {
		return
	}
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), s.fill, false)
}

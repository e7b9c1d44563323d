package record

import (
	"github.com/fogleman/gg"

	"github.com/iburimskiy/audio-mandala/internal/colormap"
)

type segKind int

const (
	segMove segKind = iota
	segLine
	segArc
	segClose
)

type segment struct {
	kind          segKind
	x, y, r, a, b float64
}

// Surface draws mandala shapes into a gg context. The path is kept as a
// list of segments and replayed on every Stroke, so a FillRect between two
// strokes does not lose it.
type Surface struct {
	dc     *gg.Context
	stroke colormap.Color
	fill   colormap.Color
	path   []segment
}

// NewSurface returns a w×h transparent surface with white stroke and fill.
func NewSurface(w, h int) *Surface {
	dc := gg.NewContext(w, h)
	dc.SetLineWidth(1)
	return &Surface{dc: dc, stroke: colormap.White, fill: colormap.White}
}

// Context exposes the underlying gg context, e.g. for saving a frame.
func (s *Surface) Context() *gg.Context { return s.dc }

func (s *Surface) SetStrokeColor(c colormap.Color) {
	if c.Valid() {
		s.stroke = c
	}
}

func (s *Surface) SetFillColor(c colormap.Color) {
	if c.Valid() {
		s.fill = c
	}
}

func (s *Surface) BeginPath() { s.path = s.path[:0] }

func (s *Surface) MoveTo(x, y float64) {
	s.path = append(s.path, segment{kind: segMove, x: x, y: y})
}

func (s *Surface) LineTo(x, y float64) {
	if len(s.path) == 0 {
		s.MoveTo(x, y)
		return
	}
	s.path = append(s.path, segment{kind: segLine, x: x, y: y})
}

func (s *Surface) Arc(x, y, radius, startAngle, endAngle float64) {
	s.path = append(s.path, segment{kind: segArc, x: x, y: y, r: radius, a: startAngle, b: endAngle})
}

func (s *Surface) Rect(x, y, w, h float64) {
	s.MoveTo(x, y)
	s.path = append(s.path,
		segment{kind: segLine, x: x + w, y: y},
		segment{kind: segLine, x: x + w, y: y + h},
		segment{kind: segLine, x: x, y: y + h},
		segment{kind: segClose},
	)
}

func (s *Surface) ClosePath() {
	if len(s.path) > 0 {
		s.path = append(s.path, segment{kind: segClose})
	}
}

func (s *Surface) Stroke() {
	if len(s.path) == 0 {
		return
	}
	dc := s.dc
	dc.ClearPath()
	for _, seg := range s.path {
		switch seg.kind {
		case segMove:
			dc.MoveTo(seg.x, seg.y)
		case segLine:
			dc.LineTo(seg.x, seg.y)
		case segArc:
			dc.DrawArc(seg.x, seg.y, seg.r, seg.a, seg.b)
		case segClose:
			dc.ClosePath()
		}
	}
	dc.SetColor(s.stroke.RGBA)
	dc.Stroke()
}

func (s *Surface) FillRect(x, y, w, h float64) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	dc := s.dc
	dc.ClearPath()
	dc.DrawRectangle(x, y, w, h)
	dc.SetColor(s.fill.RGBA)
	dc.Fill()
}

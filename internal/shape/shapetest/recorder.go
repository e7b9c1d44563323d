// Package shapetest provides a shape.Surface that records calls instead of
// drawing them.
package shapetest

import (
	"fmt"

	"github.com/iburimskiy/audio-mandala/internal/colormap"
)

// Op is one recorded surface call.
type Op struct {
	Name string
	Args []float64
	// Stroke is the stroke colour in effect when the op was recorded.
	Stroke colormap.Color
}

func (o Op) String() string { return fmt.Sprintf("%s%v", o.Name, o.Args) }

// Recorder implements shape.Surface.
type Recorder struct {
	Ops    []Op
	stroke colormap.Color
	fill   colormap.Color
}

func (r *Recorder) add(name string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args, Stroke: r.stroke})
}

func (r *Recorder) SetStrokeColor(c colormap.Color) {
	r.add("strokeStyle")
	if c.Valid() {
		r.stroke = c
	}
}

func (r *Recorder) SetFillColor(c colormap.Color) {
	r.add("fillStyle")
	if c.Valid() {
		r.fill = c
	}
}

func (r *Recorder) BeginPath()                        { r.add("beginPath") }
func (r *Recorder) MoveTo(x, y float64)               { r.add("moveTo", x, y) }
func (r *Recorder) LineTo(x, y float64)               { r.add("lineTo", x, y) }
func (r *Recorder) Arc(x, y, rad, start, end float64) { r.add("arc", x, y, rad, start, end) }
func (r *Recorder) Rect(x, y, w, h float64)           { r.add("rect", x, y, w, h) }
func (r *Recorder) ClosePath()                        { r.add("closePath") }
func (r *Recorder) Stroke()                           { r.add("stroke") }
func (r *Recorder) FillRect(x, y, w, h float64)       { r.add("fillRect", x, y, w, h) }

// Count returns how many ops named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Filter returns the ops named name in call order.
func (r *Recorder) Filter(name string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

// Draws counts the ops that put pixels on the surface.
func (r *Recorder) Draws() int {
	return r.Count("stroke") + r.Count("fillRect")
}

// StrokeColor returns the current stroke colour.
func (r *Recorder) StrokeColor() colormap.Color { return r.stroke }

// FillColor returns the current fill colour.
func (r *Recorder) FillColor() colormap.Color { return r.fill }

// Reset drops all recorded ops and keeps the colour state.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

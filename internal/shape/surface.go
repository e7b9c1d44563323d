package shape

import "github.com/iburimskiy/audio-mandala/internal/colormap"

// Surface is an immediate-mode 2-D drawing target with canvas semantics:
// a current stroke colour, a current fill colour and one path under
// construction.
//
// Setting an invalid colour (colormap.DefaultColor) leaves the previous
// colour in place. LineTo on an empty path behaves like MoveTo. Rect adds a
// closed subpath and accepts negative sizes. Stroke draws the current path
// and keeps it; shapes always call BeginPath before building a new one.
type Surface interface {
	SetStrokeColor(c colormap.Color)
	SetFillColor(c colormap.Color)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, radius, startAngle, endAngle float64)
	Rect(x, y, w, h float64)
	ClosePath()
	Stroke()
	FillRect(x, y, w, h float64)
}

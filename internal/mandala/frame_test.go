package mandala

import (
	"math"
	"testing"

	"github.com/iburimskiy/audio-mandala/internal/colormap"
	"github.com/iburimskiy/audio-mandala/internal/shape/shapetest"
)

type fakeAnalyser struct {
	frame []uint8
	got   []float64
}

func (a *fakeAnalyser) FFTSize() int  { return 2 * len(a.frame) }
func (a *fakeAnalyser) BinCount() int { return len(a.frame) }

func (a *fakeAnalyser) ByteFrequencyData(samples []float64, dst []uint8) []uint8 {
	a.got = samples
	return append(dst[:0], a.frame...)
}

type fakeSource struct {
	calls int
	n     int
}

func (s *fakeSource) Snapshot(dst []float64, n int) []float64 {
	s.calls++
	s.n = n
	return make([]float64, n)
}

func newTestRenderer(frame []uint8) (*Renderer, *fakeAnalyser) {
	a := &fakeAnalyser{frame: frame}
	return NewRenderer(a, NewGenerator(DefaultGeometry()), Point{}, DefaultApproachRate), a
}

func TestRendererFrame(t *testing.T) {
	r, a := newTestRenderer([]uint8{10, 20, 30, 40})
	src := &fakeSource{}
	rec := &shapetest.Recorder{}
	p := Params{Shape: Circle, ColorMode: colormap.Rainbow, EchoAlpha: 0.25}

	r.Frame(rec, src, 44100, 200, 200, p, nil)

	if src.calls != 1 || src.n != 8 {
		t.Errorf("snapshot: got %d calls of %d samples, want 1 of 8", src.calls, src.n)
	}
	if len(a.got) != 8 {
		t.Errorf("analysed %d samples, want 8", len(a.got))
	}

	if len(rec.Ops) < 2 || rec.Ops[0].Name != "fillStyle" || rec.Ops[1].Name != "fillRect" {
		t.Fatalf("frame does not start with the echo fade: %v", rec.Ops)
	}
	if got := rec.Ops[1].Args; got[0] != 0 || got[1] != 0 || got[2] != 200 || got[3] != 200 {
		t.Errorf("fade rect: got %v, want whole frame", got)
	}
	if got, want := rec.FillColor(), colormap.Echo(0.25); got != want {
		t.Errorf("fade colour: got %v, want %v", got, want)
	}

	arcs := rec.Filter("arc")
	if len(arcs) != 4 {
		t.Fatalf("arcs: got %d, want one per bin", len(arcs))
	}
	// the centre moved one step from (0,0) towards (100,100) before drawing
	if arcs[0].Args[0] != 5 || arcs[0].Args[1] != 5 {
		t.Errorf("arc centre: got (%v, %v), want (5, 5)", arcs[0].Args[0], arcs[0].Args[1])
	}

	spectrum, step := r.Spectrum()
	if len(spectrum) != 4 || step != 44100.0/2/4 {
		t.Errorf("spectrum: got %v at %v Hz", spectrum, step)
	}
}

func TestRendererOneStepPerFrame(t *testing.T) {
	r, _ := newTestRenderer([]uint8{50})
	want := NewAnimator(Point{}, DefaultApproachRate)
	p := Params{Shape: Circle, ColorMode: colormap.Rainbow, EchoAlpha: 0.1}

	for i := 0; i < 3; i++ {
		r.Frame(&shapetest.Recorder{}, &fakeSource{}, 44100, 640, 480, p, nil)
		want.Tick(Point{X: 320, Y: 240})
	}
	got := r.Center()
	if math.Abs(got.X-want.Center.X) > 1e-9 || math.Abs(got.Y-want.Center.Y) > 1e-9 {
		t.Errorf("after 3 frames: got %v, want %v", got, want.Center)
	}
}

func TestRendererWithoutSource(t *testing.T) {
	r, _ := newTestRenderer([]uint8{200, 200})
	p := Params{Shape: Circle, ColorMode: colormap.Rainbow, EchoAlpha: 0.1}

	r.Frame(&shapetest.Recorder{}, &fakeSource{}, 8000, 100, 100, p, nil)
	rec := &shapetest.Recorder{}
	r.Frame(rec, nil, 0, 100, 100, p, nil)

	if rec.Count("fillRect") != 1 {
		t.Errorf("fade: got %d fills, want 1", rec.Count("fillRect"))
	}
	if rec.Count("stroke") != 0 {
		t.Errorf("drew %d shapes without audio", rec.Count("stroke"))
	}
	if spectrum, _ := r.Spectrum(); len(spectrum) != 0 {
		t.Errorf("stale spectrum kept: %v", spectrum)
	}
}

func TestClamp01(t *testing.T) {
	for _, tt := range []struct{ in, want float64 }{
		{-0.5, 0}, {0, 0}, {0.3, 0.3}, {1, 1}, {4, 1},
	} {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

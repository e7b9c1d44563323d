package record

import (
	"context"
	"errors"
	"image/color"
	"math"
	"os"
	"testing"

	"github.com/faiface/beep"

	"github.com/iburimskiy/audio-mandala/internal/audio"
	"github.com/iburimskiy/audio-mandala/internal/colormap"
	"github.com/iburimskiy/audio-mandala/internal/config"
)

type sineStreamer struct {
	n, pos int
	freq   float64
	rate   float64
}

func (s *sineStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.n {
		return 0, false
	}
	i := 0
	for ; i < len(samples) && s.pos < s.n; i++ {
		v := 0.8 * math.Sin(2*math.Pi*s.freq*float64(s.pos)/s.rate)
		samples[i] = [2]float64{v, v}
		s.pos++
	}
	return i, true
}

func (s *sineStreamer) Err() error { return nil }

func rgbaAt(s *Surface, x, y int) color.RGBA {
	return s.Context().Image().At(x, y).(color.RGBA)
}

var red = colormap.New("Red", color.RGBA{R: 255, A: 255})

func TestSurfaceFillRect(t *testing.T) {
	s := NewSurface(100, 100)
	s.SetFillColor(red)
	s.FillRect(50, 50, -20, -20)

	if got := rgbaAt(s, 40, 40); got.R != 255 || got.A != 255 {
		t.Errorf("inside: got %v, want red", got)
	}
	if got := rgbaAt(s, 60, 60); got.A != 0 {
		t.Errorf("outside: got %v, want transparent", got)
	}
}

func TestSurfaceEchoFade(t *testing.T) {
	s := NewSurface(10, 10)
	s.SetFillColor(colormap.White)
	s.FillRect(0, 0, 10, 10)
	s.SetFillColor(colormap.Echo(0.5))
	s.FillRect(0, 0, 10, 10)

	got := rgbaAt(s, 5, 5)
	if got.R < 120 || got.R > 135 || got.A != 255 {
		t.Errorf("faded pixel: got %v, want about half grey", got)
	}
}

func TestSurfaceStrokeKeepsColourOnInvalid(t *testing.T) {
	s := NewSurface(100, 40)
	s.SetStrokeColor(red)
	s.SetStrokeColor(colormap.DefaultColor)
	s.BeginPath()
	s.MoveTo(10, 20.5)
	s.LineTo(90, 20.5)
	s.Stroke()

	got := rgbaAt(s, 50, 20)
	if got.R < 200 || got.G > 50 || got.B > 50 {
		t.Errorf("got %v, want red", got)
	}
}

func TestSurfaceLineToStartsPath(t *testing.T) {
	s := NewSurface(100, 40)
	s.BeginPath()
	s.LineTo(10, 20.5)
	s.LineTo(90, 20.5)
	s.Stroke()

	if got := rgbaAt(s, 50, 20); got.A == 0 {
		t.Error("no line drawn from the first LineTo point")
	}
	if got := rgbaAt(s, 5, 5); got.A != 0 {
		t.Errorf("stray pixel: %v", got)
	}
}

func TestSurfacePathSurvivesFillRect(t *testing.T) {
	s := NewSurface(100, 40)
	s.BeginPath()
	s.MoveTo(10, 30.5)
	s.LineTo(90, 30.5)
	s.FillRect(0, 0, 5, 5)
	s.Stroke()

	if got := rgbaAt(s, 50, 30); got.A == 0 {
		t.Error("path lost after FillRect")
	}
}

func TestNewValidates(t *testing.T) {
	if _, err := New(config.Default(), Options{Width: 0, Height: 10}); err == nil {
		t.Error("zero width accepted")
	}
	cfg := config.Default()
	cfg.Audio.Analyser.FFTSize = 30
	if _, err := New(cfg, Options{Width: 10, Height: 10}); err == nil {
		t.Error("bad analyser config accepted")
	}
}

func TestRender(t *testing.T) {
	cfg := config.Default()
	cfg.Render.EchoAlpha = 1
	r, err := New(cfg, Options{Width: 64, Height: 48, FPS: 10})
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	format := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	src := &sineStreamer{n: 8000, freq: 1000, rate: 8000}

	n, err := r.Render(context.Background(), src, format, dir)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n != 10 {
		t.Errorf("frames: got %d, want 10", n)
	}
	for i := 0; i < n; i++ {
		if _, err := os.Stat(FramePath(dir, i)); err != nil {
			t.Errorf("frame %d: %v", i, err)
		}
	}
	if _, err := os.Stat(FramePath(dir, n)); !os.IsNotExist(err) {
		t.Error("extra frame written")
	}
}

func TestRenderMaxFrames(t *testing.T) {
	r, err := New(config.Default(), Options{Width: 32, Height: 32, FPS: 10, MaxFrames: 3})
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	n, err := r.Render(context.Background(), &sineStreamer{n: 80000, freq: 440, rate: 8000}, format, t.TempDir())
	if err != nil || n != 3 {
		t.Errorf("got %d, %v; want 3 frames", n, err)
	}
}

func TestRenderCanceled(t *testing.T) {
	r, err := New(config.Default(), Options{Width: 32, Height: 32})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	format := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	n, err := r.Render(ctx, &sineStreamer{n: 8000, freq: 440, rate: 8000}, format, t.TempDir())
	if !errors.Is(err, context.Canceled) || n != 0 {
		t.Errorf("got %d, %v; want 0 frames and context.Canceled", n, err)
	}
}

func TestRenderDrawsSomething(t *testing.T) {
	cfg := config.Default()
	cfg.Render.EchoAlpha = 0
	cfg.Render.Shape = "spiral"
	r, err := New(cfg, Options{Width: 400, Height: 400, FPS: 10})
	if err != nil {
		t.Fatal(err)
	}
	samples := make([]float32, 32)
	for i := range samples {
		samples[i] = float32(0.9 * math.Sin(2*math.Pi*3*float64(i)/32))
	}
	tap := audio.NewTap(nil, 32)
	tap.Write(samples)
	r.RenderFrame(tap, 44100)

	img := r.Surface().Context().Image()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
				return
			}
		}
	}
	t.Error("frame is empty")
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iburimskiy/audio-mandala/internal/colormap"
	"github.com/iburimskiy/audio-mandala/internal/mandala"
)

func TestDefaultParams(t *testing.T) {
	p := Default().Params()
	if p.Shape != mandala.Circle || p.ColorMode != colormap.Rainbow {
		t.Errorf("got %s/%s, want circle/rainbow", p.Shape, p.ColorMode)
	}
	if p.EchoAlpha != 0.1 || p.Falling || p.UseWebcamColors {
		t.Errorf("got %+v", p)
	}
}

func TestApplyLaunchParams(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		shape   string
		mode    string
		echo    float64
		falling bool
	}{
		{"empty", "", "circle", "rainbow", 0.1, false},
		{"all", "shape=torus&colorMode=chakra&echoEffect=0.2&fallingEffect=true", "torus", "chakra", 0.2, true},
		{"unknown shape", "shape=hexagon", "circle", "rainbow", 0.1, false},
		{"unknown mode", "colorMode=sepia", "circle", "rainbow", 0.1, false},
		{"bad echo", "echoEffect=lots", "circle", "rainbow", 0.1, false},
		{"echo clamped high", "echoEffect=3", "circle", "rainbow", 1, false},
		{"echo clamped low", "echoEffect=-1", "circle", "rainbow", 0, false},
		{"falling not true", "fallingEffect=yes", "circle", "rainbow", 0.1, false},
		{"experimental shape", "shape=merkaba", "merkaba", "rainbow", 0.1, false},
		{"unknown key", "speed=9&shape=spiral", "spiral", "rainbow", 0.1, false},
		{"malformed pair", "shape=square&%zz&colorMode=chakra", "square", "chakra", 0.1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			c.ApplyLaunchParams(tt.query)
			r := c.Render
			if r.Shape != tt.shape || r.ColorMode != tt.mode || r.EchoAlpha != tt.echo || r.Falling != tt.falling {
				t.Errorf("got %s/%s/%v/%v, want %s/%s/%v/%v",
					r.Shape, r.ColorMode, r.EchoAlpha, r.Falling,
					tt.shape, tt.mode, tt.echo, tt.falling)
			}
		})
	}
}

func TestFallingCanBeSwitchedOff(t *testing.T) {
	c := Default()
	c.Render.Falling = true
	c.ApplyLaunchParams("fallingEffect=false")
	if c.Render.Falling {
		t.Error("fallingEffect=false kept falling on")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
window:
  width: 640
render:
  shape: metatronsCube
  echo_alpha: 0.4
  geometry:
    major_radius: 90
audio:
  analyser:
    fft_size: 64
webcam:
  device: /dev/video2
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Window.Width != 640 || c.Window.Height != WindowHeight {
		t.Errorf("window: got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Render.Shape != "metatronsCube" || c.Render.EchoAlpha != 0.4 {
		t.Errorf("render: got %+v", c.Render)
	}
	want := mandala.DefaultGeometry()
	want.MajorRadius = 90
	if c.Render.Geometry != want {
		t.Errorf("geometry: got %+v, want %+v", c.Render.Geometry, want)
	}
	if c.Audio.Analyser.FFTSize != 64 || c.Audio.Analyser.Smoothing != 0.85 {
		t.Errorf("analyser: got %+v", c.Audio.Analyser)
	}
	if c.Audio.Mic.SampleRate != 44100 {
		t.Errorf("mic defaults lost: %+v", c.Audio.Mic)
	}
	if c.Webcam.Device != "/dev/video2" || c.Webcam.FFmpegPath != "ffmpeg" {
		t.Errorf("webcam: got %+v", c.Webcam)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Errorf("missing file: got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("window: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("broken yaml loaded without error")
	}
}

func TestLoadDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)

	c, path, err := LoadDefault()
	if err != nil || path != "" {
		t.Fatalf("no file: got %q, %v", path, err)
	}
	if c.Render.Shape != "circle" {
		t.Errorf("defaults: got %+v", c.Render)
	}

	file := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(file), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, []byte("render:\n  color_mode: chakra\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	c, path, err = LoadDefault()
	if err != nil || path != file {
		t.Fatalf("with file: got %q, %v", path, err)
	}
	if c.Render.ColorMode != "chakra" {
		t.Errorf("color mode: got %s", c.Render.ColorMode)
	}

	if err := os.WriteFile(file, []byte("render: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	c, _, err = LoadDefault()
	if err == nil {
		t.Error("broken default file not reported")
	}
	if c == nil || c.Render.Shape != "circle" {
		t.Error("defaults not returned alongside the error")
	}
}

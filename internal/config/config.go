// Package config holds the visualizer settings: built-in layout constants,
// the YAML config file and the launch parameters applied on top of it.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/audio-mandala/internal/audio"
	"github.com/iburimskiy/audio-mandala/internal/colormap"
	"github.com/iburimskiy/audio-mandala/internal/mandala"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768

	VisualRingSize = 8192

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 50

	// Spectrum strip and progress bar
	StripHeight    = 40
	ProgressHeight = 16

	EchoStep = 0.05
)

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	HUD    bool   `yaml:"hud"`
}

type AudioConfig struct {
	Analyser audio.AnalyserConfig `yaml:"analyser"`
	Mic      audio.CaptureConfig  `yaml:"mic"`
}

type RenderConfig struct {
	Shape           string           `yaml:"shape"`
	ColorMode       string           `yaml:"color_mode"`
	EchoAlpha       float64          `yaml:"echo_alpha"`
	Falling         bool             `yaml:"falling"`
	UseWebcamColors bool             `yaml:"webcam_colors"`
	ApproachRate    float64          `yaml:"approach_rate"`
	Geometry        mandala.Geometry `yaml:"geometry"`
}

type WebcamConfig struct {
	FFmpegPath string `yaml:"ffmpeg_path"`
	Format     string `yaml:"format"`
	Device     string `yaml:"device"`
}

type Config struct {
	Window WindowConfig `yaml:"window"`
	Audio  AudioConfig  `yaml:"audio"`
	Render RenderConfig `yaml:"render"`
	Webcam WebcamConfig `yaml:"webcam"`
}

// Default returns the settings used when nothing else is given.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  "Audio Mandala - S: shape, C: colours, W: webcam, V: immersive, O: open file, Esc/Q: quit",
			HUD:    true,
		},
		Audio: AudioConfig{
			Analyser: audio.DefaultAnalyserConfig(),
			Mic:      audio.DefaultCaptureConfig(),
		},
		Render: RenderConfig{
			Shape:        string(mandala.Circle),
			ColorMode:    string(colormap.Rainbow),
			EchoAlpha:    0.1,
			ApproachRate: mandala.DefaultApproachRate,
			Geometry:     mandala.DefaultGeometry(),
		},
		Webcam: WebcamConfig{
			FFmpegPath: "ffmpeg",
		},
	}
}

// LoadFromFile merges the YAML file at path into c.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if err := c.LoadFromFile(path); err != nil {
		return nil, err
	}
	return c, nil
}

// DefaultPath is where LoadDefault looks for a config file.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "audio-mandala", "config.yaml")
}

// LoadDefault loads DefaultPath when it exists. It never fails: a missing
// file yields the defaults and an empty path. A file that exists but does
// not parse is returned as err so the caller can report it.
func LoadDefault() (c *Config, path string, err error) {
	c = Default()
	path = DefaultPath()
	if path == "" {
		return c, "", nil
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return c, "", nil
	}
	loaded, err := Load(path)
	if err != nil {
		return c, path, err
	}
	return loaded, path, nil
}

// ApplyLaunchParams overrides render settings from a URL query string such
// as "shape=torus&colorMode=chakra&echoEffect=0.2&fallingEffect=true".
// Unknown keys and invalid values are ignored.
func (c *Config) ApplyLaunchParams(query string) {
	values, err := url.ParseQuery(query)
	if err != nil && len(values) == 0 {
		return
	}
	if v := values.Get("shape"); v != "" {
		if s, ok := mandala.ParseShape(v); ok {
			c.Render.Shape = string(s)
		}
	}
	if v := values.Get("colorMode"); v != "" {
		if m, ok := colormap.ParseMode(v); ok {
			c.Render.ColorMode = string(m)
		}
	}
	if v := values.Get("echoEffect"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Render.EchoAlpha = mandala.Clamp01(f)
		}
	}
	if values.Has("fallingEffect") {
		c.Render.Falling = values.Get("fallingEffect") == "true"
	}
}

// Params returns the render parameters described by the config. Unknown
// shape or colour names pass through; the generator draws nothing for an
// unknown shape.
func (c *Config) Params() mandala.Params {
	return mandala.Params{
		Shape:           mandala.Shape(c.Render.Shape),
		ColorMode:       colormap.Mode(c.Render.ColorMode),
		EchoAlpha:       mandala.Clamp01(c.Render.EchoAlpha),
		Falling:         c.Render.Falling,
		UseWebcamColors: c.Render.UseWebcamColors,
	}
}

// Package record renders an audio file to numbered PNG frames without a
// window, using the same analyser and mandala generator as the live view.
package record

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/faiface/beep"

	"github.com/iburimskiy/audio-mandala/internal/audio"
	"github.com/iburimskiy/audio-mandala/internal/config"
	"github.com/iburimskiy/audio-mandala/internal/mandala"
)

// DefaultFPS is the frame rate used when Options.FPS is not set.
const DefaultFPS = 30

// Options shape the output video.
type Options struct {
	Width, Height int
	FPS           int
	// MaxFrames stops rendering early; zero renders the whole stream.
	MaxFrames int
}

// Recorder turns an audio stream into mandala frames.
type Recorder struct {
	opts     Options
	params   mandala.Params
	analyser *audio.Analyser
	renderer *mandala.Renderer
	surface  *Surface
}

// New builds a recorder from the render and analyser settings in cfg.
func New(cfg *config.Config, opts Options) (*Recorder, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	analyser, err := audio.NewAnalyser(cfg.Audio.Analyser)
	if err != nil {
		return nil, err
	}
	center := mandala.Point{X: float64(opts.Width) / 2, Y: float64(opts.Height) / 2}
	return &Recorder{
		opts:     opts,
		params:   cfg.Params(),
		analyser: analyser,
		renderer: mandala.NewRenderer(analyser, mandala.NewGenerator(cfg.Render.Geometry), center, cfg.Render.ApproachRate),
		surface:  NewSurface(opts.Width, opts.Height),
	}, nil
}

// Surface returns the surface frames are drawn on.
func (r *Recorder) Surface() *Surface { return r.surface }

// FramePath names frame i inside dir.
func FramePath(dir string, i int) string {
	return filepath.Join(dir, fmt.Sprintf("frame_%05d.png", i))
}

// RenderFrame draws one frame from the newest samples in src, recorded at
// rate Hz.
func (r *Recorder) RenderFrame(src mandala.SampleSource, rate float64) {
	r.renderer.Frame(r.surface, src, rate, float64(r.opts.Width), float64(r.opts.Height), r.params, nil)
}

// Render reads s until it is drained, writing one PNG per frame into dir.
// It returns the number of frames written.
func (r *Recorder) Render(ctx context.Context, s beep.Streamer, format beep.Format, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	perFrame := format.SampleRate.N(time.Second / time.Duration(r.opts.FPS))
	if perFrame <= 0 {
		return 0, errors.New("sample rate too low for frame rate")
	}
	tap := audio.NewTap(s, max(perFrame, r.analyser.FFTSize()))
	buf := make([][2]float64, perFrame)
	rate := float64(format.SampleRate)

	frames := 0
	for r.opts.MaxFrames == 0 || frames < r.opts.MaxFrames {
		if err := ctx.Err(); err != nil {
			return frames, err
		}
		n, ok := tap.Stream(buf)
		if !ok && n == 0 {
			break
		}
		r.RenderFrame(tap, rate)

		path := FramePath(dir, frames)
		if err := r.surface.Context().SavePNG(path); err != nil {
			return frames, fmt.Errorf("write %s: %w", filepath.Base(path), err)
		}
		frames++
		if frames%(r.opts.FPS*10) == 0 {
			slog.Debug("recording", "frames", frames)
		}
	}
	if err := tap.Err(); err != nil {
		return frames, fmt.Errorf("read audio: %w", err)
	}
	slog.Info("recording finished", "frames", frames, "dir", dir)
	return frames, nil
}

// RenderFile decodes path and renders it into dir.
func (r *Recorder) RenderFile(ctx context.Context, path, dir string) (int, error) {
	s, format, err := audio.Decode(path)
	if err != nil {
		return 0, err
	}
	defer s.Close()
	return r.Render(ctx, s, format, dir)
}

package mandala

import (
	"github.com/iburimskiy/audio-mandala/internal/audio"
	"github.com/iburimskiy/audio-mandala/internal/colormap"
	"github.com/iburimskiy/audio-mandala/internal/shape"
)

// Analyser turns the newest samples into a spectrum frame.
type Analyser interface {
	FFTSize() int
	BinCount() int
	ByteFrequencyData(samples []float64, dst []uint8) []uint8
}

// SampleSource holds recent mono samples, oldest first.
type SampleSource interface {
	Snapshot(dst []float64, n int) []float64
}

// Renderer produces one complete frame per call: it analyses the audio,
// moves the centre one step, fades the previous frame and draws the new
// shapes. Call Frame exactly once per displayed frame.
type Renderer struct {
	analyser  Analyser
	generator *Generator
	animator  *Animator

	samples  []float64
	spectrum []uint8
	stepHz   float64
}

// NewRenderer starts the centre at start.
func NewRenderer(a Analyser, g *Generator, start Point, rate float64) *Renderer {
	return &Renderer{
		analyser:  a,
		generator: g,
		animator:  NewAnimator(start, rate),
	}
}

// Frame draws one w×h frame onto s. src may be nil, in which case the
// previous frame still fades but no shapes are drawn. rate is the sample
// rate of src.
func (r *Renderer) Frame(s shape.Surface, src SampleSource, rate float64, w, h float64, p Params, cam ColorSampler) {
	r.analyse(src, rate)
	center := r.animator.Tick(Point{X: w / 2, Y: h / 2})

	s.SetFillColor(colormap.Echo(p.EchoAlpha))
	s.FillRect(0, 0, w, h)
	r.generator.Generate(s, r.spectrum, r.stepHz, p, center, cam)
}

func (r *Renderer) analyse(src SampleSource, rate float64) {
	if src == nil {
		r.spectrum = r.spectrum[:0]
		return
	}
	r.samples = src.Snapshot(r.samples, r.analyser.FFTSize())
	r.spectrum = r.analyser.ByteFrequencyData(r.samples, r.spectrum)
	r.stepHz = audio.FrequencyStep(rate, r.analyser.BinCount())
}

// Spectrum returns the frame analysed by the last Frame call and the width
// of one bin in Hz.
func (r *Renderer) Spectrum() ([]uint8, float64) { return r.spectrum, r.stepHz }

// Center returns the current focus point.
func (r *Renderer) Center() Point { return r.animator.Center }

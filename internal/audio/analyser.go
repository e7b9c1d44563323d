// Package audio captures, buffers and analyses the sound driving the mandala.
package audio

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// ErrFFTSize is returned for an FFT size that is not a power of two in
// [32, 32768].
var ErrFFTSize = errors.New("audio: fft size must be a power of two between 32 and 32768")

// AnalyserConfig mirrors the knobs of a browser AnalyserNode.
type AnalyserConfig struct {
	FFTSize     int     `yaml:"fft_size"`
	MinDecibels float64 `yaml:"min_decibels"`
	MaxDecibels float64 `yaml:"max_decibels"`
	Smoothing   float64 `yaml:"smoothing"`
}

// DefaultAnalyserConfig returns a coarse 16-bin analyser.
func DefaultAnalyserConfig() AnalyserConfig {
	return AnalyserConfig{
		FFTSize:     32,
		MinDecibels: -90,
		MaxDecibels: -10,
		Smoothing:   0.85,
	}
}

// Analyser converts the most recent FFTSize samples into byte frequency
// data: Blackman window, FFT, magnitude smoothing over time, decibels and a
// linear map of [MinDecibels, MaxDecibels] onto 0-255.
type Analyser struct {
	cfg    AnalyserConfig
	buf    []float64
	smooth []float64
}

// NewAnalyser validates cfg and returns an Analyser.
func NewAnalyser(cfg AnalyserConfig) (*Analyser, error) {
	n := cfg.FFTSize
	if n < 32 || n > 32768 || n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrFFTSize, n)
	}
	if cfg.MinDecibels >= cfg.MaxDecibels {
		return nil, fmt.Errorf("audio: min decibels %v must be below max decibels %v", cfg.MinDecibels, cfg.MaxDecibels)
	}
	if cfg.Smoothing < 0 || cfg.Smoothing > 1 {
		return nil, fmt.Errorf("audio: smoothing %v outside [0, 1]", cfg.Smoothing)
	}
	return &Analyser{
		cfg:    cfg,
		buf:    make([]float64, n),
		smooth: make([]float64, n/2),
	}, nil
}

// FFTSize returns the analysis window length in samples.
func (a *Analyser) FFTSize() int { return a.cfg.FFTSize }

// BinCount returns the number of frequency bins, FFTSize/2.
func (a *Analyser) BinCount() int { return a.cfg.FFTSize / 2 }

// Reset forgets the smoothed spectrum.
func (a *Analyser) Reset() {
	for i := range a.smooth {
		a.smooth[i] = 0
	}
}

// ByteFrequencyData analyses the last FFTSize entries of samples into dst,
// growing it to BinCount. Missing leading samples count as silence.
func (a *Analyser) ByteFrequencyData(samples []float64, dst []uint8) []uint8 {
	n := a.cfg.FFTSize
	bins := n / 2
	if cap(dst) < bins {
		dst = make([]uint8, bins)
	}
	dst = dst[:bins]

	for i := range a.buf {
		a.buf[i] = 0
	}
	if len(samples) > n {
		samples = samples[len(samples)-n:]
	}
	copy(a.buf[n-len(samples):], samples)

	window.Apply(a.buf, window.Blackman)
	spectrum := fft.FFTReal(a.buf)

	tau := a.cfg.Smoothing
	scale := 255 / (a.cfg.MaxDecibels - a.cfg.MinDecibels)
	for k := 0; k < bins; k++ {
		mag := cmplx.Abs(spectrum[k]) / float64(n)
		s := tau*a.smooth[k] + (1-tau)*mag
		if math.IsNaN(s) || math.IsInf(s, 0) {
			s = 0
		}
		a.smooth[k] = s

		db := 20 * math.Log10(s)
		v := math.Floor(scale * (db - a.cfg.MinDecibels))
		switch {
		case math.IsNaN(v) || v < 0:
			dst[k] = 0
		case v > 255:
			dst[k] = 255
		default:
			dst[k] = uint8(v)
		}
	}
	return dst
}

// FrequencyStep returns the width in Hz of each of bins bins spanning
// 0 to the Nyquist frequency.
func FrequencyStep(sampleRate float64, bins int) float64 {
	if bins <= 0 {
		return 0
	}
	return sampleRate / 2 / float64(bins)
}

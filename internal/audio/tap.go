package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// Tap records the last N mono samples into a ring buffer so the renderer
// can analyse recently heard audio.
//
// A Tap is fed either by wrapping a beep.Streamer (file playback) or by
// Write calls from a capture loop.
type Tap struct {
	Source    beep.Streamer
	buffer    []float64
	nextIndex int
	written   int
	mu        sync.RWMutex
}

// NewTap returns a Tap holding ringSize samples. src may be nil when the Tap
// is fed through Write.
func NewTap(src beep.Streamer, ringSize int) *Tap {
	return &Tap{
		Source: src,
		buffer: make([]float64, ringSize),
	}
}

// Stream implements beep.Streamer, passing samples through while recording
// their mono mix.
func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.push((samples[i][0] + samples[i][1]) * 0.5)
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Write records captured mono samples.
func (t *Tap) Write(samples []float32) {
	t.mu.Lock()
	for _, s := range samples {
		t.push(float64(s))
	}
	t.mu.Unlock()
}

func (t *Tap) push(v float64) {
	t.buffer[t.nextIndex] = v
	t.nextIndex++
	if t.nextIndex >= len(t.buffer) {
		t.nextIndex = 0
	}
	if t.written < len(t.buffer) {
		t.written++
	}
}

// Len returns how many samples are buffered.
func (t *Tap) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.written
}

// Snapshot copies the last n samples into dst in chronological order and
// returns dst. dst is grown when shorter than n. Slots that were never
// written read as silence.
func (t *Tap) Snapshot(dst []float64, n int) []float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > len(t.buffer) {
		n = len(t.buffer)
	}
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]

	idx := t.nextIndex - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := 0; i < n; i++ {
		dst[i] = t.buffer[idx]
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
	return dst
}

// CaptureConfig selects the microphone device and stream shape.
type CaptureConfig struct {
	// Device is an index into the host's device list; negative picks the
	// default input.
	Device          int     `yaml:"device"`
	SampleRate      float64 `yaml:"sample_rate"`
	FramesPerBuffer int     `yaml:"frames_per_buffer"`
}

// DefaultCaptureConfig captures from the default input at 44.1 kHz.
func DefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		Device:          -1,
		SampleRate:      44100,
		FramesPerBuffer: 512,
	}
}

// Input is a tap together with the sample rate it records at.
type Input struct {
	Tap  *Tap
	Rate float64
}

// Active returns the first input that has a tap. Callers list inputs by
// priority, so a playing file listed before the microphone wins and the
// microphone takes over once the file's tap is released.
func Active(inputs ...Input) (Input, bool) {
	for _, in := range inputs {
		if in.Tap != nil {
			return in, true
		}
	}
	return Input{}, false
}

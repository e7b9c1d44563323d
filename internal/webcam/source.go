// Package webcam samples stroke colours from a live camera picture.
package webcam

import (
	"fmt"
	"image"
	"math/rand/v2"
	"sync/atomic"

	"github.com/iburimskiy/audio-mandala/internal/colormap"
)

// Capture buffer size in pixels.
const (
	Width  = 320
	Height = 240
)

// Source holds the most recent camera frame. The zero value has no frame
// and samples white.
type Source struct {
	frame atomic.Pointer[image.RGBA]
	// Intn picks a random index in [0, n). Nil uses math/rand/v2.
	Intn func(n int) int
}

// Publish replaces the current frame. A nil frame clears it.
func (s *Source) Publish(frame *image.RGBA) {
	s.frame.Store(frame)
}

// Clear drops the current frame.
func (s *Source) Clear() {
	s.frame.Store(nil)
}

// Ready reports whether a frame has been captured.
func (s *Source) Ready() bool {
	return s.frame.Load() != nil
}

// SampleColor returns the colour of a uniformly random pixel of the current
// frame, or white when no frame is available.
func (s *Source) SampleColor() colormap.Color {
	frame := s.frame.Load()
	if frame == nil {
		return colormap.White
	}
	b := frame.Bounds()
	if b.Empty() {
		return colormap.White
	}
	x := b.Min.X + s.intn(b.Dx())
	y := b.Min.Y + s.intn(b.Dy())
	c := frame.RGBAAt(x, y)
	c.A = 255
	return colormap.New(fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B), c)
}

func (s *Source) intn(n int) int {
	if s.Intn != nil {
		return s.Intn(n)
	}
	return rand.IntN(n)
}

package webcam

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
)

// Camera opens a stream of Width x Height frames.
type Camera interface {
	Open(ctx context.Context) (FrameReader, error)
}

// FrameReader fills frames until it fails or is closed.
type FrameReader interface {
	ReadFrame(dst *image.RGBA) error
	Close() error
}

// Session owns a running camera and feeds its frames into a Source.
// Start acquires the device; Stop releases it and clears the Source so
// later samples fall back to white.
type Session struct {
	cam Camera
	src *Source

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// NewSession returns a stopped session publishing into src.
func NewSession(cam Camera, src *Source) *Session {
	return &Session{cam: cam, src: src}
}

// Source returns the colour source fed by the session.
func (s *Session) Source() *Source { return s.src }

// Running reports whether the capture loop is active.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// Err returns the error that ended the last capture loop, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Start opens the camera and begins publishing frames. Starting a running
// session is a no-op.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		select {
		case <-s.done:
		default:
			return nil
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	r, err := s.cam.Open(ctx)
	if err != nil {
		cancel()
		return fmt.Errorf("open camera: %w", err)
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.done = make(chan struct{})
	s.err = nil
	go s.run(ctx, r, s.done)

	slog.Info("webcam started")
	return nil
}

func (s *Session) run(ctx context.Context, r FrameReader, done chan struct{}) {
	defer close(done)
	defer s.src.Clear()
	defer r.Close()

	for {
		frame := image.NewRGBA(image.Rect(0, 0, Width, Height))
		if err := r.ReadFrame(frame); err != nil {
			if ctx.Err() == nil {
				slog.Warn("webcam capture stopped", "err", err)
				s.mu.Lock()
				s.err = err
				s.mu.Unlock()
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
		s.src.Publish(frame)
	}
}

// Stop releases the camera and clears the Source. It waits for the capture
// loop to exit and is safe to call on a stopped session. A capture error is
// returned by the first Stop after it happened only.
func (s *Session) Stop() error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	s.src.Clear()

	s.mu.Lock()
	err := s.err
	s.err = nil
	s.mu.Unlock()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if cancel != nil {
		slog.Info("webcam stopped")
	}
	return err
}

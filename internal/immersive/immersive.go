// Package immersive manages the stereo full-screen session that can take
// over frame scheduling from the ordinary display refresh.
package immersive

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrUnavailable is returned when the display cannot host a session.
var ErrUnavailable = errors.New("immersive display not available")

// Display is the host window a session runs on.
type Display interface {
	// Available returns nil when a session can start, or an error
	// explaining why not.
	Available() error
	SetFullscreen(on bool)
}

// Driver schedules frames. Exactly one driver is active at a time.
type Driver interface {
	Name() string
	// Stereo reports whether each frame is shown once per eye.
	Stereo() bool
	// Frame runs render for the current display refresh.
	Frame(render func())
}

type displayDriver struct{}

func (displayDriver) Name() string        { return "display" }
func (displayDriver) Stereo() bool        { return false }
func (displayDriver) Frame(render func()) { render() }

// Session is an active immersive session.
type Session struct {
	started time.Time
	frames  int
	ended   bool
}

func (s *Session) Name() string { return "immersive" }
func (s *Session) Stereo() bool { return true }

// Frame renders once and counts the frame.
func (s *Session) Frame(render func()) {
	if s.ended {
		return
	}
	s.frames++
	render()
}

// Frames returns how many frames the session has driven.
func (s *Session) Frames() int { return s.frames }

// Manager owns the session lifecycle.
type Manager struct {
	display Display
	onEnd   func(*Session)

	mu      sync.Mutex
	session *Session
}

// NewManager returns a manager with no active session. onEnd, if set, runs
// after a session ends.
func NewManager(d Display, onEnd func(*Session)) *Manager {
	return &Manager{display: d, onEnd: onEnd}
}

// Start begins a session. It fails with ErrUnavailable when the display
// cannot host one; rendering then continues on the display driver.
func (m *Manager) Start() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		return m.session, nil
	}
	if err := m.display.Available(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	m.display.SetFullscreen(true)
	m.session = &Session{started: time.Now()}
	slog.Info("immersive session started")
	return m.session, nil
}

// End stops the active session and hands frames back to the display
// driver. Ending with no session is a no-op.
func (m *Manager) End() {
	m.mu.Lock()
	s := m.session
	m.session = nil
	m.mu.Unlock()

	if s == nil {
		return
	}
	s.ended = true
	m.display.SetFullscreen(false)
	slog.Info("immersive session ended", "frames", s.frames, "duration", time.Since(s.started).Round(time.Millisecond))
	if m.onEnd != nil {
		m.onEnd(s)
	}
}

// ViewSize is the size of one rendered view inside a w×h window: the whole
// window, or the left half while a stereo session shows one view per eye.
// Both sides are at least one pixel.
func ViewSize(w, h int, stereo bool) (int, int) {
	if stereo {
		w /= 2
	}
	return max(w, 1), max(h, 1)
}

// Active reports whether a session is running.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session != nil
}

// Driver returns the session while one is active, otherwise the display
// driver.
func (m *Manager) Driver() Driver {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != nil {
		return m.session
	}
	return displayDriver{}
}

package game

import (
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/audio-mandala/internal/audio"
	"github.com/iburimskiy/audio-mandala/internal/config"
	"github.com/iburimskiy/audio-mandala/internal/mandala"
)

// player plays one audio file at a time through the speaker and exposes
// what it plays through a Tap.
type player struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *audio.Tap
	duration time.Duration

	speakerRate beep.SampleRate
	initDone    bool

	paused   bool
	finished atomic.Bool

	lastSeekTime time.Time
}

// loaded reports whether a file is playing or paused.
func (p *player) loaded() bool { return p.streamer != nil }

// openDialog asks for a file and plays it. Cancelling is not an error.
func (p *player) openDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: audio.Extensions,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return p.load(filename)
}

func (p *player) load(path string) error {
	streamer, format, err := audio.Decode(path)
	if err != nil {
		return err
	}

	// streamer -> tap -> ctrl
	t := audio.NewTap(streamer, config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: t}

	// speaker.Init closes a previous speaker itself.
	if !p.initDone || p.speakerRate != format.SampleRate {
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/20)); err != nil {
			_ = streamer.Close()
			return err
		}
		p.initDone = true
		p.speakerRate = format.SampleRate
	} else {
		speaker.Clear()
	}
	p.closeStreamer()

	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = t
	p.paused = false
	p.duration = audio.Duration(format, streamer.Len())
	p.finished.Store(false)

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		p.finished.Store(true)
	})))

	slog.Info("playing file", "path", path, "rate", format.SampleRate, "duration", p.duration.Round(time.Second))
	return nil
}

// update releases the file once playback has reached its end.
func (p *player) update() {
	if p.streamer != nil && p.finished.Load() {
		slog.Debug("playback finished")
		p.stop()
	}
}

func (p *player) togglePause() {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

func (p *player) position() time.Duration {
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return audio.Duration(p.format, pos)
}

// seek moves playback to the fraction pos of the file.
func (p *player) seek(pos float64) error {
	if p.streamer == nil {
		return nil
	}
	// cooldown while dragging
	if time.Since(p.lastSeekTime) < 50*time.Millisecond {
		return nil
	}

	n := p.streamer.Len()
	target := int(mandala.Clamp01(pos) * float64(n))
	if target >= n {
		target = n - 1
	}
	if target < 0 {
		target = 0
	}

	speaker.Lock()
	err := p.streamer.Seek(target)
	speaker.Unlock()
	if err != nil {
		return err
	}
	p.lastSeekTime = time.Now()
	return nil
}

func (p *player) sampleRate() float64 {
	return float64(p.format.SampleRate)
}

func (p *player) stop() {
	if p.streamer == nil {
		return
	}
	speaker.Clear()
	p.closeStreamer()
}

func (p *player) closeStreamer() {
	if p.streamer != nil {
		_ = p.streamer.Close()
	}
	p.streamer = nil
	p.ctrl = nil
	p.tap = nil
	p.duration = 0
	p.paused = false
}

// Package mic captures microphone input into an audio.Tap using PortAudio.
package mic

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/iburimskiy/audio-mandala/internal/audio"
)

// Capture is a running microphone stream.
type Capture struct {
	stream     *portaudio.Stream
	tap        *audio.Tap
	sampleRate float64

	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// Open initialises PortAudio, opens the input device and starts writing
// samples into tap. A permission or device failure is returned as is; the
// caller decides whether it can run without audio.
func Open(cfg audio.CaptureConfig, tap *audio.Tap) (*Capture, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}

	dev, err := resolveDevice(cfg.Device)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("resolve input device: %w", err)
	}

	rate := cfg.SampleRate
	if rate <= 0 {
		rate = dev.DefaultSampleRate
	}

	frames := cfg.FramesPerBuffer
	if frames <= 0 {
		frames = audio.DefaultCaptureConfig().FramesPerBuffer
	}
	buf := make([]float32, frames)
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: 1,
			Latency:  dev.DefaultLowInputLatency,
		},
		SampleRate:      rate,
		FramesPerBuffer: frames,
	}
	stream, err := portaudio.OpenStream(params, buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("start input stream: %w", err)
	}

	c := &Capture{
		stream:     stream,
		tap:        tap,
		sampleRate: rate,
		stopCh:     make(chan struct{}),
	}
	c.wg.Add(1)
	go func() { defer c.wg.Done(); c.captureLoop(buf) }()

	slog.Info("microphone started", "device", dev.Name, "rate", rate)
	return c, nil
}

func resolveDevice(idx int) (*portaudio.DeviceInfo, error) {
	if idx < 0 {
		return portaudio.DefaultInputDevice()
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	if idx >= len(devices) {
		return nil, fmt.Errorf("device %d out of range (%d devices)", idx, len(devices))
	}
	if devices[idx].MaxInputChannels < 1 {
		return nil, errors.New(devices[idx].Name + " has no input channels")
	}
	return devices[idx], nil
}

func (c *Capture) captureLoop(buf []float32) {
	for {
		select {
		case <-c.stopCh:
			return
		default:
		}
		if err := c.stream.Read(); err != nil {
			if errors.Is(err, portaudio.InputOverflowed) {
				continue
			}
			select {
			case <-c.stopCh:
			default:
				slog.Warn("microphone read failed", "err", err)
			}
			return
		}
		c.tap.Write(buf)
	}
}

// SampleRate returns the rate the stream was opened with.
func (c *Capture) SampleRate() float64 { return c.sampleRate }

// Tap returns the buffer the capture writes into.
func (c *Capture) Tap() *audio.Tap { return c.tap }

// Close stops the stream and releases PortAudio.
func (c *Capture) Close() error {
	var err error
	c.once.Do(func() {
		close(c.stopCh)
		if stopErr := c.stream.Stop(); stopErr != nil {
			err = stopErr
		}
		c.wg.Wait()
		if closeErr := c.stream.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		portaudio.Terminate()
		slog.Info("microphone stopped")
	})
	return err
}

// InputDevices lists the names of capture-capable devices by index.
func InputDevices() (map[int]string, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	out := make(map[int]string)
	for i, d := range devices {
		if d.MaxInputChannels > 0 {
			out[i] = d.Name
		}
	}
	return out, nil
}

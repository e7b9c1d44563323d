package webcam

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"runtime"
	"strconv"
)

// ErrShortFrame is returned when the camera stream ends mid-frame.
var ErrShortFrame = errors.New("webcam: short frame")

// FFmpegCamera captures frames by running ffmpeg and reading raw RGBA video
// from its stdout. ffmpeg scales the picture to Width x Height.
type FFmpegCamera struct {
	Path   string // ffmpeg binary
	Format string // input format, e.g. v4l2, avfoundation, dshow
	Device string // input device for that format
}

// DefaultFFmpegCamera returns the usual camera input for the running OS.
func DefaultFFmpegCamera() FFmpegCamera {
	c := FFmpegCamera{Path: "ffmpeg"}
	switch runtime.GOOS {
	case "darwin":
		c.Format, c.Device = "avfoundation", "0"
	case "windows":
		c.Format, c.Device = "dshow", "video=Integrated Camera"
	default:
		c.Format, c.Device = "v4l2", "/dev/video0"
	}
	return c
}

// Args returns the ffmpeg command line without the binary.
func (c FFmpegCamera) Args() []string {
	return []string{
		"-loglevel", "error",
		"-f", c.Format,
		"-i", c.Device,
		"-vf", "scale=" + strconv.Itoa(Width) + ":" + strconv.Itoa(Height),
		"-pix_fmt", "rgba",
		"-f", "rawvideo",
		"-",
	}
}

// Open starts ffmpeg. Cancelling ctx kills the process.
func (c FFmpegCamera) Open(ctx context.Context) (FrameReader, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args()...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s (is ffmpeg installed?): %w", c.Path, err)
	}
	return &rawReader{r: stdout, closer: func() error {
		_ = stdout.Close()
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		_ = cmd.Wait()
		return nil
	}}, nil
}

// rawReader reads tightly packed RGBA frames.
type rawReader struct {
	r      io.Reader
	closer func() error
}

// NewRawReader returns a FrameReader over a stream of packed Width x Height
// RGBA frames.
func NewRawReader(r io.ReadCloser) FrameReader {
	return &rawReader{r: r, closer: r.Close}
}

func (r *rawReader) ReadFrame(dst *image.RGBA) error {
	n := Width * Height * 4
	if len(dst.Pix) < n {
		return fmt.Errorf("webcam: frame buffer holds %d bytes, need %d", len(dst.Pix), n)
	}
	if _, err := io.ReadFull(r.r, dst.Pix[:n]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrShortFrame
		}
		return err
	}
	return nil
}

func (r *rawReader) Close() error { return r.closer() }

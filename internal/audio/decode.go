package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// ErrUnsupportedFormat is returned for files that are not wav, mp3 or flac.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// Extensions lists the file patterns Decode accepts.
var Extensions = []string{"*.wav", "*.mp3", "*.flac"}

// Decode opens path and returns a seekable stream with its format. Closing
// the stream closes the file.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return streamer, format, nil
}

// Duration returns the playing time of n samples at format's rate.
func Duration(format beep.Format, n int) time.Duration {
	return format.SampleRate.D(n)
}

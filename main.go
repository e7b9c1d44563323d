package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/audio-mandala/internal/audio"
	"github.com/iburimskiy/audio-mandala/internal/audio/mic"
	"github.com/iburimskiy/audio-mandala/internal/config"
	"github.com/iburimskiy/audio-mandala/internal/game"
	"github.com/iburimskiy/audio-mandala/internal/record"
	"github.com/iburimskiy/audio-mandala/internal/webcam"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults to the user config dir)")
	params := flag.String("params", "", `Launch parameters, e.g. "shape=torus&colorMode=chakra&echoEffect=0.2&fallingEffect=true"`)
	file := flag.String("file", "", "Audio file to play instead of the microphone")
	shape := flag.String("shape", "", "Initial shape")
	colorMode := flag.String("color-mode", "", "Initial colour mode (rainbow or chakra)")
	echo := flag.Float64("echo", 0, "Initial echo alpha in [0, 1]")
	device := flag.Int("device", 0, "Microphone device index (see -list-devices)")
	noMic := flag.Bool("no-mic", false, "Do not open the microphone")
	recordDir := flag.String("record", "", "Render -file to PNG frames in this directory and exit")
	frames := flag.Int("frames", 0, "Stop recording after this many frames (0 = whole file)")
	fps := flag.Int("fps", record.DefaultFPS, "Recording frame rate")
	listDevices := flag.Bool("list-devices", false, "List microphone devices and exit")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *listDevices {
		if err := printDevices(); err != nil {
			slog.Error("list devices", "err", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	// flags override the config file, launch parameters override both
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "shape":
			cfg.Render.Shape = *shape
		case "color-mode":
			cfg.Render.ColorMode = *colorMode
		case "echo":
			cfg.Render.EchoAlpha = *echo
		case "device":
			cfg.Audio.Mic.Device = *device
		}
	})
	cfg.ApplyLaunchParams(*params)
	slog.Debug("render settings", "params", cfg.Params())

	if *recordDir != "" {
		if err := runRecorder(cfg, *file, *recordDir, *frames, *fps); err != nil {
			slog.Error("record", "err", err)
			os.Exit(1)
		}
		return
	}

	if err := runWindow(cfg, *file, *noMic); err != nil {
		slog.Error("visualizer stopped", "err", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		slog.Info("config loaded", "path", path)
		return cfg, nil
	}
	cfg, found, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	if found != "" {
		slog.Info("config loaded", "path", found)
	}
	return cfg, nil
}

func printDevices() error {
	devices, err := mic.InputDevices()
	if err != nil {
		return err
	}
	idx := make([]int, 0, len(devices))
	for i := range devices {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	for _, i := range idx {
		fmt.Printf("%3d  %s\n", i, devices[i])
	}
	return nil
}

func runRecorder(cfg *config.Config, file, dir string, maxFrames, fps int) error {
	if file == "" {
		return errors.New("-record needs -file")
	}
	r, err := record.New(cfg, record.Options{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		FPS:       fps,
		MaxFrames: maxFrames,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n, err := r.RenderFile(ctx, file, dir)
	if err != nil {
		return fmt.Errorf("after %d frames: %w", n, err)
	}
	return nil
}

func runWindow(cfg *config.Config, file string, noMic bool) error {
	opts := game.Options{Config: cfg, File: file}

	if !noMic {
		tap := audio.NewTap(nil, config.VisualRingSize)
		capture, err := mic.Open(cfg.Audio.Mic, tap)
		if err != nil {
			// without a microphone nothing is drawn until a file is opened
			slog.Error("microphone unavailable", "err", err)
		} else {
			defer capture.Close()
			opts.Mic = capture.Tap()
			opts.MicRate = capture.SampleRate()
		}
	}

	cam := webcam.DefaultFFmpegCamera()
	if cfg.Webcam.FFmpegPath != "" {
		cam.Path = cfg.Webcam.FFmpegPath
	}
	if cfg.Webcam.Format != "" {
		cam.Format = cfg.Webcam.Format
	}
	if cfg.Webcam.Device != "" {
		cam.Device = cfg.Webcam.Device
	}
	opts.Webcam = webcam.NewSession(cam, &webcam.Source{})

	g, err := game.New(opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := g.Close(); err != nil {
			slog.Warn("shutdown", "err", err)
		}
	}()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	slog.Info("starting visualizer", "shape", cfg.Render.Shape, "color_mode", cfg.Render.ColorMode)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Package game runs the mandala render loop on ebiten: it reads controls,
// analyses the live audio and draws one mandala frame per refresh.
package game

import (
	"context"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/audio-mandala/internal/audio"
	"github.com/iburimskiy/audio-mandala/internal/colormap"
	"github.com/iburimskiy/audio-mandala/internal/config"
	"github.com/iburimskiy/audio-mandala/internal/immersive"
	"github.com/iburimskiy/audio-mandala/internal/mandala"
	"github.com/iburimskiy/audio-mandala/internal/webcam"
)

// Options are the inputs the loop is built from.
type Options struct {
	Config *config.Config

	// Mic is fed by a capture loop; nil when no microphone is available.
	Mic     *audio.Tap
	MicRate float64

	// Webcam provides colours when the webcam toggle is on; nil disables it.
	Webcam *webcam.Session

	// File is played at start when set.
	File string
}

// Game implements ebiten.Game.
type Game struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg      *config.Config
	params   mandala.Params
	analyser *audio.Analyser
	renderer *mandala.Renderer

	mic     *audio.Tap
	micRate float64
	player  player
	webcam  *webcam.Session
	immers  *immersive.Manager

	width, height int
	canvas        *ebiten.Image
	surface       *Surface

	hud     hud
	lastErr error
}

// New builds the loop. It fails only on an invalid analyser config.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	analyser, err := audio.NewAnalyser(cfg.Audio.Analyser)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		params:   cfg.Params(),
		analyser: analyser,
		mic:      opts.Mic,
		micRate:  opts.MicRate,
		webcam:   opts.Webcam,
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
		surface:  NewSurface(nil),
	}
	g.immers = immersive.NewManager(display{}, func(*immersive.Session) {
		g.analyser.Reset()
	})
	w, h := g.eyeSize()
	start := mandala.Point{X: float64(w) / 2, Y: float64(h) / 2}
	g.renderer = mandala.NewRenderer(analyser, mandala.NewGenerator(cfg.Render.Geometry), start, cfg.Render.ApproachRate)

	if g.params.UseWebcamColors {
		g.params.UseWebcamColors = false
		g.toggleWebcam()
	}
	if opts.File != "" {
		if err := g.player.load(opts.File); err != nil {
			slog.Error("cannot play file", "path", opts.File, "err", err)
			g.lastErr = err
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	if g.cfg.Window.HUD && !g.immers.Active() {
		g.updateHUD()
	}
	if err := g.handleKeys(); err != nil {
		return err
	}

	g.player.update()
	g.checkWebcam()
	return nil
}

func (g *Game) handleKeys() error {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		step := 1
		if shift {
			step = -1
		}
		g.params.Shape = mandala.NextShape(g.params.Shape, step)
		slog.Debug("shape changed", "shape", g.params.Shape)
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.params.ColorMode = colormap.Next(g.params.ColorMode)
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.params.Falling = !g.params.Falling
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		g.toggleWebcam()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.params.EchoAlpha = mandala.Clamp01(g.params.EchoAlpha + config.EchoStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.params.EchoAlpha = mandala.Clamp01(g.params.EchoAlpha - config.EchoStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.toggleImmersive()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.player.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.openFile()
	}
	return nil
}

func (g *Game) openFile() {
	if err := g.player.openDialog(); err != nil {
		slog.Error("cannot open file", "err", err)
		g.lastErr = err
		return
	}
	g.lastErr = nil
	g.analyser.Reset()
}

func (g *Game) toggleWebcam() {
	if g.params.UseWebcamColors {
		g.params.UseWebcamColors = false
		if g.webcam != nil {
			if err := g.webcam.Stop(); err != nil {
				slog.Debug("webcam stopped with error", "err", err)
			}
		}
		return
	}
	if g.webcam == nil {
		slog.Error("webcam not configured")
		return
	}
	if err := g.webcam.Start(g.ctx); err != nil {
		slog.Error("webcam unavailable", "err", err)
		g.lastErr = err
		return
	}
	g.params.UseWebcamColors = true
}

// checkWebcam turns the toggle off once the camera stream has died.
func (g *Game) checkWebcam() {
	if !g.params.UseWebcamColors || g.webcam == nil || g.webcam.Running() {
		return
	}
	err := g.webcam.Stop()
	slog.Error("webcam stream ended", "err", err)
	g.lastErr = err
	g.params.UseWebcamColors = false
}

func (g *Game) toggleImmersive() {
	if g.immers.Active() {
		g.immers.End()
		return
	}
	if _, err := g.immers.Start(); err != nil {
		slog.Warn("cannot start immersive session", "err", err)
		g.lastErr = err
		go func() {
			_ = zenity.Error(err.Error(), zenity.Title("Immersive mode"))
		}()
	}
}

// source returns the input to analyse. A playing file wins over the
// microphone.
func (g *Game) source() (audio.Input, bool) {
	return audio.Active(
		audio.Input{Tap: g.player.tap, Rate: g.player.sampleRate()},
		audio.Input{Tap: g.mic, Rate: g.micRate},
	)
}

func (g *Game) eyeSize() (int, int) {
	return immersive.ViewSize(g.width, g.height, g.immers.Active())
}

// ensureCanvas keeps the offscreen canvas at the eye size. Resizing starts
// a blank canvas.
func (g *Game) ensureCanvas() {
	w, h := g.eyeSize()
	if g.canvas != nil {
		if b := g.canvas.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
		g.canvas.Deallocate()
	}
	g.canvas = ebiten.NewImage(w, h)
	g.surface.SetTarget(g.canvas)
	slog.Debug("canvas resized", "width", w, "height", h)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	driver := g.immers.Driver()
	driver.Frame(func() {
		g.renderFrame()
		g.composite(screen, driver.Stereo())
	})
	if g.cfg.Window.HUD && !g.immers.Active() {
		g.drawHUD(screen)
	}
}

// renderFrame runs one whole frame on the canvas: analysis, one centre
// step, the echo fade and the new shapes.
func (g *Game) renderFrame() {
	g.ensureCanvas()
	w, h := g.eyeSize()

	var src mandala.SampleSource
	in, ok := g.source()
	if ok {
		src = in.Tap
	}
	var cam mandala.ColorSampler
	if g.webcam != nil {
		cam = g.webcam.Source()
	}
	g.renderer.Frame(g.surface, src, in.Rate, float64(w), float64(h), g.params, cam)
}

func (g *Game) composite(screen *ebiten.Image, stereo bool) {
	op := &ebiten.DrawImageOptions{}
	screen.DrawImage(g.canvas, op)
	if stereo {
		op.GeoM.Translate(float64(g.canvas.Bounds().Dx()), 0)
		screen.DrawImage(g.canvas, op)
	}
}

// Layout follows the window size so the canvas tracks resizes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close releases the speaker, the webcam and any immersive session.
func (g *Game) Close() error {
	g.immers.End()
	g.player.stop()
	var err error
	if g.webcam != nil && g.webcam.Running() {
		err = g.webcam.Stop()
	}
	g.cancel()
	return err
}

package game

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/audio-mandala/internal/colormap"
	"github.com/iburimskiy/audio-mandala/internal/config"
	"github.com/iburimskiy/audio-mandala/internal/mandala"
)

const hudMargin = 20

// hud holds the mouse state of the button and the progress bar.
type hud struct {
	buttonHovered bool
	buttonPressed bool

	progressHovered  bool
	progressDragging bool
}

func (g *Game) progressBox() (x, y, w, h int) {
	h = config.ProgressHeight
	y = g.height - hudMargin - config.StripHeight - hudMargin - h
	return hudMargin, y, g.width - 2*hudMargin, h
}

func (g *Game) stripBox() (x, y, w, h int) {
	h = config.StripHeight
	return hudMargin, g.height - hudMargin - h, g.width - 2*hudMargin, h
}

// updateHUD handles clicks on the button and the progress bar.
func (g *Game) updateHUD() {
	mouseX, mouseY := ebiten.CursorPosition()
	h := &g.hud

	h.buttonHovered = within(mouseX, mouseY, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight)
	if h.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if h.buttonPressed && h.buttonHovered {
			g.openFile()
		}
		h.buttonPressed = false
	}

	barX, barY, barW, barH := g.progressBox()
	h.progressHovered = within(mouseX, mouseY, barX, barY, barW, barH)
	if !g.player.loaded() || g.player.duration == 0 {
		h.progressDragging = false
		return
	}
	if h.progressHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.progressDragging = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		h.progressDragging = false
	}
	if h.progressDragging {
		target := mandala.Clamp01(float64(mouseX-barX) / float64(barW))
		current := float64(g.player.position()) / float64(g.player.duration)
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || abs(target-current) > 0.01 {
			if err := g.player.seek(target); err != nil {
				g.lastErr = err
			}
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	g.drawButton(screen)
	g.drawProgressBar(screen)
	g.drawSpectrumStrip(screen)
	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
}

func (g *Game) status() string {
	var b strings.Builder
	fmt.Fprintf(&b, "shape: %s | colours: %s | echo: %.2f", g.params.Shape, g.params.ColorMode, g.params.EchoAlpha)
	if g.params.Falling {
		b.WriteString(" | falling")
	}
	if g.params.UseWebcamColors {
		b.WriteString(" | webcam")
	}
	switch {
	case g.player.loaded() && g.player.paused:
		b.WriteString(" | paused")
	case g.player.loaded():
		b.WriteString(" | playing")
	case g.mic != nil:
		b.WriteString(" | microphone")
	default:
		b.WriteString(" | no input, open a file")
	}
	if g.lastErr != nil {
		b.WriteString(" | error: " + g.lastErr.Error())
	}
	return b.String()
}

func (g *Game) drawButton(screen *ebiten.Image) {
	var bgColor color.Color
	switch {
	case g.hud.buttonPressed:
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255}
	case g.hud.buttonHovered:
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255}
	default:
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	}

	vector.DrawFilledRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, bgColor, false)
	vector.StrokeRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, 2, color.RGBA{R: 150, G: 170, B: 200, A: 255}, false)

	text := "Open File"
	textWidth := len(text) * 6 // debug font glyph width
	ebitenutil.DebugPrintAt(screen, text, config.ButtonX+(config.ButtonWidth-textWidth)/2, config.ButtonY+(config.ButtonHeight-16)/2)
}

func (g *Game) drawProgressBar(screen *ebiten.Image) {
	if !g.player.loaded() || g.player.duration == 0 {
		return
	}
	barX, barY, barW, barH := g.progressBox()
	pos := g.player.position()
	progress := mandala.Clamp01(float64(pos) / float64(g.player.duration))

	vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barW), float32(barH), color.RGBA{R: 25, G: 30, B: 40, A: 200}, false)
	if progress > 0 {
		fill := colormap.RainbowColor(progress * 10000).RGBA
		fill.A = 180
		vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(progress*float64(barW)), float32(barH), fill, false)
	}
	vector.StrokeRect(screen, float32(barX), float32(barY), float32(barW), float32(barH), 2, color.RGBA{R: 70, G: 80, B: 100, A: 255}, false)

	indicatorX := float32(float64(barX) + progress*float64(barW))
	indicatorY := float32(barY + barH/2)
	vector.DrawFilledCircle(screen, indicatorX, indicatorY, 6, color.White, true)

	ebitenutil.DebugPrintAt(screen, formatDuration(pos), barX, barY-16)
	total := formatDuration(g.player.duration)
	ebitenutil.DebugPrintAt(screen, total, barX+barW-len(total)*6, barY-16)

	if g.hud.progressHovered {
		mouseX, _ := ebiten.CursorPosition()
		at := time.Duration(mandala.Clamp01(float64(mouseX-barX)/float64(barW)) * float64(g.player.duration))
		tip := formatDuration(at)
		tipW := len(tip)*6 + 10
		tipX := min(max(mouseX-tipW/2, 0), g.width-tipW)
		tipY := barY - 40
		vector.DrawFilledRect(screen, float32(tipX), float32(tipY), float32(tipW), 20, color.RGBA{A: 200}, false)
		ebitenutil.DebugPrintAt(screen, tip, tipX+5, tipY+2)
	}
}

// drawSpectrumStrip shows the current analyser frame, each bin coloured the
// way the mandala colours it.
func (g *Game) drawSpectrumStrip(screen *ebiten.Image) {
	barX, barY, barW, barH := g.stripBox()
	vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barW), float32(barH), color.RGBA{R: 20, G: 25, B: 35, A: 200}, false)
	vector.StrokeRect(screen, float32(barX), float32(barY), float32(barW), float32(barH), 2, color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)

	spectrum, stepHz := g.renderer.Spectrum()
	if len(spectrum) == 0 {
		return
	}
	segW := float64(barW) / float64(len(spectrum))
	for i, v := range spectrum {
		segH := max(float64(v)/255*float64(barH-4), 2)
		c := colormap.ForFrequency(float64(i)*stepHz, g.params.ColorMode)
		if !c.Valid() {
			c = colormap.White
		}
		x := float64(barX) + float64(i)*segW
		y := float64(barY+barH) - segH
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(segW-1), float32(segH), c.RGBA, false)
	}
	ebitenutil.DebugPrintAt(screen, "Low", barX, barY-16)
	ebitenutil.DebugPrintAt(screen, "High", barX+barW-24, barY-16)
}

package game

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// display lets the immersive manager take over the ebiten window.
type display struct{}

func (display) Available() error {
	if ebiten.Monitor() == nil {
		return errors.New("no monitor attached to the window")
	}
	return nil
}

func (display) SetFullscreen(on bool) { ebiten.SetFullscreen(on) }

package app

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tinyrange/glpong/internal/graphics"
	"github.com/tinyrange/glpong/internal/pong"
	"github.com/tinyrange/glpong/internal/window"
)

// paddleKeys are the up and down keys of each side.
var paddleKeys = [...]struct {
	side     pong.Side
	up, down window.Key
}{
	{pong.Left, window.KeyQ, window.KeyA},
	{pong.Right, window.KeyUp, window.KeyDown},
}

var panKeys = [...]struct {
	key window.Key
	dir mgl32.Vec2
}{
	{window.KeyPad4, mgl32.Vec2{-1, 0}},
	{window.KeyPad6, mgl32.Vec2{1, 0}},
	{window.KeyPad8, mgl32.Vec2{0, 1}},
	{window.KeyPad2, mgl32.Vec2{0, -1}},
}

// handleInput applies this frame's key edges. It returns graphics.ErrStop
// when Escape is pressed.
func (a *App) handleInput(f graphics.Frame) error {
	if f.GetKeyState(window.KeyEscape) == graphics.KeyStatePressed {
		a.logger.Info("quit", "score", a.game.Score())
		return graphics.ErrStop
	}

	for _, pk := range paddleKeys {
		up, down := f.GetKeyState(pk.up), f.GetKeyState(pk.down)
		switch {
		case up == graphics.KeyStatePressed:
			a.game.StartMove(pk.side, 1)
		case down == graphics.KeyStatePressed:
			a.game.StartMove(pk.side, -1)
		case up == graphics.KeyStateReleased || down == graphics.KeyStateReleased:
			// Fall back to the other key if it is still held.
			switch {
			case up.IsDown():
				a.game.StartMove(pk.side, 1)
			case down.IsDown():
				a.game.StartMove(pk.side, -1)
			default:
				a.game.StopMove(pk.side)
			}
		}
	}

	step := a.cfg.Camera.ZoomStep
	if f.GetKeyState(window.KeyPlus) == graphics.KeyStatePressed {
		a.camera.Zoom(-step)
	}
	if f.GetKeyState(window.KeyMinus) == graphics.KeyStatePressed {
		a.camera.Zoom(step)
	}

	for _, pk := range panKeys {
		if f.GetKeyState(pk.key) == graphics.KeyStatePressed {
			a.camera.Pan(pk.dir.Mul(a.cfg.Camera.PanStep))
		}
	}
	return nil
}

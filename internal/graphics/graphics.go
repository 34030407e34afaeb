package graphics

import (
	"errors"
	"image"

	"github.com/tinyrange/glpong/internal/window"
)

// ErrStop ends Loop without reporting an error.
var ErrStop = errors.New("stop loop")

// DefaultTickRate is the loop rate used when Loop is given a non-positive rate.
const DefaultTickRate = 60

type KeyState int

const (
	// The key was pressed this frame
	KeyStatePressed KeyState = iota
	// The key is currently down
	KeyStateDown
	// The key was released this frame
	KeyStateReleased
	// The key is currently up
	KeyStateUp
)

func (ks KeyState) IsDown() bool {
	return ks == KeyStatePressed || ks == KeyStateDown
}

func (ks KeyState) String() string {
	switch ks {
	case KeyStatePressed:
		return "pressed"
	case KeyStateDown:
		return "down"
	case KeyStateReleased:
		return "released"
	case KeyStateUp:
		return "up"
	}
	return "invalid"
}

// Color is a linear RGBA color with components in [0, 1].
type Color [4]float32

var (
	ColorBlack = Color{0, 0, 0, 1}
	ColorWhite = Color{1, 1, 1, 1}
	ColorGray  = Color{0.5, 0.5, 0.5, 1}
)

// Info describes the GL implementation behind a Window.
type Info struct {
	Version         string
	ShadingLanguage string
	Vendor          string
	Renderer        string
}

type Frame interface {
	// Index counts frames from zero.
	Index() uint64
	WindowSize() (width, height int)
	GetKeyState(key window.Key) KeyState
	Screenshot() (image.Image, error)
}

type Window interface {
	// Return the platform-specific window implementation.
	PlatformWindow() window.Window

	// Pipeline holds GL state shared by every shape drawn in this window.
	Pipeline() *Pipeline

	Info() Info

	SetClear(enabled bool)
	SetClearColor(c Color)
	SetTitle(title string)

	// Call f once per tick, at tickRate ticks per second, until the window
	// closes or f returns an error. ErrStop ends the loop with a nil error.
	Loop(tickRate int, f func(f Frame) error) error
}

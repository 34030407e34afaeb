package window

import "github.com/tinyrange/glpong/internal/gl"

// Window is a native fixed-size window owning a current GL context.
//
// All methods must be called from the goroutine that created the window; New
// locks it to its OS thread until Close.
type Window interface {
	GL() (gl.OpenGL, error)
	Close()
	// Poll pumps pending native events and reports whether the window is
	// still open.
	Poll() bool
	Swap()
	BackingSize() (width, height int)
	SetTitle(title string)
	// KeyDown reports whether key was held down as of the last Poll.
	KeyDown(key Key) bool
}

package graphics

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"
	"unsafe"

	glpkg "github.com/tinyrange/glpong/internal/gl"
	"github.com/tinyrange/glpong/internal/window"
)

type glWindow struct {
	platform window.Window
	gl       glpkg.OpenGL
	pipeline *Pipeline
	input    *input

	clearEnabled bool
	clearColor   Color

	frames uint64
}

type glFrame struct {
	w *glWindow
}

// New opens a fixed-size native window and prepares its GL state.
func New(title string, width, height int, logger *slog.Logger) (Window, error) {
	platform, err := window.New(title, width, height)
	if err != nil {
		return nil, err
	}
	gl, err := platform.GL()
	if err != nil {
		platform.Close()
		return nil, fmt.Errorf("load gl: %w", err)
	}
	return newWindow(platform, gl, logger), nil
}

func newWindow(platform window.Window, gl glpkg.OpenGL, logger *slog.Logger) *glWindow {
	gl.Enable(glpkg.CullFace)

	return &glWindow{
		platform:     platform,
		gl:           gl,
		pipeline:     NewPipeline(gl, logger),
		input:        newInput(),
		clearEnabled: true,
		clearColor:   ColorBlack,
	}
}

func (w *glWindow) PlatformWindow() window.Window {
	return w.platform
}

func (w *glWindow) Pipeline() *Pipeline {
	return w.pipeline
}

func (w *glWindow) Info() Info {
	return Info{
		Version:         w.gl.GetString(glpkg.Version),
		ShadingLanguage: w.gl.GetString(glpkg.ShadingLanguageVersion),
		Vendor:          w.gl.GetString(glpkg.Vendor),
		Renderer:        w.gl.GetString(glpkg.Renderer),
	}
}

func (w *glWindow) SetClear(enabled bool) {
	w.clearEnabled = enabled
}

func (w *glWindow) SetClearColor(c Color) {
	w.clearColor = c
}

func (w *glWindow) SetTitle(title string) {
	w.platform.SetTitle(title)
}

func (w *glWindow) Loop(tickRate int, step func(f Frame) error) error {
	defer w.platform.Close()

	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	tick := time.Second / time.Duration(tickRate)

	frame := glFrame{w: w}
	next := time.Now()
	for w.platform.Poll() {
		w.input.update(w.platform)
		w.prepareFrame()

		if err := step(frame); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}

		w.platform.Swap()
		w.frames++

		next = next.Add(tick)
		if d := time.Until(next); d > 0 {
			time.Sleep(d)
		} else if d < -tick {
			// Fell behind (window dragged, debugger); resume pacing from now
			// instead of running a burst of catch-up ticks.
			next = time.Now()
		}
	}
	return nil
}

func (w *glWindow) prepareFrame() {
	bw, bh := w.platform.BackingSize()
	w.gl.Viewport(0, 0, int32(bw), int32(bh))

	if w.clearEnabled {
		w.gl.ClearColor(w.clearColor[0], w.clearColor[1], w.clearColor[2], w.clearColor[3])
		w.gl.Clear(glpkg.ColorBufferBit | glpkg.DepthBufferBit)
	}
}

func (f glFrame) Index() uint64 {
	return f.w.frames
}

func (f glFrame) WindowSize() (int, int) {
	return f.w.platform.BackingSize()
}

func (f glFrame) GetKeyState(key window.Key) KeyState {
	return f.w.input.state(key)
}

// Screenshot implements Frame.
func (f glFrame) Screenshot() (image.Image, error) {
	bw, bh := f.w.platform.BackingSize()
	if bw <= 0 || bh <= 0 {
		return nil, fmt.Errorf("screenshot: empty framebuffer %dx%d", bw, bh)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, bw, bh))
	f.w.gl.ReadPixels(0, 0, int32(bw), int32(bh), glpkg.RGBA, glpkg.UnsignedByte, unsafe.Pointer(&rgba.Pix[0]))

	// GL rows start at the bottom; flip so row 0 is the top.
	flipped := image.NewRGBA(image.Rect(0, 0, bw, bh))
	for y := 0; y < bh; y++ {
		src := rgba.Pix[y*rgba.Stride : (y+1)*rgba.Stride]
		dst := (bh - 1 - y) * flipped.Stride
		copy(flipped.Pix[dst:dst+flipped.Stride], src)
	}
	return flipped, nil
}

// keySource is the part of window.Window input polling needs.
type keySource interface {
	KeyDown(key window.Key) bool
}

// input turns held-key snapshots into per-frame edges.
type input struct {
	prev map[window.Key]bool
	cur  map[window.Key]bool
}

func newInput() *input {
	return &input{
		prev: make(map[window.Key]bool),
		cur:  make(map[window.Key]bool),
	}
}

func (in *input) update(src keySource) {
	in.prev, in.cur = in.cur, in.prev
	for _, k := range window.Keys() {
		in.cur[k] = src.KeyDown(k)
	}
}

func (in *input) state(k window.Key) KeyState {
	now, before := in.cur[k], in.prev[k]
	switch {
	case now && !before:
		return KeyStatePressed
	case now:
		return KeyStateDown
	case before:
		return KeyStateReleased
	}
	return KeyStateUp
}

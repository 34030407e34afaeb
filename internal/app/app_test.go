package app

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tinyrange/glpong/internal/config"
	"github.com/tinyrange/glpong/internal/gl/gltest"
	"github.com/tinyrange/glpong/internal/graphics"
	"github.com/tinyrange/glpong/internal/pong"
	"github.com/tinyrange/glpong/internal/window"
)

// fakeFrame is one scripted frame with explicit key states.
type fakeFrame struct {
	index uint64
	keys  map[window.Key]graphics.KeyState
}

func (f fakeFrame) Index() uint64 { return f.index }

// WindowSize reports a 2x backing store, like a HiDPI display.
func (f fakeFrame) WindowSize() (int, int) { return 1600, 1200 }
func (f fakeFrame) Screenshot() (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	return img, nil
}

func (f fakeFrame) GetKeyState(k window.Key) graphics.KeyState {
	if s, ok := f.keys[k]; ok {
		return s
	}
	return graphics.KeyStateUp
}

// fakeWindow runs Loop over a fixed script of frames.
type fakeWindow struct {
	pipeline *graphics.Pipeline
	frames   []map[window.Key]graphics.KeyState
	titles   []string
	clear    graphics.Color
	tickRate int
}

func (w *fakeWindow) PlatformWindow() window.Window  { return nil }
func (w *fakeWindow) Pipeline() *graphics.Pipeline   { return w.pipeline }
func (w *fakeWindow) SetClear(bool)                  {}
func (w *fakeWindow) SetClearColor(c graphics.Color) { w.clear = c }
func (w *fakeWindow) SetTitle(title string)          { w.titles = append(w.titles, title) }

func (w *fakeWindow) Info() graphics.Info {
	return graphics.Info{Version: "2.1 fake", ShadingLanguage: "1.20"}
}

func (w *fakeWindow) Loop(tickRate int, step func(graphics.Frame) error) error {
	w.tickRate = tickRate
	for i, keys := range w.frames {
		if err := step(fakeFrame{index: uint64(i), keys: keys}); err != nil {
			if err == graphics.ErrStop {
				return nil
			}
			return err
		}
	}
	return nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestApp(t *testing.T, opts Options, frames ...map[window.Key]graphics.KeyState) (*App, *fakeWindow, *clock, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rec := gltest.New("location", "view", "projection", "color")
	win := &fakeWindow{pipeline: graphics.NewPipeline(rec, logger), frames: frames}
	clk := &clock{t: time.Unix(0, 0)}
	return newApp(config.Default(), opts, win, logger, clk.now), win, clk, &logs
}

func pressed(keys ...window.Key) map[window.Key]graphics.KeyState {
	m := map[window.Key]graphics.KeyState{}
	for _, k := range keys {
		m[k] = graphics.KeyStatePressed
	}
	return m
}

func TestRunStopsOnEscape(t *testing.T) {
	a, win, _, logs := newTestApp(t, Options{}, nil, pressed(window.KeyEscape), nil)

	if err := a.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if win.tickRate != 60 {
		t.Fatalf("tick rate = %d, want 60", win.tickRate)
	}
	// The ball moved exactly once before Escape.
	if pos := a.Game().Ball().Position(); pos != (mgl32.Vec2{0.1, -0.1}) {
		t.Fatalf("ball at %v after one frame", pos)
	}
	if !strings.Contains(logs.String(), "msg=quit") {
		t.Fatalf("quit not logged:\n%s", logs.String())
	}
	if !strings.Contains(logs.String(), "version=\"2.1 fake\"") {
		t.Fatalf("GL info not logged:\n%s", logs.String())
	}
}

func TestPaddleKeys(t *testing.T) {
	a, _, _, _ := newTestApp(t, Options{})
	g := a.Game()

	steps := []struct {
		keys  map[window.Key]graphics.KeyState
		left  float32
		right float32
	}{
		{pressed(window.KeyQ, window.KeyDown), pong.PaddleSpeed, -pong.PaddleSpeed},
		{map[window.Key]graphics.KeyState{window.KeyQ: graphics.KeyStateDown, window.KeyDown: graphics.KeyStateDown}, pong.PaddleSpeed, -pong.PaddleSpeed},
		{map[window.Key]graphics.KeyState{window.KeyQ: graphics.KeyStateReleased, window.KeyDown: graphics.KeyStateReleased}, 0, 0},
		{pressed(window.KeyA, window.KeyUp), -pong.PaddleSpeed, pong.PaddleSpeed},
		// Up released while Down is still held reverses the paddle.
		{map[window.Key]graphics.KeyState{window.KeyUp: graphics.KeyStateReleased, window.KeyDown: graphics.KeyStatePressed}, -pong.PaddleSpeed, -pong.PaddleSpeed},
		{map[window.Key]graphics.KeyState{window.KeyUp: graphics.KeyStateReleased, window.KeyDown: graphics.KeyStateDown}, -pong.PaddleSpeed, -pong.PaddleSpeed},
	}
	for i, s := range steps {
		if err := a.step(fakeFrame{index: uint64(i), keys: s.keys}); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if v := g.Paddle(pong.Left).Velocity(); v != s.left {
			t.Fatalf("step %d: left velocity = %v, want %v", i, v, s.left)
		}
		if v := g.Paddle(pong.Right).Velocity(); v != s.right {
			t.Fatalf("step %d: right velocity = %v, want %v", i, v, s.right)
		}
	}
}

func TestZoomAndPanKeys(t *testing.T) {
	a, _, _, _ := newTestApp(t, Options{})

	for i, keys := range []map[window.Key]graphics.KeyState{
		pressed(window.KeyPlus),
		{window.KeyPlus: graphics.KeyStateDown},
		pressed(window.KeyPlus),
		pressed(window.KeyMinus),
		pressed(window.KeyPad4, window.KeyPad8),
		pressed(window.KeyPad6, window.KeyPad6),
		pressed(window.KeyPad2),
	} {
		if err := a.step(fakeFrame{index: uint64(i), keys: keys}); err != nil {
			t.Fatal(err)
		}
	}

	// Two zooms in, one out, then left+up, right, down.
	want := mgl32.Vec3{0, 0, 39}
	if eye := a.camera.Eye(); eye != want {
		t.Fatalf("eye = %v, want %v", eye, want)
	}
}

func TestTitleShowsFPS(t *testing.T) {
	a, win, clk, _ := newTestApp(t, Options{})

	for i := 0; i < 30; i++ {
		clk.t = clk.t.Add(20 * time.Millisecond)
		if err := a.step(fakeFrame{index: uint64(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if len(win.titles) != 0 {
		t.Fatalf("title set before a second passed: %v", win.titles)
	}

	for i := 30; i < 50; i++ {
		clk.t = clk.t.Add(20 * time.Millisecond)
		if err := a.step(fakeFrame{index: uint64(i)}); err != nil {
			t.Fatal(err)
		}
	}
	// The title carries the window size in points, not the 1600x1200 backing size.
	want := "Basic Pong Game - FPS: 50 @ 800x600"
	if len(win.titles) != 1 || win.titles[0] != want {
		t.Fatalf("titles = %q, want [%q]", win.titles, want)
	}
}

func TestScreenshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	a, _, _, logs := newTestApp(t, Options{Screenshot: path}, nil, nil, nil, nil, nil, nil)

	if err := a.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode screenshot: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("screenshot bounds = %v", b)
	}
	// Frames 0..3 ran, so the ball moved four times.
	if pos := a.Game().Ball().Position(); !pos.ApproxEqual(mgl32.Vec2{0.4, -0.4}) {
		t.Fatalf("ball at %v, want four steps", pos)
	}
	if !strings.Contains(logs.String(), "saved screenshot") {
		t.Fatalf("screenshot not logged:\n%s", logs.String())
	}
}

func TestClearColorFromConfig(t *testing.T) {
	_, win, _, _ := newTestApp(t, Options{})
	if win.clear != graphics.Color(config.Default().Window.ClearColor) {
		t.Fatalf("clear color = %v", win.clear)
	}
}

func TestCameraConfig(t *testing.T) {
	c := cameraConfig(config.Default().Camera)
	if c.Eye != (mgl32.Vec3{0, 0, 40}) || !mgl32.FloatEqual(c.FovY, mgl32.DegToRad(45)) {
		t.Fatalf("camera config = %+v", c)
	}
}

// Package app runs the game in a native window and maps keys to game and
// camera actions.
package app

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tinyrange/glpong/internal/camera"
	"github.com/tinyrange/glpong/internal/config"
	"github.com/tinyrange/glpong/internal/graphics"
	"github.com/tinyrange/glpong/internal/pong"
)

// screenshotFrame is the frame captured by Options.Screenshot; the first few
// frames may still show the window being mapped.
const screenshotFrame = 3

type Options struct {
	// Screenshot, if set, is a PNG path written after a few frames, after
	// which Run returns.
	Screenshot string
}

type App struct {
	cfg    config.Config
	opts   Options
	logger *slog.Logger

	win    graphics.Window
	camera *camera.Camera
	game   *pong.Game
	fps    *fpsCounter
}

// New opens the window described by cfg and creates the game in it.
func New(cfg config.Config, opts Options, logger *slog.Logger) (*App, error) {
	win, err := graphics.New(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, logger)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	return newApp(cfg, opts, win, logger, time.Now), nil
}

func newApp(cfg config.Config, opts Options, win graphics.Window, logger *slog.Logger, now func() time.Time) *App {
	if logger == nil {
		logger = slog.Default()
	}

	info := win.Info()
	logger.Info("opengl",
		"version", info.Version,
		"glsl", info.ShadingLanguage,
		"vendor", info.Vendor,
		"renderer", info.Renderer)

	win.SetClear(true)
	win.SetClearColor(graphics.Color(cfg.Window.ClearColor))

	p := win.Pipeline()
	return &App{
		cfg:    cfg,
		opts:   opts,
		logger: logger,
		win:    win,
		camera: camera.New(p, cameraConfig(cfg.Camera), cfg.Window.Width, cfg.Window.Height),
		game:   pong.New(p),
		fps:    newFPSCounter(now),
	}
}

func cameraConfig(c config.Camera) camera.Config {
	return camera.Config{
		Eye:    mgl32.Vec3(c.Eye),
		Target: mgl32.Vec3(c.Target),
		Up:     mgl32.Vec3(c.Up),
		FovY:   mgl32.DegToRad(c.FovDegrees),
		Near:   c.Near,
		Far:    c.Far,
	}
}

func (a *App) Game() *pong.Game {
	return a.game
}

// Run blocks until the window is closed, Escape is pressed or the
// screenshot has been written.
func (a *App) Run() error {
	defer a.game.Delete()
	return a.win.Loop(a.cfg.Window.TickRate, a.step)
}

func (a *App) step(f graphics.Frame) error {
	if err := a.handleInput(f); err != nil {
		return err
	}

	w, h := f.WindowSize()
	a.camera.Resize(w, h)

	a.game.Update()
	a.game.Render()

	if fps, ok := a.fps.frame(); ok {
		a.win.SetTitle(a.title(fps))
		a.logger.Debug("fps", "fps", fps, "score", a.game.Score())
	}

	if a.opts.Screenshot != "" && f.Index() == screenshotFrame {
		if err := a.screenshot(f); err != nil {
			return err
		}
		return graphics.ErrStop
	}
	return nil
}

// title reports the window size in points, as configured, not the backing
// size in pixels.
func (a *App) title(fps int) string {
	return fmt.Sprintf("%s - FPS: %d @ %dx%d", a.cfg.Window.Title, fps, a.cfg.Window.Width, a.cfg.Window.Height)
}

func (a *App) screenshot(f graphics.Frame) error {
	img, err := f.Screenshot()
	if err != nil {
		return err
	}

	file, err := os.Create(a.opts.Screenshot)
	if err != nil {
		return fmt.Errorf("create screenshot file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encode screenshot: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("write screenshot: %w", err)
	}

	a.logger.Info("saved screenshot", "path", a.opts.Screenshot)
	return nil
}

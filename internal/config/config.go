// Package config loads the game settings from defaults, an optional TOML
// file, a .env file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv and the command line.
const (
	EnvConfig   = "PONG_CONFIG"
	EnvLogLevel = "PONG_LOG_LEVEL"
	EnvTickRate = "PONG_TICK_RATE"
)

type Config struct {
	LogLevel string `toml:"log_level"`

	Window Window `toml:"window"`
	Camera Camera `toml:"camera"`
}

type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// TickRate is the number of game steps per second.
	TickRate   int        `toml:"tick_rate"`
	ClearColor [4]float32 `toml:"clear_color"`
}

type Camera struct {
	Eye    [3]float32 `toml:"eye"`
	Target [3]float32 `toml:"target"`
	Up     [3]float32 `toml:"up"`

	FovDegrees float32 `toml:"fov_degrees"`
	Near       float32 `toml:"near"`
	Far        float32 `toml:"far"`

	// ZoomStep and PanStep are how far one key press moves the eye.
	ZoomStep float32 `toml:"zoom_step"`
	PanStep  float32 `toml:"pan_step"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Window: Window{
			Title:      "Basic Pong Game",
			Width:      800,
			Height:     600,
			TickRate:   60,
			ClearColor: [4]float32{0, 0, 0, 1},
		},
		Camera: Camera{
			Eye:        [3]float32{0, 0, 40},
			Target:     [3]float32{0, 0, 0},
			Up:         [3]float32{0, 1, 0},
			FovDegrees: 45,
			Near:       0.1,
			Far:        100,
			ZoomStep:   1,
			PanStep:    1,
		},
	}
}

// Load returns the defaults overlaid with the TOML file at path. An empty
// path returns the defaults. Keys the file sets that Config does not know
// are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("decode %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// LoadDotEnv adds the variables of the given .env files to the environment
// without overriding ones already set. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// FromEnv applies PONG_LOG_LEVEL and PONG_TICK_RATE from getenv.
func (c *Config) FromEnv(getenv func(string) string) error {
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvTickRate); v != "" {
		rate, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTickRate, err)
		}
		c.Window.TickRate = rate
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.TickRate <= 0 || c.Window.TickRate > 1000 {
		errs = append(errs, fmt.Errorf("tick rate %d must be in 1..1000", c.Window.TickRate))
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %g must be in (0, 180)", c.Camera.FovDegrees))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip planes %g..%g must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Up == ([3]float32{}) {
		errs = append(errs, errors.New("camera up vector is zero"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel as a slog level name such as "debug" or "warn".
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

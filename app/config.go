package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"

	"textscene/assets"
	"textscene/gfx"
)

// Config holds everything the scene needs that is not fixed by the builder.
// Fields missing from a TOML file keep their defaults.
type Config struct {
	// Assets is the directory font and matcap paths are relative to.
	Assets     string `toml:"assets"`
	Font       string `toml:"font"`
	Matcap     string `toml:"matcap"`
	MatcapSize int    `toml:"matcap_size"`

	// Seed for torus placement. Zero picks one from the clock.
	Seed uint64 `toml:"seed"`

	// Background is a CSS color name or #rrggbb.
	Background string `toml:"background"`
	Wireframe  bool   `toml:"wireframe"`
	HidePanel  bool   `toml:"hide_panel"`

	// Snapshot, when set, is a PNG path the last frame is written to on exit.
	Snapshot string `toml:"snapshot"`
	LogLevel string `toml:"log_level"`

	Camera   CameraConfig   `toml:"camera"`
	Controls ControlsConfig `toml:"controls"`
	Window   WindowConfig   `toml:"window"`
}

type CameraConfig struct {
	FOV  float32 `toml:"fov"`
	Near float32 `toml:"near"`
	Far  float32 `toml:"far"`
	Z    float32 `toml:"z"`
}

type ControlsConfig struct {
	Damping       bool    `toml:"damping"`
	DampingFactor float32 `toml:"damping_factor"`
}

// WindowConfig is passed through to the host runner.
type WindowConfig struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	PixelRatio float64 `toml:"pixel_ratio"`
	Headless   bool    `toml:"headless"`
	Hz         int     `toml:"hz"`
	Ticks      uint64  `toml:"ticks"`
}

// DefaultConfig returns a configuration that runs without any files on disk.
func DefaultConfig() Config {
	return Config{
		Assets:     "static",
		Font:       assets.BuiltinPrefix + "lmroman10bold",
		Matcap:     assets.BuiltinPrefix + assets.BuiltinMatcap,
		MatcapSize: assets.DefaultMatcapSize,
		Background: "black",
		LogLevel:   "info",
		Camera: CameraConfig{
			FOV:  75,
			Near: 0.1,
			Far:  100,
			Z:    3,
		},
		Controls: ControlsConfig{
			Damping:       true,
			DampingFactor: 0.05,
		},
		Window: WindowConfig{
			Width:      800,
			Height:     600,
			PixelRatio: 1,
			Hz:         60,
		},
	}
}

// LoadConfig reads a TOML file over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Font == "" {
		errs = append(errs, errors.New("font path is empty"))
	}
	if c.Matcap == "" {
		errs = append(errs, errors.New("matcap path is empty"))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %v out of range (0, 180)", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera near/far %v/%v invalid", c.Camera.Near, c.Camera.Far))
	}
	if c.Controls.DampingFactor < 0 || c.Controls.DampingFactor > 1 {
		errs = append(errs, fmt.Errorf("damping factor %v out of range [0, 1]", c.Controls.DampingFactor))
	}
	if _, err := ParseBackground(c.Background); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseBackground accepts a CSS color name ("black", "midnightblue") or a
// hex triplet ("#1e1e2e" or "1e1e2e"). Empty means black.
func ParseBackground(s string) (gfx.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return gfx.RGB(0, 0, 0), nil
	}
	if c, ok := colornames.Map[s]; ok {
		return gfx.ColorFrom(c), nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 6 {
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return gfx.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
		}
	}
	return gfx.Color{}, fmt.Errorf("unknown background color %q", s)
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

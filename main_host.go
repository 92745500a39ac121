package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"

	"textscene/app"
	"textscene/hal"
	"textscene/internal/buildinfo"
)

func main() {
	def := app.DefaultConfig()
	var (
		cfgPath   = flag.String("config", "", "TOML config file; flags override it.")
		headless  = flag.Bool("headless", false, "Run without a window.")
		hz        = flag.Int("hz", def.Window.Hz, "Tick rate (headless mode).")
		ticks     = flag.Uint64("ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
		width     = flag.Int("width", def.Window.Width, "Surface width in logical pixels.")
		height    = flag.Int("height", def.Window.Height, "Surface height in logical pixels.")
		dpr       = flag.Float64("dpr", def.Window.PixelRatio, "Device pixel ratio (headless mode).")
		assetsDir = flag.String("assets", def.Assets, "Directory font and matcap paths are relative to.")
		fontPath  = flag.String("font", def.Font, "Font: .json typeface, .ttf/.otf, or builtin:<name>.")
		matcap    = flag.String("matcap", def.Matcap, "Matcap image, or builtin:matcap.")
		seed      = flag.Uint64("seed", 0, "Torus placement seed (0 = random).")
		wireframe = flag.Bool("wireframe", false, "Start in wireframe mode.")
		snapshot  = flag.String("snapshot", "", "Write the last frame to this PNG on exit.")
		logLevel  = flag.String("log-level", def.LogLevel, "debug|info|warn|error.")
		version   = flag.Bool("version", false, "Print the version and exit.")
	)
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.String())
		return
	}

	cfg, err := app.LoadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "headless":
			cfg.Window.Headless = *headless
		case "hz":
			cfg.Window.Hz = *hz
		case "ticks":
			cfg.Window.Ticks = *ticks
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "dpr":
			cfg.Window.PixelRatio = *dpr
		case "assets":
			cfg.Assets = *assetsDir
		case "font":
			cfg.Font = *fontPath
		case "matcap":
			cfg.Matcap = *matcap
		case "seed":
			cfg.Seed = *seed
		case "wireframe":
			cfg.Wireframe = *wireframe
		case "snapshot":
			cfg.Snapshot = *snapshot
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, _ := app.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logger.Info("starting", "version", buildinfo.Short(), "headless", cfg.Window.Headless)

	var fsys fs.FS
	if cfg.Assets != "" {
		fsys = os.DirFS(cfg.Assets)
	}
	newProgram := func(h hal.HAL) (hal.Program, error) {
		a, err := app.New(h, cfg, fsys)
		if err != nil {
			return nil, err
		}
		return a, nil
	}

	if cfg.Window.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, newProgram, hal.HeadlessConfig{
			Hz:               cfg.Window.Hz,
			Ticks:            cfg.Window.Ticks,
			Width:            cfg.Window.Width,
			Height:           cfg.Window.Height,
			DevicePixelRatio: cfg.Window.PixelRatio,
			Logger:           logger,
		})
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	} else {
		err = hal.RunWindow(newProgram, hal.WindowConfig{
			Title:  "StoryBrand (" + buildinfo.Short() + ")",
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			TPS:    cfg.Window.Hz,
			Logger: logger,
		})
	}
	if err != nil {
		logger.Error("exit", "err", err)
		os.Exit(1)
	}
}

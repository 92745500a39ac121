package hal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64 // stop after this many steps; 0 runs until ctx is done

	Width            int
	Height           int
	DevicePixelRatio float64

	Logger *slog.Logger
}

// RunHeadless drives a program from a ticker without opening a window.
//
// The clock advances by exactly one period per step, so a run is
// reproducible regardless of scheduling jitter. It returns nil when the tick
// budget is used up or the program returns ErrStop, and ctx.Err() when ctx
// ends first.
func RunHeadless(ctx context.Context, newProgram NewProgram, cfg HeadlessConfig) (err error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(Options{
		Logger:           cfg.Logger,
		Width:            cfg.Width,
		Height:           cfg.Height,
		DevicePixelRatio: cfg.DevicePixelRatio,
	})
	h.t.useFixedStep()

	p, err := newProgram(h)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := p.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := p.Step(); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
			h.t.advance(d)
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

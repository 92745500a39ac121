package hal

import (
	"log/slog"
	"os"
	"sync"
)

// Options configures a host HAL.
type Options struct {
	Logger *slog.Logger

	// Initial surface in logical pixels.
	Width            int
	Height           int
	DevicePixelRatio float64
}

func (o *Options) defaults() {
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	if o.DevicePixelRatio <= 0 {
		o.DevicePixelRatio = 1
	}
}

type hostHAL struct {
	log  *slog.Logger
	disp *hostDisplay
	kbd  *hostKeyboard
	ptr  *hostPointer
	t    *hostTime
}

func newHost(opts Options) *hostHAL {
	opts.defaults()
	s := Surface{Width: opts.Width, Height: opts.Height, DevicePixelRatio: opts.DevicePixelRatio}
	return &hostHAL{
		log:  opts.Logger,
		disp: newHostDisplay(s),
		kbd:  newHostKeyboard(),
		ptr:  newHostPointer(),
		t:    newHostTime(),
	}
}

func (h *hostHAL) Logger() *slog.Logger { return h.log }
func (h *hostHAL) Display() Display     { return h.disp }
func (h *hostHAL) Input() Input         { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *hostHAL) Time() Time           { return h.t }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

type hostDisplay struct {
	fb *hostFramebuffer

	mu      sync.Mutex
	surface Surface
	ch      chan Surface
}

func newHostDisplay(s Surface) *hostDisplay {
	w := int(float64(s.Width) * s.DevicePixelRatio)
	h := int(float64(s.Height) * s.DevicePixelRatio)
	return &hostDisplay{
		fb:      newHostFramebuffer(w, h),
		surface: s,
		ch:      make(chan Surface, 1),
	}
}

func (d *hostDisplay) Framebuffer() Framebuffer { return d.fb }
func (d *hostDisplay) Resizes() <-chan Surface  { return d.ch }

func (d *hostDisplay) Surface() Surface {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.surface
}

// setSurface records s and reports whether it differs from the last one.
func (d *hostDisplay) setSurface(s Surface) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if s == d.surface || s.Width <= 0 || s.Height <= 0 {
		return false
	}
	d.surface = s
	// Replace any unread size so the reader sees only the latest.
	select {
	case <-d.ch:
	default:
	}
	d.ch <- s
	return true
}

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Title  string
	Width  int // logical pixels
	Height int
	TPS    int

	Logger *slog.Logger
}

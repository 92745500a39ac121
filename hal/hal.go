package hal

import (
	"errors"
	"image"
	"log/slog"
	"time"
)

// ErrStop is returned by Program.Step to end the host loop cleanly.
var ErrStop = errors.New("hal: stop requested")

// Framebuffer is an RGBA8888 pixel buffer sized in device pixels.
type Framebuffer interface {
	Width() int
	Height() int
	// Image returns the backing image. It is replaced by Resize.
	Image() *image.RGBA
	Resize(w, h int)
	Present() error
}

// Surface is the size of the display area in logical (CSS) pixels and the
// ratio of device pixels to logical pixels.
type Surface struct {
	Width            int
	Height           int
	DevicePixelRatio float64
}

// Display provides the framebuffer and surface size changes.
type Display interface {
	Framebuffer() Framebuffer
	Surface() Surface
	// Resizes delivers the latest surface after each change. Only the most
	// recent unread size is kept.
	Resizes() <-chan Surface
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
)

// KeyEvent is a keyboard event. Text input arrives with Code KeyUnknown and
// the typed Rune.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// MouseButton identifies the source of a pointer event.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	Touch
)

// PointerAction is what happened to a pointer.
type PointerAction uint8

const (
	PointerDown PointerAction = iota + 1
	PointerMove
	PointerUp
	PointerWheel
)

// PointerEvent is a mouse, touch or wheel event in logical pixels. Mouse
// events use ID 0; touches use their touch id plus one. WheelY is positive
// when scrolling down.
type PointerEvent struct {
	ID     int
	Action PointerAction
	Button MouseButton
	X, Y   float32
	WheelY float32
}

// Pointer provides mouse and touch events.
type Pointer interface {
	Events() <-chan PointerEvent
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Time provides a monotonic clock.
type Time interface {
	// Now returns the time elapsed since the host started.
	Now() time.Duration
}

// HAL provides the only contact point between the program and the outside
// world.
type HAL interface {
	Logger() *slog.Logger
	Display() Display
	Input() Input
	Time() Time
}

// Program is driven by a host runner. Step is called once per frame from a
// single goroutine; Close is called once when the runner exits.
type Program interface {
	Step() error
	Close() error
}

// NewProgram creates the program once the host is ready.
type NewProgram func(HAL) (Program, error)

// Package app wires assets, scene construction, controls and rendering into
// a program driven by a hal host runner.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"runtime/debug"
	"time"

	"github.com/anthonynsimon/bild/imgio"

	"textscene/assets"
	"textscene/builder"
	"textscene/frame"
	"textscene/gfx"
	"textscene/hal"
	"textscene/panel"
	"textscene/typeface"
)

// MaxPixelRatio caps the device pixel ratio used for the drawing buffer.
const MaxPixelRatio = 2

// Sizes is the viewport in logical pixels and the pixel ratio in use.
type Sizes struct {
	Width      int
	Height     int
	PixelRatio float32
}

type loaded = assets.Pair[*typeface.Font, image.Image]

// App owns the scene and everything that touches it. All methods must be
// called from the host's step goroutine.
type App struct {
	cfg Config
	h   hal.HAL
	log *slog.Logger

	cancel context.CancelFunc
	loads  *assets.Future[loaded]
	seed   uint64
	result *builder.Result
	err    error

	scene    *gfx.Scene
	camera   *gfx.PerspectiveCamera
	controls *gfx.OrbitControls
	renderer *gfx.Renderer
	panel    *panel.Panel
	sched    *frame.Scheduler

	sizes     Sizes
	wireframe bool
}

// New creates the scene, sizes it to the host display and starts loading
// the font and matcap from fsys. Meshes are added on the first step after
// both loads finish.
func New(h hal.HAL, cfg Config, fsys fs.FS) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	bg, _ := ParseBackground(cfg.Background)
	log := h.Logger()
	if log == nil {
		log = slog.Default()
	}

	a := &App{
		cfg:       cfg,
		h:         h,
		log:       log.With("component", "app"),
		scene:     gfx.NewScene(),
		renderer:  gfx.NewRenderer(),
		panel:     panel.New(""),
		wireframe: cfg.Wireframe,
		seed:      cfg.Seed,
	}
	a.scene.Background = bg
	a.renderer.ClearColor = bg
	if cfg.HidePanel {
		a.panel.Hide()
	}

	a.camera = gfx.NewPerspectiveCamera(cfg.Camera.FOV, 1, cfg.Camera.Near, cfg.Camera.Far)
	a.camera.Position = gfx.V3(0, 0, cfg.Camera.Z)
	a.camera.LookAt(gfx.Vec3{})
	a.scene.AddCamera(a.camera)

	a.controls = gfx.NewOrbitControls(a.camera)
	a.controls.EnableDamping = cfg.Controls.Damping
	a.controls.DampingFactor = cfg.Controls.DampingFactor

	a.Resize(h.Display().Surface())

	if a.seed == 0 {
		a.seed = uint64(time.Now().UnixNano())
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	src := assets.NewSource(fsys, log)
	src.MatcapSize = cfg.MatcapSize
	a.loads = assets.Join(ctx, src.LoadFont(ctx, cfg.Font), src.LoadImage(ctx, cfg.Matcap))

	a.sched = frame.New(h.Time())
	if err := a.sched.Loop(a.tick); err != nil {
		cancel()
		return nil, err
	}

	a.log.Info("scene created",
		"font", cfg.Font,
		"matcap", cfg.Matcap,
		"seed", a.seed,
		"width", a.sizes.Width,
		"height", a.sizes.Height,
		"pixel_ratio", a.sizes.PixelRatio,
	)
	return a, nil
}

// Step runs one frame. A panic inside the frame is logged with its stack
// and returned as an error so the host shuts down through Close.
func (a *App) Step() (err error) {
	defer func() {
		if v := recover(); v != nil {
			a.log.Error("panic in frame", "panic", v, "frame", a.sched.Frames(), "stack", string(debug.Stack()))
			err = fmt.Errorf("panic in frame: %v", v)
		}
	}()
	return a.sched.Step()
}

// Close stops pending loads and writes the snapshot, if configured.
func (a *App) Close() error {
	a.cancel()
	a.log.Info("shutdown", "frames", a.renderer.Info.Frames, "meshes", a.scene.Len())
	if a.cfg.Snapshot == "" {
		return nil
	}
	img := a.h.Display().Framebuffer().Image()
	if img == nil || img.Bounds().Empty() {
		return errors.New("snapshot: empty framebuffer")
	}
	if err := imgio.Save(a.cfg.Snapshot, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	a.log.Info("snapshot written", "path", a.cfg.Snapshot)
	return nil
}

// Resize applies a new surface size. Camera aspect, projection, renderer
// size, pixel ratio and the framebuffer are all updated before it returns.
func (a *App) Resize(s hal.Surface) {
	if s.Width <= 0 || s.Height <= 0 {
		a.log.Debug("ignoring empty surface", "width", s.Width, "height", s.Height)
		return
	}
	pr := float32(s.DevicePixelRatio)
	if pr <= 0 {
		pr = 1
	}
	pr = min(pr, MaxPixelRatio)

	a.camera.Aspect = float32(s.Width) / float32(s.Height)
	a.camera.UpdateProjectionMatrix()
	a.renderer.SetSize(s.Width, s.Height)
	a.renderer.SetPixelRatio(pr)
	a.controls.SetViewport(float32(s.Width), float32(s.Height))
	a.h.Display().Framebuffer().Resize(a.renderer.DrawingBufferSize())

	a.sizes = Sizes{Width: s.Width, Height: s.Height, PixelRatio: pr}
}

func (a *App) tick(_ frame.Frame) error {
	a.pollAssets()

	disp := a.h.Display()
	for drained := false; !drained; {
		select {
		case s := <-disp.Resizes():
			a.Resize(s)
			a.log.Debug("resized", "width", a.sizes.Width, "height", a.sizes.Height, "pixel_ratio", a.sizes.PixelRatio)
		default:
			drained = true
		}
	}

	if err := a.handleInput(); err != nil {
		return err
	}
	a.controls.Update()

	fb := disp.Framebuffer()
	target := gfx.ImageTarget(fb.Image())
	a.renderer.Render(target, a.scene, a.camera)
	a.panel.Draw(target)
	return fb.Present()
}

// pollAssets builds the scene once the joined load has resolved. A failed
// load is logged once and leaves the scene empty.
func (a *App) pollAssets() {
	if a.result != nil || a.err != nil {
		return
	}
	v, ok, err := a.loads.Poll()
	if !ok {
		return
	}
	if err != nil {
		a.err = err
		a.log.Error("asset load failed", "err", err)
		return
	}

	if missing := v.A.Missing(builder.Label); len(missing) > 0 {
		a.log.Warn("font lacks glyphs", "family", v.A.FamilyName, "runes", string(missing))
	}
	rng := rand.New(rand.NewPCG(a.seed, a.seed^0x9e3779b97f4a7c15))
	res, err := builder.Build(a.scene, v.A, v.B, rng)
	if err != nil {
		a.err = err
		a.log.Error("scene build failed", "err", err)
		return
	}
	a.result = res
	res.Material.Wireframe = a.wireframe
	a.log.Info("scene built", "meshes", a.scene.Len(), "triangles", res.Triangles())
}

func (a *App) handleInput() error {
	in := a.h.Input()
	if kbd := in.Keyboard(); kbd != nil {
		for drained := false; !drained; {
			select {
			case ev := <-kbd.Events():
				if err := a.handleKey(ev); err != nil {
					return err
				}
			default:
				drained = true
			}
		}
	}
	if ptr := in.Pointer(); ptr != nil {
		for drained := false; !drained; {
			select {
			case ev := <-ptr.Events():
				a.handlePointer(ev)
			default:
				drained = true
			}
		}
	}
	return nil
}

func (a *App) handleKey(ev hal.KeyEvent) error {
	if !ev.Press {
		return nil
	}
	if ev.Code == hal.KeyEscape {
		return hal.ErrStop
	}
	switch ev.Rune {
	case 'h':
		a.panel.Toggle()
	case 'w':
		a.wireframe = !a.wireframe
		if a.result != nil {
			a.result.Material.Wireframe = a.wireframe
		}
	case 'q':
		return hal.ErrStop
	}
	return nil
}

var pointerButtons = map[hal.MouseButton]gfx.PointerButton{
	hal.MouseLeft:   gfx.ButtonPrimary,
	hal.MouseMiddle: gfx.ButtonMiddle,
	hal.MouseRight:  gfx.ButtonSecondary,
	hal.Touch:       gfx.ButtonTouch,
}

func (a *App) handlePointer(ev hal.PointerEvent) {
	switch ev.Action {
	case hal.PointerDown:
		a.controls.PointerDown(ev.ID, pointerButtons[ev.Button], ev.X, ev.Y)
	case hal.PointerMove:
		a.controls.PointerMove(ev.ID, ev.X, ev.Y)
	case hal.PointerUp:
		a.controls.PointerUp(ev.ID)
	case hal.PointerWheel:
		a.controls.Wheel(ev.WheelY)
	}
}

func (a *App) Scene() *gfx.Scene              { return a.scene }
func (a *App) Camera() *gfx.PerspectiveCamera { return a.camera }
func (a *App) Controls() *gfx.OrbitControls   { return a.controls }
func (a *App) Renderer() *gfx.Renderer        { return a.renderer }
func (a *App) Panel() *panel.Panel            { return a.panel }
func (a *App) Scheduler() *frame.Scheduler    { return a.sched }
func (a *App) Sizes() Sizes                   { return a.sizes }
func (a *App) Result() *builder.Result        { return a.result }
func (a *App) Seed() uint64                   { return a.seed }
func (a *App) Wireframe() bool                { return a.wireframe }

// Err returns the load or build failure, if any.
func (a *App) Err() error { return a.err }

// Loaded is closed once both asset loads have finished.
func (a *App) Loaded() <-chan struct{} { return a.loads.Done() }

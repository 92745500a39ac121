//go:build cgo

package hal

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a resizable desktop window that displays the framebuffer
// and forwards pointer and keyboard input. It blocks until the window closes
// or the program returns ErrStop.
func RunWindow(newProgram NewProgram, cfg WindowConfig) (err error) {
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	dpr := deviceScale()
	h := newHost(Options{
		Logger:           cfg.Logger,
		Width:            cfg.Width,
		Height:           cfg.Height,
		DevicePixelRatio: dpr,
	})
	s := h.disp.Surface()

	p, err := newProgram(h)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := p.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	g := &hostGame{h: h, p: p}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(s.Width, s.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ErrStop) {
		return err
	}
	return nil
}

type hostGame struct {
	h     *hostHAL
	p     Program
	fbImg *ebiten.Image
	input inputPoller
}

func (g *hostGame) Update() error {
	dpr := g.h.disp.Surface().DevicePixelRatio
	g.input.poll(g.h.kbd, g.h.ptr, float32(dpr))
	return g.p.Step()
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	img := g.h.disp.fb.Image()
	b := img.Bounds()
	if b.Empty() {
		return
	}
	if g.fbImg == nil || g.fbImg.Bounds().Size() != b.Size() {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.fbImg.WritePixels(img.Pix)

	op := &ebiten.DrawImageOptions{}
	sb := screen.Bounds()
	if sb.Size() != b.Size() {
		op.GeoM.Scale(float64(sb.Dx())/float64(b.Dx()), float64(sb.Dy())/float64(b.Dy()))
		op.Filter = ebiten.FilterLinear
	}
	screen.DrawImage(g.fbImg, op)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(w), int(h)
}

// LayoutF reports the outside size in logical pixels to the display and
// renders at device resolution.
func (g *hostGame) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	dpr := deviceScale()
	g.h.disp.setSurface(Surface{
		Width:            int(outsideWidth),
		Height:           int(outsideHeight),
		DevicePixelRatio: dpr,
	})
	return outsideWidth * dpr, outsideHeight * dpr
}

func deviceScale() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

// Package panel draws a small parameter panel over the rendered frame.
//
// Controllers bind float32 values to labeled sliders. The panel only
// displays them; input is routed through Controller.Set by the owner.
package panel

import (
	"fmt"
	"image/color"

	"github.com/chewxy/math32"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"textscene/gfx"
)

const (
	DefaultWidth = 245
	rowHeight    = 14
	padding      = 4
)

var (
	titleBG  = gfx.RGBA(0x11, 0x11, 0x11, 0xE6)
	rowBG    = gfx.RGBA(0x1F, 0x1F, 0x1F, 0xE6)
	trackBG  = gfx.RGB(0x42, 0x42, 0x42)
	fillFG   = gfx.RGB(0x2C, 0xC9, 0xFF)
	textFG   = color.RGBA{R: 0xEB, G: 0xEB, B: 0xEB, A: 0xFF}
	mutedFG  = color.RGBA{R: 0x8A, G: 0x8A, B: 0x8A, A: 0xFF}
	font     = &proggy.TinySZ8pt7b
	baseline = int16(10)
)

// Controller binds a float32 to a slider row.
type Controller struct {
	name     string
	value    *float32
	min, max float32
	step     float32
	onChange func(float32)
}

func (c *Controller) Name() string { return c.name }

// Value returns the bound value.
func (c *Controller) Value() float32 { return *c.value }

// Set clamps v to the range, snaps it to the step and stores it.
func (c *Controller) Set(v float32) {
	v = gfx.Clamp(v, c.min, c.max)
	if c.step > 0 {
		v = c.min + math32.Floor((v-c.min)/c.step+0.5)*c.step
		v = gfx.Clamp(v, c.min, c.max)
	}
	if v == *c.value {
		return
	}
	*c.value = v
	if c.onChange != nil {
		c.onChange(v)
	}
}

// OnChange registers fn to run after Set changes the value.
func (c *Controller) OnChange(fn func(float32)) *Controller {
	c.onChange = fn
	return c
}

// fraction is the slider fill in 0..1.
func (c *Controller) fraction() float32 {
	if c.max <= c.min {
		return 0
	}
	return gfx.Clamp01((*c.value - c.min) / (c.max - c.min))
}

// Panel is a list of controllers anchored to the top-right corner.
type Panel struct {
	Title string
	Width int

	hidden      bool
	controllers []*Controller
}

// New creates a visible, empty panel.
func New(title string) *Panel {
	if title == "" {
		title = "Controls"
	}
	return &Panel{Title: title, Width: DefaultWidth}
}

// Add binds v to a new slider. min and max are swapped when reversed.
func (p *Panel) Add(name string, v *float32, min, max, step float32) *Controller {
	if v == nil {
		v = new(float32)
	}
	if max < min {
		min, max = max, min
	}
	c := &Controller{name: name, value: v, min: min, max: max, step: step}
	p.controllers = append(p.controllers, c)
	return c
}

// Controllers returns the bound controllers in insertion order.
func (p *Panel) Controllers() []*Controller { return p.controllers }

func (p *Panel) Len() int { return len(p.controllers) }

func (p *Panel) Visible() bool { return !p.hidden }
func (p *Panel) Show()         { p.hidden = false }
func (p *Panel) Hide()         { p.hidden = true }
func (p *Panel) Toggle()       { p.hidden = !p.hidden }

// Bounds returns the panel rectangle for a target of width w.
func (p *Panel) Bounds(w int) (x, y, width, height int) {
	width = p.Width
	if width > w {
		width = w
	}
	height = rowHeight * (1 + len(p.controllers))
	return w - width, 0, width, height
}

// Draw paints the panel onto t. A hidden panel draws nothing.
func (p *Panel) Draw(t gfx.Target) {
	if p == nil || p.hidden || t == nil {
		return
	}
	tw, th := t.Size()
	if tw <= 0 || th <= 0 {
		return
	}
	x0, y0, w, _ := p.Bounds(tw)
	d := targetDisplay{t: t}

	fillRect(t, x0, y0, w, rowHeight, titleBG)
	tinyfont.WriteLine(d, font, int16(x0+padding), int16(y0)+baseline, p.Title, textFG)

	labelW := w * 2 / 5
	for i, c := range p.controllers {
		y := y0 + rowHeight*(i+1)
		fillRect(t, x0, y, w, rowHeight, rowBG)
		tinyfont.WriteLine(d, font, int16(x0+padding), int16(y)+baseline, c.name, mutedFG)

		value := fmt.Sprintf("%.3g", c.Value())
		_, vw := tinyfont.LineWidth(font, value)
		trackX := x0 + labelW
		trackW := w - labelW - int(vw) - 3*padding
		if trackW > 0 {
			fillRect(t, trackX, y+3, trackW, rowHeight-6, trackBG)
			fillRect(t, trackX, y+3, int(float32(trackW)*c.fraction()), rowHeight-6, fillFG)
		}
		tinyfont.WriteLine(d, font, int16(x0+w-padding-int(vw)), int16(y)+baseline, value, textFG)
	}
}

func fillRect(t gfx.Target, x, y, w, h int, c gfx.Color) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			t.SetPixel(xx, yy, c)
		}
	}
}

// targetDisplay adapts a gfx.Target to drivers.Displayer for tinyfont.
type targetDisplay struct {
	t gfx.Target
}

var _ drivers.Displayer = targetDisplay{}

func (d targetDisplay) Size() (x, y int16) {
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d targetDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.t.SetPixel(int(x), int(y), gfx.RGBA(c.R, c.G, c.B, c.A))
}

func (d targetDisplay) Display() error { return nil }

package gfx

import "image"

// RGBATarget renders into an RGBA8888 pixel buffer.
//
// Callers provide the backing buffer and layout (stride), so a host
// framebuffer or an *image.RGBA can be drawn into directly.
type RGBATarget struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
}

// ImageTarget wraps img so the renderer draws straight into its pixels.
func ImageTarget(img *image.RGBA) *RGBATarget {
	b := img.Bounds()
	return &RGBATarget{Buf: img.Pix, Stride: img.Stride, W: b.Dx(), H: b.Dy()}
}

func (t *RGBATarget) Size() (w, h int) { return t.W, t.H }

func (t *RGBATarget) Clear(c Color) {
	if t == nil || t.Buf == nil || t.Stride <= 0 || t.W <= 0 || t.H <= 0 {
		return
	}
	for y := 0; y < t.H; y++ {
		row := y * t.Stride
		for x := 0; x < t.W; x++ {
			off := row + x*4
			if off < 0 || off+3 >= len(t.Buf) {
				continue
			}
			t.Buf[off] = c.R
			t.Buf[off+1] = c.G
			t.Buf[off+2] = c.B
			t.Buf[off+3] = c.A
		}
	}
}

func (t *RGBATarget) SetPixel(x, y int, c Color) {
	if t == nil || t.Buf == nil || t.Stride <= 0 || t.W <= 0 || t.H <= 0 {
		return
	}
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	off := y*t.Stride + x*4
	if off < 0 || off+3 >= len(t.Buf) {
		return
	}
	if c.A != 0xFF {
		c = blend(Color{R: t.Buf[off], G: t.Buf[off+1], B: t.Buf[off+2], A: t.Buf[off+3]}, c)
	}
	t.Buf[off] = c.R
	t.Buf[off+1] = c.G
	t.Buf[off+2] = c.B
	t.Buf[off+3] = c.A
}

// At returns the pixel at x, y, or the zero color when out of bounds.
func (t *RGBATarget) At(x, y int) Color {
	if t == nil || x < 0 || y < 0 || x >= t.W || y >= t.H {
		return Color{}
	}
	off := y*t.Stride + x*4
	if off < 0 || off+3 >= len(t.Buf) {
		return Color{}
	}
	return Color{R: t.Buf[off], G: t.Buf[off+1], B: t.Buf[off+2], A: t.Buf[off+3]}
}

// blend composites src over an opaque dst.
func blend(dst, src Color) Color {
	a := uint32(src.A)
	ia := 255 - a
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*ia) / 255)
	}
	return Color{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 0xFF}
}

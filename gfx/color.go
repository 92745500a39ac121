package gfx

import "image/color"

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// ColorFrom converts any color.Color to a non-premultiplied Color.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// MulScalar scales the RGB channels by s clamped to 0..1.
func (c Color) MulScalar(s float32) Color {
	t := uint32(Clamp01(s) * 255)
	mul := func(ch uint8) uint8 {
		return uint8((uint32(ch) * t) / 255)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

// Modulate multiplies two colors channel-wise.
func (c Color) Modulate(o Color) Color {
	mul := func(a, b uint8) uint8 {
		return uint8((uint32(a) * uint32(b)) / 255)
	}
	return Color{R: mul(c.R, o.R), G: mul(c.G, o.G), B: mul(c.B, o.B), A: mul(c.A, o.A)}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

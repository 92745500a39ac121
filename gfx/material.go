package gfx

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
)

// Side selects which triangle faces are rasterized.
type Side uint8

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Texture is an immutable RGBA image sampled with normalized coordinates.
type Texture struct {
	img *image.RGBA
}

// NewTexture wraps img, converting it to RGBA when needed.
func NewTexture(img image.Image) *Texture {
	if img == nil {
		return nil
	}
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = clone.AsRGBA(img)
	}
	return &Texture{img: rgba}
}

func (t *Texture) Size() (w, h int) {
	if t == nil || t.img == nil {
		return 0, 0
	}
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the backing image.
func (t *Texture) Image() *image.RGBA { return t.img }

// Sample returns the nearest texel at u, v in 0..1 with v = 0 at the bottom
// row. Coordinates are clamped to the edge.
func (t *Texture) Sample(u, v float32) Color {
	w, h := t.Size()
	if w == 0 || h == 0 {
		return Color{}
	}
	x := int(Clamp01(u) * float32(w-1))
	y := int((1 - Clamp01(v)) * float32(h-1))
	b := t.img.Bounds()
	off := t.img.PixOffset(b.Min.X+x, b.Min.Y+y)
	p := t.img.Pix[off : off+4 : off+4]
	return Color{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// MatcapMaterial shades surfaces by looking up the view-space normal in a
// matcap image. No lights are involved.
type MatcapMaterial struct {
	Matcap    *Texture
	Color     Color
	Side      Side
	Wireframe bool
}

// NewMatcapMaterial creates a white, front-sided matcap material.
func NewMatcapMaterial(matcap *Texture) *MatcapMaterial {
	return &MatcapMaterial{Matcap: matcap, Color: RGB(0xFF, 0xFF, 0xFF)}
}

// Ready reports whether the material can be drawn.
func (m *MatcapMaterial) Ready() bool {
	if m == nil || m.Matcap == nil {
		return false
	}
	w, h := m.Matcap.Size()
	return w > 0 && h > 0
}

// shade maps a view-space normal seen along viewDir to a matcap color.
func (m *MatcapMaterial) shade(n, viewDir Vec3) Color {
	x := Normalize(V3(viewDir.Z, 0, -viewDir.X))
	y := Cross(viewDir, x)
	u := Dot(x, n)*0.495 + 0.5
	v := Dot(y, n)*0.495 + 0.5
	c := m.Matcap.Sample(u, v)
	if m.Color != RGB(0xFF, 0xFF, 0xFF) {
		c = c.Modulate(m.Color)
	}
	c.A = 0xFF
	return c
}

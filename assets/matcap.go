package assets

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"golang.org/x/image/colornames"

	"textscene/gfx"
)

// DefaultMatcapSize is the edge length of generated matcaps.
const DefaultMatcapSize = 256

// MatcapOptions describes a lit sphere rendered into a matcap image.
type MatcapOptions struct {
	Size      int
	Base      color.RGBA // diffuse color
	Shadow    color.RGBA // color facing away from the light
	Highlight color.RGBA // specular color
	Light     gfx.Vec3   // direction towards the light, view space
	Shininess float32
}

// DefaultMatcapOptions returns a glossy blue-grey material lit from the top
// left.
func DefaultMatcapOptions(size int) MatcapOptions {
	return MatcapOptions{
		Size:      size,
		Base:      colornames.Lightsteelblue,
		Shadow:    colornames.Midnightblue,
		Highlight: colornames.White,
		Light:     gfx.V3(-0.5, 0.6, 0.8),
		Shininess: 40,
	}
}

// GenerateMatcap renders a shaded unit sphere seen head on. Pixels outside
// the sphere repeat the shading at its silhouette.
func GenerateMatcap(o MatcapOptions) *image.RGBA {
	size := o.Size
	if size <= 0 {
		size = DefaultMatcapSize
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := gfx.Normalize(o.Light)
	if light == (gfx.Vec3{}) {
		light = gfx.V3(0, 0, 1)
	}
	half := gfx.Normalize(light.Add(gfx.V3(0, 0, 1)))

	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			x := (float32(px)+0.5)/float32(size)*2 - 1
			y := 1 - (float32(py)+0.5)/float32(size)*2
			r2 := x*x + y*y
			if r2 > 1 {
				r := math32.Sqrt(r2)
				x, y, r2 = x/r, y/r, 1
			}
			n := gfx.V3(x, y, math32.Sqrt(1-r2))

			diffuse := gfx.Clamp01(gfx.Dot(n, light)*0.5 + 0.5)
			spec := math32.Pow(gfx.Clamp01(gfx.Dot(n, half)), o.Shininess)

			c := mix(o.Shadow, o.Base, diffuse)
			c = mix(c, o.Highlight, spec)
			img.SetRGBA(px, py, c)
		}
	}
	return img
}

func mix(a, b color.RGBA, t float32) color.RGBA {
	t = gfx.Clamp01(t)
	ch := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5)
	}
	return color.RGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: 0xFF}
}

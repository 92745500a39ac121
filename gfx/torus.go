package gfx

import "github.com/chewxy/math32"

// NewTorusGeometry builds a full torus in the XY plane.
//
// radius is the distance from the center to the middle of the tube, tube the
// tube radius. radialSegs subdivides the tube cross-section and tubularSegs
// the sweep around the center.
func NewTorusGeometry(radius, tube float32, radialSegs, tubularSegs int) *Geometry {
	if radialSegs < 3 {
		radialSegs = 3
	}
	if tubularSegs < 3 {
		tubularSegs = 3
	}

	n := (radialSegs + 1) * (tubularSegs + 1)
	positions := make([]Vec3, 0, n)
	normals := make([]Vec3, 0, n)
	indices := make([]uint32, 0, radialSegs*tubularSegs*6)

	for j := 0; j <= radialSegs; j++ {
		for i := 0; i <= tubularSegs; i++ {
			u := float32(i) / float32(tubularSegs) * 2 * math32.Pi
			v := float32(j) / float32(radialSegs) * 2 * math32.Pi

			p := Vec3{
				X: (radius + tube*math32.Cos(v)) * math32.Cos(u),
				Y: (radius + tube*math32.Cos(v)) * math32.Sin(u),
				Z: tube * math32.Sin(v),
			}
			center := Vec3{X: radius * math32.Cos(u), Y: radius * math32.Sin(u)}

			positions = append(positions, p)
			normals = append(normals, Normalize(p.Sub(center)))
		}
	}

	for j := 1; j <= radialSegs; j++ {
		for i := 1; i <= tubularSegs; i++ {
			a := uint32((tubularSegs+1)*j + i - 1)
			b := uint32((tubularSegs+1)*(j-1) + i - 1)
			c := uint32((tubularSegs+1)*(j-1) + i)
			d := uint32((tubularSegs+1)*j + i)

			indices = append(indices, a, b, d)
			indices = append(indices, b, c, d)
		}
	}

	return NewGeometry(positions, normals, indices)
}

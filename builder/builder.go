// Package builder populates a scene with the extruded label and the
// decorative tori scattered around it.
package builder

import (
	"errors"
	"fmt"
	"image"
	"math"

	"textscene/gfx"
	"textscene/typeface"
)

const (
	Label          = "StoryBrand"
	TextSize       = 0.5
	TextDepth      = 0.1
	CurveSegments  = 5
	BevelSize      = 0.01
	BevelThickness = 0.05

	TorusRadius          = 0.5
	TorusTube            = 0.2
	TorusRadialSegments  = 20
	TorusTubularSegments = 45
	TorusCount           = 150

	// Spread is the edge length of the cube, centered on the origin, that
	// torus positions are drawn from.
	Spread = 10
	// Scales are min(u+ScaleOffset, ScaleMax) for u uniform in [0, 1).
	ScaleOffset = 0.25
	ScaleMax    = 0.5
)

// Rand is a source of uniform numbers in [0, 1). *rand.Rand from math/rand
// and math/rand/v2 both satisfy it.
type Rand interface {
	Float64() float64
}

// Result references what Build added to the scene.
type Result struct {
	Material      *gfx.MatcapMaterial
	TextGeometry  *gfx.Geometry
	TorusGeometry *gfx.Geometry
	Text          *gfx.Mesh
	Tori          []*gfx.Mesh
}

// Meshes returns the number of meshes added.
func (r *Result) Meshes() int {
	if r == nil {
		return 0
	}
	n := len(r.Tori)
	if r.Text != nil {
		n++
	}
	return n
}

// Triangles returns the number of triangles across all added meshes.
func (r *Result) Triangles() int {
	if r == nil {
		return 0
	}
	return r.TextGeometry.TriangleCount() + len(r.Tori)*r.TorusGeometry.TriangleCount()
}

// Build adds the label and TorusCount tori to scene. All meshes share one
// matcap material; the tori share one geometry. Nothing is added when an
// error is returned.
//
// rng is read six times per torus: position x, y and z, rotation x and y,
// then scale.
func Build(scene *gfx.Scene, font *typeface.Font, matcap image.Image, rng Rand) (*Result, error) {
	if scene == nil {
		return nil, errors.New("builder: nil scene")
	}
	if rng == nil {
		return nil, errors.New("builder: nil random source")
	}
	if matcap == nil {
		return nil, errors.New("builder: nil matcap image")
	}

	textGeo, err := typeface.NewTextGeometry(font, Label, typeface.TextOptions{
		Size:           TextSize,
		Depth:          TextDepth,
		CurveSegments:  CurveSegments,
		BevelEnabled:   true,
		BevelThickness: BevelThickness,
		BevelSize:      BevelSize,
		BevelSegments:  3,
	})
	if err != nil {
		return nil, fmt.Errorf("builder: text geometry: %w", err)
	}
	textGeo.Center()

	res := &Result{
		Material:      gfx.NewMatcapMaterial(gfx.NewTexture(matcap)),
		TextGeometry:  textGeo,
		TorusGeometry: gfx.NewTorusGeometry(TorusRadius, TorusTube, TorusRadialSegments, TorusTubularSegments),
	}

	res.Text = gfx.NewMesh(textGeo, res.Material)
	res.Text.Name = "text"

	res.Tori = make([]*gfx.Mesh, 0, TorusCount)
	for i := 0; i < TorusCount; i++ {
		m := gfx.NewMesh(res.TorusGeometry, res.Material)
		m.Name = fmt.Sprintf("torus-%03d", i)
		m.Position = gfx.V3(coordinate(rng.Float64()), coordinate(rng.Float64()), coordinate(rng.Float64()))
		m.Rotation = gfx.Euler{X: angle(rng.Float64()), Y: angle(rng.Float64())}
		m.SetScale(scale(rng.Float64()))
		res.Tori = append(res.Tori, m)
	}

	added := make([]*gfx.Mesh, 0, res.Meshes())
	for _, m := range append([]*gfx.Mesh{res.Text}, res.Tori...) {
		if err := scene.Add(m); err != nil {
			for _, a := range added {
				scene.Remove(a)
			}
			return nil, fmt.Errorf("builder: add %s: %w", m.Name, err)
		}
		added = append(added, m)
	}
	return res, nil
}

// coordinate maps u in [0, 1) to [-Spread/2, Spread/2).
func coordinate(u float64) float32 {
	return toHalfOpen((u-0.5)*Spread, Spread/2)
}

// angle maps u in [0, 1) to [0, π).
func angle(u float64) float32 {
	return toHalfOpen(u*math.Pi, math.Pi)
}

// scale maps u in [0, 1) to [ScaleOffset, ScaleMax]; every u at or above
// ScaleMax-ScaleOffset yields exactly ScaleMax.
func scale(u float64) float32 {
	return float32(math.Min(u+ScaleOffset, ScaleMax))
}

// toHalfOpen converts v < hi to float32 without rounding up onto or past hi.
func toHalfOpen(v, hi float64) float32 {
	f := float32(v)
	for float64(f) >= hi {
		f = math.Nextafter32(f, float32(math.Inf(-1)))
	}
	return f
}

package gfx

import "github.com/chewxy/math32"

// Info holds counters for the most recent Render call.
type Info struct {
	Frames    uint64 // total Render calls
	Calls     int    // meshes drawn in the last frame
	Triangles int    // triangles rasterized in the last frame
}

// Renderer is a software rasterizer for matcap-shaded meshes.
//
// Create it once and reuse it; the depth buffer is kept between frames and
// only grows.
type Renderer struct {
	ClearColor Color
	Info       Info

	width      int
	height     int
	pixelRatio float32

	depthBuf []float32
}

// NewRenderer creates a renderer with a pixel ratio of one.
func NewRenderer() *Renderer {
	return &Renderer{ClearColor: RGB(0, 0, 0), pixelRatio: 1}
}

// SetSize sets the output size in logical (CSS) pixels.
func (r *Renderer) SetSize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	r.width, r.height = w, h
}

// Size returns the logical output size.
func (r *Renderer) Size() (w, h int) { return r.width, r.height }

// SetPixelRatio sets the device pixel ratio used for the drawing buffer.
func (r *Renderer) SetPixelRatio(pr float32) {
	if pr <= 0 {
		pr = 1
	}
	r.pixelRatio = pr
}

func (r *Renderer) PixelRatio() float32 { return r.pixelRatio }

// DrawingBufferSize returns the device pixel size of the output.
func (r *Renderer) DrawingBufferSize() (w, h int) {
	return int(math32.Floor(float32(r.width) * r.pixelRatio)), int(math32.Floor(float32(r.height) * r.pixelRatio))
}

func (r *Renderer) ensureDepth(w, h int) {
	n := w * h
	if cap(r.depthBuf) < n {
		r.depthBuf = make([]float32, n)
	} else {
		r.depthBuf = r.depthBuf[:n]
	}
	for i := range r.depthBuf {
		r.depthBuf[i] = 1
	}
}

// Render draws every visible mesh of s as seen from cam into t.
func (r *Renderer) Render(t Target, s *Scene, cam *PerspectiveCamera) {
	if r == nil || t == nil || s == nil || cam == nil {
		return
	}
	r.Info.Frames++
	r.Info.Calls = 0
	r.Info.Triangles = 0

	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	bg := r.ClearColor
	if s.Background.A != 0 {
		bg = s.Background
	}
	t.Clear(bg)
	r.ensureDepth(w, h)

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	near := cam.Near

	s.eachMesh(func(m *Mesh) {
		if !m.resolved() {
			return
		}
		r.Info.Calls++
		r.renderMesh(t, w, h, view, proj, near, m)
	})
}

type rasterVertex struct {
	sx, sy float32 // screen position
	z      float32 // NDC depth mapped to 0..1
	invW   float32
	normal Vec3 // view space
	pos    Vec3 // view space
}

func (r *Renderer) renderMesh(t Target, w, h int, view, proj Mat4, near float32, m *Mesh) {
	g := m.Geometry
	mat := m.Material
	modelView := Mat4Mul(view, m.Matrix())
	hasNormals := len(g.Normals) == len(g.Positions)

	var vs [3]rasterVertex
	for i := 0; i < g.TriangleCount(); i++ {
		ia, ib, ic := g.Triangle(i)
		if ia >= len(g.Positions) || ib >= len(g.Positions) || ic >= len(g.Positions) {
			continue
		}
		idx := [3]int{ia, ib, ic}

		behind := false
		for k, vi := range idx {
			pv := Mat4MulPoint(modelView, g.Positions[vi])
			// Triangles crossing the near plane are dropped rather than clipped.
			if pv.Z > -near {
				behind = true
				break
			}
			clip := Mat4MulV4(proj, Vec4{X: pv.X, Y: pv.Y, Z: pv.Z, W: 1})
			invW := 1 / clip.W
			vs[k] = rasterVertex{
				sx:   (clip.X*invW*0.5 + 0.5) * float32(w),
				sy:   (1 - (clip.Y*invW*0.5 + 0.5)) * float32(h),
				z:    clip.Z*invW*0.5 + 0.5,
				invW: invW,
				pos:  pv,
			}
			if hasNormals {
				// Meshes here use uniform scale, so the model-view rotation
				// is a valid normal matrix.
				vs[k].normal = Normalize(Mat4MulDir(modelView, g.Normals[vi]))
			}
		}
		if behind {
			continue
		}
		if !hasNormals {
			n := Normalize(Cross(vs[1].pos.Sub(vs[0].pos), vs[2].pos.Sub(vs[0].pos)))
			vs[0].normal, vs[1].normal, vs[2].normal = n, n, n
		}

		area := edgeFn(vs[0].sx, vs[0].sy, vs[1].sx, vs[1].sy, vs[2].sx, vs[2].sy)
		if area == 0 {
			continue
		}
		front := area > 0
		switch mat.Side {
		case FrontSide:
			if !front {
				continue
			}
		case BackSide:
			if front {
				continue
			}
		}
		r.Info.Triangles++

		if mat.Wireframe {
			c := mat.shade(vs[0].normal, Normalize(vs[0].pos.Mul(-1)))
			r.drawLine(t, vs[0].sx, vs[0].sy, vs[1].sx, vs[1].sy, c)
			r.drawLine(t, vs[1].sx, vs[1].sy, vs[2].sx, vs[2].sy, c)
			r.drawLine(t, vs[2].sx, vs[2].sy, vs[0].sx, vs[0].sy, c)
			continue
		}
		r.fillTriangle(t, w, h, &vs, area, !front, mat)
	}
}

func (r *Renderer) fillTriangle(t Target, w, h int, vs *[3]rasterVertex, area float32, flip bool, mat *MatcapMaterial) {
	v0, v1, v2 := &vs[0], &vs[1], &vs[2]
	minX := int(math32.Floor(min3(v0.sx, v1.sx, v2.sx)))
	maxX := int(math32.Ceil(max3(v0.sx, v1.sx, v2.sx)))
	minY := int(math32.Floor(min3(v0.sy, v1.sy, v2.sy)))
	maxY := int(math32.Ceil(max3(v0.sy, v1.sy, v2.sy)))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	invArea := 1 / area
	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			a0 := edgeFn(v1.sx, v1.sy, v2.sx, v2.sy, px, py) * invArea
			a1 := edgeFn(v2.sx, v2.sy, v0.sx, v0.sy, px, py) * invArea
			a2 := edgeFn(v0.sx, v0.sy, v1.sx, v1.sy, px, py) * invArea
			if a0 < 0 || a1 < 0 || a2 < 0 {
				continue
			}
			z := a0*v0.z + a1*v1.z + a2*v2.z
			if !r.depthTest(w, x, y, z) {
				continue
			}

			// Perspective-correct attributes.
			p0, p1, p2 := a0*v0.invW, a1*v1.invW, a2*v2.invW
			k := 1 / (p0 + p1 + p2)
			p0, p1, p2 = p0*k, p1*k, p2*k

			n := Normalize(v0.normal.Mul(p0).Add(v1.normal.Mul(p1)).Add(v2.normal.Mul(p2)))
			if flip {
				n = n.Mul(-1)
			}
			pos := v0.pos.Mul(p0).Add(v1.pos.Mul(p1)).Add(v2.pos.Mul(p2))
			t.SetPixel(x, y, mat.shade(n, Normalize(pos.Mul(-1))))
		}
	}
}

func (r *Renderer) depthTest(w int, x, y int, z float32) bool {
	if z < 0 || z > 1 {
		return false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	if z >= r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = z
	return true
}

func (r *Renderer) drawLine(t Target, fx0, fy0, fx1, fy1 float32, c Color) {
	x0, y0 := int(fx0), int(fy0)
	x1, y1 := int(fx1), int(fy1)
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// edgeFn is twice the signed area of (x0,y0), (x1,y1), (x,y). Triangles that
// are counter-clockwise in NDC come out positive.
func edgeFn(x0, y0, x1, y1, x, y float32) float32 {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c float32) float32 { return math32.Min(a, math32.Min(b, c)) }
func max3(a, b, c float32) float32 { return math32.Max(a, math32.Max(b, c)) }

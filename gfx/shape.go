package gfx

type segmentKind uint8

const (
	segLine segmentKind = iota
	segQuad
	segCubic
)

type segment struct {
	kind segmentKind
	p    [4]Vec2 // start, controls..., end
}

// Path is a single open or closed 2D outline made of lines and Bézier curves.
type Path struct {
	start    Vec2
	current  Vec2
	segments []segment
}

// Points flattens the path. Curves are split into divisions steps; lines
// contribute their end point only. Consecutive duplicates are dropped.
func (p *Path) Points(divisions int) []Vec2 {
	if divisions < 1 {
		divisions = 1
	}
	pts := []Vec2{p.start}
	push := func(v Vec2) {
		if pts[len(pts)-1] == v {
			return
		}
		pts = append(pts, v)
	}
	for _, s := range p.segments {
		switch s.kind {
		case segLine:
			push(s.p[1])
		case segQuad:
			for d := 1; d <= divisions; d++ {
				push(quadPoint(s.p[0], s.p[1], s.p[2], float32(d)/float32(divisions)))
			}
		case segCubic:
			for d := 1; d <= divisions; d++ {
				push(cubicPoint(s.p[0], s.p[1], s.p[2], s.p[3], float32(d)/float32(divisions)))
			}
		}
	}
	return pts
}

func quadPoint(p0, p1, p2 Vec2, t float32) Vec2 {
	k := 1 - t
	return Vec2{
		X: k*k*p0.X + 2*k*t*p1.X + t*t*p2.X,
		Y: k*k*p0.Y + 2*k*t*p1.Y + t*t*p2.Y,
	}
}

func cubicPoint(p0, p1, p2, p3 Vec2, t float32) Vec2 {
	k := 1 - t
	return Vec2{
		X: k*k*k*p0.X + 3*k*k*t*p1.X + 3*k*t*t*p2.X + t*t*t*p3.X,
		Y: k*k*k*p0.Y + 3*k*k*t*p1.Y + 3*k*t*t*p2.Y + t*t*t*p3.Y,
	}
}

// ShapePath collects sub-paths, typically the contours of one glyph, and
// resolves them into filled shapes with holes.
type ShapePath struct {
	paths []*Path
	cur   *Path
}

func (sp *ShapePath) MoveTo(x, y float32) {
	sp.cur = &Path{start: V2(x, y), current: V2(x, y)}
	sp.paths = append(sp.paths, sp.cur)
}

func (sp *ShapePath) ensure() {
	if sp.cur == nil {
		sp.MoveTo(0, 0)
	}
}

func (sp *ShapePath) LineTo(x, y float32) {
	sp.ensure()
	end := V2(x, y)
	sp.cur.segments = append(sp.cur.segments, segment{kind: segLine, p: [4]Vec2{sp.cur.current, end}})
	sp.cur.current = end
}

func (sp *ShapePath) QuadTo(cx, cy, x, y float32) {
	sp.ensure()
	end := V2(x, y)
	sp.cur.segments = append(sp.cur.segments, segment{kind: segQuad, p: [4]Vec2{sp.cur.current, V2(cx, cy), end}})
	sp.cur.current = end
}

func (sp *ShapePath) CubeTo(c1x, c1y, c2x, c2y, x, y float32) {
	sp.ensure()
	end := V2(x, y)
	sp.cur.segments = append(sp.cur.segments, segment{kind: segCubic, p: [4]Vec2{sp.cur.current, V2(c1x, c1y), V2(c2x, c2y), end}})
	sp.cur.current = end
}

// Len returns the number of sub-paths.
func (sp *ShapePath) Len() int { return len(sp.paths) }

// Shape is a flattened filled outline with optional holes.
type Shape struct {
	Outline []Vec2
	Holes   [][]Vec2
}

// Shapes flattens every sub-path and groups them into shapes.
//
// A contour is a hole when its first point lies inside an odd number of the
// other contours; each hole is attached to the innermost solid containing it.
// This works regardless of the winding convention of the source outlines.
func (sp *ShapePath) Shapes(divisions int) []Shape {
	var contours [][]Vec2
	for _, p := range sp.paths {
		pts := cleanContour(p.Points(divisions))
		if len(pts) < 3 {
			continue
		}
		contours = append(contours, pts)
	}
	if len(contours) == 0 {
		return nil
	}

	depth := make([]int, len(contours))
	for i, c := range contours {
		for j, o := range contours {
			if i != j && pointInPolygon(c[0], o) {
				depth[i]++
			}
		}
	}

	var shapes []Shape
	solidIdx := make(map[int]int)
	for i, c := range contours {
		if depth[i]%2 == 0 {
			solidIdx[i] = len(shapes)
			shapes = append(shapes, Shape{Outline: c})
		}
	}
	for i, c := range contours {
		if depth[i]%2 == 0 {
			continue
		}
		owner := -1
		for j, o := range contours {
			if depth[j]%2 != 0 || depth[j] != depth[i]-1 {
				continue
			}
			if pointInPolygon(c[0], o) {
				owner = j
				break
			}
		}
		if owner < 0 {
			continue
		}
		s := &shapes[solidIdx[owner]]
		s.Holes = append(s.Holes, c)
	}
	return shapes
}

// cleanContour drops consecutive duplicates including a closing point equal
// to the first.
func cleanContour(pts []Vec2) []Vec2 {
	out := make([]Vec2, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 2 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
}

// SignedArea returns the polygon area, positive for counter-clockwise
// winding in a Y-up coordinate system.
func SignedArea(pts []Vec2) float32 {
	var a float32
	n := len(pts)
	for p, q := n-1, 0; q < n; p, q = q, q+1 {
		a += pts[p].X*pts[q].Y - pts[q].X*pts[p].Y
	}
	return a * 0.5
}

// IsClockwise reports whether pts wind clockwise in a Y-up coordinate system.
func IsClockwise(pts []Vec2) bool { return SignedArea(pts) < 0 }

func reversed(pts []Vec2) []Vec2 {
	out := make([]Vec2, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func pointInPolygon(pt Vec2, poly []Vec2) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y) + a.X
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

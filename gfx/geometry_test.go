package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, size float32) []Vec2 {
	return []Vec2{V2(x0, y0), V2(x0+size, y0), V2(x0+size, y0+size), V2(x0, y0+size)}
}

func totalArea(pts []Vec2, tris [][3]int) float32 {
	var sum float32
	for _, t := range tris {
		sum += SignedArea([]Vec2{pts[t[0]], pts[t[1]], pts[t[2]]})
	}
	return sum
}

func TestTriangulateSquare(t *testing.T) {
	pts := square(0, 0, 2)
	tris := Triangulate(pts, nil)
	require.Len(t, tris, 2)
	assert.InDelta(t, 4, totalArea(pts, tris), 1e-5)
}

func TestTriangulateClockwiseInput(t *testing.T) {
	pts := reversed(square(0, 0, 1))
	tris := Triangulate(pts, nil)
	require.Len(t, tris, 2)
	for _, tri := range tris {
		a := SignedArea([]Vec2{pts[tri[0]], pts[tri[1]], pts[tri[2]]})
		assert.Greater(t, a, float32(0), "triangles are counter-clockwise")
	}
}

func TestTriangulateWithHole(t *testing.T) {
	pts := square(0, 0, 4)
	hole := square(1, 1, 2)
	pts = append(pts, hole...)
	tris := Triangulate(pts, []int{4})
	require.NotEmpty(t, tris)
	assert.InDelta(t, 16-4, totalArea(pts, tris), 1e-4)
}

func TestTriangulateConcave(t *testing.T) {
	// An L shape.
	pts := []Vec2{V2(0, 0), V2(2, 0), V2(2, 1), V2(1, 1), V2(1, 2), V2(0, 2)}
	tris := Triangulate(pts, nil)
	require.Len(t, tris, 4)
	assert.InDelta(t, 3, totalArea(pts, tris), 1e-5)
}

func TestTriangulateDegenerate(t *testing.T) {
	assert.Empty(t, Triangulate([]Vec2{V2(0, 0), V2(1, 1)}, nil))
	assert.Empty(t, Triangulate(nil, nil))
}

func TestShapePathHoles(t *testing.T) {
	var sp ShapePath
	// Outer ring and a hole wound the same way; nesting decides.
	for _, ring := range [][]Vec2{square(0, 0, 4), square(1, 1, 2), square(10, 0, 1)} {
		sp.MoveTo(ring[0].X, ring[0].Y)
		for _, p := range ring[1:] {
			sp.LineTo(p.X, p.Y)
		}
		sp.LineTo(ring[0].X, ring[0].Y)
	}
	require.Equal(t, 3, sp.Len())

	shapes := sp.Shapes(4)
	require.Len(t, shapes, 2)
	assert.Len(t, shapes[0].Outline, 4, "closing point removed")
	assert.Len(t, shapes[0].Holes, 1)
	assert.Empty(t, shapes[1].Holes)
}

func TestPathCurveDivisions(t *testing.T) {
	var sp ShapePath
	sp.MoveTo(0, 0)
	sp.QuadTo(1, 1, 2, 0)
	sp.CubeTo(2, -1, 0, -1, 0, 0)
	pts := sp.paths[0].Points(5)
	// start + 5 quad points + 5 cubic points
	assert.Len(t, pts, 11)
	assert.Equal(t, V2(2, 0), pts[5])
	assert.Equal(t, V2(0, 0), pts[10])
}

func TestTorusGeometry(t *testing.T) {
	g := NewTorusGeometry(0.5, 0.2, 20, 45)
	require.Len(t, g.Positions, 21*46)
	require.Len(t, g.Normals, len(g.Positions))
	assert.Equal(t, 20*45*2, g.TriangleCount())

	b := g.BoundingBox()
	assert.InDelta(t, 0.7, b.Max.X, 1e-5)
	assert.InDelta(t, 0.2, b.Max.Z, 1e-5)

	// Outward normals: the first vertex sits on the outer equator.
	assert.InDelta(t, 1, g.Normals[0].X, 1e-5)

	// Triangle winding agrees with the stored normals.
	for i := 0; i < g.TriangleCount(); i += 97 {
		a, bb, c := g.Triangle(i)
		face := Cross(g.Positions[c].Sub(g.Positions[bb]), g.Positions[a].Sub(g.Positions[bb]))
		if Len(face) < 1e-9 {
			continue
		}
		avg := g.Normals[a].Add(g.Normals[bb]).Add(g.Normals[c])
		assert.Greater(t, Dot(face, avg), float32(0), "triangle %d", i)
	}
}

func TestExtrudeSquareNoBevel(t *testing.T) {
	opts := ExtrudeOptions{Depth: 1, Steps: 1}
	g := NewExtrudeGeometry([]Shape{{Outline: square(0, 0, 1)}}, opts)
	// 2 caps * 2 triangles + 4 sides * 2 triangles.
	require.Equal(t, 12, g.TriangleCount())
	require.Nil(t, g.Indices)

	b := g.BoundingBox()
	assert.Equal(t, V3(0, 0, 0), b.Min)
	assert.Equal(t, V3(1, 1, 1), b.Max)

	// Every face normal points away from the cube center.
	center := V3(0.5, 0.5, 0.5)
	for i := 0; i < g.TriangleCount(); i++ {
		a, bb, c := g.Triangle(i)
		mid := g.Positions[a].Add(g.Positions[bb]).Add(g.Positions[c]).Mul(1.0 / 3)
		assert.Greater(t, Dot(g.Normals[a], mid.Sub(center)), float32(0), "triangle %d", i)
	}
}

func TestExtrudeBevelBounds(t *testing.T) {
	opts := ExtrudeOptions{
		Depth:          0.1,
		Steps:          1,
		BevelEnabled:   true,
		BevelThickness: 0.05,
		BevelSize:      0.01,
		BevelSegments:  3,
	}
	g := NewExtrudeGeometry([]Shape{{Outline: square(0, 0, 1), Holes: [][]Vec2{square(0.25, 0.25, 0.5)}}}, opts)
	require.NotZero(t, g.TriangleCount())

	b := g.BoundingBox()
	assert.InDelta(t, -0.05, b.Min.Z, 1e-5)
	assert.InDelta(t, 0.15, b.Max.Z, 1e-5)
	assert.InDelta(t, -0.01, b.Min.X, 1e-4)
	assert.InDelta(t, 1.01, b.Max.X, 1e-4)
}

func TestGeometryCenter(t *testing.T) {
	g := NewExtrudeGeometry([]Shape{{Outline: square(3, 5, 2)}}, ExtrudeOptions{Depth: 0.5})
	g.Center()
	c := g.BoundingBox().Center()
	assert.InDelta(t, 0, c.X, 1e-5)
	assert.InDelta(t, 0, c.Y, 1e-5)
	assert.InDelta(t, 0, c.Z, 1e-5)
}

package gfx

// Geometry is a triangle mesh shape shared by any number of meshes.
//
// Indices may be nil, in which case every three consecutive positions form a
// triangle. Geometries must not be mutated once meshes reference them.
type Geometry struct {
	Positions []Vec3
	Normals   []Vec3
	Indices   []uint32

	bounds      Box3
	boundsValid bool
}

// NewGeometry creates a geometry from raw buffers.
func NewGeometry(positions, normals []Vec3, indices []uint32) *Geometry {
	return &Geometry{Positions: positions, Normals: normals, Indices: indices}
}

// TriangleCount returns the number of triangles described by the geometry.
func (g *Geometry) TriangleCount() int {
	if g == nil {
		return 0
	}
	if g.Indices != nil {
		return len(g.Indices) / 3
	}
	return len(g.Positions) / 3
}

// Triangle returns the vertex indices of triangle i.
func (g *Geometry) Triangle(i int) (a, b, c int) {
	if g.Indices != nil {
		return int(g.Indices[i*3]), int(g.Indices[i*3+1]), int(g.Indices[i*3+2])
	}
	return i * 3, i*3 + 1, i*3 + 2
}

// BoundingBox returns the axis-aligned bounds of all positions.
func (g *Geometry) BoundingBox() Box3 {
	if g.boundsValid {
		return g.bounds
	}
	b := EmptyBox3()
	for _, p := range g.Positions {
		b = b.Expand(p)
	}
	g.bounds = b
	g.boundsValid = true
	return b
}

// Translate offsets every position by v.
func (g *Geometry) Translate(v Vec3) *Geometry {
	for i := range g.Positions {
		g.Positions[i] = g.Positions[i].Add(v)
	}
	g.boundsValid = false
	return g
}

// Center moves the geometry so its bounding box midpoint sits at the origin.
func (g *Geometry) Center() *Geometry {
	c := g.BoundingBox().Center()
	return g.Translate(c.Mul(-1))
}

// ComputeVertexNormals fills Normals. Indexed geometries get area-weighted
// smooth normals; non-indexed geometries get one face normal per triangle.
func (g *Geometry) ComputeVertexNormals() {
	normals := make([]Vec3, len(g.Positions))
	for i := 0; i < g.TriangleCount(); i++ {
		a, b, c := g.Triangle(i)
		if a >= len(g.Positions) || b >= len(g.Positions) || c >= len(g.Positions) {
			continue
		}
		pa, pb, pc := g.Positions[a], g.Positions[b], g.Positions[c]
		n := Cross(pc.Sub(pb), pa.Sub(pb))
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i := range normals {
		normals[i] = Normalize(normals[i])
	}
	g.Normals = normals
}

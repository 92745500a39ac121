package gfx

import "github.com/chewxy/math32"

const epsilon = 1e-10

// ExtrudeOptions controls how flat shapes are turned into solids.
type ExtrudeOptions struct {
	Depth float32
	Steps int

	BevelEnabled   bool
	BevelThickness float32
	BevelSize      float32
	BevelOffset    float32
	BevelSegments  int
}

// DefaultExtrudeOptions returns the conventional defaults: depth 1, one
// step, a three-segment bevel 0.2 thick and 0.1 wide.
func DefaultExtrudeOptions() ExtrudeOptions {
	return ExtrudeOptions{
		Depth:          1,
		Steps:          1,
		BevelEnabled:   true,
		BevelThickness: 0.2,
		BevelSize:      0.1,
		BevelSegments:  3,
	}
}

// NewExtrudeGeometry extrudes shapes along +Z from 0 to Depth.
//
// With a bevel, the front cap sits at -BevelThickness and the back cap at
// Depth+BevelThickness. The result is non-indexed with flat normals.
func NewExtrudeGeometry(shapes []Shape, opts ExtrudeOptions) *Geometry {
	if opts.Steps < 1 {
		opts.Steps = 1
	}
	if !opts.BevelEnabled {
		opts.BevelSegments = 0
		opts.BevelThickness = 0
		opts.BevelSize = 0
		opts.BevelOffset = 0
	} else if opts.BevelSegments < 1 {
		opts.BevelSegments = 1
	}

	var out []Vec3
	for _, s := range shapes {
		out = extrudeShape(out, s, opts)
	}
	g := NewGeometry(out, nil, nil)
	g.ComputeVertexNormals()
	return g
}

func extrudeShape(out []Vec3, s Shape, o ExtrudeOptions) []Vec3 {
	contour := cleanContour(s.Outline)
	if len(contour) < 3 {
		return out
	}
	// Solid outlines wind clockwise and holes counter-clockwise so the side
	// walls face outwards.
	if !IsClockwise(contour) {
		contour = reversed(contour)
	}
	holes := make([][]Vec2, 0, len(s.Holes))
	for _, h := range s.Holes {
		h = cleanContour(h)
		if len(h) < 3 {
			continue
		}
		if IsClockwise(h) {
			h = reversed(h)
		}
		holes = append(holes, h)
	}

	flat := append([]Vec2(nil), contour...)
	var holeStarts []int
	for _, h := range holes {
		holeStarts = append(holeStarts, len(flat))
		flat = append(flat, h...)
	}
	faces := Triangulate(flat, holeStarts)

	moves := bevelVectors(contour)
	for _, h := range holes {
		moves = append(moves, bevelVectors(h)...)
	}

	vlen := len(flat)
	var layers [][]Vec3
	addLayer := func(bs, z float32) {
		layer := make([]Vec3, vlen)
		for i, p := range flat {
			q := p.Add(moves[i].Mul(bs))
			layer[i] = Vec3{X: q.X, Y: q.Y, Z: z}
		}
		layers = append(layers, layer)
	}

	segs := o.BevelSegments
	for b := 0; b < segs; b++ {
		t := float32(b) / float32(segs)
		z := o.BevelThickness * math32.Cos(t*math32.Pi/2)
		bs := o.BevelSize*math32.Sin(t*math32.Pi/2) + o.BevelOffset
		addLayer(bs, -z)
	}
	bs := o.BevelSize + o.BevelOffset
	for st := 0; st <= o.Steps; st++ {
		addLayer(bs, o.Depth/float32(o.Steps)*float32(st))
	}
	for b := segs - 1; b >= 0; b-- {
		t := float32(b) / float32(segs)
		z := o.BevelThickness * math32.Cos(t*math32.Pi/2)
		bs := o.BevelSize*math32.Sin(t*math32.Pi/2) + o.BevelOffset
		addLayer(bs, o.Depth+z)
	}

	// Caps.
	front, back := layers[0], layers[len(layers)-1]
	for _, f := range faces {
		out = append(out, front[f[2]], front[f[1]], front[f[0]])
	}
	for _, f := range faces {
		out = append(out, back[f[0]], back[f[1]], back[f[2]])
	}

	// Side walls, one quad per edge per layer gap.
	offset := 0
	rings := append([][]Vec2{contour}, holes...)
	for _, ring := range rings {
		n := len(ring)
		for i := n - 1; i >= 0; i-- {
			j, k := offset+i, offset+i-1
			if i == 0 {
				k = offset + n - 1
			}
			for l := 0; l+1 < len(layers); l++ {
				a := layers[l][j]
				b := layers[l][k]
				c := layers[l+1][k]
				d := layers[l+1][j]
				out = append(out, a, b, d, b, c, d)
			}
		}
		offset += n
	}
	return out
}

func bevelVectors(ring []Vec2) []Vec2 {
	n := len(ring)
	out := make([]Vec2, n)
	for i := range ring {
		prev := ring[(i+n-1)%n]
		next := ring[(i+1)%n]
		out[i] = bevelVec(ring[i], prev, next)
	}
	return out
}

// bevelVec returns the direction a vertex moves when the outline is offset
// by one unit, keeping both adjacent edges parallel to the original.
func bevelVec(pt, prev, next Vec2) Vec2 {
	vPrev := pt.Sub(prev)
	vNext := next.Sub(pt)
	prevLenSq := vPrev.X*vPrev.X + vPrev.Y*vPrev.Y

	collinear := vPrev.X*vNext.Y - vPrev.Y*vNext.X
	var trans Vec2
	var shrink float32

	if math32.Abs(collinear) > epsilon {
		prevLen := math32.Sqrt(prevLenSq)
		nextLen := math32.Sqrt(vNext.X*vNext.X + vNext.Y*vNext.Y)

		prevShift := Vec2{X: prev.X - vPrev.Y/prevLen, Y: prev.Y + vPrev.X/prevLen}
		nextShift := Vec2{X: next.X - vNext.Y/nextLen, Y: next.Y + vNext.X/nextLen}

		sf := ((nextShift.X-prevShift.X)*vNext.Y - (nextShift.Y-prevShift.Y)*vNext.X) /
			(vPrev.X*vNext.Y - vPrev.Y*vNext.X)

		trans = Vec2{X: prevShift.X + vPrev.X*sf - pt.X, Y: prevShift.Y + vPrev.Y*sf - pt.Y}
		lensq := trans.X*trans.X + trans.Y*trans.Y
		if lensq <= 2 {
			return trans
		}
		shrink = math32.Sqrt(lensq / 2)
	} else {
		sameDir := false
		switch {
		case vPrev.X > epsilon:
			sameDir = vNext.X > epsilon
		case vPrev.X < -epsilon:
			sameDir = vNext.X < -epsilon
		default:
			sameDir = math32.Signbit(vPrev.Y) == math32.Signbit(vNext.Y)
		}
		if sameDir {
			trans = Vec2{X: -vPrev.Y, Y: vPrev.X}
			shrink = math32.Sqrt(prevLenSq)
		} else {
			trans = vPrev
			shrink = math32.Sqrt(prevLenSq / 2)
		}
	}
	if shrink == 0 {
		return Vec2{}
	}
	return trans.Mul(1 / shrink)
}

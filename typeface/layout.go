package typeface

import "textscene/gfx"

// Path returns the glyph outline scaled by scale and moved to (x, y).
func (g *Glyph) Path(scale, x, y float32) *gfx.ShapePath {
	sp := &gfx.ShapePath{}
	pt := func(p gfx.Vec2) (float32, float32) { return p.X*scale + x, p.Y*scale + y }
	for _, s := range g.Outline {
		switch s.Op {
		case OpMoveTo:
			sp.MoveTo(pt(s.Points[0]))
		case OpLineTo:
			sp.LineTo(pt(s.Points[0]))
		case OpQuadTo:
			cx, cy := pt(s.Points[0])
			ex, ey := pt(s.Points[1])
			sp.QuadTo(cx, cy, ex, ey)
		case OpCubeTo:
			c1x, c1y := pt(s.Points[0])
			c2x, c2y := pt(s.Points[1])
			ex, ey := pt(s.Points[2])
			sp.CubeTo(c1x, c1y, c2x, c2y, ex, ey)
		}
	}
	return sp
}

// Paths lays out text at size world units per em and returns one path per
// drawn character. A newline returns to x = 0 one line lower. Characters
// without a glyph use FallbackRune; if that is missing too they are
// skipped without advancing.
func (f *Font) Paths(text string, size float32) []*gfx.ShapePath {
	if f == nil || f.Resolution <= 0 {
		return nil
	}
	scale := size / f.Resolution
	lineHeight := f.LineHeight(size)

	var paths []*gfx.ShapePath
	var x, y float32
	for _, r := range text {
		if r == '\n' {
			x = 0
			y -= lineHeight
			continue
		}
		g, ok := f.glyphFor(r)
		if !ok {
			continue
		}
		paths = append(paths, g.Path(scale, x, y))
		x += g.Advance * scale
	}
	return paths
}

// Shapes lays out text like Paths and flattens every curve into divisions
// straight segments.
func (f *Font) Shapes(text string, size float32, divisions int) []gfx.Shape {
	var shapes []gfx.Shape
	for _, p := range f.Paths(text, size) {
		shapes = append(shapes, p.Shapes(divisions)...)
	}
	return shapes
}

// TextOptions configures NewTextGeometry. Depth is the extrusion length
// along +Z; CurveSegments is the number of straight segments per curve.
type TextOptions struct {
	Size          float32
	Depth         float32
	CurveSegments int

	BevelEnabled   bool
	BevelThickness float32
	BevelSize      float32
	BevelOffset    float32
	BevelSegments  int
}

// DefaultTextOptions returns the conventional defaults (size 100, depth 50,
// 12 curve segments, bevel off).
func DefaultTextOptions() TextOptions {
	return TextOptions{
		Size:           100,
		Depth:          50,
		CurveSegments:  12,
		BevelThickness: 10,
		BevelSize:      8,
		BevelSegments:  3,
	}
}

// NewTextGeometry extrudes text set in f. The geometry keeps the layout
// origin at the baseline of the first character; call Center to pivot
// around its middle.
func NewTextGeometry(f *Font, text string, o TextOptions) (*gfx.Geometry, error) {
	if f == nil {
		return nil, ErrNoFont
	}
	if o.BevelSegments == 0 {
		o.BevelSegments = 3
	}
	shapes := f.Shapes(text, o.Size, o.CurveSegments)
	if len(shapes) == 0 {
		return nil, ErrNoGlyphs
	}
	return gfx.NewExtrudeGeometry(shapes, gfx.ExtrudeOptions{
		Depth:          o.Depth,
		Steps:          1,
		BevelEnabled:   o.BevelEnabled,
		BevelThickness: o.BevelThickness,
		BevelSize:      o.BevelSize,
		BevelOffset:    o.BevelOffset,
		BevelSegments:  o.BevelSegments,
	}), nil
}

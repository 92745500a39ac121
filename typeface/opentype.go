package typeface

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/go-fonts/latin-modern/lmmono10regular"
	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10regular"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"

	"textscene/gfx"
)

// ParseOpenType reads the first face of an OpenType, TrueType or collection
// file. Glyph outlines are extracted on first use.
func ParseOpenType(data []byte) (*Font, error) {
	faces, err := font.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("typeface: parse opentype: %w", err)
	}
	if len(faces) == 0 {
		return nil, errors.New("typeface: parse opentype: no faces")
	}
	face := faces[0]

	f := NewFont(face.Describe().Family, float32(face.Upem()))
	if ext, ok := face.FontHExtents(); ok {
		f.Ascender = ext.Ascender
		f.Descender = ext.Descender
	}
	f.UnderlinePosition = face.LineMetric(font.UnderlinePosition)
	f.UnderlineThickness = face.LineMetric(font.UnderlineThickness)
	f.BoundingBox = BoundingBox{YMin: f.Descender, YMax: f.Ascender}
	f.load = func(r rune) (*Glyph, bool) { return loadGlyph(face, r) }
	return f, nil
}

func loadGlyph(face *font.Face, r rune) (*Glyph, bool) {
	gid, ok := face.Cmap.Lookup(r)
	if !ok {
		return nil, false
	}
	g := &Glyph{Advance: face.HorizontalAdvance(gid)}
	if ext, ok := face.GlyphExtents(gid); ok {
		g.XMin = ext.XBearing
		g.XMax = ext.XBearing + ext.Width
	}
	outline, ok := face.GlyphData(gid).(font.GlyphOutline)
	if !ok {
		// Bitmap or SVG glyphs have no outline; they still advance.
		return g, true
	}
	for _, s := range outline.Segments {
		seg := Segment{}
		for i := range seg.Points {
			seg.Points[i] = gfx.V2(s.Args[i].X, s.Args[i].Y)
		}
		switch s.Op {
		case opentype.SegmentOpMoveTo:
			seg.Op = OpMoveTo
		case opentype.SegmentOpLineTo:
			seg.Op = OpLineTo
		case opentype.SegmentOpQuadTo:
			seg.Op = OpQuadTo
		case opentype.SegmentOpCubeTo:
			seg.Op = OpCubeTo
		default:
			continue
		}
		g.Outline = append(g.Outline, seg)
	}
	return g, true
}

var builtins = map[string][]byte{
	"lmroman10regular": lmroman10regular.TTF,
	"lmroman10bold":    lmroman10bold.TTF,
	"lmroman10italic":  lmroman10italic.TTF,
	"lmsans10regular":  lmsans10regular.TTF,
	"lmsans10bold":     lmsans10bold.TTF,
	"lmmono10regular":  lmmono10regular.TTF,
}

// Builtin parses one of the Latin Modern faces compiled into the binary.
func Builtin(name string) (*Font, error) {
	ttf, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("typeface: unknown builtin font %q", name)
	}
	return ParseOpenType(ttf)
}

// BuiltinNames lists the names accepted by Builtin.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

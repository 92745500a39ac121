package typeface

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"textscene/gfx"
)

type jsonGlyph struct {
	HA   float32 `json:"ha"`
	XMin float32 `json:"x_min"`
	XMax float32 `json:"x_max"`
	O    string  `json:"o"`
}

type jsonBBox struct {
	XMin float32 `json:"xMin"`
	YMin float32 `json:"yMin"`
	XMax float32 `json:"xMax"`
	YMax float32 `json:"yMax"`
}

type jsonFont struct {
	Glyphs             map[string]jsonGlyph `json:"glyphs"`
	FamilyName         string               `json:"familyName"`
	Ascender           float32              `json:"ascender"`
	Descender          float32              `json:"descender"`
	UnderlinePosition  float32              `json:"underlinePosition"`
	UnderlineThickness float32              `json:"underlineThickness"`
	BoundingBox        jsonBBox             `json:"boundingBox"`
	Resolution         float32              `json:"resolution"`
	CSSFontWeight      string               `json:"cssFontWeight,omitempty"`
	CSSFontStyle       string               `json:"cssFontStyle,omitempty"`
}

// ParseJSON decodes a typeface JSON document.
//
// Outlines are whitespace-separated commands in font units: "m x y",
// "l x y", "q x y cx cy" and "b x y c1x c1y c2x c2y", with the end point
// written before the control points. "z" is accepted and ignored.
func ParseJSON(r io.Reader) (*Font, error) {
	var doc jsonFont
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("typeface: decode json: %w", err)
	}
	if doc.Resolution <= 0 {
		return nil, fmt.Errorf("typeface: invalid resolution %v", doc.Resolution)
	}

	f := NewFont(doc.FamilyName, doc.Resolution)
	f.Ascender = doc.Ascender
	f.Descender = doc.Descender
	f.UnderlinePosition = doc.UnderlinePosition
	f.UnderlineThickness = doc.UnderlineThickness
	f.BoundingBox = BoundingBox(doc.BoundingBox)

	for key, jg := range doc.Glyphs {
		r, n := utf8.DecodeRuneInString(key)
		if r == utf8.RuneError || n != len(key) {
			return nil, fmt.Errorf("typeface: glyph key %q is not a single character", key)
		}
		outline, err := parseOutline(jg.O)
		if err != nil {
			return nil, fmt.Errorf("typeface: glyph %q: %w", key, err)
		}
		f.glyphs[r] = &Glyph{Advance: jg.HA, XMin: jg.XMin, XMax: jg.XMax, Outline: outline}
	}
	return f, nil
}

func parseOutline(o string) ([]Segment, error) {
	fields := strings.Fields(o)
	var out []Segment
	for i := 0; i < len(fields); {
		cmd := fields[i]
		i++
		var n int
		var op Op
		switch cmd {
		case "m":
			op, n = OpMoveTo, 2
		case "l":
			op, n = OpLineTo, 2
		case "q":
			op, n = OpQuadTo, 4
		case "b":
			op, n = OpCubeTo, 6
		case "z":
			continue
		default:
			return nil, fmt.Errorf("unknown outline command %q", cmd)
		}
		if i+n > len(fields) {
			return nil, fmt.Errorf("outline command %q: want %d numbers, have %d", cmd, n, len(fields)-i)
		}
		var v [6]float32
		for k := 0; k < n; k++ {
			x, err := strconv.ParseFloat(fields[i+k], 32)
			if err != nil {
				return nil, fmt.Errorf("outline command %q: %w", cmd, err)
			}
			v[k] = float32(x)
		}
		i += n

		s := Segment{Op: op}
		end := gfx.V2(v[0], v[1])
		switch op {
		case OpMoveTo, OpLineTo:
			s.Points[0] = end
		case OpQuadTo:
			s.Points[0] = gfx.V2(v[2], v[3])
			s.Points[1] = end
		case OpCubeTo:
			s.Points[0] = gfx.V2(v[2], v[3])
			s.Points[1] = gfx.V2(v[4], v[5])
			s.Points[2] = end
		}
		out = append(out, s)
	}
	return out, nil
}

func formatOutline(segs []Segment) string {
	var b strings.Builder
	num := func(v float32) {
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
		b.WriteByte(' ')
	}
	pt := func(p gfx.Vec2) { num(p.X); num(p.Y) }
	for i, s := range segs {
		if s.Op == OpMoveTo && i > 0 {
			b.WriteString("z ")
		}
		switch s.Op {
		case OpMoveTo:
			b.WriteString("m ")
			pt(s.Points[0])
		case OpLineTo:
			b.WriteString("l ")
			pt(s.Points[0])
		case OpQuadTo:
			b.WriteString("q ")
			pt(s.Points[1])
			pt(s.Points[0])
		case OpCubeTo:
			b.WriteString("b ")
			pt(s.Points[2])
			pt(s.Points[0])
			pt(s.Points[1])
		}
	}
	if len(segs) > 0 {
		b.WriteString("z")
	}
	return strings.TrimSpace(b.String())
}

// WriteJSON encodes the glyphs for runes as a typeface JSON document.
// Runes the font cannot draw are left out.
func (f *Font) WriteJSON(w io.Writer, runes []rune) error {
	if f == nil {
		return ErrNoFont
	}
	doc := jsonFont{
		Glyphs:             make(map[string]jsonGlyph, len(runes)),
		FamilyName:         f.FamilyName,
		Ascender:           f.Ascender,
		Descender:          f.Descender,
		UnderlinePosition:  f.UnderlinePosition,
		UnderlineThickness: f.UnderlineThickness,
		BoundingBox:        jsonBBox(f.BoundingBox),
		Resolution:         f.Resolution,
		CSSFontWeight:      "normal",
		CSSFontStyle:       "normal",
	}
	for _, r := range runes {
		g, ok := f.Glyph(r)
		if !ok {
			continue
		}
		doc.Glyphs[string(r)] = jsonGlyph{HA: g.Advance, XMin: g.XMin, XMax: g.XMax, O: formatOutline(g.Outline)}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("typeface: encode json: %w", err)
	}
	return nil
}

// Package typeface holds vector fonts in the form a text extruder needs:
// per-glyph outlines in font units plus the few vertical metrics used for
// line layout.
//
// Fonts come from typeface JSON documents (the facetype format used by web
// 3D engines) or from OpenType/TrueType files, including the Latin Modern
// faces compiled into the binary.
package typeface

import (
	"errors"
	"sort"
	"sync"

	"textscene/gfx"
)

var (
	// ErrNoFont is returned when a nil font is used.
	ErrNoFont = errors.New("typeface: no font")
	// ErrNoGlyphs is returned when none of the requested text has an outline.
	ErrNoGlyphs = errors.New("typeface: text has no renderable glyphs")
)

// FallbackRune replaces characters the font does not cover.
const FallbackRune = '?'

// Op is an outline command.
type Op uint8

const (
	OpMoveTo Op = iota
	OpLineTo
	OpQuadTo
	OpCubeTo
)

// Segment is one outline command. Control points come first and the end
// point last: MoveTo and LineTo use Points[0], QuadTo Points[0..1] and
// CubeTo Points[0..2].
type Segment struct {
	Op     Op
	Points [3]gfx.Vec2
}

// End returns the point the pen stops at.
func (s Segment) End() gfx.Vec2 {
	switch s.Op {
	case OpQuadTo:
		return s.Points[1]
	case OpCubeTo:
		return s.Points[2]
	}
	return s.Points[0]
}

// Glyph is a single character outline in font units, Y up.
type Glyph struct {
	Advance float32
	XMin    float32
	XMax    float32
	Outline []Segment
}

// BoundingBox is the font-wide glyph extent in font units.
type BoundingBox struct {
	XMin, YMin, XMax, YMax float32
}

// Font is a set of glyph outlines sharing one design grid.
//
// A Font is safe for concurrent use.
type Font struct {
	FamilyName         string
	Resolution         float32 // font units per em
	Ascender           float32
	Descender          float32
	UnderlinePosition  float32
	UnderlineThickness float32
	BoundingBox        BoundingBox

	mu     sync.Mutex
	glyphs map[rune]*Glyph
	load   func(r rune) (*Glyph, bool)
}

// NewFont creates an empty font with the given grid resolution.
func NewFont(family string, resolution float32) *Font {
	return &Font{
		FamilyName: family,
		Resolution: resolution,
		glyphs:     make(map[rune]*Glyph),
	}
}

// SetGlyph adds or replaces the outline for r.
func (f *Font) SetGlyph(r rune, g *Glyph) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.glyphs == nil {
		f.glyphs = make(map[rune]*Glyph)
	}
	f.glyphs[r] = g
}

// Glyph returns the outline for r without substitution.
func (f *Font) Glyph(r rune) (*Glyph, bool) {
	if f == nil {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.glyphs[r]; ok {
		return g, g != nil
	}
	if f.load == nil {
		return nil, false
	}
	g, ok := f.load(r)
	if !ok {
		g = nil
	}
	if f.glyphs == nil {
		f.glyphs = make(map[rune]*Glyph)
	}
	f.glyphs[r] = g
	return g, ok
}

// glyphFor returns the outline for r, falling back to FallbackRune.
func (f *Font) glyphFor(r rune) (*Glyph, bool) {
	if g, ok := f.Glyph(r); ok {
		return g, true
	}
	return f.Glyph(FallbackRune)
}

// Missing returns the distinct characters of text the font cannot draw even
// with the fallback glyph. Line breaks are ignored.
func (f *Font) Missing(text string) []rune {
	seen := make(map[rune]bool)
	var out []rune
	for _, r := range text {
		if r == '\n' || seen[r] {
			continue
		}
		seen[r] = true
		if _, ok := f.glyphFor(r); !ok {
			out = append(out, r)
		}
	}
	return out
}

// Runes returns the characters loaded so far, sorted. For typeface JSON
// fonts that is every character in the document.
func (f *Font) Runes() []rune {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]rune, 0, len(f.glyphs))
	for r, g := range f.glyphs {
		if g != nil {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LineHeight returns the distance between baselines at the given size.
func (f *Font) LineHeight(size float32) float32 {
	if f.Resolution <= 0 {
		return 0
	}
	return (f.BoundingBox.YMax - f.BoundingBox.YMin + f.UnderlineThickness) * size / f.Resolution
}

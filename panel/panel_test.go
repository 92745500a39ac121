package panel

import (
	"image"
	"testing"

	"textscene/gfx"
)

func TestControllerSet(t *testing.T) {
	p := New("")
	if p.Title != "Controls" {
		t.Fatalf("title: %q", p.Title)
	}
	var v float32 = 0.5
	changes := 0
	c := p.Add("size", &v, 1, 0, 0.1).OnChange(func(float32) { changes++ })

	c.Set(0.72)
	if got := c.Value(); got < 0.699 || got > 0.701 {
		t.Fatalf("snap: got %v want 0.7", got)
	}
	if v != c.Value() {
		t.Fatalf("bound value not updated")
	}
	c.Set(5)
	if c.Value() != 1 {
		t.Fatalf("clamp high: %v", c.Value())
	}
	c.Set(-5)
	if c.Value() != 0 {
		t.Fatalf("clamp low: %v", c.Value())
	}
	c.Set(0)
	if changes != 3 {
		t.Fatalf("onChange calls: got %d want 3", changes)
	}
}

func TestToggle(t *testing.T) {
	p := New("debug")
	if !p.Visible() {
		t.Fatalf("new panel hidden")
	}
	p.Toggle()
	if p.Visible() {
		t.Fatalf("toggle did not hide")
	}
	p.Toggle()
	if !p.Visible() {
		t.Fatalf("toggle did not show")
	}
}

func TestDrawEmptyPanel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 320, 200))
	target := gfx.ImageTarget(img)
	target.Clear(gfx.RGB(0xFF, 0xFF, 0xFF))

	p := New("")
	p.Draw(target)

	x, y, w, h := p.Bounds(320)
	if w != DefaultWidth || h != rowHeight || x != 320-DefaultWidth || y != 0 {
		t.Fatalf("bounds: %d %d %d %d", x, y, w, h)
	}
	if c := target.At(x+w-2, 1); c.R == 0xFF {
		t.Fatalf("title bar not drawn: %+v", c)
	}
	if c := target.At(x-1, 1); c != gfx.RGB(0xFF, 0xFF, 0xFF) {
		t.Fatalf("drew left of the panel: %+v", c)
	}
	if c := target.At(x+w/2, h+1); c != gfx.RGB(0xFF, 0xFF, 0xFF) {
		t.Fatalf("drew below an empty panel: %+v", c)
	}
}

func TestDrawRowsAndHidden(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 300, 100))
	target := gfx.ImageTarget(img)
	target.Clear(gfx.RGB(0, 0, 0))

	p := New("")
	var a, b float32 = 1, 0
	p.Add("a", &a, 0, 1, 0)
	p.Add("b", &b, 0, 1, 0)
	if p.Len() != 2 {
		t.Fatalf("len %d", p.Len())
	}

	p.Hide()
	p.Draw(target)
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i-3] != 0 || img.Pix[i-2] != 0 || img.Pix[i-1] != 0 {
			t.Fatalf("hidden panel drew at byte %d", i)
		}
	}

	p.Show()
	p.Draw(target)
	x, _, w, h := p.Bounds(300)
	if h != 3*rowHeight {
		t.Fatalf("height %d", h)
	}
	// full slider on row one, empty on row two
	trackX := x + w*2/5
	if c := target.At(trackX+1, rowHeight+rowHeight/2); c != fillFG {
		t.Fatalf("row a fill: %+v", c)
	}
	if c := target.At(trackX+1, 2*rowHeight+rowHeight/2); c != trackBG {
		t.Fatalf("row b track: %+v", c)
	}
}

func TestDrawClipsNarrowTarget(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 8))
	p := New("a long panel title")
	var v float32
	p.Add("x", &v, 0, 1, 0)
	p.Draw(gfx.ImageTarget(img))
	if _, _, w, _ := p.Bounds(40); w != 40 {
		t.Fatalf("width not clamped: %d", w)
	}
}

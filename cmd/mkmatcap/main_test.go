package main

import (
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"

	"textscene/assets"
	"textscene/gfx"
)

func TestRunWritesImage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "m.png")
	if err := run(out, assets.DefaultMatcapOptions(24)); err != nil {
		t.Fatalf("run: %v", err)
	}
	img, err := imgio.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 24 {
		t.Fatalf("size %v", b)
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	if err := run(filepath.Join(t.TempDir(), "m.tga"), assets.DefaultMatcapOptions(8)); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseFlags(t *testing.T) {
	v, err := parseVec3(" 1, -2 ,0.5")
	if err != nil || v != gfx.V3(1, -2, 0.5) {
		t.Fatalf("parseVec3: %v %v", v, err)
	}
	if _, err := parseVec3("1,2"); err == nil {
		t.Fatalf("short vector accepted")
	}
	c, err := namedColor("White")
	if err != nil || c.R != 0xFF || c.A != 0xFF {
		t.Fatalf("namedColor: %v %v", c, err)
	}
	if _, err := namedColor("nope"); err == nil {
		t.Fatalf("unknown color accepted")
	}
}

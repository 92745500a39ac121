package main

import (
	"bytes"
	"testing"

	"textscene/typeface"
)

func TestRunRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := run("builtin:lmroman10regular", "StoryBrand", &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	f, err := typeface.ParseJSON(&buf)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if got := len(f.Runes()); got != 9 {
		t.Fatalf("glyph count: got %d want 9", got)
	}
	if miss := f.Missing("StoryBrand"); len(miss) != 0 {
		t.Fatalf("missing %q", string(miss))
	}
}

func TestRunBadInput(t *testing.T) {
	var buf bytes.Buffer
	if err := run("builtin:nope", "a", &buf); err == nil {
		t.Fatalf("unknown builtin accepted")
	}
	if err := run("/nonexistent/font.ttf", "a", &buf); err == nil {
		t.Fatalf("missing file accepted")
	}
}

func TestUniqueRunes(t *testing.T) {
	if got := string(uniqueRunes("StoryBrand")); got != "StoryBand" {
		t.Fatalf("got %q", got)
	}
}

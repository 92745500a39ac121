package buildinfo

import (
	"runtime/debug"
	"testing"
)

func reset(t *testing.T) {
	v, c, d := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func TestShort(t *testing.T) {
	reset(t)
	Version, Commit = "dev", "unknown"
	if got := Short(); got != "dev" {
		t.Fatalf("got %q", got)
	}
	Commit = "abc123"
	if got := Short(); got != "abc123" {
		t.Fatalf("got %q", got)
	}
	Version = "v1.2.0"
	if got := Short(); got != "v1.2.0" {
		t.Fatalf("got %q", got)
	}
}

func TestFillFromSettings(t *testing.T) {
	reset(t)
	Commit, Date = "unknown", "unknown"
	fillFromSettings([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.time", Value: "2024-05-01T10:00:00Z"},
	})
	if Commit != "0123456789ab" {
		t.Fatalf("commit %q", Commit)
	}
	if Date != "2024-05-01T10:00:00Z" {
		t.Fatalf("date %q", Date)
	}

	Commit = "pinned"
	fillFromSettings([]debug.BuildSetting{{Key: "vcs.revision", Value: "ffff"}})
	if Commit != "pinned" {
		t.Fatalf("ldflags value overwritten: %q", Commit)
	}
}

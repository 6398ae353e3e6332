package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLookupEndpoints(t *testing.T) {
	p := DefaultPalette()
	first := p.Colors[0]
	last := p.Colors[len(p.Colors)-1]

	if got := p.Lookup(0); got != first {
		t.Errorf("Lookup(0) = %v, want %v", got, first)
	}
	if got := p.Lookup(-0.5); got != first {
		t.Errorf("Lookup(-0.5) = %v, want %v", got, first)
	}
	if got := p.Lookup(1); got != last {
		t.Errorf("Lookup(1) = %v, want %v", got, last)
	}
	if got := p.Lookup(2); got != last {
		t.Errorf("Lookup(2) = %v, want %v", got, last)
	}
}

func TestLookupBlends(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}
	mid := p.Lookup(0.5)
	if mid == p.Colors[0] || mid == p.Colors[1] {
		t.Errorf("Lookup(0.5) = %v, expected a blend of %v and %v", mid, p.Colors[0], p.Colors[1])
	}
}

func TestLoadGPL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gpl")
	data := "GIMP Palette\nName: test\nColumns: 0\n# a comment\n 13   8 135\tdeep\n240 249  33\tbright\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadGPL(path)
	if err != nil {
		t.Fatalf("LoadGPL: %v", err)
	}
	if p.Name != "test" {
		t.Errorf("Name = %q, want %q", p.Name, "test")
	}
	if len(p.Colors) != 2 {
		t.Fatalf("got %d colors, want 2", len(p.Colors))
	}
	if p.Colors[0] != (RGB{13, 8, 135}) {
		t.Errorf("first color = %v", p.Colors[0])
	}
}

func TestLoadGPLNoColors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.gpl")
	if err := os.WriteFile(path, []byte("GIMP Palette\nName: nothing\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGPL(path); err == nil {
		t.Error("expected an error for a palette without colors")
	}
}

func TestFromConfigFallsBack(t *testing.T) {
	if got := FromConfig(""); got.Name != DefaultPalette().Name {
		t.Errorf("empty path should use the built-in palette, got %q", got.Name)
	}
	if got := FromConfig("/does/not/exist.gpl"); got.Name != DefaultPalette().Name {
		t.Errorf("missing file should fall back to the built-in palette, got %q", got.Name)
	}
}

package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/maps"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(0, 0)
	c.Set(3, 7)
	c.Set(-1, 0)
	c.Set(4, 0)

	if c.Grid[0][0] != blank|0x1 {
		t.Errorf("expected dot 1 in first cell, got %U", c.Grid[0][0])
	}
	if c.Grid[1][1] != blank|0x80 {
		t.Errorf("expected dot 8 in last cell, got %U", c.Grid[1][1])
	}
	if !c.IsSet(3, 7) || c.IsSet(2, 7) || c.IsSet(100, 100) {
		t.Error("IsSet disagrees with Set")
	}
}

func TestPreview(t *testing.T) {
	traj := maps.Iterate(maps.NewClifford(-2, -2.4, 1.1, -0.9), attractor.Point{X: 0.1, Y: 0.1}, 5000)
	out := Preview(traj, 40, 10)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	for _, l := range lines {
		if n := len([]rune(l)); n != 40 {
			t.Fatalf("expected 40 cells per row, got %d", n)
		}
	}
	if !strings.ContainsFunc(out, func(r rune) bool { return r > blank && r <= 0x28ff }) {
		t.Error("expected some dots to be drawn")
	}
}

func TestPreviewEmpty(t *testing.T) {
	out := Preview(nil, 3, 1)
	if out != string([]rune{blank, blank, blank})+"\n" {
		t.Errorf("expected blank canvas, got %q", out)
	}
}

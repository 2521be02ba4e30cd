package preview

import (
	"strings"
	"testing"

	"github.com/mapforge/coursegen/internal/core"
	"github.com/mapforge/coursegen/internal/grid"
)

func TestRenderMapDimensions(t *testing.T) {
	m := grid.NewMap(8, 3, grid.Hookable, core.P(0, 0))
	m.SetXY(2, 1, grid.Freeze)
	m.SetXY(3, 1, grid.Empty)

	lines := strings.Split(RenderMap(m), "\n")
	if len(lines) != 3 {
		t.Fatalf("rendered %d lines, want 3", len(lines))
	}

	middle := stripANSI(lines[1])
	if middle != "##x ####" {
		t.Errorf("middle row = %q, want %q", middle, "##x ####")
	}
}

func TestRenderScaledDimensions(t *testing.T) {
	m := grid.NewMap(16, 8, grid.Hookable, core.P(0, 0))

	lines := strings.Split(RenderScaled(m, 4), "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, want 2", len(lines))
	}
	if got := len(stripANSI(lines[0])); got != 4 {
		t.Errorf("scaled row width = %d, want 4", got)
	}
}

func TestDominantTile(t *testing.T) {
	m := grid.NewMap(8, 8, grid.Freeze, core.P(0, 0))
	m.SetXY(0, 0, grid.Start)

	if got := dominantTile(m, 0, 0, 4); got != grid.Start {
		t.Errorf("block with start cell = %v, want start to win outright", got)
	}
	if got := dominantTile(m, 4, 4, 4); got != grid.Freeze {
		t.Errorf("freeze block = %v, want freeze", got)
	}

	// all-void block falls back to empty
	if err := m.SetArea(core.P(4, 0), core.P(7, 3), grid.Empty, grid.ReplaceAll); err != nil {
		t.Fatalf("SetArea() failed: %v", err)
	}
	if got := dominantTile(m, 4, 0, 4); got != grid.Empty {
		t.Errorf("void block = %v, want empty", got)
	}
}

// stripANSI drops escape sequences so tests compare plain runes.
func stripANSI(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

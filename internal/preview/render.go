// Package preview renders a finished grid as styled terminal output
// for quick visual inspection of a generation run.
package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mapforge/coursegen/internal/grid"
)

// tileStyles maps each tile kind to a lipgloss style.
var tileStyles = map[grid.Tile]lipgloss.Style{
	grid.Empty:         lipgloss.NewStyle(),
	grid.EmptyReserved: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	grid.Hookable:      lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	grid.Freeze:        lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	grid.Platform:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	grid.Start:         lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	grid.Finish:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
}

// tileRunes maps each tile kind to its display rune.
var tileRunes = map[grid.Tile]rune{
	grid.Empty:         ' ',
	grid.EmptyReserved: '.',
	grid.Hookable:      '#',
	grid.Freeze:        'x',
	grid.Platform:      '=',
	grid.Start:         'S',
	grid.Finish:        'F',
}

// RenderMap converts a grid to a styled string, one rune per cell.
// Adjacent cells with the same tile kind are grouped into a single
// styled run to keep the ANSI escape volume down.
func RenderMap(m *grid.Map) string {
	var sb strings.Builder
	sb.Grow(m.W*m.H*2 + m.H)

	for y := 0; y < m.H; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < m.W {
			start := m.GetXY(x, y)

			var run strings.Builder
			for x < m.W && m.GetXY(x, y) == start {
				run.WriteRune(tileRunes[start])
				x++
			}

			sb.WriteString(tileStyles[start].Render(run.String()))
		}
	}

	return sb.String()
}

// RenderScaled renders the grid downsampled by the given factor, so
// large maps fit a terminal. Each output cell shows the dominant
// non-Empty tile of its block, or Empty when the block is all void.
func RenderScaled(m *grid.Map, factor int) string {
	if factor <= 1 {
		return RenderMap(m)
	}

	var sb strings.Builder
	for y := 0; y < m.H; y += factor {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < m.W; x += factor {
			t := dominantTile(m, x, y, factor)
			sb.WriteString(tileStyles[t].Render(string(tileRunes[t])))
		}
	}

	return sb.String()
}

func dominantTile(m *grid.Map, x, y, factor int) grid.Tile {
	var counts [8]int
	for dy := 0; dy < factor && y+dy < m.H; dy++ {
		for dx := 0; dx < factor && x+dx < m.W; dx++ {
			counts[m.GetXY(x+dx, y+dy)]++
		}
	}

	// Start and Finish win outright so the rooms stay visible
	if counts[grid.Start] > 0 {
		return grid.Start
	}
	if counts[grid.Finish] > 0 {
		return grid.Finish
	}

	best := grid.Empty
	bestCount := 0
	for t := grid.Tile(0); t < 8; t++ {
		if t == grid.Empty || t == grid.EmptyReserved {
			continue
		}
		if counts[t] > bestCount {
			best = t
			bestCount = counts[t]
		}
	}
	return best
}

// Package render turns a finished floor into terminal text.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/samdwyer/meiro/internal/grid"
	"github.com/samdwyer/meiro/internal/tile"
)

// Source is anything holding a tile grid, such as a *world.Floor.
type Source interface {
	Grid() *grid.Grid[tile.Tile]
}

// Text renders one line per row using each tile's glyph.
func Text(s Source) string {
	g := s.Grid()
	var sb strings.Builder
	sb.Grow((g.Width() + 1) * g.Height())
	for _, row := range g.Rows() {
		for _, t := range row {
			sb.WriteRune(t.Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Styled renders like Text but colors each tile with the palette color of
// its kind. Adjacent tiles of the same kind share one styled run.
func Styled(s Source, p *tile.Palette) string {
	styles := make(map[tile.Kind]lipgloss.Style)
	styleFor := func(k tile.Kind) lipgloss.Style {
		st, ok := styles[k]
		if !ok {
			st = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Style(k).Color.Hex()))
			styles[k] = st
		}
		return st
	}

	var sb strings.Builder
	var run strings.Builder
	for _, row := range s.Grid().Rows() {
		for i := 0; i < len(row); {
			kind := row[i].Kind
			run.Reset()
			for ; i < len(row) && row[i].Kind == kind; i++ {
				run.WriteRune(row[i].Rune())
			}
			sb.WriteString(styleFor(kind).Render(run.String()))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

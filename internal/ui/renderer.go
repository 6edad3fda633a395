package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/meiro/internal/grid"
	"github.com/samdwyer/meiro/internal/tile"
)

// Renderer draws tile grids to a canvas, colored by a palette.
type Renderer struct {
	canvas  Canvas
	palette *tile.Palette
	styles  map[tile.Kind]tcell.Style
}

// NewRenderer creates a new renderer for the given canvas.
func NewRenderer(canvas Canvas, palette *tile.Palette) *Renderer {
	return &Renderer{
		canvas:  canvas,
		palette: palette,
		styles:  make(map[tile.Kind]tcell.Style),
	}
}

// Viewport returns the area available for the map: the full canvas minus
// the status line.
func (r *Renderer) Viewport() (width, height int) {
	w, h := r.canvas.Size()
	return w, max(h-1, 0)
}

// Render draws g with (offsetX, offsetY) at the top-left corner and the
// status text on the bottom line.
func (r *Renderer) Render(g *grid.Grid[tile.Tile], offsetX, offsetY int, status string) {
	r.canvas.Clear()

	vw, vh := r.Viewport()
	for sy := 0; sy < vh; sy++ {
		for sx := 0; sx < vw; sx++ {
			t, ok := g.At(sx+offsetX, sy+offsetY)
			if !ok {
				continue
			}
			r.canvas.SetContent(sx, sy, t.Rune(), r.tileStyle(t.Kind))
		}
	}

	r.RenderMessage(status, vh)
	r.canvas.Show()
}

// tileStyle returns the palette style for a kind.
func (r *Renderer) tileStyle(kind tile.Kind) tcell.Style {
	if st, ok := r.styles[kind]; ok {
		return st
	}
	st := tcell.StyleDefault.Foreground(tcellColor(r.palette.Style(kind).Color))
	r.styles[kind] = st
	return st
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.canvas.SetContent(i, y, ch, style)
	}
}

func tcellColor(c colorful.Color) tcell.Color {
	red, green, blue := c.RGB255()
	return tcell.NewRGBColor(int32(red), int32(green), int32(blue))
}

package tile

import (
	"encoding/json"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

const paletteFile = "tiles.json"

// Style is how a kind is displayed.
type Style struct {
	Glyph rune
	Color colorful.Color
}

// Palette maps every kind to its display style.
type Palette struct {
	styles  map[Kind]Style
	chipped Style
}

// styleDef is one style as written in tiles.json.
type styleDef struct {
	Glyph string `json:"glyph"` // Single display character
	Color string `json:"color"` // Hex color code (e.g., "#8A8A8A")
}

// tileDef binds a kind name to a style in tiles.json.
type tileDef struct {
	Kind Kind `json:"kind"`
	styleDef
}

// PaletteFile represents the structure of tiles.json.
type PaletteFile struct {
	Tiles   []tileDef `json:"tiles"`
	Chipped styleDef  `json:"chipped"` // Shared by every chipped_* kind
}

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// LoadPalette loads the default palette from the embedded tiles.json.
func LoadPalette() (*Palette, error) {
	file, err := Load[PaletteFile](paletteFile)
	if err != nil {
		return nil, err
	}
	return NewPalette(file)
}

// MustLoadPalette loads the default palette, panicking on error.
func MustLoadPalette() *Palette {
	p, err := LoadPalette()
	if err != nil {
		panic(err)
	}
	return p
}

// NewPalette builds a palette from decoded definitions.
func NewPalette(file PaletteFile) (*Palette, error) {
	p := &Palette{styles: make(map[Kind]Style, len(file.Tiles))}

	for _, def := range file.Tiles {
		style, err := def.style()
		if err != nil {
			return nil, fmt.Errorf("tile %s: %w", def.Kind, err)
		}
		p.styles[def.Kind] = style
	}

	chipped, err := file.Chipped.style()
	if err != nil {
		return nil, fmt.Errorf("chipped tiles: %w", err)
	}
	p.chipped = chipped

	return p, nil
}

func (d styleDef) style() (Style, error) {
	glyph := []rune(d.Glyph)
	if len(glyph) != 1 {
		return Style{}, fmt.Errorf("glyph must be a single character, got %q", d.Glyph)
	}
	color, err := ParseHexColor(d.Color)
	if err != nil {
		return Style{}, err
	}
	return Style{Glyph: glyph[0], Color: color}, nil
}

// Style returns the style for kind. Chipped kinds share one style; kinds
// without an entry render as '?' in white.
func (p *Palette) Style(kind Kind) Style {
	if s, ok := p.styles[kind]; ok {
		return s
	}
	if kind.IsChipped() {
		return p.chipped
	}
	return Style{Glyph: '?', Color: colorful.Color{R: 1, G: 1, B: 1}}
}

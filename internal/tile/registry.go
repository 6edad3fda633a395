package tile

// Constructor builds a tile of one kind.
type Constructor func() Tile

// Registry maps kinds to the constructors used to build them. Callers
// override entries to change glyphs or substitute their own tiles; the
// registry is passed explicitly to whatever builds the map.
type Registry struct {
	constructors map[Kind]Constructor
}

// NewRegistry creates a registry whose constructors use the palette's glyphs.
func NewRegistry(p *Palette) *Registry {
	r := &Registry{constructors: make(map[Kind]Constructor, kindCount)}
	for _, k := range Kinds() {
		t := Tile{Kind: k, Glyph: p.Style(k).Glyph}
		r.constructors[k] = func() Tile { return t }
	}
	return r
}

// DefaultRegistry creates a registry from the embedded palette.
func DefaultRegistry() (*Registry, error) {
	p, err := LoadPalette()
	if err != nil {
		return nil, err
	}
	return NewRegistry(p), nil
}

// MustDefaultRegistry creates the default registry, panicking on error.
func MustDefaultRegistry() *Registry {
	r, err := DefaultRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// Register replaces the constructor for kind and returns the registry.
// A nil constructor restores a bare tile of that kind.
func (r *Registry) Register(kind Kind, c Constructor) *Registry {
	if c == nil {
		c = func() Tile { return Tile{Kind: kind, Glyph: '?'} }
	}
	r.constructors[kind] = c
	return r
}

// New builds a tile of the given kind.
func (r *Registry) New(kind Kind) Tile {
	if c, ok := r.constructors[kind]; ok {
		return c()
	}
	return Tile{Kind: kind, Glyph: '?'}
}

// Clone returns a copy that can be overridden without affecting r.
func (r *Registry) Clone() *Registry {
	c := &Registry{constructors: make(map[Kind]Constructor, len(r.constructors))}
	for k, fn := range r.constructors {
		c.constructors[k] = fn
	}
	return c
}

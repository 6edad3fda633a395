// Package tile defines the closed vocabulary of map tiles and the
// registry used to construct them.
package tile

import "fmt"

// Kind identifies what a tile is. The set of kinds is closed.
type Kind uint8

const (
	// None is the zero kind, used for cells outside the map.
	None Kind = iota
	// Wall is solid rock that has not been shaped yet.
	Wall
	// Floor is the walkable interior of a room.
	Floor
	// Gate is a doorway cell where a corridor leaves a room.
	Gate
	// Corridor is a walkable passage cell outside any room.
	Corridor
	// BinaryWall is the wall kind produced by binary classification.
	BinaryWall

	// Directional walls produced by rogue-like classification.
	LeftWall
	RightWall
	TopWall
	BottomWall

	// Chipped walls produced by detailed classification. The digits name
	// the walkable neighbors using keypad order read top-down:
	//
	//	1 2 3
	//	4 . 6
	//	7 8 9
	Chipped1
	Chipped2
	Chipped3
	Chipped4
	Chipped6
	Chipped7
	Chipped8
	Chipped9
	Chipped13
	Chipped16
	Chipped17
	Chipped18
	Chipped19
	Chipped24
	Chipped26
	Chipped27
	Chipped28
	Chipped29
	Chipped34
	Chipped37
	Chipped38
	Chipped39
	Chipped46
	Chipped48
	Chipped49
	Chipped67
	Chipped68
	Chipped79
	Chipped137
	Chipped138
	Chipped139
	Chipped167
	Chipped168
	Chipped179
	Chipped246
	Chipped248
	Chipped249
	Chipped267
	Chipped268
	Chipped279
	Chipped348
	Chipped349
	Chipped379
	Chipped468
	Chipped1379
	Chipped2468

	kindCount
)

var kindNames = [kindCount]string{
	None:        "none",
	Wall:        "wall",
	Floor:       "floor",
	Gate:        "gate",
	Corridor:    "corridor",
	BinaryWall:  "binary_wall",
	LeftWall:    "l_wall",
	RightWall:   "r_wall",
	TopWall:     "t_wall",
	BottomWall:  "b_wall",
	Chipped1:    "chipped_1",
	Chipped2:    "chipped_2",
	Chipped3:    "chipped_3",
	Chipped4:    "chipped_4",
	Chipped6:    "chipped_6",
	Chipped7:    "chipped_7",
	Chipped8:    "chipped_8",
	Chipped9:    "chipped_9",
	Chipped13:   "chipped_13",
	Chipped16:   "chipped_16",
	Chipped17:   "chipped_17",
	Chipped18:   "chipped_18",
	Chipped19:   "chipped_19",
	Chipped24:   "chipped_24",
	Chipped26:   "chipped_26",
	Chipped27:   "chipped_27",
	Chipped28:   "chipped_28",
	Chipped29:   "chipped_29",
	Chipped34:   "chipped_34",
	Chipped37:   "chipped_37",
	Chipped38:   "chipped_38",
	Chipped39:   "chipped_39",
	Chipped46:   "chipped_46",
	Chipped48:   "chipped_48",
	Chipped49:   "chipped_49",
	Chipped67:   "chipped_67",
	Chipped68:   "chipped_68",
	Chipped79:   "chipped_79",
	Chipped137:  "chipped_137",
	Chipped138:  "chipped_138",
	Chipped139:  "chipped_139",
	Chipped167:  "chipped_167",
	Chipped168:  "chipped_168",
	Chipped179:  "chipped_179",
	Chipped246:  "chipped_246",
	Chipped248:  "chipped_248",
	Chipped249:  "chipped_249",
	Chipped267:  "chipped_267",
	Chipped268:  "chipped_268",
	Chipped279:  "chipped_279",
	Chipped348:  "chipped_348",
	Chipped349:  "chipped_349",
	Chipped379:  "chipped_379",
	Chipped468:  "chipped_468",
	Chipped1379: "chipped_1379",
	Chipped2468: "chipped_2468",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

// Kinds returns every kind except None, in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := Wall; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind returns the kind with the given name (e.g. "floor", "chipped_24").
func ParseKind(name string) (Kind, error) {
	k, ok := kindsByName[name]
	if !ok {
		return None, fmt.Errorf("unknown tile kind %q", name)
	}
	return k, nil
}

// ChippedKind returns the chipped wall kind whose walkable neighbors are
// named by digits (keypad order, ascending, e.g. "168").
func ChippedKind(digits string) (Kind, bool) {
	k, ok := kindsByName["chipped_"+digits]
	return k, ok
}

// String returns the kind's name.
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// UnmarshalText lets kinds be decoded from their names.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalText encodes a kind as its name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Walkable returns true for kinds that can be walked on.
func (k Kind) Walkable() bool {
	switch k {
	case Floor, Gate, Corridor:
		return true
	default:
		return false
	}
}

// IsChipped returns true for the detailed-mode wall variants.
func (k Kind) IsChipped() bool {
	return k >= Chipped1 && k <= Chipped2468
}

// Tile is a single map cell. Two tiles of the same kind and glyph are
// interchangeable.
type Tile struct {
	Kind  Kind
	Glyph rune
}

// Walkable returns true if the tile can be walked on.
func (t Tile) Walkable() bool {
	return t.Kind.Walkable()
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	if t.Glyph == 0 {
		return ' '
	}
	return t.Glyph
}

// String returns the display character as a string.
func (t Tile) String() string {
	return string(t.Rune())
}

package world

import (
	"errors"
	"math/rand"
	"testing"
)

// placeRoom puts a w x h room at relative (1, 1) of b.
func placeRoom(t *testing.T, b *Block, w, h int) *Room {
	t.Helper()
	r, err := NewRoom(w, h)
	if err != nil {
		t.Fatalf("NewRoom: %v", err)
	}
	r.SetRelativeX(1)
	r.SetRelativeY(1)
	if ok, err := b.PutRoom(ExistingRoom(r), nil); !ok || err != nil {
		t.Fatalf("PutRoom: got %v, %v", ok, err)
	}
	return r
}

func TestNewRoom(t *testing.T) {
	tests := []struct {
		w, h    int
		wantErr bool
	}{
		{3, 3, false},
		{10, 5, false},
		{2, 3, true},
		{3, 2, true},
	}
	for _, tt := range tests {
		r, err := NewRoom(tt.w, tt.h)
		if tt.wantErr {
			if !errors.Is(err, ErrRoomTooSmall) {
				t.Errorf("NewRoom(%d, %d): got %v, want ErrRoomTooSmall", tt.w, tt.h, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewRoom(%d, %d): %v", tt.w, tt.h, err)
			continue
		}
		if r.Width() != tt.w || r.Height() != tt.h {
			t.Errorf("got %dx%d, want %dx%d", r.Width(), r.Height(), tt.w, tt.h)
		}
	}
}

func TestRoomOrigin(t *testing.T) {
	r, _ := NewRoom(3, 3)
	if _, ok := r.Origin(); ok {
		t.Error("unattached room should have no origin")
	}
	if r.Generation() != 0 {
		t.Error("unattached room should have generation 0")
	}

	b := NewBlock(nil, 5, 7, 10, 10, nil)
	r.SetRelativeX(2)
	r.SetRelativeY(3)
	if ok, err := b.PutRoom(ExistingRoom(r), nil); !ok || err != nil {
		t.Fatalf("PutRoom: got %v, %v", ok, err)
	}
	o, ok := r.Origin()
	if !ok || o != (Point{7, 10}) {
		t.Errorf("got %v (%v), want (7,10)", o, ok)
	}
	if r.Generation() != 1 {
		t.Errorf("got generation %d, want 1", r.Generation())
	}
}

func TestRoomRelativeCoordinateBounds(t *testing.T) {
	b := NewBlock(nil, 0, 0, 10, 10, nil)
	r := placeRoom(t, b, 5, 5)

	if r.AvailableXMin() != 1 || r.AvailableXMax() != 4 {
		t.Fatalf("x range: got %d..%d, want 1..4", r.AvailableXMin(), r.AvailableXMax())
	}
	if r.AvailableYMin() != 1 || r.AvailableYMax() != 4 {
		t.Fatalf("y range: got %d..%d, want 1..4", r.AvailableYMin(), r.AvailableYMax())
	}

	tests := []struct {
		v       int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{2, false},
		{4, false},
		{5, true},
	}
	for _, tt := range tests {
		errX := r.SetRelativeX(tt.v)
		errY := r.SetRelativeY(tt.v)
		for axis, err := range map[string]error{"x": errX, "y": errY} {
			if !tt.wantErr {
				if err != nil {
					t.Errorf("%s=%d: unexpected error %v", axis, tt.v, err)
				}
				continue
			}
			var ce *CoordinateError
			if !errors.As(err, &ce) {
				t.Errorf("%s=%d: got %v, want *CoordinateError", axis, tt.v, err)
				continue
			}
			if ce.Axis != axis || ce.Value != tt.v || ce.Min != 1 || ce.Max != 4 {
				t.Errorf("%s=%d: got %+v", axis, tt.v, ce)
			}
		}
	}

	// rejected values leave the last accepted one in place
	if r.RelativeX() != 4 || r.RelativeY() != 4 {
		t.Errorf("got (%d,%d), want (4,4)", r.RelativeX(), r.RelativeY())
	}
}

func TestRoomSetRandomCoordinate(t *testing.T) {
	r, _ := NewRoom(3, 3)
	if _, _, err := r.SetRandomCoordinate(rand.New(rand.NewSource(1))); !errors.Is(err, ErrNotAttached) {
		t.Errorf("unattached: got %v, want ErrNotAttached", err)
	}

	tight := NewBlock(nil, 0, 0, 12, 7, nil)
	r = placeRoom(t, tight, 10, 5)
	for seed := int64(1); seed <= 5; seed++ {
		x, y, err := r.SetRandomCoordinate(rand.New(rand.NewSource(seed)))
		if err != nil || x != 1 || y != 1 {
			t.Errorf("seed %d: got (%d,%d) %v, want (1,1)", seed, x, y, err)
		}
	}

	wide := NewBlock(nil, 0, 0, 60, 40, nil)
	r = placeRoom(t, wide, 10, 5)
	for seed := int64(1); seed <= 20; seed++ {
		x, y, err := r.SetRandomCoordinate(rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if x < 1 || x > 49 || y < 1 || y > 34 {
			t.Errorf("seed %d: (%d,%d) outside 1..49 x 1..34", seed, x, y)
		}
	}
}

func TestRoomCells(t *testing.T) {
	b := NewBlock(nil, 0, 0, 20, 10, nil)
	r, _ := NewRoom(10, 5)
	r.SetRelativeX(8)
	r.SetRelativeY(4)

	if got := r.Cells(); len(got) != 0 {
		t.Errorf("unattached room: got %d cells, want 0", len(got))
	}
	if ok, err := b.PutRoom(ExistingRoom(r), nil); !ok || err != nil {
		t.Fatalf("PutRoom: got %v, %v", ok, err)
	}

	cells := r.Cells()
	if len(cells) != 50 {
		t.Fatalf("got %d cells, want 50", len(cells))
	}
	if cells[0] != (Point{8, 4}) || cells[1] != (Point{9, 4}) ||
		cells[10] != (Point{8, 5}) || cells[49] != (Point{17, 8}) {
		t.Errorf("unexpected order: first %v, second %v, eleventh %v, last %v",
			cells[0], cells[1], cells[10], cells[49])
	}
}

func TestRoomBrotherAndPartition(t *testing.T) {
	_, b1, b2, b3, _ := quadFloor(t)

	lone, _ := NewRoom(3, 3)
	if lone.Brother() != nil {
		t.Error("unattached room should have no brother")
	}
	if _, ok := lone.Partition(); ok {
		t.Error("unattached room should have no partition")
	}

	r1 := placeRoom(t, b1, 3, 3)
	if r1.Brother() != nil {
		t.Error("brother block without a room should give no brother room")
	}
	r2 := placeRoom(t, b2, 3, 3)
	r3 := placeRoom(t, b3, 3, 3)

	if r1.Brother() != r2 || r2.Brother() != r1 {
		t.Error("rooms 1 and 2 should be brothers")
	}
	if r3.Brother() != nil {
		t.Error("room 3 has no brother room")
	}

	want, _ := b1.Parent().Partition()
	if got, ok := r1.Partition(); !ok || got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRoomSelectPartition(t *testing.T) {
	f, b1, b2, b3, b4 := quadFloor(t)
	rootP, _ := f.Root().Partition()
	leftP, _ := b1.Parent().Partition()
	rightP, _ := b3.Parent().Partition()

	r1 := placeRoom(t, b1, 3, 3)
	r2 := placeRoom(t, b2, 3, 3)
	r3 := placeRoom(t, b3, 3, 3)
	r4 := placeRoom(t, b4, 3, 3)

	tests := []struct {
		name string
		a, b *Room
		want Partition
	}{
		{"1-2", r1, r2, leftP},
		{"2-1", r2, r1, leftP},
		{"1-3", r1, r3, rootP},
		{"1-4", r1, r4, rootP},
		{"3-4", r3, r4, rightP},
	}
	for _, tt := range tests {
		if got, ok := tt.a.SelectPartition(tt.b); !ok || got != tt.want {
			t.Errorf("%s: got %+v (%v), want %+v", tt.name, got, ok, tt.want)
		}
	}
}

func TestRoomConnectableRooms(t *testing.T) {
	_, b1, b2, b3, _ := quadFloor(t)
	r1 := placeRoom(t, b1, 3, 3)
	r2 := placeRoom(t, b2, 3, 3)
	r3 := placeRoom(t, b3, 3, 3)

	got := r1.ConnectableRooms()
	if len(got) != 2 || got[0] != r3 || got[1] != r2 {
		t.Errorf("got %d rooms, want [3 2]", len(got))
	}
}

func TestRoomCreatePassageTo(t *testing.T) {
	_, b1, _, b3, _ := quadFloor(t)
	r1 := placeRoom(t, b1, 5, 5) // cells (1..5, 1..5)
	r3 := placeRoom(t, b3, 5, 5) // cells (32..36, 1..5)
	rng := rand.New(rand.NewSource(12345))

	if r1.ConnectedTo(r3) {
		t.Fatal("rooms connected before routing")
	}
	if err := r1.CreatePassageTo(r3, rng); err != nil {
		t.Fatalf("CreatePassageTo: %v", err)
	}

	g1, g3 := r1.Gates(), r3.Gates()
	if len(g1) != 1 || len(g3) != 1 {
		t.Fatalf("got %d and %d gates, want 1 each", len(g1), len(g3))
	}
	if g1[0].X != 6 || g1[0].Y < 1 || g1[0].Y > 5 {
		t.Errorf("room 1 gate %v not on its right wall", g1[0])
	}
	if g3[0].X != 31 || g3[0].Y < 1 || g3[0].Y > 5 {
		t.Errorf("room 3 gate %v not on its left wall", g3[0])
	}

	passages := r1.Passages()
	if len(passages) != 3 {
		t.Fatalf("got %d passages, want 3", len(passages))
	}
	want := []Passage{
		NewPassage(6, g1[0].Y, 30, g1[0].Y),
		NewPassage(31, g3[0].Y, 30, g3[0].Y),
		NewPassage(30, g1[0].Y, 30, g3[0].Y),
	}
	for i := range want {
		if passages[i] != want[i] {
			t.Errorf("passage %d: got %+v, want %+v", i, passages[i], want[i])
		}
	}
	if len(r3.Passages()) != 3 {
		t.Errorf("room 3 has %d passages, want 3", len(r3.Passages()))
	}

	for _, c := range []map[Point]*Room{r1.Connections(), r3.Connections()} {
		if len(c) != 2 {
			t.Errorf("got %d connections, want 2", len(c))
		}
	}
	if r1.Connections()[g1[0]] != r3 || r3.Connections()[g1[0]] != r1 {
		t.Error("connection maps do not point at the other room")
	}
	if !r1.ConnectedTo(r3) || !r3.ConnectedTo(r1) {
		t.Error("rooms not connected after routing")
	}

	// a second call is a no-op in either direction
	if err := r1.CreatePassageTo(r3, rng); err != nil {
		t.Fatal(err)
	}
	if err := r3.CreatePassageTo(r1, rng); err != nil {
		t.Fatal(err)
	}
	if len(r1.Gates()) != 1 || len(r3.Gates()) != 1 || len(r1.Passages()) != 3 || len(r3.Passages()) != 3 {
		t.Error("repeated routing added gates or passages")
	}
}

func TestRoomConnectedThroughBrother(t *testing.T) {
	_, b1, b2, _, b4 := quadFloor(t)
	r1 := placeRoom(t, b1, 3, 3)
	r2 := placeRoom(t, b2, 3, 3)
	r4 := placeRoom(t, b4, 3, 3)

	if err := r2.CreatePassageTo(r4, rand.New(rand.NewSource(1))); err != nil {
		t.Fatal(err)
	}
	if !r1.ConnectedTo(r4) {
		t.Error("room 1 should count as connected to room 4 through room 2")
	}
	if r4.ConnectedTo(r1) {
		t.Error("room 4 has no brother room and no link to room 1")
	}
}

func TestRoomCreatePassage(t *testing.T) {
	_, b1, b2, b3, b4 := quadFloor(t)
	r1 := placeRoom(t, b1, 5, 5)
	r2 := placeRoom(t, b2, 5, 5)
	r3 := placeRoom(t, b3, 5, 5)
	placeRoom(t, b4, 5, 5)

	if err := r1.CreatePassage(rand.New(rand.NewSource(7))); err != nil {
		t.Fatalf("CreatePassage: %v", err)
	}
	if !r1.directlyConnected(r2) || !r1.directlyConnected(r3) {
		t.Error("room 1 should be linked to rooms 2 and 3")
	}
	if len(r1.Gates()) != 2 || len(r1.Passages()) != 6 {
		t.Errorf("got %d gates and %d passages, want 2 and 6", len(r1.Gates()), len(r1.Passages()))
	}
}

func TestRoomRandomGate(t *testing.T) {
	b := NewBlock(nil, 0, 10, 10, 10, nil)
	r := placeRoom(t, b, 3, 3) // cells (1..3, 11..13)
	above := Partition{X: 0, Y: 9, Length: 10, Orientation: Horizontal}
	rng := rand.New(rand.NewSource(3))

	r.gates = []Point{{1, 10}}
	for i := 0; i < 20; i++ {
		g, err := r.randomGate(above, rng)
		if err != nil || g != (Point{3, 10}) {
			t.Fatalf("got %v %v, want (3,10)", g, err)
		}
	}

	r.gates = []Point{{2, 10}}
	if _, err := r.randomGate(above, rng); !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("got %v, want ErrGenerationFailed", err)
	}

	left := Partition{X: -1, Y: 10, Length: 10, Orientation: Vertical}
	r.gates = nil
	g, err := r.randomGate(left, rng)
	if err != nil || g.X != 0 || g.Y < 11 || g.Y > 13 {
		t.Errorf("got %v %v, want a cell on x=0 in 11..13", g, err)
	}
}

func TestCreatePassageToWithoutSharedPartition(t *testing.T) {
	r1 := placeRoom(t, NewBlock(nil, 0, 0, 20, 20, nil), 5, 5)
	r2 := placeRoom(t, NewBlock(nil, 30, 0, 20, 20, nil), 5, 5)

	err := r1.CreatePassageTo(r2, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrNoSharedPartition) {
		t.Fatalf("got %v, want ErrNoSharedPartition", err)
	}
	if len(r1.Gates()) != 0 || len(r2.Gates()) != 0 {
		t.Error("gates opened for a failed passage")
	}
}

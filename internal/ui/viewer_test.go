package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/meiro/internal/autotile"
	"github.com/samdwyer/meiro/internal/grid"
	"github.com/samdwyer/meiro/internal/tile"
	"github.com/samdwyer/meiro/internal/world"
)

// fakeTerminal records drawn cells in memory.
type fakeTerminal struct {
	width, height int
	cells         map[[2]int]rune
	shown         int
	closed        bool
}

func newFakeTerminal(w, h int) *fakeTerminal {
	return &fakeTerminal{width: w, height: h, cells: make(map[[2]int]rune)}
}

func (f *fakeTerminal) Clear() { f.cells = make(map[[2]int]rune) }
func (f *fakeTerminal) Show() { f.shown++ }
func (f *fakeTerminal) Size() (int, int) { return f.width, f.height }
func (f *fakeTerminal) PollEvent() tcell.Event { return nil }
func (f *fakeTerminal) PostEvent(tcell.Event) error { return nil }
func (f *fakeTerminal) Sync() {}
func (f *fakeTerminal) Close() { f.closed = true }
func (f *fakeTerminal) SetContent(x, y int, r rune, _ tcell.Style) {
	if x >= 0 && x < f.width && y >= 0 && y < f.height {
		f.cells[[2]int{x, y}] = r
	}
}

func (f *fakeTerminal) row(y int) string {
	rs := make([]rune, f.width)
	for x := range rs {
		r, ok := f.cells[[2]int{x, y}]
		if !ok {
			r = ' '
		}
		rs[x] = r
	}
	return string(rs)
}

func testViewer(t *testing.T, w, h int) (*Viewer, *fakeTerminal) {
	t.Helper()
	cfg := world.DefaultConfig()
	cfg.Seed = 12345
	d, err := world.NewDungeon(cfg, nil)
	if err != nil {
		t.Fatalf("NewDungeon: %v", err)
	}
	term := newFakeTerminal(w, h)
	v := NewViewer(term, d, tile.MustLoadPalette(), cfg.Seed)
	if err := v.show(context.Background(), cfg.Seed); err != nil {
		t.Fatalf("show: %v", err)
	}
	return v, term
}

func TestRendererDrawsGridAndStatus(t *testing.T) {
	reg := tile.MustDefaultRegistry()
	g := grid.New(4, 2, reg.New(tile.Wall))
	g.Set(1, 0, reg.New(tile.Floor))
	g.Set(2, 1, reg.New(tile.Gate))

	term := newFakeTerminal(6, 3)
	r := NewRenderer(term, tile.MustLoadPalette())
	r.Render(g, 0, 0, "ok")

	if got := term.row(0); got != " .    " {
		t.Errorf("row 0: got %q", got)
	}
	if got := term.row(1); got != "  +   " {
		t.Errorf("row 1: got %q", got)
	}
	if got := term.row(2); got != "ok    " {
		t.Errorf("status: got %q", got)
	}
	if term.shown != 1 {
		t.Errorf("Show called %d times, want 1", term.shown)
	}
}

func TestRendererOffset(t *testing.T) {
	reg := tile.MustDefaultRegistry()
	g := grid.New(4, 2, reg.New(tile.Wall))
	g.Set(3, 1, reg.New(tile.Floor))

	term := newFakeTerminal(2, 2)
	NewRenderer(term, tile.MustLoadPalette()).Render(g, 2, 1, "")
	if got := term.row(0); got != " ." {
		t.Errorf("got %q, want %q", got, " .")
	}
}

func TestViewerCycleMode(t *testing.T) {
	v, _ := testViewer(t, 80, 25)
	ctx := context.Background()

	if v.mode != autotile.ModeRogueLike || v.Floor().Mode() != autotile.ModeRogueLike {
		t.Fatalf("start mode: got %v / %v", v.mode, v.Floor().Mode())
	}
	want := []autotile.Mode{autotile.ModeDetailed, autotile.ModeBinary, autotile.ModeNone, autotile.ModeRogueLike}
	for _, m := range want {
		v.apply(ctx, actionCycleMode)
		if v.mode != m || v.Floor().Mode() != m {
			t.Errorf("got %v / %v, want %v", v.mode, v.Floor().Mode(), m)
		}
	}
}

func TestViewerRegenerate(t *testing.T) {
	v, _ := testViewer(t, 80, 25)
	before := v.Floor()
	v.apply(context.Background(), actionCycleMode)

	v.apply(context.Background(), actionRegenerate)
	if v.Floor() == before {
		t.Fatal("regenerate kept the old floor")
	}
	if v.Floor().Mode() != autotile.ModeDetailed {
		t.Errorf("regenerated floor has mode %v, want detailed", v.Floor().Mode())
	}
	if v.message != "" {
		t.Errorf("unexpected message %q", v.message)
	}
}

func TestViewerScrollClamps(t *testing.T) {
	// 60x40 floor in a 50x31 terminal leaves a 10x10 scroll range
	v, _ := testViewer(t, 50, 31)
	ctx := context.Background()

	v.apply(ctx, actionScrollUp)
	v.apply(ctx, actionScrollLeft)
	if v.offsetX != 0 || v.offsetY != 0 {
		t.Errorf("got (%d,%d), want (0,0)", v.offsetX, v.offsetY)
	}
	for i := 0; i < 20; i++ {
		v.apply(ctx, actionScrollRight)
		v.apply(ctx, actionScrollDown)
	}
	if v.offsetX != 10 || v.offsetY != 10 {
		t.Errorf("got (%d,%d), want (10,10)", v.offsetX, v.offsetY)
	}
}

func TestViewerStatus(t *testing.T) {
	v, term := testViewer(t, 80, 41)
	v.render()
	want := "seed 12345  mode rogue_like"
	if got := term.row(40); got[:len(want)] != want {
		t.Errorf("status: got %q", got)
	}
}

func TestViewerQuit(t *testing.T) {
	v, term := testViewer(t, 80, 25)
	v.apply(context.Background(), actionQuit)
	if v.running {
		t.Error("viewer still running after quit")
	}

	// a closed event stream also stops the loop
	v.running = true
	if err := v.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !term.closed {
		t.Error("Run did not close the screen")
	}
}

// blockingTerminal delivers only posted events, like a terminal with no
// key presses.
type blockingTerminal struct {
	*fakeTerminal
	events  chan tcell.Event
	polling chan struct{}
}

var errEventQueueFull = errors.New("event queue full")

func (b *blockingTerminal) PollEvent() tcell.Event {
	select {
	case b.polling <- struct{}{}:
	default:
	}
	return <-b.events
}

func (b *blockingTerminal) PostEvent(ev tcell.Event) error {
	select {
	case b.events <- ev:
		return nil
	default:
		return errEventQueueFull
	}
}

func TestViewerRunStopsOnCancel(t *testing.T) {
	d, err := world.NewDungeon(world.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewDungeon: %v", err)
	}
	term := &blockingTerminal{
		fakeTerminal: newFakeTerminal(80, 25),
		events:       make(chan tcell.Event, 1),
		polling:      make(chan struct{}, 1),
	}
	v := NewViewer(term, d, tile.MustLoadPalette(), 7)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- v.Run(ctx) }()

	select {
	case <-term.polling:
	case <-time.After(5 * time.Second):
		t.Fatal("viewer never polled for input")
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if !term.closed {
		t.Error("Run did not close the screen")
	}
}

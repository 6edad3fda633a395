package ui

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/meiro/internal/autotile"
	"github.com/samdwyer/meiro/internal/telemetry"
	"github.com/samdwyer/meiro/internal/tile"
	"github.com/samdwyer/meiro/internal/world"
)

// Terminal is the screen the viewer runs on.
type Terminal interface {
	Canvas
	PollEvent() tcell.Event
	PostEvent(ev tcell.Event) error
	Sync()
	Close()
}

// action is what a key press asks the viewer to do.
type action int

const (
	actionNone action = iota
	actionQuit
	actionRegenerate
	actionCycleMode
	actionScrollUp
	actionScrollDown
	actionScrollLeft
	actionScrollRight
)

// Viewer shows generated floors and lets the user regenerate them, cycle
// the classification mode and scroll large maps.
type Viewer struct {
	screen   Terminal
	renderer *Renderer
	dungeon  *world.Dungeon
	seeds    *rand.Rand

	floor   *world.Floor
	mode    autotile.Mode
	offsetX int
	offsetY int
	message string
	running bool
}

// NewViewer creates a viewer. seed drives the sequence of floors shown,
// starting with a floor generated from seed itself.
func NewViewer(screen Terminal, d *world.Dungeon, p *tile.Palette, seed int64) *Viewer {
	mode, _ := d.Config().Mode()
	return &Viewer{
		screen:   screen,
		renderer: NewRenderer(screen, p),
		dungeon:  d,
		seeds:    rand.New(rand.NewSource(seed)),
		mode:     mode,
		running:  true,
	}
}

// Floor returns the floor on display.
func (v *Viewer) Floor() *world.Floor { return v.floor }

// Run shows the first floor and processes input until the user quits or
// ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	defer v.screen.Close()

	tracer := telemetry.Tracer("ui")
	ctx, span := tracer.Start(ctx, "viewer.init")
	err := v.show(ctx, v.dungeon.Config().Seed)
	span.End()
	if err != nil {
		return err
	}

	stop := make(chan struct{})
	defer close(stop)
	go v.interruptOnCancel(ctx, stop)

	for v.running && ctx.Err() == nil {
		v.render()
		v.handleInput(ctx)
	}
	return nil
}

// interruptOnCancel wakes a blocked PollEvent once ctx is done.
func (v *Viewer) interruptOnCancel(ctx context.Context, stop <-chan struct{}) {
	select {
	case <-ctx.Done():
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
	case <-stop:
	}
}

// show generates the floor for seed and resets the scroll position.
// A zero seed is replaced by one from the seed sequence.
func (v *Viewer) show(ctx context.Context, seed int64) error {
	if seed == 0 {
		seed = v.seeds.Int63()
	}
	f, err := v.dungeon.GenerateFloorSeed(ctx, seed)
	if err != nil {
		return fmt.Errorf("generate floor (seed %d): %w", seed, err)
	}
	if err := f.Classify(ctx, v.mode); err != nil {
		return err
	}
	v.floor = f
	v.offsetX, v.offsetY = 0, 0
	v.message = ""
	log.FromContext(ctx).Debug("floor shown", "seed", seed, "rooms", len(f.Rooms()))
	return nil
}

func (v *Viewer) render() {
	v.renderer.Render(v.floor.Grid(), v.offsetX, v.offsetY, v.status())
}

func (v *Viewer) status() string {
	if v.message != "" {
		return v.message
	}
	return fmt.Sprintf("seed %d  mode %s  rooms %d  [r]egenerate [c]ycle mode [q]uit",
		v.floor.Seed(), v.mode, len(v.floor.Rooms()))
}

// handleInput processes a single input event.
func (v *Viewer) handleInput(ctx context.Context) {
	ev := v.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.apply(ctx, keyAction(ev))
	case *tcell.EventResize:
		v.screen.Sync()
		v.scroll(0, 0)
	case *tcell.EventInterrupt:
		// Run checks the context before the next poll.
	case nil:
		v.running = false
	}
}

// keyAction maps keyboard input to an action.
func keyAction(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyTab:
		return actionCycleMode
	case tcell.KeyUp:
		return actionScrollUp
	case tcell.KeyDown:
		return actionScrollDown
	case tcell.KeyLeft:
		return actionScrollLeft
	case tcell.KeyRight:
		return actionScrollRight
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return actionQuit
		case 'r', 'R':
			return actionRegenerate
		case 'c', 'C':
			return actionCycleMode
		}
	}
	return actionNone
}

func (v *Viewer) apply(ctx context.Context, a action) {
	switch a {
	case actionQuit:
		v.running = false
	case actionRegenerate:
		ctx, span := telemetry.Tracer("ui").Start(ctx, "viewer.regenerate")
		if err := v.show(ctx, v.seeds.Int63()); err != nil {
			span.RecordError(err)
			v.message = err.Error()
		}
		span.End()
	case actionCycleMode:
		next := v.mode.Next()
		if err := v.floor.Classify(ctx, next); err != nil {
			v.message = err.Error()
			return
		}
		v.mode = next
		_, span := telemetry.Tracer("ui").Start(ctx, "viewer.cycle_mode")
		span.SetAttributes(attribute.String("classify.mode", next.String()))
		span.End()
	case actionScrollUp:
		v.scroll(0, -1)
	case actionScrollDown:
		v.scroll(0, 1)
	case actionScrollLeft:
		v.scroll(-1, 0)
	case actionScrollRight:
		v.scroll(1, 0)
	}
}

// scroll moves the viewport, keeping it over the map.
func (v *Viewer) scroll(dx, dy int) {
	vw, vh := v.renderer.Viewport()
	maxX := max(v.floor.Width()-vw, 0)
	maxY := max(v.floor.Height()-vh, 0)
	v.offsetX = min(max(v.offsetX+dx, 0), maxX)
	v.offsetY = min(max(v.offsetY+dy, 0), maxY)
}

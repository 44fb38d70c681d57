// Package app drives the display: it owns the render loop, drains the
// shared command queue, applies keyboard bindings, and paints composed
// chart frames onto the drawing surface.
package app

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/kalam1991git/vision-test/internal/chart"
	"github.com/kalam1991git/vision-test/internal/optics"
	"github.com/kalam1991git/vision-test/internal/render"
	"github.com/kalam1991git/vision-test/internal/state"
)

// TicksPerSecond is the event-poll cadence of the render loop.
const TicksPerSecond = 30

// commandQueueDepth bounds how many remote commands can wait between
// ticks before new ones are dropped.
const commandQueueDepth = 64

// Applier applies one command line and returns a short confirmation of
// the change, or "" when nothing was applied. Satisfied by
// command.Dispatcher.
type Applier interface {
	Apply(line string) string
}

// messageColor is the overlay ink for transient confirmations.
var messageColor = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}

// Message is a transient on-screen confirmation.
type Message struct {
	Text     string
	TimeLeft float64
}

// Board is the render.Game at the center of the system. All mutation of
// the viewing context happens on its Update goroutine: transports only
// enqueue command strings, so a distance change and a test change can
// never interleave with a repaint.
type Board struct {
	renderer render.Renderer
	input    render.InputManager
	conv     *optics.Converter
	catalog  *chart.Catalog
	ctx      *state.Context
	applier  Applier

	width, height int

	commands chan string
	exit     chan struct{}
	exitOnce sync.Once
	dirty    bool
	frame    chart.Frame
	messages []Message
}

// NewBoard builds the board for a validated display geometry.
func NewBoard(
	renderer render.Renderer,
	input render.InputManager,
	conv *optics.Converter,
	catalog *chart.Catalog,
	ctx *state.Context,
) *Board {
	geo := conv.Geometry()
	return &Board{
		renderer: renderer,
		input:    input,
		conv:     conv,
		catalog:  catalog,
		ctx:      ctx,
		width:    geo.WidthPx,
		height:   geo.HeightPx,
		commands: make(chan string, commandQueueDepth),
		exit:     make(chan struct{}),
		dirty:    true,
	}
}

// SetApplier wires the command dispatcher. Must be called before the
// engine starts.
func (b *Board) SetApplier(a Applier) {
	b.applier = a
}

// Submit enqueues a command line from a transport. Safe for concurrent
// use; when the queue is full the command is dropped rather than
// blocking the transport.
func (b *Board) Submit(line string) {
	select {
	case b.commands <- line:
	default:
		log.Warn().Str("line", line).Msg("command queue full, dropping")
	}
}

// MarkDirty schedules a recompose on the next tick.
func (b *Board) MarkDirty() {
	b.dirty = true
}

// RequestExit asks the render loop to terminate. Safe to call from any
// goroutine and more than once.
func (b *Board) RequestExit() {
	b.exitOnce.Do(func() { close(b.exit) })
}

// ShowMessage displays a transient confirmation line.
func (b *Board) ShowMessage(text string) {
	b.messages = append(b.messages, Message{Text: text, TimeLeft: 3.0})
}

// Update runs once per tick: drain queued commands, handle local keys,
// recompose if anything changed.
func (b *Board) Update() error {
	b.drainCommands()
	b.handleKeys()

	select {
	case <-b.exit:
		return render.Termination
	default:
	}

	if b.dirty {
		b.recompose()
		b.dirty = false
	}
	b.ageMessages(1.0 / float64(TicksPerSecond))
	return nil
}

func (b *Board) drainCommands() {
	for {
		select {
		case line := <-b.commands:
			b.applyLine(line)
		default:
			return
		}
	}
}

// applyLine hands one command line to the dispatcher and queues the
// confirmation overlay when it applied.
func (b *Board) applyLine(line string) {
	if b.applier == nil {
		return
	}
	if msg := b.applier.Apply(line); msg != "" {
		b.ShowMessage(msg)
	}
}

// keyBindings is the fixed local keyboard map.
var keyBindings = []struct {
	key  render.Key
	line string
}{
	{render.KeyRight, "next"},
	{render.KeyLeft, "prev"},
	{render.KeyUp, "brightness up"},
	{render.KeyDown, "brightness down"},
	{render.KeyE, "language english"},
	{render.KeyH, "language hindi"},
	{render.KeyEscape, "exit"},
}

func (b *Board) handleKeys() {
	if b.input == nil || b.applier == nil {
		return
	}
	for _, kb := range keyBindings {
		if b.input.IsKeyJustPressed(kb.key) {
			b.applyLine(kb.line)
		}
	}
	// Digits select a test from the rotation directly.
	for i, key := range []render.Key{
		render.Key1, render.Key2, render.Key3, render.Key4, render.Key5,
		render.Key6, render.Key7, render.Key8, render.Key9,
	} {
		if i < len(chart.Rotation) && b.input.IsKeyJustPressed(key) {
			b.applyLine(fmt.Sprintf("test %s", chart.Rotation[i]))
		}
	}
}

// recompose rebuilds the cached frame from the current context. A panic
// from unexpected catalog or layout data skips the rebuild and keeps the
// previous frame on screen instead of taking the process down.
func (b *Board) recompose() {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("frame composition failed, keeping previous frame")
		}
	}()

	snap := b.ctx.Snapshot()
	b.frame = chart.Compose(chart.View{
		Conv:       b.conv,
		Catalog:    b.catalog,
		Width:      b.width,
		Height:     b.height,
		DistanceMm: snap.DistanceMm,
		Test:       snap.Test,
		Language:   snap.Language,
		Brightness: snap.Brightness,
		Contrast:   snap.Contrast,
	})
}

// Draw paints the cached frame. Paint errors are confined to the frame.
func (b *Board) Draw(screen render.Image) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("frame paint failed, skipping frame")
		}
	}()

	screen.Fill(b.frame.Background)
	for _, op := range b.frame.Ops {
		b.paint(screen, op)
	}
	b.drawMessages(screen)
}

func (b *Board) paint(screen render.Image, op chart.Op) {
	switch o := op.(type) {
	case chart.RectOp:
		b.renderer.FillRect(screen, float32(o.X), float32(o.Y), float32(o.W), float32(o.H), o.Color)
	case chart.CircleOp:
		b.renderer.FillCircle(screen, float32(o.CX), float32(o.CY), float32(o.R), o.Color)
	case chart.LineOp:
		b.renderer.StrokeLine(screen, float32(o.X1), float32(o.Y1), float32(o.X2), float32(o.Y2), float32(o.Width), o.Color)
	case chart.TextOp:
		b.renderer.DrawText(screen, o.Text, o.X, o.Y, o.SizePx, o.Centered, o.Color)
	}
}

func (b *Board) drawMessages(screen render.Image) {
	y := b.height - 30
	for i := len(b.messages) - 1; i >= 0; i-- {
		b.renderer.DrawText(screen, b.messages[i].Text, 10, y, 16, false, messageColor)
		y -= 20
	}
}

func (b *Board) ageMessages(dt float64) {
	active := b.messages[:0]
	for _, m := range b.messages {
		m.TimeLeft -= dt
		if m.TimeLeft > 0 {
			active = append(active, m)
		}
	}
	b.messages = active
}

// Layout fixes the logical resolution to the configured geometry.
func (b *Board) Layout(outsideWidth, outsideHeight int) (int, int) {
	return b.width, b.height
}

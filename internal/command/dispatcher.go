package command

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kalam1991git/vision-test/internal/chart"
	"github.com/kalam1991git/vision-test/internal/state"
)

// Dispatcher applies parsed commands to the viewing context. Every
// successful mutation persists the context and requests a redraw; exit
// only signals termination. Malformed input is silently ignored.
//
// The dispatcher itself is not safe for concurrent use: transports hand
// their lines to a single queue drained by the render loop, which is the
// only caller of Apply.
type Dispatcher struct {
	ctx     *state.Context
	persist func(state.Snapshot)
	redraw  func()
	exit    func()
}

// NewDispatcher wires a dispatcher to its collaborators. persist is
// called with the updated snapshot after every state change, redraw
// after every change that affects the frame, exit when the exit verb
// arrives. Any of the callbacks may be nil.
func NewDispatcher(ctx *state.Context, persist func(state.Snapshot), redraw, exit func()) *Dispatcher {
	return &Dispatcher{ctx: ctx, persist: persist, redraw: redraw, exit: exit}
}

// Apply parses and executes one command line. It returns a short
// description of the change for the on-screen confirmation overlay, or
// "" when nothing was applied (malformed input, exit).
func (d *Dispatcher) Apply(line string) string {
	cmd, ok := Parse(line)
	if !ok {
		if line != "" {
			log.Debug().Str("line", line).Msg("ignoring unrecognized command")
		}
		return ""
	}

	switch cmd.Verb {
	case VerbTest:
		if cmd.Arg == "" {
			return ""
		}
		d.ctx.SetTest(chart.Kind(cmd.Arg))
	case VerbDistance:
		cm, ok := distanceCm(cmd.Arg)
		if !ok {
			log.Debug().Str("arg", cmd.Arg).Msg("ignoring bad distance argument")
			return ""
		}
		d.ctx.SetDistanceMm(float64(cm) * 10)
	case VerbBrightness:
		step, ok := stepFor(cmd.Arg)
		if !ok {
			return ""
		}
		d.ctx.StepBrightness(step)
	case VerbContrast:
		step, ok := stepFor(cmd.Arg)
		if !ok {
			return ""
		}
		d.ctx.StepContrast(step)
	case VerbLanguage:
		if cmd.Arg == "" {
			return ""
		}
		d.ctx.SetLanguage(cmd.Arg)
	case VerbNext:
		d.ctx.SetTest(chart.Next(d.ctx.Snapshot().Test))
	case VerbPrev:
		d.ctx.SetTest(chart.Prev(d.ctx.Snapshot().Test))
	case VerbExit:
		log.Info().Msg("exit requested")
		if d.exit != nil {
			d.exit()
		}
		return ""
	default:
		return ""
	}

	snap := d.ctx.Snapshot()
	log.Info().
		Str("test", string(snap.Test)).
		Float64("distance_mm", snap.DistanceMm).
		Int("brightness", snap.Brightness).
		Int("contrast", snap.Contrast).
		Str("language", snap.Language).
		Msg("command applied")

	if d.persist != nil {
		d.persist(snap)
	}
	if d.redraw != nil {
		d.redraw()
	}
	return confirmation(cmd.Verb, snap)
}

// confirmation describes the applied change in the settled state, so a
// clamped brightness step reads back the value actually stored.
func confirmation(verb Verb, snap state.Snapshot) string {
	switch verb {
	case VerbTest, VerbNext, VerbPrev:
		return fmt.Sprintf("test: %s", snap.Test)
	case VerbDistance:
		return fmt.Sprintf("distance: %.0f cm", snap.DistanceMm/10)
	case VerbBrightness:
		return fmt.Sprintf("brightness: %d", snap.Brightness)
	case VerbContrast:
		return fmt.Sprintf("contrast: %d", snap.Contrast)
	case VerbLanguage:
		return fmt.Sprintf("language: %s", snap.Language)
	default:
		return ""
	}
}

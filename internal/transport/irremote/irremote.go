// Package irremote turns falling edges from a GPIO-attached infrared
// receiver into `next` commands. The receiver module does the IR
// demodulation in hardware; any decoded keypress pulls the data pin low,
// so the mapping is unconditional and only needs debouncing.
package irremote

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// DebounceInterval suppresses the edge bursts a single keypress
// produces.
const DebounceInterval = 300 * time.Millisecond

// edgeTimeout bounds WaitForEdge so cancellation is noticed promptly.
const edgeTimeout = 500 * time.Millisecond

// Pin is the subset of gpio.PinIO the receiver uses, split out so tests
// can substitute a fake.
type Pin interface {
	In(pull gpio.Pull, edge gpio.Edge) error
	WaitForEdge(timeout time.Duration) bool
	Halt() error
}

// OpenPin resolves a BCM pin number (the ir_pin config key) to the GPIO
// registry. The caller must have initialized the periph host first.
func OpenPin(number int) (gpio.PinIO, error) {
	name := fmt.Sprintf("GPIO%d", number)
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("irremote: no such pin %s", name)
	}
	return pin, nil
}

// Submitter accepts command lines; satisfied by app.Board.
type Submitter interface {
	Submit(line string)
}

// Receiver is the IR command transport.
type Receiver struct {
	pin      Pin
	clock    clockwork.Clock
	sink     Submitter
	debounce time.Duration
}

// NewReceiver builds a receiver for the given pin.
func NewReceiver(pin Pin, clock clockwork.Clock, sink Submitter) *Receiver {
	return &Receiver{pin: pin, clock: clock, sink: sink, debounce: DebounceInterval}
}

// Run configures the pin and forwards debounced edges until ctx is
// canceled. A configuration failure is returned so the caller can
// disable the transport; the pin is halted unconditionally on the way
// out.
func (r *Receiver) Run(ctx context.Context) error {
	if err := r.pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return fmt.Errorf("irremote: configure pin: %w", err)
	}
	defer func() {
		if err := r.pin.Halt(); err != nil {
			log.Warn().Err(err).Msg("halting IR pin")
		}
	}()
	log.Info().Msg("IR remote listening")

	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if !r.pin.WaitForEdge(edgeTimeout) {
			continue
		}
		now := r.clock.Now()
		if !last.IsZero() && now.Sub(last) < r.debounce {
			continue
		}
		last = now
		r.sink.Submit("next")
	}
}

// Package serialport reads command lines from the bluetooth serial
// channel. The device side is an RFCOMM tty bound by the OS; this reader
// just consumes newline-delimited text from it and forwards each line
// verbatim to the command queue.
package serialport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.bug.st/serial"
)

// maxPendingBytes caps the buffered remainder of an unterminated line.
// A peer that streams bytes without ever sending a line ending gets its
// backlog dropped instead of growing the buffer without bound.
const maxPendingBytes = 4096

// Port is the subset of the serial port used here, split out so tests
// can substitute a fake.
type Port interface {
	Read(p []byte) (n int, err error)
	Close() error
	SetReadTimeout(t time.Duration) error
}

// PortFactory opens a serial port. The default opens real hardware.
type PortFactory func(path string, mode *serial.Mode) (Port, error)

// DefaultPortFactory opens a real serial port.
func DefaultPortFactory(path string, mode *serial.Mode) (Port, error) {
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", path, err)
	}
	return port, nil
}

// Submitter accepts command lines; satisfied by app.Board.
type Submitter interface {
	Submit(line string)
}

// Reader is the serial command transport.
type Reader struct {
	path    string
	factory PortFactory
	sink    Submitter
}

// DevicePath returns the RFCOMM device node for a bluetooth channel
// number.
func DevicePath(channel int) string {
	return fmt.Sprintf("/dev/rfcomm%d", channel)
}

// NewReader builds a reader for the given device path.
func NewReader(path string, sink Submitter) *Reader {
	return &Reader{path: path, factory: DefaultPortFactory, sink: sink}
}

// Run opens the port and forwards lines until ctx is canceled. An open
// failure is returned so the caller can disable the transport for the
// session; read errors after a successful open end the transport the
// same way.
func (r *Reader) Run(ctx context.Context) error {
	mode := &serial.Mode{BaudRate: 115200}
	port, err := r.factory(r.path, mode)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := port.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("closing serial port")
		}
	}()

	// Short read timeout so cancellation is noticed promptly.
	if err := port.SetReadTimeout(250 * time.Millisecond); err != nil {
		return fmt.Errorf("serialport: set read timeout: %w", err)
	}
	log.Info().Str("path", r.path).Msg("serial remote listening")

	buf := make([]byte, 256)
	var pending strings.Builder
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := port.Read(buf)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("serialport: read: %w", err)
		}
		if n == 0 {
			continue // timeout, poll cancellation
		}

		pending.Write(buf[:n])
		text := pending.String()
		for {
			i := strings.IndexAny(text, "\r\n")
			if i < 0 {
				break
			}
			line := strings.TrimSpace(text[:i])
			text = text[i+1:]
			if line != "" {
				r.sink.Submit(line)
			}
		}
		if len(text) > maxPendingBytes {
			log.Warn().Int("bytes", len(text)).Msg("dropping unterminated serial input")
			text = ""
		}
		pending.Reset()
		pending.WriteString(text)
	}
}

// SetPortFactory overrides how the port is opened. Test seam.
func (r *Reader) SetPortFactory(f PortFactory) {
	r.factory = f
}

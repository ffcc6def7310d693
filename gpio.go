package xbee

import (
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// ResetLine drives a single GPIO output line used to hardware
// reset/sleep an XBee module that exposes such a pin on its carrier
// board. It has no bearing on the wire protocol; BringUp pulses it, if
// configured, purely as a best-effort "make sure the radio is awake
// and starting from a known state" step before the +++ dance.
//
// This repurposes the same GPIO domain the teacher's push-to-talk
// driver occupies (one requested output line, asserted/deasserted on
// demand) for a reset signal instead of keying a transmitter.
// gpioLine is the narrow surface ResetLine needs from *gpiocdev.Line.
// Keeping it as an interface, the way the teacher's ptt.go tests
// against a gpiod_line interface instead of the concrete libgpiod
// binding, lets tests exercise ResetLine's logic with a mock line
// rather than a real gpiochip.
type gpioLine interface {
	SetValue(int) error
	Close() error
}

type ResetLine struct {
	line gpioLine
}

// NewResetLine requests offset on the named gpiochip (e.g. "gpiochip0")
// as an output line, initially deasserted (driven high — XBee reset is
// active-low).
func NewResetLine(chip string, offset int) (*ResetLine, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(1))
	if err != nil {
		return nil, err
	}
	return &ResetLine{line: line}, nil
}

// Assert drives the line low (reset/sleep active).
func (r *ResetLine) Assert() error {
	return r.line.SetValue(0)
}

// Deassert drives the line high (normal operation).
func (r *ResetLine) Deassert() error {
	return r.line.SetValue(1)
}

// Pulse asserts the line, holds it for d, then deasserts it. Errors
// from the underlying GPIO calls are intentionally swallowed here:
// reset is a best-effort nicety, not something BringUp's success
// should hinge on, since many deployments have no reset line wired at
// all (see OpenOption's ResetLine being optional).
func (r *ResetLine) Pulse(d time.Duration) {
	_ = r.Assert()
	time.Sleep(d)
	_ = r.Deassert()
}

// Close releases the underlying GPIO line request.
func (r *ResetLine) Close() error {
	return r.line.Close()
}

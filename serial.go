package xbee

import (
	"errors"
	"fmt"
	"time"

	"github.com/pkg/term"
	"golang.org/x/sys/unix"
)

// ErrUnsupportedBaud is returned when a requested baud is not one of
// the rates SerialTransport accepts.
var ErrUnsupportedBaud = errors.New("xbee: unsupported baud rate")

var acceptedBauds = map[int]bool{
	1200: true, 2400: true, 4800: true, 9600: true,
	19200: true, 38400: true, 57600: true, 115200: true,
}

// SerialTransport is a Transport over a host serial port, opened in
// raw mode the way the teacher's serial_port_open does with
// github.com/pkg/term. Unlike the teacher (which silently substitutes
// 4800 baud for an unrecognized speed and keeps going), an
// unsupported baud here is reported as ErrUnsupportedBaud: a silently
// wrong baud is exactly the failure mode BringUp needs to be able to
// distinguish from "device absent".
type SerialTransport struct {
	t *term.Term
}

// OpenSerial opens device in raw mode at baud and configures the line
// discipline for a non-blocking-ish read: VMIN=0, VTIME=1 (a 100ms
// read timeout), so Read returns promptly with whatever is available
// instead of blocking indefinitely. This is the implementation the
// teacher's serial_port.go leaves as a "TODO KG Confirm? ts.c_cc[VMIN]
// = 1 / ts.c_cc[VTIME] = 0" comment.
func OpenSerial(device string, baud int) (*SerialTransport, error) {
	if baud != 0 && !acceptedBauds[baud] {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBaud, baud)
	}

	tt, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("xbee: opening %s: %w", device, err)
	}

	if baud != 0 {
		if err := tt.SetSpeed(baud); err != nil {
			_ = tt.Close()
			return nil, fmt.Errorf("xbee: setting baud on %s: %w", device, err)
		}
	}

	if err := setReadTimeout(tt.Fd()); err != nil {
		_ = tt.Close()
		return nil, fmt.Errorf("xbee: configuring read timeout on %s: %w", device, err)
	}

	return &SerialTransport{t: tt}, nil
}

// setReadTimeout sets VMIN=0, VTIME=1 on fd via termios, so a read
// call returns after at most 100ms even with no bytes available,
// rather than blocking until at least one arrives.
func setReadTimeout(fd uintptr) error {
	tio, err := unix.IoctlGetTermios(int(fd), unix.TCGETS)
	if err != nil {
		return err
	}

	tio.Cc[unix.VMIN] = 0
	tio.Cc[unix.VTIME] = 1

	return unix.IoctlSetTermios(int(fd), unix.TCSETS, tio)
}

// Write attempts to write all of buf, returning the number of bytes
// actually written.
func (s *SerialTransport) Write(buf []byte) (int, error) {
	return s.t.Write(buf)
}

// Read fills up to len(buf) bytes, returning promptly (within the
// VTIME configured by OpenSerial) with however much is available,
// possibly zero.
func (s *SerialTransport) Read(buf []byte) (int, error) {
	return s.t.Read(buf)
}

// Sleep pauses for the given number of (fractional) seconds.
func (s *SerialTransport) Sleep(seconds float64) {
	time.Sleep(time.Duration(seconds * float64(time.Second)))
}

// Close restores the port and closes the descriptor.
func (s *SerialTransport) Close() error {
	return s.t.Close()
}

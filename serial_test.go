package xbee

import (
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_OpenSerial_RejectsUnsupportedBaud(t *testing.T) {
	_, err := OpenSerial("/dev/null", 4242)
	assert.ErrorIs(t, err, ErrUnsupportedBaud)
}

// Test_SerialTransport_RoundTripsOverRealPTY exercises SerialTransport
// against a genuine pseudo-terminal pair, the way the teacher's own
// kiss.go test harness opens one via pty.Open to simulate a serial
// line without real hardware.
func Test_SerialTransport_RoundTripsOverRealPTY(t *testing.T) {
	ptmx, pts, err := pty.Open()
	require.NoError(t, err)
	defer ptmx.Close()
	defer pts.Close()

	transport, err := OpenSerial(pts.Name(), 9600)
	require.NoError(t, err)
	defer transport.Close()

	go func() {
		_, _ = ptmx.Write([]byte("hello"))
	}()

	buf := make([]byte, 16)
	deadline := time.Now().Add(2 * time.Second)
	total := 0
	for total < 5 && time.Now().Before(deadline) {
		n, err := transport.Read(buf[total:])
		require.NoError(t, err)
		total += n
	}

	assert.Equal(t, "hello", string(buf[:total]))

	n, err := transport.Write([]byte("world"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)

	out := make([]byte, 5)
	_, err = ptmx.Read(out)
	assert.NoError(t, err)
	assert.Equal(t, "world", string(out))
}

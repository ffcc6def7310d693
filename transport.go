package xbee

// Transport is the byte-link capability the Driver is handed by its
// embedder. It makes no assumptions about the concrete link (UART,
// pseudo-terminal, simulated loopback) beyond single-caller-at-a-time
// use.
type Transport interface {
	// Write attempts to write all of buf, returning the number of
	// bytes actually written. A short write (n < len(buf)) is treated
	// by every caller in this package as a failure of the whole send.
	Write(buf []byte) (n int, err error)

	// Read fills up to len(buf) bytes and returns the count, which may
	// be zero if nothing is currently available. Read must not block
	// indefinitely.
	Read(buf []byte) (n int, err error)

	// Sleep pauses for the given number of seconds (fractional
	// seconds allowed). Used only by the bring-up helper.
	Sleep(seconds float64)
}

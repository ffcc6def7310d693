package xbee

// Driver owns the receive ring and a reference to the transport for
// the lifetime of the link. It holds no other mutable state, per
// spec.md's "Driver state" data model: one ring, one transport.
//
// Driver is not reentrant: a caller must not invoke two Driver
// operations concurrently on the same instance.
type Driver struct {
	transport Transport
	ring      *Ring
	log       Logger
}

// OpenOption customizes Open's behavior.
type OpenOption func(*openConfig)

type openConfig struct {
	reset  *ResetLine
	logger Logger
}

// WithResetLine arms BringUp to pulse reset before the drain step.
func WithResetLine(r *ResetLine) OpenOption {
	return func(c *openConfig) { c.reset = r }
}

// WithLogger attaches a Logger; bring-up outcomes and RecvFrame fill
// failures are logged through it. The frame scanner does not log its
// byte drops or checksum failures. Without this option nothing is
// logged.
func WithLogger(l Logger) OpenOption {
	return func(c *openConfig) { c.logger = l }
}

// Open attaches transport and ringStorage to a new Driver and runs
// BringUp on transport. ringStorage is borrowed for the Driver's
// lifetime; the caller must not touch it afterward.
func Open(transport Transport, ringStorage []byte, opts ...OpenOption) (*Driver, error) {
	cfg := &openConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = noopLogger{}
	}

	if err := BringUp(transport, cfg.reset, cfg.logger); err != nil {
		return nil, err
	}

	return &Driver{
		transport: transport,
		ring:      NewRing(ringStorage),
		log:       cfg.logger,
	}, nil
}

// SendFrame emits payload as a framed, escaped, checksummed outbound
// frame.
func (d *Driver) SendFrame(payload []byte) error {
	return SendFrame(d.transport, payload)
}

// ATCommand emits an AT command frame (API ID 0x08).
func (d *Driver) ATCommand(frameID byte, cmd string, param []byte) error {
	return ATCommand(d.transport, frameID, cmd, param)
}

// ATQueueParameter emits a queued AT parameter frame (API ID 0x09).
func (d *Driver) ATQueueParameter(frameID byte, cmd string, param []byte) error {
	return ATQueueParameter(d.transport, frameID, cmd, param)
}

// RemoteATCommand emits a remote AT command frame (API ID 0x17).
func (d *Driver) RemoteATCommand(addr Address, options byte, frameID byte, cmd string, param []byte) error {
	return RemoteATCommand(d.transport, addr, options, frameID, cmd, param)
}

// Transmit emits a data frame (API ID 0x00 or 0x01 depending on addr).
func (d *Driver) Transmit(frameID byte, addr Address, options byte, data []byte) error {
	return Transmit(d.transport, frameID, addr, options, data)
}

// RecvFrame makes at most one fill attempt against the transport, and
// tries to decode a frame from whatever the ring already holds before
// ever touching the transport, the way the original xbee_recv_frame
// does: a fill is only attempted, and the decode retried, when nothing
// was already buffered. This matters when a prior Fill delivered two
// back-to-back frames in one burst read — a later transport error must
// not discard an already-complete, checksum-verified second frame that
// is still sitting in the ring. It returns length > 0 on a verified
// frame, 0 if none is available yet, or a negative value with err set
// on a transport error during the fill.
func (d *Driver) RecvFrame(out []byte) (int, error) {
	length, err := DecodeFrame(d.ring, out)
	if err != nil {
		d.log.Debug("frame decode error", "err", err)
		return length, err
	}
	if length > 0 {
		return length, nil
	}

	n, err := d.ring.Fill(d.transport)
	if n < 0 {
		d.log.Warn("recv fill failed", "err", err)
		return n, err
	}

	length, err = DecodeFrame(d.ring, out)
	if err != nil {
		d.log.Debug("frame decode error", "err", err)
	}
	return length, err
}

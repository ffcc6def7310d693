package xbee

import "fmt"

// Inbound API IDs this driver knows how to parse.
const (
	apiIDModemStatus      = 0x8A
	apiIDTransmitStatus   = 0x89
	apiIDATResponse       = 0x88
	apiIDRemoteATResponse = 0x97
	apiIDReceive64        = 0x80
	apiIDReceive16        = 0x81
)

// ParseError reports a malformed or unrecognized inbound frame.
type ParseError struct {
	APIID byte
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("xbee: parse API 0x%02x: %s", e.APIID, e.Msg)
}

func tooShort(apiID byte) error {
	return &ParseError{APIID: apiID, Msg: "wrong length for API"}
}

// ModemStatus is sent by the radio to report a local state change.
type ModemStatus struct {
	Status byte
}

// TransmitStatus reports the outcome of a previous Transmit.
type TransmitStatus struct {
	FrameID byte
	Status  byte
}

// ATResponse is the reply to a local ATCommand/ATQueueParameter.
type ATResponse struct {
	FrameID byte
	Command [2]byte
	Status  byte
	Data    []byte // borrowed view into the caller's decoded buffer
}

// RemoteATResponse is the reply to a RemoteATCommand.
type RemoteATResponse struct {
	FrameID         byte
	ResponderAddr64 uint64
	ResponderAddr16 uint16
	Command         [2]byte
	Status          byte
	Data            []byte
}

// Receive64 is data received from a 64-bit-addressed peer.
type Receive64 struct {
	SourceAddr64 uint64
	RSSI         byte
	Options      byte
	Payload      []byte
}

// Receive16 is data received from a 16-bit-addressed peer.
type Receive16 struct {
	SourceAddr16 uint16
	RSSI         byte
	Options      byte
	Payload      []byte
}

// ParseFrame is a pure, stateless decoder: it interprets an
// already-un-escaped, checksum-verified frame payload (as produced by
// DecodeFrame) and returns one of the typed variants above. Returned
// Data/Payload slices are views into raw and are only valid while raw
// is unmodified.
func ParseFrame(raw []byte) (any, error) {
	if len(raw) < 1 {
		return nil, &ParseError{Msg: "empty frame"}
	}

	apiID := raw[0]

	switch apiID {
	case apiIDModemStatus:
		if len(raw) < 2 {
			return nil, tooShort(apiID)
		}
		return ModemStatus{Status: raw[1]}, nil

	case apiIDTransmitStatus:
		if len(raw) < 3 {
			return nil, tooShort(apiID)
		}
		return TransmitStatus{FrameID: raw[1], Status: raw[2]}, nil

	case apiIDATResponse:
		if len(raw) < 5 {
			return nil, tooShort(apiID)
		}
		return ATResponse{
			FrameID: raw[1],
			Command: [2]byte{raw[2], raw[3]},
			Status:  raw[4],
			Data:    raw[5:],
		}, nil

	case apiIDRemoteATResponse:
		if len(raw) < 15 {
			return nil, tooShort(apiID)
		}
		return RemoteATResponse{
			FrameID:         raw[1],
			ResponderAddr64: assemble64(raw[2:10]),
			ResponderAddr16: assemble16(raw[10:12]),
			Command:         [2]byte{raw[12], raw[13]},
			Status:          raw[14],
			Data:            raw[15:],
		}, nil

	case apiIDReceive64:
		if len(raw) < 11 {
			return nil, tooShort(apiID)
		}
		return Receive64{
			SourceAddr64: assemble64(raw[1:9]),
			RSSI:         raw[9],
			Options:      raw[10],
			Payload:      raw[11:],
		}, nil

	case apiIDReceive16:
		if len(raw) < 5 {
			return nil, tooShort(apiID)
		}
		return Receive16{
			SourceAddr16: assemble16(raw[1:3]),
			RSSI:         raw[3],
			Options:      raw[4],
			Payload:      raw[5:],
		}, nil

	default:
		return nil, &ParseError{APIID: apiID, Msg: "unknown API ID"}
	}
}

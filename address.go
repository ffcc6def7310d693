package xbee

import "errors"

// AddressKind distinguishes the four address variants the wire format
// supports. Using an explicit sum type (rather than, say, a 64-bit
// value plus a "is this 16-bit" bool) makes the broadcast variants
// unrepresentable as an accidental combination of unrelated fields.
type AddressKind int

const (
	AddressKind64 AddressKind = iota
	AddressKind16
	AddressKindBroadcast64
	AddressKindBroadcast16
)

// unknown16 is the conventional "no 16-bit network address known yet"
// placeholder used in the addr16 slot of frames addressed by 64-bit
// address.
const unknown16 = 0xFFFE

// Address is a tagged value over the four address variants the
// protocol distinguishes: a 64-bit unicast extended address, a 16-bit
// unicast network address, and the two broadcast forms.
type Address struct {
	kind   AddressKind
	addr64 uint64
	addr16 uint16
}

// Addr64 builds a 64-bit extended unicast address.
func Addr64(v uint64) Address {
	return Address{kind: AddressKind64, addr64: v}
}

// Addr16 builds a 16-bit network unicast address.
func Addr16(v uint16) Address {
	return Address{kind: AddressKind16, addr16: v}
}

// Broadcast64 is the 64-bit broadcast address, encoded on the wire as
// 00 00 00 00 00 00 FF FF.
func Broadcast64() Address {
	return Address{kind: AddressKindBroadcast64}
}

// Broadcast16 is the 16-bit broadcast address, encoded on the wire as
// FF FF.
func Broadcast16() Address {
	return Address{kind: AddressKindBroadcast16}
}

func put64(dst *[8]byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[7-i] = byte(v >> (8 * i))
	}
}

// ErrUnsupportedRemoteATAddress is returned when RemoteAT is asked to
// address a 16-bit broadcast: the wire format this spec documents only
// defines the FF FE network slot for a 16-bit-*unicast* address, and
// it is an open question whether a 16-bit broadcast remote-AT command
// is even meaningful. Rather than guess at an encoding, it is rejected.
var ErrUnsupportedRemoteATAddress = errors.New("xbee: 16-bit broadcast is not supported as a remote AT address")

// remoteATFields computes the addr64[8]/addr16[2] header fields for a
// remote AT command, per spec.md §4.6.
func (a Address) remoteATFields() (addr64 [8]byte, addr16 [2]byte, err error) {
	switch a.kind {
	case AddressKind64:
		put64(&addr64, a.addr64)
		addr16[0], addr16[1] = byte(unknown16>>8), byte(unknown16)
	case AddressKind16:
		addr64[6], addr64[7] = 0xFF, 0xFE
		addr16[0], addr16[1] = byte(a.addr16>>8), byte(a.addr16)
	case AddressKindBroadcast64:
		addr64[6], addr64[7] = 0xFF, 0xFF
		addr16[0], addr16[1] = byte(unknown16>>8), byte(unknown16)
	case AddressKindBroadcast16:
		return addr64, addr16, ErrUnsupportedRemoteATAddress
	}
	return addr64, addr16, nil
}

// transmitFields decides whether a Transmit should use the 16-bit or
// 64-bit frame and computes the corresponding address field.
func (a Address) transmitFields() (use16 bool, addr64 [8]byte, addr16 [2]byte) {
	switch a.kind {
	case AddressKind64:
		put64(&addr64, a.addr64)
		return false, addr64, addr16
	case AddressKind16:
		addr16[0], addr16[1] = byte(a.addr16>>8), byte(a.addr16)
		return true, addr64, addr16
	case AddressKindBroadcast64:
		addr64[6], addr64[7] = 0xFF, 0xFF
		return false, addr64, addr16
	case AddressKindBroadcast16:
		addr16[0], addr16[1] = 0xFF, 0xFF
		return true, addr64, addr16
	}
	return false, addr64, addr16
}

// assemble64 folds 8 big-endian bytes into a uint64: addr = addr<<8 |
// b[i]. This is the corrected form of the address assembly spec.md's
// Open Questions flags as buggy in the original source (which shifted
// by 64-8*(i-1) instead).
func assemble64(b []byte) uint64 {
	var addr uint64
	for _, v := range b {
		addr = addr<<8 | uint64(v)
	}
	return addr
}

// assemble16 folds 2 big-endian bytes into a uint16: (b[0]<<8)|b[1].
// This is the corrected form of the 16-bit assembly spec.md's Open
// Questions flags as buggy (the original overwrote rather than ORed
// the low byte).
func assemble16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

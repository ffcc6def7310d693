package xbee

// minFrameBytes is the smallest possible on-wire frame: delimiter + 2
// length bytes + 1 API-id byte + 1 data byte + 1 checksum byte.
const minFrameBytes = 6

// DecodeFrame extracts the next complete, checksum-verified frame from
// r, writing its un-escaped payload (API ID followed by the rest of
// the frame body) into out.
//
// It returns:
//   - 0, nil if no complete frame is currently available (caller
//     should try again once more bytes arrive);
//   - length, nil (length > 0) if a valid frame's payload of that many
//     bytes was written to out;
//
// DecodeFrame never blocks and makes no transport calls; it only
// examines bytes already sitting in r. Corrupt or stray bytes between
// frames are silently dropped — DecodeFrame resynchronizes internally
// and only returns once it has either a verified frame or genuinely
// needs more input.
func DecodeFrame(r *Ring, out []byte) (int, error) {
	for {
		if r.Len() < minFrameBytes {
			return 0, nil
		}

		if r.Peek(0) != delimiter {
			r.DropFront(1)
			continue
		}

		var lenBuf [2]byte
		lenConsumed, lenN, lenRes := unescapeFrom(r, 1, 2, lenBuf[:], nil)

		switch lenRes {
		case unescapeNeedMore:
			return 0, nil
		case unescapeFoundStart:
			r.DropFront(1)
			continue
		}
		if lenN != 2 {
			return 0, nil
		}

		length := int(lenBuf[0])<<8 | int(lenBuf[1])

		if length+4 > r.Capacity() || length+1 > len(out) {
			// Declared frame can never fit the ring, or the
			// un-escaped payload can never fit the caller's buffer.
			// Accept the cost of scanning past it one byte at a time.
			r.DropFront(1)
			continue
		}

		var checksum byte
		bodyConsumed, _, bodyRes := unescapeFrom(r, 1+lenConsumed, length+1, out, &checksum)

		switch bodyRes {
		case unescapeFoundStart:
			r.DropFront(1)
			continue
		case unescapeNeedMore:
			switch {
			case r.Len() == r.Capacity():
				r.DropFront(1)
				continue
			case hasLaterDelimiter(r):
				r.DropFront(1)
				continue
			default:
				return 0, nil
			}
		}

		if checksum != 0xFF {
			r.DropFront(1)
			continue
		}

		r.DropFront(1 + lenConsumed + bodyConsumed)
		return length, nil
	}
}

// hasLaterDelimiter reports whether a 0x7E exists at some logical
// offset beyond 0 in r's currently buffered bytes.
func hasLaterDelimiter(r *Ring) bool {
	for i := 1; i < r.Len(); i++ {
		if r.Peek(i) == delimiter {
			return true
		}
	}
	return false
}

package xbee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func Test_needsEscape(t *testing.T) {
	for _, b := range []byte{0x7E, 0x7D, 0x11, 0x13} {
		assert.True(t, needsEscape(b))
	}
	for _, b := range []byte{0x00, 0x01, 0x7C, 0x20, 0xFF} {
		assert.False(t, needsEscape(b))
	}
}

func Test_writeEscaped_EscapesSpecialBytes(t *testing.T) {
	ft := &fakeTransport{}
	ok := writeEscaped(ft, []byte{0x41, 0x7E, 0x42, 0x7D, 0x11, 0x13})
	assert.True(t, ok)
	assert.Equal(t, []byte{
		0x41,
		0x7D, 0x7E ^ escMask,
		0x42,
		0x7D, 0x7D ^ escMask,
		0x7D, 0x11 ^ escMask,
		0x7D, 0x13 ^ escMask,
	}, ft.Written)
}

func Test_writeEscaped_ShortWriteFails(t *testing.T) {
	ok := writeEscaped(&shortWriteTransport{allow: 0}, []byte{0x01})
	assert.False(t, ok)
}

func Test_unescapeFrom_PlainBytes(t *testing.T) {
	r := NewRing(make([]byte, 16))
	region1, _ := r.WritableRegions()
	r.Commit(copy(region1, []byte{0x01, 0x02, 0x03}))

	out := make([]byte, 2)
	var checksum byte
	consumed, n, res := unescapeFrom(r, 0, 2, out, &checksum)

	assert.Equal(t, unescapeOK, res)
	assert.Equal(t, 2, consumed)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x01, 0x02}, out)
	assert.Equal(t, byte(0x01+0x02), checksum)
}

func Test_unescapeFrom_EscapedByte(t *testing.T) {
	r := NewRing(make([]byte, 16))
	region1, _ := r.WritableRegions()
	r.Commit(copy(region1, []byte{0x7D, 0x5E})) // escaped 0x7E

	out := make([]byte, 1)
	consumed, n, res := unescapeFrom(r, 0, 1, out, nil)

	assert.Equal(t, unescapeOK, res)
	assert.Equal(t, 2, consumed)
	assert.Equal(t, 1, n)
	assert.Equal(t, byte(0x7E), out[0])
}

func Test_unescapeFrom_NeedsMore(t *testing.T) {
	r := NewRing(make([]byte, 16))
	region1, _ := r.WritableRegions()
	r.Commit(copy(region1, []byte{0x01}))

	out := make([]byte, 2)
	_, n, res := unescapeFrom(r, 0, 2, out, nil)

	assert.Equal(t, unescapeNeedMore, res)
	assert.Equal(t, 1, n)
}

func Test_unescapeFrom_NeedsMoreMidEscape(t *testing.T) {
	r := NewRing(make([]byte, 16))
	region1, _ := r.WritableRegions()
	r.Commit(copy(region1, []byte{0x7D})) // dangling escape byte, no follower yet

	out := make([]byte, 1)
	_, n, res := unescapeFrom(r, 0, 1, out, nil)

	assert.Equal(t, unescapeNeedMore, res)
	assert.Equal(t, 0, n)
}

func Test_unescapeFrom_BareDelimiterFoundStart(t *testing.T) {
	r := NewRing(make([]byte, 16))
	region1, _ := r.WritableRegions()
	r.Commit(copy(region1, []byte{0x01, 0x7E, 0x03}))

	out := make([]byte, 3)
	_, n, res := unescapeFrom(r, 0, 3, out, nil)

	assert.Equal(t, unescapeFoundStart, res)
	assert.Equal(t, 1, n)
}

func Test_unescapeFrom_EscapeFollowedByDelimiterFoundStart(t *testing.T) {
	r := NewRing(make([]byte, 16))
	region1, _ := r.WritableRegions()
	r.Commit(copy(region1, []byte{0x7D, 0x7E}))

	out := make([]byte, 1)
	_, n, res := unescapeFrom(r, 0, 1, out, nil)

	assert.Equal(t, unescapeFoundStart, res)
	assert.Equal(t, 0, n)
}

// Test_RoundTrip_EscapeTransparency checks that writing an arbitrary
// byte slice through writeEscaped and reading it back through
// unescapeFrom always recovers the original bytes, for any input.
func Test_RoundTrip_EscapeTransparency(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := rapid.SliceOf(rapid.Byte()).Draw(t, "in")

		ft := &fakeTransport{}
		assert.True(t, writeEscaped(ft, in))

		r := NewRing(make([]byte, len(ft.Written)+8))
		region1, _ := r.WritableRegions()
		r.Commit(copy(region1, ft.Written))

		out := make([]byte, len(in))
		consumed, n, res := unescapeFrom(r, 0, len(in), out, nil)

		assert.Equal(t, unescapeOK, res)
		assert.Equal(t, len(ft.Written), consumed)
		assert.Equal(t, len(in), n)
		assert.Equal(t, in, out)
	})
}

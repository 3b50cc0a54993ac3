package page

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarintRoundTripSmall(t *testing.T) {
	r := require.New(t)

	for i := 0; i < 2048; i++ {
		buf := AppendVarint(nil, uint64(i))
		v, n, err := GetVarint(buf, 0)
		r.NoError(err)
		r.Equal(len(buf), n)
		r.Equal(uint64(i), v)
	}
}

func TestVarintRoundTripBoundaries(t *testing.T) {
	r := require.New(t)

	cases := []struct {
		value   uint64
		encLen  int
	}{
		{0, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 3},
		{1<<56 - 1, 8},
		{1 << 56, 9},
		{1<<64 - 1, 9},
	}

	for _, c := range cases {
		buf := AppendVarint(nil, c.value)
		r.Equal(c.encLen, len(buf), "value %d", c.value)
		v, n, err := GetVarint(buf, 0)
		r.NoError(err)
		r.Equal(len(buf), n)
		r.Equal(c.value, v)
	}
}

// TestVarintNineByteAllEightBits exercises the canonical encoding of a
// value that requires the full 64 bits: nine bytes where the final byte
// carries all 8 of its bits rather than 7.
func TestVarintNineByteAllEightBits(t *testing.T) {
	r := require.New(t)

	buf := AppendVarint(nil, 1<<64-1)
	r.Len(buf, 9)
	for i := 0; i < 8; i++ {
		r.Equal(byte(0xff), buf[i])
	}
	r.Equal(byte(0xff), buf[8])
}

// TestVarintDecodeNineByteForm checks that nine 0x81 bytes decode through
// the 9-byte form: eight 7-bit groups of 1, then all 8 bits of the final
// 0x81, giving 145249953336295809.
func TestVarintDecodeNineByteForm(t *testing.T) {
	r := require.New(t)

	buf := []byte{0x81, 0x81, 0x81, 0x81, 0x81, 0x81, 0x81, 0x81, 0x81}
	v, n, err := GetVarint(buf, 0)
	r.NoError(err)
	r.Equal(9, n)

	var want uint64
	for i := 0; i < 8; i++ {
		want = want<<7 | 1
	}
	want = want<<8 | 0x81
	r.Equal(want, v)
}

func TestVarintShortBuffer(t *testing.T) {
	r := require.New(t)

	_, _, err := GetVarint([]byte{0x80, 0x80}, 0)
	r.Error(err)
	var sb *ShortBufferError
	r.ErrorAs(err, &sb)
}

func TestVarintLenMatchesPutVarint(t *testing.T) {
	r := require.New(t)
	values := []uint64{0, 1, 127, 128, 16383, 16384, 1<<56 - 1, 1 << 56, 1<<64 - 1}
	for _, v := range values {
		buf := make([]byte, VarintLen(v))
		n := PutVarint(buf, 0, v)
		r.Equal(len(buf), n)
	}
}

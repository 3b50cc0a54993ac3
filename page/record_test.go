package page

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordRoundTripAllKinds(t *testing.T) {
	r := require.New(t)

	rec := &Record{
		Columns: []Column{
			{Kind: KindNull},
			{Kind: KindI8},
			{Kind: KindI16},
			{Kind: KindI24},
			{Kind: KindI32},
			{Kind: KindI48},
			{Kind: KindI64},
			{Kind: KindF64},
			{Kind: KindConstZero},
			{Kind: KindConstOne},
			{Kind: KindBlob, Length: 3},
			{Kind: KindText, Length: 5},
		},
		Values: []interface{}{
			nil,
			int64(-1),
			int64(12345),
			int64(-100),
			int64(1 << 20),
			int64(-(1 << 30)),
			int64(1 << 40),
			3.5,
			int64(0),
			int64(1),
			[]byte{0xde, 0xad, 0xbe},
			"hello",
		},
	}

	buf, err := rec.Encode()
	r.NoError(err)

	decoded, n, err := DecodeRecord(buf, 0)
	r.NoError(err)
	r.Equal(len(buf), n)
	r.Equal(rec.Columns, decoded.Columns)
	r.Equal(rec.Values, decoded.Values)
}

func TestRecordHeaderSizeTwoByteCase(t *testing.T) {
	r := require.New(t)

	// 130 TEXT columns of length 1 pushes the serial-type vector past 127
	// bytes, forcing a 2-byte header-size varint.
	cols := make([]Column, 130)
	vals := make([]interface{}, 130)
	for i := range cols {
		cols[i] = Column{Kind: KindText, Length: 1}
		vals[i] = "x"
	}
	rec := &Record{Columns: cols, Values: vals}

	buf, err := rec.Encode()
	r.NoError(err)

	headerSize, n, err := GetVarint(buf, 0)
	r.NoError(err)
	r.Equal(2, n)
	r.True(headerSize > 127)

	decoded, _, err := DecodeRecord(buf, 0)
	r.NoError(err)
	r.Equal(rec.Values, decoded.Values)
}

func TestRecordLargeValueNotOversize(t *testing.T) {
	r := require.New(t)

	// A single huge BLOB value doesn't make the header itself unpredictable
	// — its serial type is still one varint — so it must round-trip fine.
	cols := []Column{{Kind: KindBlob, Length: 40000}}
	vals := []interface{}{make([]byte, 40000)}
	rec := &Record{Columns: cols, Values: vals}

	buf, err := rec.Encode()
	r.NoError(err)

	decoded, _, err := DecodeRecord(buf, 0)
	r.NoError(err)
	r.Equal(rec.Values, decoded.Values)
}

func TestRecordOversizeHeaderRejected(t *testing.T) {
	r := require.New(t)

	// Enough NULL columns pushes the serial-type vector itself past the
	// point where a 1- or 2-byte header-size varint can represent it.
	const n = 20000
	cols := make([]Column, n)
	vals := make([]interface{}, n)
	for i := range cols {
		cols[i] = Column{Kind: KindNull}
	}
	rec := &Record{Columns: cols, Values: vals}

	_, err := rec.Encode()
	r.Error(err)
	var oversize *OversizeRecordHeaderError
	r.ErrorAs(err, &oversize)
}

func TestReservedSerialTypeRejected(t *testing.T) {
	r := require.New(t)

	_, err := DecodeSerialType(10)
	r.Error(err)
	var reserved *ReservedSerialTypeError
	r.ErrorAs(err, &reserved)

	_, err = DecodeSerialType(11)
	r.Error(err)
	r.ErrorAs(err, &reserved)
}

package page

import (
	"encoding/binary"
	"math"
)

// ColumnKind is the decoded meaning of a record column's serial type.
type ColumnKind int

const (
	KindNull ColumnKind = iota
	KindI8
	KindI16
	KindI24
	KindI32
	KindI48
	KindI64
	KindF64
	KindConstZero
	KindConstOne
	KindReserved10
	KindReserved11
	KindBlob
	KindText
)

// Column describes one record column: its kind, and for BLOB/TEXT, the
// byte length of its value.
type Column struct {
	Kind   ColumnKind
	Length int
}

// DecodeSerialType maps a record header serial-type varint to a Column
// descriptor. Serial types 10 and 11 are reserved by the format and are
// never produced by a real writer; this returns a ReservedSerialTypeError
// for them rather than silently treating them as BLOB or TEXT.
func DecodeSerialType(s uint64) (Column, error) {
	switch {
	case s == 0:
		return Column{Kind: KindNull}, nil
	case s == 1:
		return Column{Kind: KindI8}, nil
	case s == 2:
		return Column{Kind: KindI16}, nil
	case s == 3:
		return Column{Kind: KindI24}, nil
	case s == 4:
		return Column{Kind: KindI32}, nil
	case s == 5:
		return Column{Kind: KindI48}, nil
	case s == 6:
		return Column{Kind: KindI64}, nil
	case s == 7:
		return Column{Kind: KindF64}, nil
	case s == 8:
		return Column{Kind: KindConstZero}, nil
	case s == 9:
		return Column{Kind: KindConstOne}, nil
	case s == 10:
		return Column{}, &ReservedSerialTypeError{Value: s}
	case s == 11:
		return Column{}, &ReservedSerialTypeError{Value: s}
	case s >= 12 && s%2 == 0:
		return Column{Kind: KindBlob, Length: int((s - 12) / 2)}, nil
	default: // s >= 13, odd
		return Column{Kind: KindText, Length: int((s - 13) / 2)}, nil
	}
}

// EncodeSerialType returns the serial-type varint value for a Column.
func EncodeSerialType(c Column) (uint64, error) {
	switch c.Kind {
	case KindNull:
		return 0, nil
	case KindI8:
		return 1, nil
	case KindI16:
		return 2, nil
	case KindI24:
		return 3, nil
	case KindI32:
		return 4, nil
	case KindI48:
		return 5, nil
	case KindI64:
		return 6, nil
	case KindF64:
		return 7, nil
	case KindConstZero:
		return 8, nil
	case KindConstOne:
		return 9, nil
	case KindBlob:
		return uint64(c.Length)*2 + 12, nil
	case KindText:
		return uint64(c.Length)*2 + 13, nil
	default:
		return 0, &ReservedSerialTypeError{Value: uint64(c.Kind)}
	}
}

// ValueLen returns the number of value body bytes a Column occupies.
func ValueLen(c Column) int {
	switch c.Kind {
	case KindNull, KindConstZero, KindConstOne:
		return 0
	case KindI8:
		return 1
	case KindI16:
		return 2
	case KindI24:
		return 3
	case KindI32:
		return 4
	case KindI48:
		return 6
	case KindI64, KindF64:
		return 8
	default: // Blob, Text
		return c.Length
	}
}

// DecodeValue decodes the value body for a Column starting at offset in
// buf, returning a Go value (nil, int64, float64, []byte, or string) and
// the number of bytes consumed.
//
// Integer kinds decode their raw big-endian bit pattern sign-extended to
// int64; re-encoding a decoded value with EncodeValue reproduces the exact
// original bytes.
func DecodeValue(buf []byte, offset int, c Column) (interface{}, int, error) {
	n := ValueLen(c)
	if offset+n > len(buf) {
		return nil, 0, &ShortBufferError{Need: offset + n, Have: len(buf)}
	}

	switch c.Kind {
	case KindNull:
		return nil, 0, nil
	case KindConstZero:
		return int64(0), 0, nil
	case KindConstOne:
		return int64(1), 0, nil
	case KindI8:
		return int64(int8(buf[offset])), 1, nil
	case KindI16:
		return int64(int16(binary.BigEndian.Uint16(buf[offset:]))), 2, nil
	case KindI24:
		v := int32(buf[offset])<<16 | int32(buf[offset+1])<<8 | int32(buf[offset+2])
		if v&0x800000 != 0 {
			v |= ^0xffffff
		}
		return int64(v), 3, nil
	case KindI32:
		return int64(int32(binary.BigEndian.Uint32(buf[offset:]))), 4, nil
	case KindI48:
		v := int64(buf[offset])<<40 | int64(buf[offset+1])<<32 |
			int64(buf[offset+2])<<24 | int64(buf[offset+3])<<16 |
			int64(buf[offset+4])<<8 | int64(buf[offset+5])
		if v&0x800000000000 != 0 {
			v |= ^0xffffffffffff
		}
		return v, 6, nil
	case KindI64:
		return int64(binary.BigEndian.Uint64(buf[offset:])), 8, nil
	case KindF64:
		return math.Float64frombits(binary.BigEndian.Uint64(buf[offset:])), 8, nil
	case KindBlob:
		b := make([]byte, n)
		copy(b, buf[offset:offset+n])
		return b, n, nil
	case KindText:
		return string(buf[offset : offset+n]), n, nil
	default:
		return nil, 0, &ReservedSerialTypeError{Value: uint64(c.Kind)}
	}
}

// EncodeValue appends the value body bytes for v (as decoded by
// DecodeValue for the given Column) to buf and returns the result.
func EncodeValue(buf []byte, v interface{}, c Column) ([]byte, error) {
	switch c.Kind {
	case KindNull, KindConstZero, KindConstOne:
		return buf, nil
	case KindI8:
		return append(buf, byte(int8(v.(int64)))), nil
	case KindI16:
		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, uint16(int16(v.(int64))))
		return append(buf, b...), nil
	case KindI24:
		x := int32(v.(int64))
		return append(buf, byte(x>>16), byte(x>>8), byte(x)), nil
	case KindI32:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, uint32(int32(v.(int64))))
		return append(buf, b...), nil
	case KindI48:
		x := v.(int64)
		return append(buf,
			byte(x>>40), byte(x>>32), byte(x>>24),
			byte(x>>16), byte(x>>8), byte(x)), nil
	case KindI64:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, uint64(v.(int64)))
		return append(buf, b...), nil
	case KindF64:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, math.Float64bits(v.(float64)))
		return append(buf, b...), nil
	case KindBlob:
		return append(buf, v.([]byte)...), nil
	case KindText:
		return append(buf, v.(string)...), nil
	default:
		return nil, &ReservedSerialTypeError{Value: uint64(c.Kind)}
	}
}

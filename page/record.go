package page

// oversizeRecordThreshold: a serial-type vector of 32765 bytes or more is
// always rejected. Encode's 2-byte case already rejects every vector of
// 16382 bytes or more, since its header size would need a 3-byte varint.
const oversizeRecordThreshold = 32765

// Record is a decoded SQLite row: parallel Columns/Values slices, one
// entry per field, in on-disk order.
type Record struct {
	Columns []Column
	Values  []interface{}
}

// DecodeRecord parses a record body (the bytes a table-leaf cell's payload
// points at, with no length or row-id prefix) starting at offset in buf.
func DecodeRecord(buf []byte, offset int) (*Record, int, error) {
	start := offset

	headerSize, n, err := GetVarint(buf, offset)
	if err != nil {
		return nil, 0, err
	}
	headerEnd := offset + int(headerSize)
	if headerEnd > len(buf) {
		return nil, 0, &ShortBufferError{Need: headerEnd, Have: len(buf)}
	}

	cursor := offset + n
	var columns []Column
	for cursor < headerEnd {
		st, sn, err := GetVarint(buf, cursor)
		if err != nil {
			return nil, 0, err
		}
		col, err := DecodeSerialType(st)
		if err != nil {
			return nil, 0, err
		}
		columns = append(columns, col)
		cursor += sn
	}

	values := make([]interface{}, len(columns))
	valueCursor := headerEnd
	for i, col := range columns {
		v, vn, err := DecodeValue(buf, valueCursor, col)
		if err != nil {
			return nil, 0, err
		}
		values[i] = v
		valueCursor += vn
	}

	return &Record{Columns: columns, Values: values}, valueCursor - start, nil
}

// Encode serializes the record to its on-disk body bytes: a
// self-referential header-size varint, the serial-type vector, then the
// value vector.
//
// The header-size varint's own length is predicted by case analysis
// rather than fixed-point iteration: the body (serial types + values) is
// built first, then the header size is the length of the serial-type
// vector plus whichever varint width (1 or 2 bytes) that total requires.
// A serial-type vector of 16382 bytes or more is rejected as
// OversizeRecordHeaderError, since the case analysis only covers 1- and
// 2-byte header-size varints (a 2-byte varint holds at most 16383).
func (r *Record) Encode() ([]byte, error) {
	var typeBytes []byte
	var valueBytes []byte
	for i, col := range r.Columns {
		st, err := EncodeSerialType(col)
		if err != nil {
			return nil, err
		}
		typeBytes = AppendVarint(typeBytes, st)

		vb, err := EncodeValue(valueBytes, r.Values[i], col)
		if err != nil {
			return nil, err
		}
		valueBytes = vb
	}

	// The header-size varint encodes its own byte length plus the
	// serial-type vector's length. Try the 1-byte case first; if the
	// resulting header size no longer fits in 1 byte, fall back to 2.
	var headerSize int
	oneByte := len(typeBytes) + 1
	twoByte := len(typeBytes) + 2
	switch {
	case VarintLen(uint64(oneByte)) == 1:
		headerSize = oneByte
	case VarintLen(uint64(twoByte)) == 2:
		headerSize = twoByte
	default:
		return nil, &OversizeRecordHeaderError{Size: len(typeBytes)}
	}

	if len(typeBytes) >= oversizeRecordThreshold {
		return nil, &OversizeRecordHeaderError{Size: len(typeBytes)}
	}

	out := AppendVarint(nil, uint64(headerSize))
	out = append(out, typeBytes...)
	out = append(out, valueBytes...)
	return out, nil
}

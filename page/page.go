package page

import "encoding/binary"

// NodeType identifies the kind of b-tree page: interior or leaf, table or
// index.
type NodeType byte

const (
	NodeTypeInteriorIndex NodeType = 2
	NodeTypeInteriorTable NodeType = 5
	NodeTypeLeafIndex     NodeType = 10
	NodeTypeLeafTable     NodeType = 13
)

func (t NodeType) IsLeaf() bool {
	return t == NodeTypeLeafIndex || t == NodeTypeLeafTable
}

func (t NodeType) valid() bool {
	switch t {
	case NodeTypeInteriorIndex, NodeTypeInteriorTable, NodeTypeLeafIndex, NodeTypeLeafTable:
		return true
	default:
		return false
	}
}

func headerLen(t NodeType) int {
	if t.IsLeaf() {
		return 8
	}
	return 12
}

// TableLeafCell is one row of a table b-tree leaf page: the record's
// integer key (SQLite's "row id") and its decoded payload.
type TableLeafCell struct {
	RowID   int64
	Record  *Record
	RawSize int // on-disk payload_size, in case Record.Encode would differ
}

// Page is a decoded b-tree page header, plus fully-decoded cells when the
// page is a table leaf.
//
// Only table-leaf pages are decoded to the cell level; interior and index
// pages stop at the header (NodeType, pointer/fragmentation counters,
// RightPointer) since this core never walks beyond a single leaf.
type Page struct {
	NodeType               NodeType
	FirstFreeblock         uint16
	NumCells               uint16
	CellContentStart       int // 65536 normalized from the on-disk 0 sentinel
	NumFragmentedFreeBytes uint8
	RightPointer           uint32 // interior pages only

	Cells []TableLeafCell // table-leaf pages only

	PageSize    int
	HasDBHeader bool // true for page 1, which carries a 100-byte prefix
}

func (p *Page) headerOffset() int {
	if p.HasDBHeader {
		return 100
	}
	return 0
}

// DecodePage parses a full page buffer. pageSize is the database's page
// size; hasDBHeader is true only for page 1, whose first 100 bytes are the
// database header rather than page content.
//
// Only NodeTypeLeafTable pages have their cells decoded into Record
// values; interior and index pages are parsed through the header only
// (their cell-pointer array is bounds-checked but not read) and their
// cell bytes are left undecoded.
func DecodePage(buf []byte, pageSize int, hasDBHeader bool) (*Page, error) {
	off := 0
	if hasDBHeader {
		off = 100
	}
	if off+8 > len(buf) {
		return nil, &ShortBufferError{Need: off + 8, Have: len(buf)}
	}

	nt := NodeType(buf[off])
	if !nt.valid() {
		return nil, &UnknownNodeTypeError{Value: buf[off]}
	}

	p := &Page{
		NodeType:               nt,
		FirstFreeblock:         binary.BigEndian.Uint16(buf[off+1:]),
		NumCells:               binary.BigEndian.Uint16(buf[off+3:]),
		NumFragmentedFreeBytes: buf[off+7],
		PageSize:               pageSize,
		HasDBHeader:            hasDBHeader,
	}

	ccs := int(binary.BigEndian.Uint16(buf[off+5:]))
	if ccs == 0 {
		ccs = 65536
	}
	p.CellContentStart = ccs

	hlen := headerLen(nt)
	if !nt.IsLeaf() {
		if off+12 > len(buf) {
			return nil, &ShortBufferError{Need: off + 12, Have: len(buf)}
		}
		p.RightPointer = binary.BigEndian.Uint32(buf[off+8:])
	}

	ptrStart := off + hlen
	if ptrStart+int(p.NumCells)*2 > len(buf) {
		return nil, &ShortBufferError{Need: ptrStart + int(p.NumCells)*2, Have: len(buf)}
	}

	if nt != NodeTypeLeafTable {
		return p, nil
	}

	p.Cells = make([]TableLeafCell, p.NumCells)
	for i := 0; i < int(p.NumCells); i++ {
		cellOffset := int(binary.BigEndian.Uint16(buf[ptrStart+i*2:]))
		cell, err := decodeTableLeafCell(buf, cellOffset)
		if err != nil {
			return nil, err
		}
		p.Cells[i] = cell
	}

	return p, nil
}

func decodeTableLeafCell(buf []byte, offset int) (TableLeafCell, error) {
	payloadSize, n1, err := GetVarint(buf, offset)
	if err != nil {
		return TableLeafCell{}, err
	}
	rowID, n2, err := GetVarint(buf, offset+n1)
	if err != nil {
		return TableLeafCell{}, err
	}
	payloadOffset := offset + n1 + n2
	if payloadOffset+int(payloadSize) > len(buf) {
		return TableLeafCell{}, &ShortBufferError{Need: payloadOffset + int(payloadSize), Have: len(buf)}
	}

	record, _, err := DecodeRecord(buf[:payloadOffset+int(payloadSize)], payloadOffset)
	if err != nil {
		return TableLeafCell{}, err
	}

	return TableLeafCell{
		RowID:   int64(rowID),
		Record:  record,
		RawSize: int(payloadSize),
	}, nil
}

// EncodeTableLeaf serializes a table-leaf page's header, cell-pointer
// array, and cell content into a freshly packed page_size-byte buffer.
//
// Cells are packed right-to-left: the last byte of the first cell lands at
// page_size-1, and each subsequent cell is placed immediately to the left
// of the previous one. first_freeblock and num_fragmented_free_bytes are
// always written as 0 — this codec never reuses freed space, so every
// encoded page is freshly defragmented. PageOverflowError is returned when
// the cells plus header plus pointer array would not fit in one page.
func (p *Page) EncodeTableLeaf() ([]byte, error) {
	if p.NodeType != NodeTypeLeafTable {
		return nil, &UnknownNodeTypeError{Value: byte(p.NodeType)}
	}

	hoff := p.headerOffset()
	hlen := headerLen(p.NodeType)
	ptrStart := hoff + hlen
	numCells := len(p.Cells)

	cellBytes := make([][]byte, numCells)
	totalContent := 0
	for i, cell := range p.Cells {
		recBytes, err := cell.Record.Encode()
		if err != nil {
			return nil, err
		}
		buf := AppendVarint(nil, uint64(len(recBytes)))
		buf = AppendVarint(buf, uint64(cell.RowID))
		buf = append(buf, recBytes...)
		cellBytes[i] = buf
		totalContent += len(buf)
	}

	used := ptrStart + numCells*2 + totalContent
	if used > p.PageSize {
		return nil, &PageOverflowError{By: used - p.PageSize}
	}

	out := make([]byte, p.PageSize)
	pointer := p.PageSize
	pointers := make([]int, numCells)
	for i := 0; i < numCells; i++ {
		pointer -= len(cellBytes[i])
		copy(out[pointer:], cellBytes[i])
		pointers[i] = pointer
	}

	cellContentStart := p.PageSize
	if numCells > 0 {
		cellContentStart = pointer
	}

	out[hoff] = byte(p.NodeType)
	binary.BigEndian.PutUint16(out[hoff+1:], 0) // first_freeblock
	binary.BigEndian.PutUint16(out[hoff+3:], uint16(numCells))
	if cellContentStart == 65536 {
		binary.BigEndian.PutUint16(out[hoff+5:], 0)
	} else {
		binary.BigEndian.PutUint16(out[hoff+5:], uint16(cellContentStart))
	}
	out[hoff+7] = 0 // num_fragmented_free_bytes

	for i, off := range pointers {
		binary.BigEndian.PutUint16(out[ptrStart+i*2:], uint16(off))
	}

	return out, nil
}

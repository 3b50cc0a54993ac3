package page

import (
	"bytes"
	"encoding/binary"
)

// magic is the fixed 16-byte prefix every SQLite database file begins
// with.
var magic = []byte("SQLite format 3\000")

// Version is SQLite's packed-decimal library version number, as stored at
// header offset 96.
type Version struct {
	Major, Minor, Patch int
}

func versionFromInt(v uint32) Version {
	return Version{
		Major: int(v / 1_000_000),
		Minor: int((v / 1_000) % 1_000),
		Patch: int(v % 1_000),
	}
}

func (v Version) toInt() uint32 {
	return uint32(v.Major*1_000_000 + v.Minor*1_000 + v.Patch)
}

// DBInfo is the bit-exact 100-byte database header occupying the first
// 100 bytes of page 1. Field names and offsets follow the SQLite file
// format documentation (see field comments below).
type DBInfo struct {
	// 16-17: the database page size in bytes. A value of 1 here means
	// 65536, since the field is too narrow to hold that value directly.
	PageSize int
	// 18: file format write version. 1 for legacy, 2 for WAL.
	FileFormatWriteVersion byte
	// 19: file format read version. 1 for legacy, 2 for WAL.
	FileFormatReadVersion byte
	// 20: bytes of unused "reserved" space at the end of each page.
	ReservedSpace byte
	// 21: maximum embedded payload fraction. Always 64.
	MaxPayloadFraction byte
	// 22: minimum embedded payload fraction. Always 32.
	MinPayloadFraction byte
	// 23: leaf payload fraction. Always 32.
	LeafPayloadFraction byte
	// 24-27: file change counter.
	FileChangeCounter uint32
	// 28-31: size of the database file in pages.
	SizeInPages uint32
	// 32-35: page number of the first freelist trunk page.
	FirstFreelistTrunkPage uint32
	// 36-39: total number of freelist pages.
	FreelistPageCount uint32
	// 40-43: schema cookie.
	SchemaCookie uint32
	// 44-47: schema format number (1-4).
	SchemaFormat uint32
	// 48-51: default page cache size.
	DefaultPageCacheSize uint32
	// 52-55: page number of the largest root b-tree page for auto/incr vacuum, else 0.
	VacuumModeLargestRootPage uint32
	// 56-59: database text encoding (1=UTF-8, 2=UTF-16le, 3=UTF-16be).
	TextEncoding uint32
	// 60-63: user version, set and read by the user via PRAGMA.
	UserVersion uint32
	// 64-67: true (non-zero) for incremental-vacuum mode.
	IncrementalVacuum uint32
	// 68-71: application ID, set by PRAGMA application_id.
	ApplicationID uint32
	// 72-91: reserved for expansion, always zero.
	// (not a field: always encoded/decoded as 20 zero bytes)
	// 92-95: the version-valid-for number.
	VersionValidFor uint32
	// 96-99: SQLITE_VERSION_NUMBER at which the file was last written.
	Version Version
}

// ParseDBInfo decodes the 100-byte database header from the start of buf.
// It validates the magic prefix; the reserved region at 72-91 is not
// read or checked. It does not reject out-of-domain enum fields (FileFormatWriteVersion,
// FileFormatReadVersion, TextEncoding); call Validate for that.
func ParseDBInfo(buf []byte) (*DBInfo, error) {
	if len(buf) < 100 {
		return nil, &ShortBufferError{Need: 100, Have: len(buf)}
	}
	if !bytes.Equal(buf[0:16], magic) {
		return nil, &BadMagicError{Got: append([]byte(nil), buf[0:16]...)}
	}

	pageSizeField := binary.BigEndian.Uint16(buf[16:18])
	pageSize := int(pageSizeField)
	if pageSizeField == 1 {
		pageSize = 65536
	}

	d := &DBInfo{
		PageSize:                  pageSize,
		FileFormatWriteVersion:    buf[18],
		FileFormatReadVersion:     buf[19],
		ReservedSpace:             buf[20],
		MaxPayloadFraction:        buf[21],
		MinPayloadFraction:        buf[22],
		LeafPayloadFraction:       buf[23],
		FileChangeCounter:         binary.BigEndian.Uint32(buf[24:28]),
		SizeInPages:               binary.BigEndian.Uint32(buf[28:32]),
		FirstFreelistTrunkPage:    binary.BigEndian.Uint32(buf[32:36]),
		FreelistPageCount:         binary.BigEndian.Uint32(buf[36:40]),
		SchemaCookie:              binary.BigEndian.Uint32(buf[40:44]),
		SchemaFormat:              binary.BigEndian.Uint32(buf[44:48]),
		DefaultPageCacheSize:      binary.BigEndian.Uint32(buf[48:52]),
		VacuumModeLargestRootPage: binary.BigEndian.Uint32(buf[52:56]),
		TextEncoding:              binary.BigEndian.Uint32(buf[56:60]),
		UserVersion:               binary.BigEndian.Uint32(buf[60:64]),
		IncrementalVacuum:         binary.BigEndian.Uint32(buf[64:68]),
		ApplicationID:             binary.BigEndian.Uint32(buf[68:72]),
		VersionValidFor:           binary.BigEndian.Uint32(buf[92:96]),
		Version:                   versionFromInt(binary.BigEndian.Uint32(buf[96:100])),
	}

	return d, nil
}

// Validate checks the enum-domain fields this core cares about. Unlike
// ParseDBInfo, which accepts any byte so a header can still be inspected,
// Validate rejects file_format_*_version values other than 1 (legacy) or
// 2 (WAL) and text encodings other than 1, 2, or 3 — values this core has
// no defined behavior for.
func (d *DBInfo) Validate() error {
	if d.FileFormatWriteVersion != 1 && d.FileFormatWriteVersion != 2 {
		return &UnknownEnumValueError{Field: "file_format_write_version", Value: int(d.FileFormatWriteVersion)}
	}
	if d.FileFormatReadVersion != 1 && d.FileFormatReadVersion != 2 {
		return &UnknownEnumValueError{Field: "file_format_read_version", Value: int(d.FileFormatReadVersion)}
	}
	if d.TextEncoding < 1 || d.TextEncoding > 3 {
		return &UnknownEnumValueError{Field: "text_encoding", Value: int(d.TextEncoding)}
	}
	return nil
}

// Serialize reconstructs the exact 100-byte header, including the 20-byte
// zero-filled reserved region at offset 72.
func (d *DBInfo) Serialize() []byte {
	buf := make([]byte, 100)
	copy(buf, magic)

	pageSizeField := uint16(d.PageSize)
	if d.PageSize == 65536 {
		pageSizeField = 1
	}
	binary.BigEndian.PutUint16(buf[16:18], pageSizeField)

	buf[18] = d.FileFormatWriteVersion
	buf[19] = d.FileFormatReadVersion
	buf[20] = d.ReservedSpace
	buf[21] = d.MaxPayloadFraction
	buf[22] = d.MinPayloadFraction
	buf[23] = d.LeafPayloadFraction

	binary.BigEndian.PutUint32(buf[24:28], d.FileChangeCounter)
	binary.BigEndian.PutUint32(buf[28:32], d.SizeInPages)
	binary.BigEndian.PutUint32(buf[32:36], d.FirstFreelistTrunkPage)
	binary.BigEndian.PutUint32(buf[36:40], d.FreelistPageCount)
	binary.BigEndian.PutUint32(buf[40:44], d.SchemaCookie)
	binary.BigEndian.PutUint32(buf[44:48], d.SchemaFormat)
	binary.BigEndian.PutUint32(buf[48:52], d.DefaultPageCacheSize)
	binary.BigEndian.PutUint32(buf[52:56], d.VacuumModeLargestRootPage)
	binary.BigEndian.PutUint32(buf[56:60], d.TextEncoding)
	binary.BigEndian.PutUint32(buf[60:64], d.UserVersion)
	binary.BigEndian.PutUint32(buf[64:68], d.IncrementalVacuum)
	binary.BigEndian.PutUint32(buf[68:72], d.ApplicationID)
	// buf[72:92] left zero: reserved for expansion.
	binary.BigEndian.PutUint32(buf[92:96], d.VersionValidFor)
	binary.BigEndian.PutUint32(buf[96:100], d.Version.toInt())

	return buf
}

// NewDBInfo returns a DBInfo populated with the conventional defaults a
// freshly created database file carries.
func NewDBInfo(pageSize int) *DBInfo {
	return &DBInfo{
		PageSize:                pageSize,
		FileFormatWriteVersion:  1,
		FileFormatReadVersion:   1,
		MaxPayloadFraction:      64,
		MinPayloadFraction:      32,
		LeafPayloadFraction:     32,
		SizeInPages:             1,
		SchemaFormat:            4,
		TextEncoding:            1,
		VersionValidFor:         3,
		Version:                 versionFromInt(3027002),
	}
}

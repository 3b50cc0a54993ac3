package page

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDBInfoRoundTrip(t *testing.T) {
	r := require.New(t)

	d := NewDBInfo(4096)
	d.FileChangeCounter = 7
	d.SchemaCookie = 2
	d.UserVersion = 42
	d.ApplicationID = 0xCAFEBABE

	buf := d.Serialize()
	r.Len(buf, 100)

	// Reserved region is always zero-filled.
	for i := 72; i < 92; i++ {
		r.Equal(byte(0), buf[i], "reserved byte %d", i)
	}

	decoded, err := ParseDBInfo(buf)
	r.NoError(err)
	r.Equal(d, decoded)
}

func TestDBInfoPageSize65536Sentinel(t *testing.T) {
	r := require.New(t)

	d := NewDBInfo(65536)
	buf := d.Serialize()
	r.Equal(byte(0), buf[16])
	r.Equal(byte(1), buf[17])

	decoded, err := ParseDBInfo(buf)
	r.NoError(err)
	r.Equal(65536, decoded.PageSize)
}

func TestDBInfoBadMagic(t *testing.T) {
	r := require.New(t)

	buf := make([]byte, 100)
	copy(buf, "not a real header")

	_, err := ParseDBInfo(buf)
	r.Error(err)
	var bm *BadMagicError
	r.ErrorAs(err, &bm)
}

func TestDBInfoValidateRejectsUnknownEnum(t *testing.T) {
	r := require.New(t)

	d := NewDBInfo(4096)
	d.TextEncoding = 9
	r.Error(d.Validate())

	d2 := NewDBInfo(4096)
	d2.FileFormatWriteVersion = 5
	r.Error(d2.Validate())
}

func TestDBInfoShortBuffer(t *testing.T) {
	r := require.New(t)

	_, err := ParseDBInfo(make([]byte, 10))
	r.Error(err)
	var sb *ShortBufferError
	r.ErrorAs(err, &sb)
}

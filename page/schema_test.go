package page

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func masterRow(r *require.Assertions, typ, name, tableName string, rootPage int64, sql string) *Record {
	return &Record{
		Columns: []Column{
			{Kind: KindText, Length: len(typ)},
			{Kind: KindText, Length: len(name)},
			{Kind: KindText, Length: len(tableName)},
			{Kind: KindI8},
			{Kind: KindText, Length: len(sql)},
		},
		Values: []interface{}{typ, name, tableName, rootPage, sql},
	}
}

func TestSchemaIndexLookup(t *testing.T) {
	r := require.New(t)

	p1 := &Page{
		NodeType:    NodeTypeLeafTable,
		HasDBHeader: true,
		Cells: []TableLeafCell{
			{RowID: 1, Record: masterRow(r, "table", "users", "users", 2, "CREATE TABLE users(id, name)")},
			{RowID: 2, Record: masterRow(r, "table", "orders", "orders", 3, "CREATE TABLE orders(id, user_id)")},
		},
	}

	idx, err := NewSchemaIndex(p1)
	r.NoError(err)
	r.Len(idx.Entries(), 2)

	entry, ok := idx.Lookup("users")
	r.True(ok)
	r.Equal(int64(2), entry.RootPage)

	_, ok = idx.Lookup("missing")
	r.False(ok)

	prefixed, ok := idx.LookupPrefix("ord")
	r.True(ok)
	r.Equal("orders", prefixed.Name)
}

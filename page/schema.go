package page

import (
	"github.com/armon/go-radix"
)

// SchemaEntry is one decoded row of the sqlite_master table: a table,
// index, view, or trigger definition. This is a read-only projection of
// page 1's cells, not a new on-disk structure.
type SchemaEntry struct {
	Type      string // "table", "index", "view", or "trigger"
	Name      string
	TableName string
	RootPage  int64
	SQL       string
}

// SchemaIndex resolves sqlite_master entries by name. Entries are
// collected by scanning page 1's cells for matching rows, then indexed
// in a radix tree so lookups by exact name or unambiguous prefix don't
// require a linear scan.
type SchemaIndex struct {
	entries []SchemaEntry
	byName  *radix.Tree
}

// NewSchemaIndex decodes page 1's table-leaf cells as sqlite_master rows
// and indexes them by name. page must be the already-decoded page 1
// (HasDBHeader true, NodeType NodeTypeLeafTable).
//
// Each sqlite_master row is a 5-column record: type, name, tbl_name,
// rootpage, sql. rootpage is typically encoded as a small integer kind
// (I8/I16/I32/...); Values[3] is normalized to int64 here regardless of
// which integer kind the writer chose.
func NewSchemaIndex(page1 *Page) (*SchemaIndex, error) {
	tree := radix.New()
	entries := make([]SchemaEntry, 0, len(page1.Cells))

	for _, cell := range page1.Cells {
		v := cell.Record.Values
		if len(v) < 5 {
			continue
		}

		entry := SchemaEntry{
			Type:      asString(v[0]),
			Name:      asString(v[1]),
			TableName: asString(v[2]),
			RootPage:  asInt64(v[3]),
			SQL:       asString(v[4]),
		}
		entries = append(entries, entry)
		tree.Insert(entry.Name, entry)
	}

	return &SchemaIndex{entries: entries, byName: tree}, nil
}

// Lookup resolves a schema entry by exact name.
func (s *SchemaIndex) Lookup(name string) (SchemaEntry, bool) {
	v, ok := s.byName.Get(name)
	if !ok {
		return SchemaEntry{}, false
	}
	return v.(SchemaEntry), true
}

// LookupPrefix resolves a schema entry by a prefix of its name, for
// callers that only know a table name abbreviation (e.g. a CLI user
// typing a partial table name). An exact name match wins; otherwise the
// lookup succeeds only when exactly one name starts with prefix.
func (s *SchemaIndex) LookupPrefix(prefix string) (SchemaEntry, bool) {
	if v, ok := s.byName.Get(prefix); ok {
		return v.(SchemaEntry), true
	}
	var found SchemaEntry
	matches := 0
	s.byName.WalkPrefix(prefix, func(_ string, v interface{}) bool {
		found = v.(SchemaEntry)
		matches++
		return matches > 1
	})
	if matches != 1 {
		return SchemaEntry{}, false
	}
	return found, true
}

// Entries returns every decoded sqlite_master row in on-disk order.
func (s *SchemaIndex) Entries() []SchemaEntry {
	return s.entries
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asInt64(v interface{}) int64 {
	i, _ := v.(int64)
	return i
}

// Package pager provides the external collaborator the page codec reads
// and writes through: something that maps a 1-based page number to a
// fixed-size byte buffer. Nothing in package page touches a file or a
// map directly; it only ever sees buffers this package hands it.
package pager

import "fmt"

// Pager is the minimal collaborator contract the codec depends on: read a
// whole page, write a whole page. Page numbers are 1-based, matching
// SQLite's own convention (page 1 carries the 100-byte database header as
// its first bytes).
type Pager interface {
	PageSize() int
	ReadPage(pageNo uint32) ([]byte, error)
	WritePage(pageNo uint32, data []byte) error
}

func pageOutOfRange(pageNo uint32) error {
	return fmt.Errorf("page %d out of range", pageNo)
}

func wrongPageSize(got, want int) error {
	return fmt.Errorf("page buffer is %d bytes, want %d", got, want)
}

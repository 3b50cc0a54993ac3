package pager

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// FilePager is a file-backed Pager. Page numbers are 1-based; page 1's
// on-disk offset is 0 and its buffer includes the 100-byte database
// header as a prefix (pageOffset: 0 for page 1, (n-1)*pageSize otherwise).
type FilePager struct {
	mu       sync.RWMutex
	path     string
	pageSize int
	file     *os.File
}

// OpenFilePager opens (creating if necessary) a file-backed pager.
func OpenFilePager(path string, pageSize int) (*FilePager, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	return &FilePager{path: path, pageSize: pageSize, file: f}, nil
}

func (f *FilePager) PageSize() int {
	return f.pageSize
}

func (f *FilePager) pageOffset(pageNo uint32) int64 {
	if pageNo == 1 {
		return 0
	}
	return int64(pageNo-1) * int64(f.pageSize)
}

func (f *FilePager) ReadPage(pageNo uint32) ([]byte, error) {
	if pageNo < 1 {
		return nil, pageOutOfRange(pageNo)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	buf := make([]byte, f.pageSize)
	if _, err := f.file.ReadAt(buf, f.pageOffset(pageNo)); err != nil {
		return nil, err
	}
	return buf, nil
}

func (f *FilePager) WritePage(pageNo uint32, data []byte) error {
	if len(data) != f.pageSize {
		return wrongPageSize(len(data), f.pageSize)
	}
	if pageNo < 1 {
		return pageOutOfRange(pageNo)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.file.WriteAt(data, f.pageOffset(pageNo)); err != nil {
		return err
	}
	return f.file.Sync()
}

// Close releases the underlying file handle.
func (f *FilePager) Close() error {
	return f.file.Close()
}

// WriteAll atomically rewrites the entire database file from a full set of
// page buffers (pages[i] is page number i+1). It writes to a sibling
// temp file named with a random uuid suffix, fsyncs it, then renames it
// over the original path so a caller can rewrite every page of a database
// in one atomic step.
func (f *FilePager) WriteAll(pages [][]byte) error {
	dir := filepath.Dir(f.path)
	tmpPath := filepath.Join(dir, "."+filepath.Base(f.path)+"."+uuid.New().String()+".tmp")

	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	for i, data := range pages {
		if len(data) != f.pageSize {
			tmp.Close()
			os.Remove(tmpPath)
			return wrongPageSize(len(data), f.pageSize)
		}
		offset := int64(0)
		if i > 0 {
			offset = int64(i) * int64(f.pageSize)
		}
		if _, err := tmp.WriteAt(data, offset); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return err
		}
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.file.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return err
	}

	newFile, err := os.OpenFile(f.path, os.O_RDWR, 0o644)
	if err != nil {
		return err
	}
	f.file = newFile
	return nil
}

package pager

import "sync"

// MemoryPager is an in-memory Pager backed by a page-number-keyed map,
// used for tests and for embedding the codec without touching disk.
type MemoryPager struct {
	mu       sync.RWMutex
	pageSize int
	pages    map[uint32][]byte
}

func NewMemoryPager(pageSize int) *MemoryPager {
	return &MemoryPager{
		pageSize: pageSize,
		pages:    make(map[uint32][]byte),
	}
}

func (m *MemoryPager) PageSize() int {
	return m.pageSize
}

func (m *MemoryPager) ReadPage(pageNo uint32) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if pageNo < 1 {
		return nil, pageOutOfRange(pageNo)
	}
	data, ok := m.pages[pageNo]
	if !ok {
		return nil, pageOutOfRange(pageNo)
	}
	out := make([]byte, m.pageSize)
	copy(out, data)
	return out, nil
}

func (m *MemoryPager) WritePage(pageNo uint32, data []byte) error {
	if len(data) != m.pageSize {
		return wrongPageSize(len(data), m.pageSize)
	}
	if pageNo < 1 {
		return pageOutOfRange(pageNo)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, m.pageSize)
	copy(stored, data)
	m.pages[pageNo] = stored
	return nil
}

// TotalPages reports how many distinct pages have been written, grounded
// on MemoryFile.TotalPages.
func (m *MemoryPager) TotalPages() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pages)
}

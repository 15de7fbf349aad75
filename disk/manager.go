package disk

import (
	"fmt"
	"io"
	"os"
)

// Manager owns the heap file exclusively and performs bit-exact 4 KiB page
// I/O. It does not cache anything and does not validate page contents —
// that is the buffer pool's and the btree's job respectively.
type Manager struct {
	heapFile   *os.File
	nextPageID PageID
}

// Open opens (or creates) a heap file for read+write. The file's length
// determines the next page id as len/PageSize, integer division, ignoring
// any trailing partial page.
func Open(path string) (*Manager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("disk: open heap file: %w", err)
	}
	return newManager(f)
}

func newManager(f *os.File) (*Manager, error) {
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("disk: stat heap file: %w", err)
	}
	return &Manager{
		heapFile:   f,
		nextPageID: PageID(uint64(info.Size()) / PageSize),
	}, nil
}

// AllocatePage returns the current next-page-id and advances the counter.
// The page is not physically written until a subsequent WritePageData.
func (m *Manager) AllocatePage() PageID {
	id := m.nextPageID
	m.nextPageID++
	return id
}

// ReadPageData reads exactly PageSize bytes for id into dst. It fails if
// the page has never been written (the file is shorter than required).
func (m *Manager) ReadPageData(id PageID, dst []byte) error {
	if len(dst) != PageSize {
		panic(fmt.Sprintf("disk: ReadPageData dst must be %d bytes, got %d", PageSize, len(dst)))
	}
	off := int64(id) * PageSize
	n, err := m.heapFile.ReadAt(dst, off)
	if err != nil {
		return fmt.Errorf("disk: read page %d: %w", id, err)
	}
	if n != PageSize {
		return fmt.Errorf("disk: read page %d: short read (%d bytes): %w", id, n, io.ErrUnexpectedEOF)
	}
	return nil
}

// WritePageData writes exactly PageSize bytes from src at id's offset.
func (m *Manager) WritePageData(id PageID, src []byte) error {
	if len(src) != PageSize {
		panic(fmt.Sprintf("disk: WritePageData src must be %d bytes, got %d", PageSize, len(src)))
	}
	off := int64(id) * PageSize
	if _, err := m.heapFile.WriteAt(src, off); err != nil {
		return fmt.Errorf("disk: write page %d: %w", id, err)
	}
	return nil
}

// Sync flushes the heap file to stable storage.
func (m *Manager) Sync() error {
	if err := syncFile(m.heapFile); err != nil {
		return fmt.Errorf("disk: sync: %w", err)
	}
	return nil
}

// Close releases the underlying file handle.
func (m *Manager) Close() error {
	return m.heapFile.Close()
}

package buffer

import (
	"fmt"
	"log"

	"github.com/lightsql/lightsql/disk"
)

// Manager is the buffer pool manager: it mediates every page read and write
// through a fixed pool of frames, fetching from and writing back to the
// disk manager as the eviction policy demands.
//
// There is no explicit pin call distinct from Fetch/Create — every
// successful FetchPage or CreatePage call pins the returned buffer's frame;
// callers must call UnpinPage once they are done observing it, exactly the way
// they would drop a reference-counted handle. Holding a buffer across
// another FetchPage/CreatePage call when the pool is near capacity risks
// ErrNoFreeBuffer.
type Manager struct {
	disk      *disk.Manager
	pool      Pool
	pageTable map[disk.PageID]int // page id -> frame index
}

// NewManager builds a buffer pool manager over disk, using pool as its
// eviction policy.
func NewManager(disk *disk.Manager, pool Pool) *Manager {
	return &Manager{
		disk:      disk,
		pool:      pool,
		pageTable: make(map[disk.PageID]int, pool.Size()),
	}
}

// FetchPage returns the buffer holding id, pinning its frame. If id is
// already cached, its usage count is bumped and the cached buffer is
// returned directly. Otherwise a frame is evicted (writing back its
// contents first if dirty) and id is read from disk into it.
func (m *Manager) FetchPage(id disk.PageID) (*Buffer, error) {
	if frameID, ok := m.pageTable[id]; ok {
		f := m.pool.FrameAt(frameID)
		f.usageCount++
		f.pin()
		return f.buf, nil
	}

	frameID, ok := m.pool.Evict()
	if !ok {
		log.Printf("buffer: fetch page %d: no unpinned frame to evict", id)
		return nil, ErrNoFreeBuffer
	}
	f := m.pool.FrameAt(frameID)
	evictedID := f.buf.pageID
	if f.buf.dirty {
		if err := m.disk.WritePageData(evictedID, f.buf.bytes[:]); err != nil {
			return nil, fmt.Errorf("buffer: write back evicted page %d: %w", evictedID, err)
		}
	}

	f.buf.pageID = id
	f.buf.dirty = false
	if err := m.disk.ReadPageData(id, f.buf.bytes[:]); err != nil {
		return nil, fmt.Errorf("buffer: read page %d: %w", id, err)
	}
	f.usageCount = 1
	f.pin()

	delete(m.pageTable, evictedID)
	m.pageTable[id] = frameID
	return f.buf, nil
}

// CreatePage evicts a frame, allocates a fresh page id from the disk
// manager, and returns a pinned, zeroed buffer for it. The page is not
// physically written to the heap file until it is later flushed or written
// back on eviction.
func (m *Manager) CreatePage() (*Buffer, error) {
	frameID, ok := m.pool.Evict()
	if !ok {
		log.Printf("buffer: create page: no unpinned frame to evict")
		return nil, ErrNoFreeBuffer
	}
	f := m.pool.FrameAt(frameID)
	evictedID := f.buf.pageID
	if f.buf.dirty {
		if err := m.disk.WritePageData(evictedID, f.buf.bytes[:]); err != nil {
			return nil, fmt.Errorf("buffer: write back evicted page %d: %w", evictedID, err)
		}
	}

	id := m.disk.AllocatePage()
	f.buf = &Buffer{pageID: id, dirty: true}
	f.usageCount = 1
	f.pinCount = 0
	f.pin()

	delete(m.pageTable, evictedID)
	m.pageTable[id] = frameID
	return f.buf, nil
}

// UnpinPage releases one external reference to id's buffer. It must be
// called exactly once for every successful FetchPage/CreatePage call.
func (m *Manager) UnpinPage(id disk.PageID) {
	if frameID, ok := m.pageTable[id]; ok {
		m.pool.FrameAt(frameID).unpin()
	}
}

// Flush writes every cached page back to disk and fsyncs the heap file.
// It is the only point at which modifications are guaranteed durable.
func (m *Manager) Flush() error {
	for id, frameID := range m.pageTable {
		f := m.pool.FrameAt(frameID)
		if err := m.disk.WritePageData(id, f.buf.bytes[:]); err != nil {
			return fmt.Errorf("buffer: flush page %d: %w", id, err)
		}
		f.buf.dirty = false
	}
	if err := m.disk.Sync(); err != nil {
		return err
	}
	return nil
}

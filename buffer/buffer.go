// Package buffer implements the buffer pool: the in-memory page cache that
// sits between the disk manager and everything that reads or writes pages
// (slotted pages, btree nodes, ...). It mediates every page access so that
// dirty pages are written back before eviction and so that frames currently
// referenced by a caller are never reused out from under them.
package buffer

import "github.com/lightsql/lightsql/disk"

// Buffer is the in-memory copy of one page. Its bytes may be mutated while
// its page id is observed elsewhere — the exclusivity that makes that safe
// comes from the engine's single-threaded execution model, not from any
// lock here.
type Buffer struct {
	pageID disk.PageID
	bytes  [disk.PageSize]byte
	dirty  bool
}

// PageID returns the page this buffer currently holds.
func (b *Buffer) PageID() disk.PageID { return b.pageID }

// Bytes returns the mutable page contents. Writing through this slice and
// then setting MarkDirty is how callers modify a page's on-disk image.
func (b *Buffer) Bytes() []byte { return b.bytes[:] }

// Dirty reports whether the buffer has unflushed modifications.
func (b *Buffer) Dirty() bool { return b.dirty }

// MarkDirty flags the buffer as needing write-back before its frame can be
// reused for a different page.
func (b *Buffer) MarkDirty() { b.dirty = true }

// Frame is one slot in the buffer pool.
type Frame struct {
	usageCount int
	pinCount   int
	buf        *Buffer
}

func newFrame() *Frame {
	return &Frame{buf: &Buffer{pageID: disk.InvalidPageID}}
}

// Buffer returns the frame's current buffer.
func (f *Frame) Buffer() *Buffer { return f.buf }

// Pinned reports whether any external holder currently references this
// frame's buffer — the condition that makes it ineligible for eviction.
func (f *Frame) Pinned() bool { return f.pinCount > 0 }

func (f *Frame) pin()   { f.pinCount++ }
func (f *Frame) unpin() { f.pinCount-- }

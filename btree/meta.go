package btree

import (
	"encoding/binary"

	"github.com/lightsql/lightsql/disk"
)

// Meta wraps a B+tree's first page: the single pointer to its root page.
// The remaining bytes of the page are unused.
type Meta struct {
	buf []byte
}

// WrapMeta views an already-formatted page buffer as a meta page.
func WrapMeta(buf []byte) *Meta { return &Meta{buf: buf} }

func (m *Meta) RootPageID() disk.PageID {
	return disk.PageID(binary.LittleEndian.Uint64(m.buf[0:8]))
}

func (m *Meta) SetRootPageID(id disk.PageID) {
	binary.LittleEndian.PutUint64(m.buf[0:8], uint64(id))
}

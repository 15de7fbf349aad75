package btree

import (
	"bytes"
	"encoding/binary"

	"github.com/lightsql/lightsql/disk"
	"github.com/lightsql/lightsql/slotted"
)

const (
	leafKindOff    = 0
	leafPrevOff    = 8
	leafNextOff    = 16
	leafHeaderSize = 24
)

// Leaf wraps a page buffer as a B+tree leaf node: a key-ordered slotted
// body of {key, value} pairs, chained to its siblings by page id so a
// range scan can cross page boundaries without revisiting the tree.
type Leaf struct {
	buf  []byte
	body *slotted.Body
}

// WrapLeaf views an already-formatted page buffer as a leaf.
func WrapLeaf(buf []byte) *Leaf {
	return &Leaf{buf: buf, body: slotted.Wrap(buf[leafHeaderSize:])}
}

// InitLeaf formats buf as a fresh, empty leaf with no siblings.
func InitLeaf(buf []byte) *Leaf {
	buf[leafKindOff] = kindLeaf
	l := &Leaf{buf: buf, body: slotted.Init(buf[leafHeaderSize:])}
	l.SetPrevPageID(disk.InvalidPageID)
	l.SetNextPageID(disk.InvalidPageID)
	return l
}

func (l *Leaf) PrevPageID() disk.PageID {
	return disk.PageID(binary.LittleEndian.Uint64(l.buf[leafPrevOff:]))
}

func (l *Leaf) NextPageID() disk.PageID {
	return disk.PageID(binary.LittleEndian.Uint64(l.buf[leafNextOff:]))
}

func (l *Leaf) SetPrevPageID(id disk.PageID) {
	binary.LittleEndian.PutUint64(l.buf[leafPrevOff:], uint64(id))
}

func (l *Leaf) SetNextPageID(id disk.PageID) {
	binary.LittleEndian.PutUint64(l.buf[leafNextOff:], uint64(id))
}

func (l *Leaf) PairCount() int { return l.body.SlotCount() }

func (l *Leaf) PairAt(slot int) Pair { return DecodePair(l.body.Record(slot)) }

// SearchSlot returns (slot, true) if key is present, or the sorted
// insertion index and false otherwise.
func (l *Leaf) SearchSlot(key []byte) (int, bool) {
	return bsearch(l.PairCount(), func(i int) int {
		return bytes.Compare(l.PairAt(i).Key, key)
	})
}

// MaxPairSize is the largest encoded pair guaranteed to fit: half the
// body's capacity, less one slot pointer, so a half-full split can always
// absorb it.
func (l *Leaf) MaxPairSize() int {
	return l.body.Capacity()/2 - slotted.PointerSize
}

// Insert places (key, value) at slot. The caller must have already located
// slot via SearchSlot and confirmed key is absent.
func (l *Leaf) Insert(slot int, key, value []byte) bool {
	p := Pair{Key: key, Value: value}
	dst, ok := l.body.Insert(slot, p.EncodedSize())
	if !ok {
		return false
	}
	p.Encode(dst)
	return true
}

func (l *Leaf) isHalfFull() bool {
	return 2*l.body.FreeSpace() < l.body.Capacity()
}

// Transfer moves this leaf's lowest-keyed pair onto the end of dest.
func (l *Leaf) Transfer(dest *Leaf) {
	src := l.body.Record(0)
	dst, ok := dest.body.Insert(dest.PairCount(), len(src))
	if !ok {
		panic("btree: no space in destination leaf during transfer")
	}
	copy(dst, src)
	l.body.Remove(0)
}

// SplitInsert formats newLeaf as fresh and distributes l's pairs plus the
// new (key, value) pair across l and newLeaf until newLeaf is at least half
// full, then inserts the new pair into l if it has not already gone to
// newLeaf. newLeaf
// ends up holding l's smallest keys; l keeps its largest keys (and its page
// id). It returns l's new smallest key, the separator to promote to the
// parent. The caller is responsible for fixing up sibling links.
func (l *Leaf) SplitInsert(newLeaf *Leaf, key, value []byte) []byte {
	*newLeaf = *InitLeaf(newLeaf.buf)
	for {
		if newLeaf.isHalfFull() {
			slot, found := l.SearchSlot(key)
			if found {
				panic("btree: duplicate key during split")
			}
			if !l.Insert(slot, key, value) {
				panic("btree: old leaf has no space after split")
			}
			break
		}
		if bytes.Compare(l.PairAt(0).Key, key) < 0 {
			l.Transfer(newLeaf)
		} else {
			if !newLeaf.Insert(newLeaf.PairCount(), key, value) {
				panic("btree: new leaf has no space during split")
			}
			for !newLeaf.isHalfFull() {
				l.Transfer(newLeaf)
			}
			break
		}
	}
	return append([]byte(nil), l.PairAt(0).Key...)
}

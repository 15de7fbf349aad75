package btree

import (
	"bytes"
	"encoding/binary"

	"github.com/lightsql/lightsql/disk"
	"github.com/lightsql/lightsql/slotted"
)

const (
	branchKindOff    = 0
	branchRightOff   = 8
	branchHeaderSize = 16
)

// Branch wraps a page buffer as a B+tree branch (interior) node: a slotted
// body of {separator_key, child_page_id} pairs plus a right_child page id
// in the header, for the subtree holding everything at or beyond the last
// separator.
type Branch struct {
	buf  []byte
	body *slotted.Body
}

// WrapBranch views an already-formatted page buffer as a branch.
func WrapBranch(buf []byte) *Branch {
	return &Branch{buf: buf, body: slotted.Wrap(buf[branchHeaderSize:])}
}

// InitBranch formats buf as a fresh branch with a single separator pair
// and the given right child.
func InitBranch(buf []byte, key []byte, leftChild, rightChild disk.PageID) *Branch {
	buf[branchKindOff] = kindBranch
	b := &Branch{buf: buf, body: slotted.Init(buf[branchHeaderSize:])}
	if !b.Insert(0, key, leftChild) {
		panic("btree: new branch must have space")
	}
	b.SetRightChild(rightChild)
	return b
}

// resetEmptyBranch formats buf as a branch with no pairs and an unset right
// child, used as the starting point for SplitInsert: the transfer loop fills
// its pairs, and FillRightChild then establishes the right child.
func resetEmptyBranch(buf []byte) *Branch {
	buf[branchKindOff] = kindBranch
	return &Branch{buf: buf, body: slotted.Init(buf[branchHeaderSize:])}
}

func (b *Branch) RightChild() disk.PageID {
	return disk.PageID(binary.LittleEndian.Uint64(b.buf[branchRightOff:]))
}

func (b *Branch) SetRightChild(id disk.PageID) {
	binary.LittleEndian.PutUint64(b.buf[branchRightOff:], uint64(id))
}

func (b *Branch) PairCount() int { return b.body.SlotCount() }

func (b *Branch) PairAt(slot int) Pair { return DecodePair(b.body.Record(slot)) }

func (b *Branch) SearchSlot(key []byte) (int, bool) {
	return bsearch(b.PairCount(), func(i int) int {
		return bytes.Compare(b.PairAt(i).Key, key)
	})
}

// SearchChildIdx returns the index of the child subtree that would contain
// key: slot+1 on an exact separator match, else the sorted insertion point.
func (b *Branch) SearchChildIdx(key []byte) int {
	slot, found := b.SearchSlot(key)
	if found {
		return slot + 1
	}
	return slot
}

// ChildAt returns the page id of the child at idx, in [0, PairCount()].
// idx == PairCount() names the right child.
func (b *Branch) ChildAt(idx int) disk.PageID {
	if idx == b.PairCount() {
		return b.RightChild()
	}
	return disk.PageID(binary.LittleEndian.Uint64(b.PairAt(idx).Value))
}

// MaxPairSize is the largest encoded pair guaranteed to fit: half the
// body's capacity, less one slot pointer.
func (b *Branch) MaxPairSize() int {
	return b.body.Capacity()/2 - slotted.PointerSize
}

// Insert places (key, childID) at slot.
func (b *Branch) Insert(slot int, key []byte, childID disk.PageID) bool {
	value := make([]byte, 8)
	binary.LittleEndian.PutUint64(value, uint64(childID))
	p := Pair{Key: key, Value: value}
	dst, ok := b.body.Insert(slot, p.EncodedSize())
	if !ok {
		return false
	}
	p.Encode(dst)
	return true
}

func (b *Branch) isHalfFull() bool {
	return 2*b.body.FreeSpace() < b.body.Capacity()
}

// FillRightChild removes the branch's last pair, making its child the new
// right child, and returns the removed key. This is how a freshly
// distributed branch gets its right_child without duplicating a separator.
func (b *Branch) FillRightChild() []byte {
	last := b.PairCount() - 1
	pair := b.PairAt(last)
	key := append([]byte(nil), pair.Key...)
	rightChild := disk.PageID(binary.LittleEndian.Uint64(pair.Value))
	b.body.Remove(last)
	b.SetRightChild(rightChild)
	return key
}

// Transfer moves this branch's lowest-keyed pair onto the end of dest.
func (b *Branch) Transfer(dest *Branch) {
	src := b.body.Record(0)
	dst, ok := dest.body.Insert(dest.PairCount(), len(src))
	if !ok {
		panic("btree: no space in destination branch during transfer")
	}
	copy(dst, src)
	b.body.Remove(0)
}

// SplitInsert formats newBranch as fresh and distributes b's pairs plus the
// new (key, childID) pair across b and newBranch, mirroring Leaf's
// algorithm, then calls FillRightChild on newBranch so the promoted
// separator is not duplicated in either child.
func (b *Branch) SplitInsert(newBranch *Branch, key []byte, childID disk.PageID) []byte {
	*newBranch = *resetEmptyBranch(newBranch.buf)
	for {
		if newBranch.isHalfFull() {
			slot, found := b.SearchSlot(key)
			if found {
				panic("btree: duplicate key during split")
			}
			if !b.Insert(slot, key, childID) {
				panic("btree: old branch has no space after split")
			}
			break
		}
		if bytes.Compare(b.PairAt(0).Key, key) < 0 {
			b.Transfer(newBranch)
		} else {
			if !newBranch.Insert(newBranch.PairCount(), key, childID) {
				panic("btree: new branch has no space during split")
			}
			for !newBranch.isHalfFull() {
				b.Transfer(newBranch)
			}
			break
		}
	}
	return newBranch.FillRightChild()
}

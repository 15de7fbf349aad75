// Package slotted implements the slotted-page record container: a
// variable-length record layout inside a single fixed-size byte slice,
// addressed by a slot directory. It is used as the body of both btree leaf
// and branch pages.
package slotted

import "encoding/binary"

// PointerSize is the size, in bytes, of one slot directory entry. Callers
// sizing a "must always fit after a half-full split" record (btree leaf and
// branch pairs) need this to compute their own max pair size.
const PointerSize = 4
const pointerSize = PointerSize

// headerSize is SlotCount (u16) + FreeSpaceOffset (u16) + 4 padding bytes.
const headerSize = 8

// Pointer is one slot directory entry: the record's byte range is
// [Offset, Offset+Length) within the body.
type Pointer struct {
	Offset uint16
	Length uint16
}

func (p Pointer) rangeEnd() uint16 { return p.Offset + p.Length }

// Body wraps a byte slice as a slotted page body. It does not own the
// slice; all mutation happens through the wrapped bytes, matching the
// zero-copy, just-in-time style of the original page layouts.
type Body struct {
	buf []byte
}

// Wrap returns a slotted Body view over an already-initialized buffer.
func Wrap(buf []byte) *Body {
	return &Body{buf: buf}
}

// Init formats buf as an empty slotted body: no slots, free space spanning
// the whole buffer.
func Init(buf []byte) *Body {
	b := &Body{buf: buf}
	b.setSlotCount(0)
	b.setFreeSpaceOffset(uint16(len(buf)))
	return b
}

func (b *Body) SlotCount() int {
	return int(binary.LittleEndian.Uint16(b.buf[0:2]))
}

func (b *Body) setSlotCount(n int) {
	binary.LittleEndian.PutUint16(b.buf[0:2], uint16(n))
}

func (b *Body) FreeSpaceOffset() int {
	return int(binary.LittleEndian.Uint16(b.buf[2:4]))
}

func (b *Body) setFreeSpaceOffset(off uint16) {
	binary.LittleEndian.PutUint16(b.buf[2:4], off)
}

func (b *Body) slotDirEnd() int {
	return headerSize + b.SlotCount()*pointerSize
}

// Capacity is the total size, in bytes, of the wrapped body (header +
// directory + heap together).
func (b *Body) Capacity() int {
	return len(b.buf)
}

// FreeSpace is the number of bytes available for a new record's data plus
// its slot directory entry.
func (b *Body) FreeSpace() int {
	return b.FreeSpaceOffset() - b.slotDirEnd()
}

func (b *Body) pointerAt(i int) Pointer {
	off := headerSize + i*pointerSize
	return Pointer{
		Offset: binary.LittleEndian.Uint16(b.buf[off : off+2]),
		Length: binary.LittleEndian.Uint16(b.buf[off+2 : off+4]),
	}
}

func (b *Body) setPointerAt(i int, p Pointer) {
	off := headerSize + i*pointerSize
	binary.LittleEndian.PutUint16(b.buf[off:off+2], p.Offset)
	binary.LittleEndian.PutUint16(b.buf[off+2:off+4], p.Length)
}

// Record returns the byte slice stored at slot i. The returned slice aliases
// the wrapped buffer; callers must copy it before it can outlive further
// mutation of the body.
func (b *Body) Record(i int) []byte {
	p := b.pointerAt(i)
	return b.buf[p.Offset:p.rangeEnd()]
}

// Insert allocates len bytes for a new record at slot index, shifting
// [index, SlotCount) one slot to the right, and returns the byte range the
// caller must fill. It reports ok=false if there is not enough free space
// for the pointer entry plus the record.
func (b *Body) Insert(index int, length int) (dst []byte, ok bool) {
	if b.FreeSpace() < pointerSize+length {
		return nil, false
	}
	originalSlotCount := b.SlotCount()
	newFreeOff := b.FreeSpaceOffset() - length
	b.setFreeSpaceOffset(uint16(newFreeOff))
	b.setSlotCount(originalSlotCount + 1)

	for i := originalSlotCount; i > index; i-- {
		b.setPointerAt(i, b.pointerAt(i-1))
	}
	p := Pointer{Offset: uint16(newFreeOff), Length: uint16(length)}
	b.setPointerAt(index, p)
	return b.buf[p.Offset:p.rangeEnd()], true
}

// Remove deletes the record at slot index, compacting the heap and shifting
// the slot directory left.
func (b *Body) Remove(index int) {
	b.Resize(index, 0)
	sc := b.SlotCount()
	for i := index + 1; i < sc; i++ {
		b.setPointerAt(i-1, b.pointerAt(i))
	}
	b.setSlotCount(sc - 1)
}

// Resize grows or shrinks the record at slot index in place, sliding the
// rest of the record heap to absorb the delta. It reports ok=false if
// growing would not fit in the remaining free space.
func (b *Body) Resize(index int, newLen int) (ok bool) {
	p := b.pointerAt(index)
	delta := newLen - int(p.Length)
	if delta == 0 {
		return true
	}
	if delta > b.FreeSpace() {
		return false
	}
	freeOff := b.FreeSpaceOffset()
	originalOffset := p.Offset
	newFreeOff := freeOff - delta
	// Slide every occupied byte below the resized record's old start up (or
	// down) by delta, so the heap stays contiguous.
	copy(b.buf[newFreeOff:newFreeOff+(int(originalOffset)-freeOff)], b.buf[freeOff:originalOffset])
	b.setFreeSpaceOffset(uint16(newFreeOff))

	sc := b.SlotCount()
	for i := 0; i < sc; i++ {
		q := b.pointerAt(i)
		if q.Offset <= originalOffset {
			q.Offset = uint16(int(q.Offset) - delta)
			b.setPointerAt(i, q)
		}
	}
	p = b.pointerAt(index)
	p.Length = uint16(newLen)
	if newLen == 0 {
		p.Offset = uint16(newFreeOff)
	}
	b.setPointerAt(index, p)
	return true
}

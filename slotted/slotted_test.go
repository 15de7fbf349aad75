package slotted

import (
	"bytes"
	"testing"
)

func newBody(t *testing.T, size int) *Body {
	t.Helper()
	return Init(make([]byte, size))
}

func TestInit_EmptyBody(t *testing.T) {
	b := newBody(t, 256)
	if b.SlotCount() != 0 {
		t.Fatalf("SlotCount = %d, want 0", b.SlotCount())
	}
	if b.FreeSpaceOffset() != 256 {
		t.Fatalf("FreeSpaceOffset = %d, want 256", b.FreeSpaceOffset())
	}
	if b.FreeSpace() != 256-headerSize {
		t.Fatalf("FreeSpace = %d, want %d", b.FreeSpace(), 256-headerSize)
	}
}

func TestInsert_StoresAndRoundTripsData(t *testing.T) {
	b := newBody(t, 256)
	dst, ok := b.Insert(0, 5)
	if !ok {
		t.Fatal("Insert returned ok=false")
	}
	copy(dst, "hello")
	if !bytes.Equal(b.Record(0), []byte("hello")) {
		t.Fatalf("Record(0) = %q, want %q", b.Record(0), "hello")
	}
	if b.SlotCount() != 1 {
		t.Fatalf("SlotCount = %d, want 1", b.SlotCount())
	}
}

func TestInsert_AtIndexShiftsLaterSlots(t *testing.T) {
	b := newBody(t, 256)
	put := func(i int, s string) {
		dst, ok := b.Insert(i, len(s))
		if !ok {
			t.Fatalf("Insert(%d) failed", i)
		}
		copy(dst, s)
	}
	put(0, "b")
	put(1, "d")
	put(1, "c") // shift "d" to index 2

	if got := string(b.Record(0)); got != "b" {
		t.Fatalf("Record(0) = %q, want b", got)
	}
	if got := string(b.Record(1)); got != "c" {
		t.Fatalf("Record(1) = %q, want c", got)
	}
	if got := string(b.Record(2)); got != "d" {
		t.Fatalf("Record(2) = %q, want d", got)
	}
}

func TestInsert_FailsWhenFull(t *testing.T) {
	b := newBody(t, 16) // header(8) + just enough for one tiny record
	if _, ok := b.Insert(0, 4); !ok {
		t.Fatal("expected first small insert to succeed")
	}
	if _, ok := b.Insert(1, 100); ok {
		t.Fatal("expected oversized insert to fail")
	}
}

func TestRemove_CompactsAndShrinksDirectory(t *testing.T) {
	b := newBody(t, 256)
	for _, s := range []string{"a", "b", "c"} {
		dst, _ := b.Insert(b.SlotCount(), len(s))
		copy(dst, s)
	}
	freeBefore := b.FreeSpace()
	b.Remove(1) // remove "b"

	if b.SlotCount() != 2 {
		t.Fatalf("SlotCount after remove = %d, want 2", b.SlotCount())
	}
	if string(b.Record(0)) != "a" || string(b.Record(1)) != "c" {
		t.Fatalf("records after remove = %q, %q, want a, c", b.Record(0), b.Record(1))
	}
	if b.FreeSpace() <= freeBefore {
		t.Fatalf("FreeSpace did not grow after remove: before=%d after=%d", freeBefore, b.FreeSpace())
	}
}

func TestResize_GrowInPlacePreservesOtherRecords(t *testing.T) {
	b := newBody(t, 256)
	dstA, _ := b.Insert(0, 3)
	copy(dstA, "aaa")
	dstB, _ := b.Insert(1, 3)
	copy(dstB, "bbb")

	if !b.Resize(1, 6) {
		t.Fatal("Resize(grow) failed")
	}
	copy(b.Record(1), "bbbbbb")

	if string(b.Record(0)) != "aaa" {
		t.Fatalf("Record(0) = %q after resizing Record(1), want aaa", b.Record(0))
	}
	if string(b.Record(1)) != "bbbbbb" {
		t.Fatalf("Record(1) = %q, want bbbbbb", b.Record(1))
	}
}

func TestResize_ShrinkToZeroUsesFreeSpaceOffsetAsPointer(t *testing.T) {
	b := newBody(t, 256)
	dst, _ := b.Insert(0, 4)
	copy(dst, "data")

	if !b.Resize(0, 0) {
		t.Fatal("Resize(shrink to 0) failed")
	}
	p := b.pointerAt(0)
	if p.Length != 0 {
		t.Fatalf("Length after shrink to 0 = %d, want 0", p.Length)
	}
	if int(p.Offset) != b.FreeSpaceOffset() {
		t.Fatalf("Offset after shrink to 0 = %d, want FreeSpaceOffset %d", p.Offset, b.FreeSpaceOffset())
	}
}

func TestSlottedInvariant_PointersDisjointAfterMixedOps(t *testing.T) {
	b := newBody(t, 512)
	var contents []string
	insertAt := func(i int, s string) {
		dst, ok := b.Insert(i, len(s))
		if !ok {
			t.Fatalf("Insert(%d, %q) failed", i, s)
		}
		copy(dst, s)
		contents = append(contents[:i], append([]string{s}, contents[i:]...)...)
	}
	insertAt(0, "aaaa")
	insertAt(1, "bb")
	insertAt(2, "cccccc")
	insertAt(1, "z")
	b.Resize(3, 10)
	copy(b.Record(3), "ccccccNEW!")
	contents[3] = "ccccccNEW!"
	b.Remove(0)
	contents = contents[1:]

	if b.slotDirEnd() > b.FreeSpaceOffset() {
		t.Fatalf("slot directory (%d) overlaps record heap (%d)", b.slotDirEnd(), b.FreeSpaceOffset())
	}
	for i := range contents {
		if got := string(b.Record(i)); got != contents[i] {
			t.Fatalf("Record(%d) = %q, want %q", i, got, contents[i])
		}
	}
	// No two records' ranges may overlap.
	type rng struct{ start, end int }
	var ranges []rng
	for i := 0; i < b.SlotCount(); i++ {
		p := b.pointerAt(i)
		if p.Length == 0 {
			continue
		}
		ranges = append(ranges, rng{int(p.Offset), int(p.Offset) + int(p.Length)})
	}
	for i := range ranges {
		for j := range ranges {
			if i == j {
				continue
			}
			if ranges[i].start < ranges[j].end && ranges[j].start < ranges[i].end {
				t.Fatalf("ranges %v and %v overlap", ranges[i], ranges[j])
			}
		}
	}
}

package buffer

import (
	"path/filepath"
	"testing"

	"github.com/lightsql/lightsql/disk"
)

func newManager(t *testing.T, poolSize int) (*Manager, *disk.Manager) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "heap.db")
	dm, err := disk.Open(path)
	if err != nil {
		t.Fatalf("disk.Open: %v", err)
	}
	t.Cleanup(func() { dm.Close() })
	return NewManager(dm, NewClockSweepPool(poolSize)), dm
}

func TestCreatePage_ReturnsPinnedZeroedBuffer(t *testing.T) {
	m, _ := newManager(t, 2)
	buf, err := m.CreatePage()
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	for i, b := range buf.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d = %d, want 0", i, b)
		}
	}
	if !buf.Dirty() {
		t.Fatal("fresh page should be dirty")
	}
}

func TestFetchPage_SamePageReturnsSameBuffer(t *testing.T) {
	m, _ := newManager(t, 2)
	buf, err := m.CreatePage()
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	id := buf.PageID()
	copy(buf.Bytes(), "hello")
	m.UnpinPage(id)

	got, err := m.FetchPage(id)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if got != buf {
		t.Fatal("FetchPage returned a different buffer for a cached page")
	}
	m.UnpinPage(id)
}

func TestFlush_PersistsAcrossFetch(t *testing.T) {
	m, _ := newManager(t, 2)
	buf, err := m.CreatePage()
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	id := buf.PageID()
	copy(buf.Bytes(), "persisted")
	m.UnpinPage(id)

	if err := m.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	// Evict it by cycling the small pool through other pages.
	for i := 0; i < 4; i++ {
		b, err := m.CreatePage()
		if err != nil {
			t.Fatalf("CreatePage cycle %d: %v", i, err)
		}
		m.UnpinPage(b.PageID())
	}

	got, err := m.FetchPage(id)
	if err != nil {
		t.Fatalf("FetchPage after eviction: %v", err)
	}
	if string(got.Bytes()[:9]) != "persisted" {
		t.Fatalf("Bytes = %q, want prefix %q", got.Bytes()[:9], "persisted")
	}
	m.UnpinPage(id)
}

func TestCreatePage_AllPinnedReturnsErrNoFreeBuffer(t *testing.T) {
	m, _ := newManager(t, 1)
	buf, err := m.CreatePage()
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	_ = buf // stays pinned, never unpinned

	if _, err := m.CreatePage(); err != ErrNoFreeBuffer {
		t.Fatalf("CreatePage with full pinned pool: err = %v, want %v", err, ErrNoFreeBuffer)
	}
}

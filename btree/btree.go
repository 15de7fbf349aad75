package btree

import (
	"fmt"

	"github.com/lightsql/lightsql/buffer"
	"github.com/lightsql/lightsql/disk"
)

// BTree is a durable, ordered B+tree index identified by the id of its
// meta page. It carries no other state: every operation re-reads the meta
// page, so a BTree value can be freely copied and reused across calls.
type BTree struct {
	MetaPageID disk.PageID
}

// Create allocates a fresh meta page and an initial empty leaf root, wires
// the meta page to it, and returns a handle to the new tree.
func Create(bufmgr *buffer.Manager) (*BTree, error) {
	metaBuf, err := bufmgr.CreatePage()
	if err != nil {
		return nil, fmt.Errorf("btree: create meta page: %w", err)
	}
	metaID := metaBuf.PageID()

	rootBuf, err := bufmgr.CreatePage()
	if err != nil {
		bufmgr.UnpinPage(metaID)
		return nil, fmt.Errorf("btree: create root leaf: %w", err)
	}
	InitLeaf(rootBuf.Bytes())
	rootBuf.MarkDirty()
	rootID := rootBuf.PageID()
	bufmgr.UnpinPage(rootID)

	WrapMeta(metaBuf.Bytes()).SetRootPageID(rootID)
	metaBuf.MarkDirty()
	bufmgr.UnpinPage(metaID)

	return &BTree{MetaPageID: metaID}, nil
}

// New wraps an existing tree by its meta page id. The caller is
// responsible for knowing that metaPageID actually holds a meta page.
func New(metaPageID disk.PageID) *BTree {
	return &BTree{MetaPageID: metaPageID}
}

// Search descends from the root to the leaf named by mode and returns an
// iterator positioned at the first matching pair.
func (t *BTree) Search(bufmgr *buffer.Manager, mode SearchMode) (*Iterator, error) {
	metaBuf, err := bufmgr.FetchPage(t.MetaPageID)
	if err != nil {
		return nil, err
	}
	pageID := WrapMeta(metaBuf.Bytes()).RootPageID()
	bufmgr.UnpinPage(t.MetaPageID)

	for {
		buf, err := bufmgr.FetchPage(pageID)
		if err != nil {
			return nil, err
		}
		switch pageKind(buf.Bytes()) {
		case kindLeaf:
			leaf := WrapLeaf(buf.Bytes())
			slot := 0
			if mode.fromKey {
				slot, _ = leaf.SearchSlot(mode.key)
			}
			bufmgr.UnpinPage(pageID)
			return &Iterator{bufmgr: bufmgr, pageID: pageID, slot: slot}, nil
		case kindBranch:
			branch := WrapBranch(buf.Bytes())
			childIdx := 0
			if mode.fromKey {
				childIdx = branch.SearchChildIdx(mode.key)
			}
			child := branch.ChildAt(childIdx)
			bufmgr.UnpinPage(pageID)
			pageID = child
		default:
			panic("btree: page has unrecognized kind byte")
		}
	}
}

// Insert adds (key, value) to the tree, descending from the root and
// pinning the full root-to-leaf path for the duration of the call (plus,
// transiently, one freshly allocated sibling page at each level that
// splits, and, when a leaf splits, the leaf's previous neighbour while its
// next pointer is relinked). It fails with ErrDuplicateKey, unchanged, if key is already
// present.
func (t *BTree) Insert(bufmgr *buffer.Manager, key, value []byte) error {
	metaBuf, err := bufmgr.FetchPage(t.MetaPageID)
	if err != nil {
		return err
	}
	meta := WrapMeta(metaBuf.Bytes())
	rootID := meta.RootPageID()

	promotedKey, newChildID, err := t.insertInto(bufmgr, rootID, key, value)
	if err != nil {
		bufmgr.UnpinPage(t.MetaPageID)
		return err
	}
	if newChildID.Valid() {
		newRootBuf, err := bufmgr.CreatePage()
		if err != nil {
			bufmgr.UnpinPage(t.MetaPageID)
			return fmt.Errorf("btree: allocate new root: %w", err)
		}
		// newChildID holds the smaller keys split off the old root, so it
		// becomes the left child; the old root, unchanged, keeps its id and
		// becomes the right child holding everything >= promotedKey.
		InitBranch(newRootBuf.Bytes(), promotedKey, newChildID, rootID)
		newRootBuf.MarkDirty()
		newRootID := newRootBuf.PageID()
		bufmgr.UnpinPage(newRootID)
		meta.SetRootPageID(newRootID)
		metaBuf.MarkDirty()
	}
	bufmgr.UnpinPage(t.MetaPageID)
	return nil
}

// insertInto recursively inserts (key, value) under pageID. If a split
// happened at or below pageID, it returns the separator key to promote and
// the page id of the new left sibling that must be linked into the parent
// alongside it; otherwise newChildID is disk.InvalidPageID.
func (t *BTree) insertInto(bufmgr *buffer.Manager, pageID disk.PageID, key, value []byte) ([]byte, disk.PageID, error) {
	buf, err := bufmgr.FetchPage(pageID)
	if err != nil {
		return nil, disk.InvalidPageID, err
	}
	defer bufmgr.UnpinPage(pageID)

	switch pageKind(buf.Bytes()) {
	case kindLeaf:
		leaf := WrapLeaf(buf.Bytes())
		slot, found := leaf.SearchSlot(key)
		if found {
			return nil, disk.InvalidPageID, ErrDuplicateKey
		}
		if pairSize := (Pair{Key: key, Value: value}).EncodedSize(); pairSize > leaf.MaxPairSize() {
			panic("btree: key/value pair exceeds the maximum a page can ever hold")
		}
		if leaf.Insert(slot, key, value) {
			buf.MarkDirty()
			return nil, disk.InvalidPageID, nil
		}

		newBuf, err := bufmgr.CreatePage()
		if err != nil {
			return nil, disk.InvalidPageID, fmt.Errorf("btree: allocate sibling leaf: %w", err)
		}
		newLeaf := WrapLeaf(newBuf.Bytes())
		promoted := leaf.SplitInsert(newLeaf, key, value)

		oldPrev := leaf.PrevPageID()
		newLeaf.SetPrevPageID(oldPrev)
		newLeaf.SetNextPageID(pageID)
		leaf.SetPrevPageID(newBuf.PageID())
		if oldPrev.Valid() {
			prevBuf, err := bufmgr.FetchPage(oldPrev)
			if err != nil {
				return nil, disk.InvalidPageID, err
			}
			WrapLeaf(prevBuf.Bytes()).SetNextPageID(newBuf.PageID())
			prevBuf.MarkDirty()
			bufmgr.UnpinPage(oldPrev)
		}
		buf.MarkDirty()
		newBuf.MarkDirty()
		newID := newBuf.PageID()
		bufmgr.UnpinPage(newID)
		return promoted, newID, nil

	case kindBranch:
		branch := WrapBranch(buf.Bytes())
		childIdx := branch.SearchChildIdx(key)
		childID := branch.ChildAt(childIdx)

		promoted, newChildID, err := t.insertInto(bufmgr, childID, key, value)
		if err != nil {
			return nil, disk.InvalidPageID, err
		}
		if !newChildID.Valid() {
			return nil, disk.InvalidPageID, nil
		}

		if branch.Insert(childIdx, promoted, newChildID) {
			buf.MarkDirty()
			return nil, disk.InvalidPageID, nil
		}

		newBranchBuf, err := bufmgr.CreatePage()
		if err != nil {
			return nil, disk.InvalidPageID, fmt.Errorf("btree: allocate sibling branch: %w", err)
		}
		newBranch := WrapBranch(newBranchBuf.Bytes())
		promotedUp := branch.SplitInsert(newBranch, promoted, newChildID)
		buf.MarkDirty()
		newBranchBuf.MarkDirty()
		newID := newBranchBuf.PageID()
		bufmgr.UnpinPage(newID)
		return promotedUp, newID, nil

	default:
		panic("btree: page has unrecognized kind byte")
	}
}

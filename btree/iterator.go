package btree

import (
	"github.com/lightsql/lightsql/buffer"
	"github.com/lightsql/lightsql/disk"
)

// Iterator yields (key, value) pairs in ascending key order, crossing leaf
// boundaries via next_page_id as it exhausts each leaf. It holds no pin
// between calls to Next — each call fetches and unpins its current page,
// matching the engine's no-held-references-across-calls discipline.
type Iterator struct {
	bufmgr *buffer.Manager
	pageID disk.PageID
	slot   int
}

// Next returns the next pair in order, or ok=false once the scan is
// exhausted. The returned slices are independent copies, safe to keep
// after the underlying page is reused.
func (it *Iterator) Next() (Pair, bool, error) {
	for it.pageID.Valid() {
		buf, err := it.bufmgr.FetchPage(it.pageID)
		if err != nil {
			return Pair{}, false, err
		}
		leaf := WrapLeaf(buf.Bytes())
		if it.slot >= leaf.PairCount() {
			next := leaf.NextPageID()
			it.bufmgr.UnpinPage(it.pageID)
			it.pageID = next
			it.slot = 0
			continue
		}
		pair := leaf.PairAt(it.slot)
		key := append([]byte(nil), pair.Key...)
		value := append([]byte(nil), pair.Value...)
		it.slot++
		it.bufmgr.UnpinPage(it.pageID)
		return Pair{Key: key, Value: value}, true, nil
	}
	return Pair{}, false, nil
}

package btree

// SearchMode selects where a Search begins: at the very first key, or at
// the first key greater than or equal to a given key.
type SearchMode struct {
	key     []byte
	fromKey bool
}

// Start begins at the leftmost leaf, slot 0.
func Start() SearchMode { return SearchMode{} }

// Key begins at the leaf that would contain k, at the slot where k matches
// or, if absent, at the insertion position — so the resulting iterator
// yields the first key >= k.
func Key(k []byte) SearchMode { return SearchMode{key: k, fromKey: true} }

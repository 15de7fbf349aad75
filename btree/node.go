package btree

// A page's first byte tags whether it holds a leaf or a branch, so the
// engine can decide how to interpret a page fetched only by id (the meta
// page only ever names a root, which starts as a leaf and is promoted to a
// branch the first time it splits).
const (
	kindLeaf   byte = 1
	kindBranch byte = 2
)

func pageKind(buf []byte) byte { return buf[0] }

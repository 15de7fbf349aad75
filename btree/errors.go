package btree

import "errors"

// ErrDuplicateKey is returned by Insert when the key is already present.
// The tree is left unchanged.
var ErrDuplicateKey = errors.New("btree: key already exists")

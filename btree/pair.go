// Package btree implements the durable B+tree index: leaf and branch nodes
// built on slotted pages, plus the engine that ties them to a meta page and
// the buffer pool.
package btree

import "encoding/binary"

// Pair is a key/value record stored in a leaf slot, or a key/child-page-id
// record stored in a branch slot (where Value is always the 8-byte little
// endian child page id).
type Pair struct {
	Key   []byte
	Value []byte
}

// EncodedSize is the number of bytes Encode needs for this pair.
func (p Pair) EncodedSize() int {
	return 4 + len(p.Key) + len(p.Value)
}

// Encode writes the pair's wire form into dst, which must be exactly
// EncodedSize() bytes: a 2-byte key length, a 2-byte value length, the key,
// then the value.
func (p Pair) Encode(dst []byte) {
	binary.LittleEndian.PutUint16(dst[0:2], uint16(len(p.Key)))
	binary.LittleEndian.PutUint16(dst[2:4], uint16(len(p.Value)))
	n := copy(dst[4:], p.Key)
	copy(dst[4+n:], p.Value)
}

// DecodePair reads a pair out of a slot's raw bytes. The returned slices
// alias src.
func DecodePair(src []byte) Pair {
	kl := int(binary.LittleEndian.Uint16(src[0:2]))
	vl := int(binary.LittleEndian.Uint16(src[2:4]))
	key := src[4 : 4+kl]
	value := src[4+kl : 4+kl+vl]
	return Pair{Key: key, Value: value}
}

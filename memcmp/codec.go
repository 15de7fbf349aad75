// Package memcmp implements an order-preserving, self-delimiting byte
// encoding: for any byte strings a and b, bytes.Compare(Encode(a), Encode(b))
// equals bytes.Compare(a, b), and the encoding of a is self-delimiting so a
// decoder never needs an external length.
package memcmp

// groupSize is the width of one encoded group, including its marker byte.
const groupSize = 8

// escape marks "more groups follow" when it appears as a group's last byte.
// Any value strictly less than escape, in that position, is the number of
// real source bytes in the final (possibly padded) group and terminates
// decoding.
const escape = groupSize

// EncodedSize returns the number of bytes Encode produces for an n-byte
// source string: ceil((n+1)/7) groups of 8 bytes each. An empty input still
// produces exactly one terminator group.
func EncodedSize(n int) int {
	return (n + (groupSize - 1)) / (groupSize - 1) * groupSize
}

// Encode appends the memcmp encoding of src to dst and returns the result.
//
// Full 7-byte groups are emitted with a trailing escape byte (8) even when
// len(src) is an exact multiple of 7 — the final, zero-length terminator
// group always follows, so EncodedSize(7) is 16 bytes, not 8.
func Encode(src []byte, dst []byte) []byte {
	for len(src) >= groupSize-1 {
		dst = append(dst, src[:groupSize-1]...)
		dst = append(dst, escape)
		src = src[groupSize-1:]
	}
	n := len(src)
	dst = append(dst, src...)
	for pad := groupSize - 1 - n; pad > 0; pad-- {
		dst = append(dst, 0)
	}
	dst = append(dst, byte(n))
	return dst
}

// Decode reads one memcmp-encoded field from the front of src, appends the
// decoded bytes to dst, and returns (newDst, rest) where rest is src with
// the consumed groups removed.
func Decode(src []byte, dst []byte) (decoded []byte, rest []byte) {
	for {
		marker := src[groupSize-1]
		n := int(marker)
		if n > groupSize-1 {
			n = groupSize - 1
		}
		dst = append(dst, src[:n]...)
		src = src[groupSize:]
		if marker < escape {
			return dst, src
		}
	}
}

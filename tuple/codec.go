// Package tuple concatenates a sequence of byte-string fields into one
// memcmp-comparable blob, and splits such a blob back into fields. It has no
// framing of its own: decoding relies entirely on the memcmp encoding's
// self-delimitation (see package memcmp).
package tuple

import "github.com/lightsql/lightsql/memcmp"

// Encode appends the memcmp encoding of each field, in order, to dst.
func Encode(fields [][]byte, dst []byte) []byte {
	for _, f := range fields {
		dst = memcmp.Encode(f, dst)
	}
	return dst
}

// Decode splits src into its memcmp-encoded fields, repeatedly decoding one
// field at a time until src is exhausted.
func Decode(src []byte) [][]byte {
	var fields [][]byte
	for len(src) > 0 {
		var field []byte
		field, src = memcmp.Decode(src, nil)
		fields = append(fields, field)
	}
	return fields
}

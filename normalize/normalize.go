// Package normalize provides an optional NFC key-normalization step: two
// byte-for-byte different UTF-8 strings that represent the same visible
// text (e.g. combining-character sequences) would otherwise memcmp-sort as
// unrelated keys. Callers that want composed-form-insensitive key
// ordering run their key fields through Bytes before handing them to the
// tuple/btree layers; nothing below this package calls it implicitly.
package normalize

import "golang.org/x/text/unicode/norm"

// Bytes returns src normalized to NFC (canonical composition). Non-UTF-8
// input is returned unchanged, since there is no meaningful normal form for
// it and memcmp ordering on raw bytes is still well-defined.
func Bytes(src []byte) []byte {
	return norm.NFC.Bytes(src)
}

// String is Bytes for a string key field.
func String(s string) string {
	return norm.NFC.String(s)
}

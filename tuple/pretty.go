package tuple

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Pretty formats a decoded tuple for the example drivers: fields that are
// valid UTF-8 print as plain text, everything else prints as a quoted Go
// byte-string literal. Mirrors tuple::Pretty in the original examples.
type Pretty [][]byte

func (p Pretty) String() string {
	var b strings.Builder
	for i, field := range p {
		if i > 0 {
			b.WriteByte('\t')
		}
		if utf8.Valid(field) {
			b.WriteString(string(field))
		} else {
			b.WriteString(strconv.Quote(string(field)))
		}
	}
	return b.String()
}

// Format implements fmt.Formatter so that fmt.Printf("%v", Pretty(...))
// reads the same as the debug print the examples use.
func (p Pretty) Format(f fmt.State, verb rune) {
	fmt.Fprint(f, p.String())
}

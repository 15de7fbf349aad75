package memcmp

import (
	"bytes"
	"math/rand"
	"sort"
	"testing"
)

func TestEncode_LiteralExamples(t *testing.T) {
	cases := []struct {
		name string
		src  []byte
		want []byte
	}{
		{"empty", []byte(""), []byte{0, 0, 0, 0, 0, 0, 0, 0}},
		{"abc", []byte("abc"), []byte{'a', 'b', 'c', 0, 0, 0, 0, 3}},
		{
			"abcdefg-exact-group",
			[]byte("abcdefg"),
			[]byte{'a', 'b', 'c', 'd', 'e', 'f', 'g', 8, 0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			"abcdefgh-one-extra",
			[]byte("abcdefgh"),
			[]byte{'a', 'b', 'c', 'd', 'e', 'f', 'g', 8, 'h', 0, 0, 0, 0, 0, 0, 1},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Encode(tc.src, nil)
			if !bytes.Equal(got, tc.want) {
				t.Fatalf("Encode(%q) = % x, want % x", tc.src, got, tc.want)
			}
		})
	}
}

func TestEncodedSize_MatchesFormula(t *testing.T) {
	for n := 0; n < 64; n++ {
		want := (n + 7) / 7 * 8
		if got := EncodedSize(n); got != want {
			t.Fatalf("EncodedSize(%d) = %d, want %d", n, got, want)
		}
		if got := EncodedSize(n); got%8 != 0 {
			t.Fatalf("EncodedSize(%d) = %d is not a multiple of 8", n, got)
		}
	}
}

func TestEncode_LengthMatchesEncodedSize(t *testing.T) {
	for n := 0; n < 64; n++ {
		src := make([]byte, n)
		rand.New(rand.NewSource(int64(n))).Read(src)
		got := Encode(src, nil)
		if len(got) != EncodedSize(n) {
			t.Fatalf("len(Encode(%d bytes)) = %d, want %d", n, len(got), EncodedSize(n))
		}
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	for n := 0; n < 64; n++ {
		src := make([]byte, n)
		rand.New(rand.NewSource(int64(n) + 1)).Read(src)
		encoded := Encode(src, nil)
		decoded, rest := Decode(encoded, nil)
		if !bytes.Equal(decoded, src) {
			t.Fatalf("round trip mismatch for n=%d: got % x, want % x", n, decoded, src)
		}
		if len(rest) != 0 {
			t.Fatalf("Decode left %d trailing bytes for n=%d, want 0", len(rest), n)
		}
	}
}

func TestDecode_ConsumesExactlyEncodedSize(t *testing.T) {
	a := Encode([]byte("hello"), nil)
	b := Encode([]byte("world!"), nil)
	both := append(append([]byte{}, a...), b...)

	decA, rest := Decode(both, nil)
	if !bytes.Equal(decA, []byte("hello")) {
		t.Fatalf("first field = %q, want %q", decA, "hello")
	}
	if len(rest) != len(b) {
		t.Fatalf("rest length = %d, want %d", len(rest), len(b))
	}
	decB, rest2 := Decode(rest, nil)
	if !bytes.Equal(decB, []byte("world!")) {
		t.Fatalf("second field = %q, want %q", decB, "world!")
	}
	if len(rest2) != 0 {
		t.Fatalf("trailing bytes after last field: %d", len(rest2))
	}
}

func TestEncode_PreservesLexicographicOrder(t *testing.T) {
	inputs := [][]byte{
		[]byte(""), []byte("a"), []byte("ab"), []byte("abc"),
		[]byte("abcdefg"), []byte("abcdefgh"), []byte("abcdefghi"),
		[]byte("b"), []byte{0}, []byte{0, 0}, []byte{0xff},
		[]byte("aaaaaaa"), []byte("aaaaaaaa"), []byte("z"),
	}
	sorted := make([][]byte, len(inputs))
	copy(sorted, inputs)
	sort.Slice(sorted, func(i, j int) bool { return bytes.Compare(sorted[i], sorted[j]) < 0 })

	encoded := make([][]byte, len(sorted))
	for i, s := range sorted {
		encoded[i] = Encode(s, nil)
	}
	for i := 1; i < len(encoded); i++ {
		if bytes.Compare(encoded[i-1], encoded[i]) > 0 {
			t.Fatalf("encoded order violated between %q and %q", sorted[i-1], sorted[i])
		}
	}
}

func TestEncode_RandomPairsPreserveOrder(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		a := randomBytes(r, r.Intn(20))
		b := randomBytes(r, r.Intn(20))
		want := bytes.Compare(a, b)
		got := bytes.Compare(Encode(a, nil), Encode(b, nil))
		if sign(want) != sign(got) {
			t.Fatalf("order mismatch for %q vs %q: lexicographic=%d encoded=%d", a, b, want, got)
		}
	}
}

func randomBytes(r *rand.Rand, n int) []byte {
	b := make([]byte, n)
	r.Read(b)
	return b
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

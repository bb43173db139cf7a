// Package simdscan builds per-byte classification bitmaps (quote, separator,
// newline) for a buffer in a single pass, so callers can answer "is this
// byte inside a quoted region" by walking the bitmaps instead of
// re-classifying the bytes.
package simdscan

// Bitmaps holds one bit per input byte for each of the three byte classes
// the CSV grammar cares about. Bit i%64 of word i/64 is set when input byte i
// matches that class.
type Bitmaps struct {
	Quotes    []uint64
	Seps      []uint64
	Newlines  []uint64
	NumBytes  int
}

// NewBitmaps allocates zeroed bitmaps sized for n input bytes.
func NewBitmaps(n int) Bitmaps {
	words := (n + 63) / 64
	return Bitmaps{
		Quotes:   make([]uint64, words),
		Seps:     make([]uint64, words),
		Newlines: make([]uint64, words),
		NumBytes: n,
	}
}

// Scan classifies every byte of data against sep, populating b in place.
// b must have been sized with NewBitmaps(len(data)) or larger.
func Scan(data []byte, sep byte, b Bitmaps) {
	scan(data, sep, b)
}

// Set reports whether the bit for byte position pos is set in bitmap m.
func Set(m []uint64, pos int) bool {
	word := pos / 64
	if word >= len(m) {
		return false
	}
	return m[word]&(1<<uint(pos%64)) != 0
}

// CountUnquoted counts how many bits in seps lie outside a quoted region,
// toggling the quote region on every set bit of quotes. This is the
// "unquoted delimiter count" the parser's delimiter inference needs.
func CountUnquoted(n int, b Bitmaps) int {
	count := 0
	inQuote := false
	for i := 0; i < n; i++ {
		if Set(b.Quotes, i) {
			inQuote = !inQuote
			continue
		}
		if !inQuote && Set(b.Seps, i) {
			count++
		}
	}
	return count
}

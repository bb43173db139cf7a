package masscsv

import "unicode/utf8"

// invalidUtf8Pos returns the byte offset of the first invalid UTF-8
// sequence in b, or -1 if b is entirely valid.
func invalidUtf8Pos(b []byte) int {
	pos := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			return pos
		}
		b = b[size:]
		pos += size
	}
	return -1
}

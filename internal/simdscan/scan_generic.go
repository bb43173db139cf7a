//go:build !amd64

package simdscan

// HasAccel reports whether a hardware-accelerated scan path is available.
// Non-amd64 builds only ever have the scalar path.
const HasAccel = false

func scan(data []byte, sep byte, b Bitmaps) {
	scanScalar(data, sep, b)
}

//go:build amd64

package simdscan

import "golang.org/x/sys/cpu"

// HasAccel reports whether the CPU has the wide vector instructions a
// hardware-accelerated scan path would use. It is surfaced for diagnostics
// (cmd/csvbench logs it); the scan itself currently always takes the
// scalar path, see scan below for why.
var HasAccel bool

func init() {
	HasAccel = cpu.X86.HasAVX2 || cpu.X86.HasAVX512F
}

// scan dispatches to the scalar classifier. A real AVX2/AVX512 kernel would
// be wired in here behind HasAccel, mirroring entreya-csvquery's
// scan_amd64.go; without the corresponding assembly this module falls back
// to the scalar path unconditionally (see DESIGN.md).
func scan(data []byte, sep byte, b Bitmaps) {
	scanScalar(data, sep, b)
}

//go:build !windows

// Package mmapio memory-maps files read-only for zero-copy row access.
package mmapio

import (
	"os"

	"golang.org/x/sys/unix"
)

// Map memory-maps the whole of f read-only. The returned slice is valid
// until Unmap is called; the file must not be modified by another process
// while the mapping is held.
func Map(f *os.File, size int64) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Unmap releases a mapping previously returned by Map.
func Unmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return unix.Munmap(data)
}

//go:build windows

package mmapio

import (
	"io"
	"os"
)

// Map falls back to reading the whole file on Windows, avoiding the extra
// unsafe pointer arithmetic a real file mapping would need there.
// TODO: implement a real file mapping via golang.org/x/sys/windows.CreateFileMapping.
func Map(f *os.File, size int64) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(f)
}

// Unmap is a no-op for the ReadAll-backed Windows fallback.
func Unmap(data []byte) error {
	return nil
}

//go:build windows

package mmapio

import "os"

// LockExclusive is a stub on Windows.
// TODO: implement via golang.org/x/sys/windows.LockFileEx.
func LockExclusive(f *os.File) error {
	return nil
}

// Unlock is a stub on Windows.
func Unlock(f *os.File) error {
	return nil
}

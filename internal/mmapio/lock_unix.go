//go:build !windows

package mmapio

import (
	"os"

	"golang.org/x/sys/unix"
)

// LockExclusive takes a best-effort advisory exclusive lock on f for the
// duration of a save. It does not prevent a separate process from opening
// the file without flock, but it serializes cooperating masscsv processes.
func LockExclusive(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_EX)
}

// Unlock releases a lock taken by LockExclusive.
func Unlock(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}

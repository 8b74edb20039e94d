// Package glock provides interprocess advisory locks, implemented as
// files under the system temp directory. The lock named "greina-grammar"
// guards grammar compilation; if a process crashes while holding it,
// the lock file can simply be deleted to recover.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the
// root folder of this module.
package glock

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/ornolfur/greina"
)

// Lock is a held interprocess lock. Release it when done; the lock
// file itself is left in place for reuse.
type Lock struct {
	name string
	file *os.File
}

// Path returns the lock file path for a lock name.
func Path(name string) string {
	return filepath.Join(os.TempDir(), name+".lock")
}

// Acquire takes the named lock, blocking until it is available.
func Acquire(name string) (*Lock, error) {
	return acquire(name, true)
}

// TryAcquire takes the named lock without blocking. If another process
// holds it, ErrLockHeld is returned.
func TryAcquire(name string) (*Lock, error) {
	return acquire(name, false)
}

func acquire(name string, block bool) (*Lock, error) {
	f, err := os.OpenFile(Path(name), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot create lock file: %w", err)
	}
	how := unix.LOCK_EX
	if !block {
		how |= unix.LOCK_NB
	}
	if err := unix.Flock(int(f.Fd()), how); err != nil {
		f.Close()
		if err == unix.EWOULDBLOCK {
			return nil, greina.ErrLockHeld
		}
		return nil, fmt.Errorf("cannot lock %s: %w", name, err)
	}
	return &Lock{name: name, file: f}, nil
}

// Release drops the lock. It is safe to call more than once.
func (l *Lock) Release() error {
	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil
	_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
	return f.Close()
}

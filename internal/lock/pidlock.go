// Package lock guards a run directory against concurrent hookwell instances.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// PIDLock is an exclusive single-instance lock backed by flock(2) on a pid
// file. The lock lives as long as the file descriptor stays open; the pid
// written inside is advisory, read by operators and the status command.
type PIDLock struct {
	path string
	f    *os.File
}

// Acquire takes the lock at path and stamps the current pid into the file.
// A second caller fails immediately instead of blocking.
func Acquire(path string) (*PIDLock, error) {
	if path == "" {
		return nil, fmt.Errorf("lock path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	if err := stampPID(f); err != nil {
		_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
		_ = f.Close()
		return nil, err
	}
	return &PIDLock{path: path, f: f}, nil
}

// stampPID replaces the file contents with the current pid.
func stampPID(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("truncate lock file: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return fmt.Errorf("seek lock file: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%d\n", os.Getpid()); err != nil {
		return fmt.Errorf("write pid: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync lock file: %w", err)
	}
	return nil
}

func (l *PIDLock) Path() string { return l.path }

// Release removes the pid file and drops the lock, so a clean shutdown
// leaves nothing behind. Only a crash leaves a stale file. Safe on nil.
func (l *PIDLock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	// Remove while still holding the flock so a concurrent Acquire creates
	// a fresh file rather than locking the one being discarded.
	_ = os.Remove(l.path)
	_ = syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN)
	err := l.f.Close()
	l.f = nil
	return err
}

// State describes who, if anyone, holds the lock at a path.
type State int

const (
	// StateFree means no pid file exists.
	StateFree State = iota
	// StateStale means a pid file exists but its owner is gone or unknown.
	StateStale
	// StateHeld means a live process wrote the pid file.
	StateHeld
)

// Status reports the lock state at a path. PID is zero unless the file
// held a readable pid.
type Status struct {
	State State
	PID   int
}

// Inspect reads the pid file at path and probes whether its owner is still
// alive, without taking the lock. Unreadable contents count as stale
// rather than an error; a crashed owner leaves exactly that behind.
func Inspect(path string) (Status, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Status{State: StateFree}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("read lock file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return Status{State: StateStale}, nil
	}
	if processAlive(pid) {
		return Status{State: StateHeld, PID: pid}, nil
	}
	return Status{State: StateStale, PID: pid}, nil
}

// processAlive probes a pid with signal 0.
func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}

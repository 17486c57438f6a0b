// Package locking provides file-based named locks so concurrent
// engine runs do not step on each other.
package locking

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// ErrLockTimeout is returned when a lock cannot be acquired in time.
type ErrLockTimeout struct {
	Name    string
	Timeout time.Duration
}

func (e *ErrLockTimeout) Error() string {
	return fmt.Sprintf("failed to acquire lock %s: timeout after %v", e.Name, e.Timeout)
}

// Manager hands out named flock-based locks under one directory.
type Manager struct {
	lockDir string
	log     zerolog.Logger
}

// NewManager creates a new lock manager
func NewManager(lockDir string, log zerolog.Logger) (*Manager, error) {
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	return &Manager{
		lockDir: lockDir,
		log:     log.With().Str("service", "lock_manager").Logger(),
	}, nil
}

// Lock represents an acquired lock.
type Lock struct {
	name     string
	file     *os.File
	released bool
	log      zerolog.Logger
}

// Acquire attempts to take a named exclusive lock, retrying until the
// timeout elapses.
func (m *Manager) Acquire(name string, timeout time.Duration) (*Lock, error) {
	lockPath := filepath.Join(m.lockDir, fmt.Sprintf("%s.lock", name))

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for {
		err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
		if err == nil {
			m.log.Debug().Str("lock", name).Msg("lock acquired")
			return &Lock{
				name: name,
				file: file,
				log:  m.log,
			}, nil
		}

		if time.Now().After(deadline) {
			file.Close()
			return nil, &ErrLockTimeout{Name: name, Timeout: timeout}
		}

		time.Sleep(100 * time.Millisecond)
	}
}

// Release releases the lock. Safe to call more than once.
func (l *Lock) Release() error {
	if l.released {
		return nil
	}

	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		l.log.Error().Err(err).Str("lock", l.name).Msg("failed to unlock")
		return fmt.Errorf("failed to unlock: %w", err)
	}

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close lock file: %w", err)
	}

	l.released = true
	l.log.Debug().Str("lock", l.name).Msg("lock released")
	return nil
}

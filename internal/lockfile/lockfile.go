// Package lockfile provides the per-scope exclusive lock guarding the
// (settings document, record store) pair.
//
// Policy: bounded wait. Acquisition retries every RetryInterval until the
// timeout budget is spent, then fails with ErrLockTimeout. This layer never
// retries beyond that budget; the caller decides whether to try again.
// Distinct scopes use distinct lock files and never contend.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrLockTimeout is returned when the lock could not be acquired within the
// configured budget.
var ErrLockTimeout = errors.New("scope is locked by another process")

const (
	// DefaultTimeout is the total time Acquire will wait for the lock.
	DefaultTimeout = 5 * time.Second

	// RetryInterval is the delay between acquisition attempts.
	RetryInterval = 10 * time.Millisecond
)

// Lock is an exclusive cross-process lock backed by flock.
type Lock struct {
	path    string
	timeout time.Duration
	fl      *flock.Flock
}

// New returns a lock for the given lock file path with the default budget.
func New(path string) *Lock {
	return &Lock{path: path, timeout: DefaultTimeout}
}

// WithTimeout returns a lock with an explicit acquisition budget. Tests use
// a short budget to assert the locked failure deterministically.
func WithTimeout(path string, timeout time.Duration) *Lock {
	return &Lock{path: path, timeout: timeout}
}

// Acquire takes the exclusive lock, waiting up to the budget.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating lock directory: %w", err)
	}

	fl := flock.New(l.path)
	deadline := time.Now().Add(l.timeout)

	for {
		locked, err := fl.TryLock()
		if err != nil {
			return fmt.Errorf("acquiring lock %s: %w", l.path, err)
		}
		if locked {
			l.fl = fl
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s", ErrLockTimeout, l.path)
		}
		time.Sleep(RetryInterval)
	}
}

// Release drops the lock. Safe to call when never acquired.
func (l *Lock) Release() error {
	if l.fl == nil {
		return nil
	}
	err := l.fl.Unlock()
	l.fl = nil
	return err
}

// WithLock runs fn while holding the lock.
func (l *Lock) WithLock(fn func() error) error {
	if err := l.Acquire(); err != nil {
		return err
	}
	defer l.Release()
	return fn()
}

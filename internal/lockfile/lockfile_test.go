package lockfile

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	lk := New(filepath.Join(t.TempDir(), ".lock"))

	require.NoError(t, lk.Acquire())
	require.NoError(t, lk.Release())

	// reacquirable after release
	require.NoError(t, lk.Acquire())
	require.NoError(t, lk.Release())
}

func TestRelease_NeverAcquired(t *testing.T) {
	lk := New(filepath.Join(t.TempDir(), ".lock"))
	assert.NoError(t, lk.Release())
}

func TestAcquire_TimesOutWhileHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")

	holder := New(path)
	require.NoError(t, holder.Acquire())
	defer holder.Release()

	waiter := WithTimeout(path, 50*time.Millisecond)
	start := time.Now()
	err := waiter.Acquire()
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond, "must wait out the budget before failing")
}

func TestAcquire_SucceedsAfterRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")

	holder := New(path)
	require.NoError(t, holder.Acquire())

	done := make(chan error, 1)
	go func() {
		waiter := WithTimeout(path, 2*time.Second)
		done <- waiter.Acquire()
	}()

	time.Sleep(30 * time.Millisecond)
	require.NoError(t, holder.Release())

	require.NoError(t, <-done)
}

func TestWithLock(t *testing.T) {
	lk := New(filepath.Join(t.TempDir(), ".lock"))

	ran := false
	err := lk.WithLock(func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)

	// lock released after fn: a fresh acquire succeeds immediately
	require.NoError(t, lk.Acquire())
	require.NoError(t, lk.Release())
}

func TestDistinctPaths_NeverContend(t *testing.T) {
	dir := t.TempDir()
	a := New(filepath.Join(dir, "user.lock"))
	b := WithTimeout(filepath.Join(dir, "project.lock"), 50*time.Millisecond)

	require.NoError(t, a.Acquire())
	defer a.Release()

	require.NoError(t, b.Acquire(), "locks for distinct scopes must not contend")
	b.Release()
}

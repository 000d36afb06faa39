// Package engine performs install, remove, and sync transactions against a
// scope. Every transaction takes the scope's exclusive lock, mutates the
// filesystem and the (settings document, record store) pair together, and
// either commits fully or rolls back to the exact pre-transaction state.
package engine

import (
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kennyg/kit/internal/fsutil"
	"github.com/kennyg/kit/internal/lockfile"
	"github.com/kennyg/kit/internal/scope"
	"github.com/kennyg/kit/internal/settings"
	"github.com/kennyg/kit/internal/state"
)

// Engine runs transactions against one scope.
type Engine struct {
	paths       *scope.Paths
	store       *state.Store
	lockTimeout time.Duration

	// seams for failure injection in tests
	symlink   func(oldname, newname string) error
	writeFile func(path string, data []byte, mode os.FileMode) error
}

// New returns an engine for the given scope paths.
func New(p *scope.Paths) *Engine {
	return &Engine{
		paths:       p,
		store:       state.NewStore(p.StateFile),
		lockTimeout: lockfile.DefaultTimeout,
		symlink:     os.Symlink,
		writeFile:   fsutil.WriteFileAtomic,
	}
}

// SetLockTimeout overrides the lock acquisition budget.
func (e *Engine) SetLockTimeout(d time.Duration) { e.lockTimeout = d }

// Scope returns the scope this engine operates on.
func (e *Engine) Scope() *scope.Paths { return e.paths }

func (e *Engine) lock() *lockfile.Lock {
	return lockfile.WithTimeout(e.paths.LockFile, e.lockTimeout)
}

// loadPair reads the settings document and record store together. Writers
// call this under the scope lock.
func (e *Engine) loadPair() (settings.Document, *state.State, error) {
	doc, err := settings.Load(e.paths.SettingsFile)
	if err != nil {
		return nil, nil, err
	}
	st, err := e.store.Load()
	if err != nil {
		return nil, nil, err
	}
	log.Debug("loaded scope state", "scope", e.paths.Scope, "kits", len(st.Kits))
	return doc, st, nil
}

package engine

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kennyg/kit/internal/fsutil"
)

// snapshot captures one path's pre-transaction state so the journal can put
// it back exactly.
type snapshot struct {
	path       string
	existed    bool
	wasSymlink bool
	linkTarget string
	content    []byte
	mode       os.FileMode
}

// journal records every path a transaction touches, in order. On failure,
// Rollback restores each path to its snapshot in reverse order, leaving the
// scope's filesystem exactly as it was before the transaction began.
type journal struct {
	entries []snapshot
	dirs    []string // directories the transaction created
}

// MkdirAll creates dir like os.MkdirAll, recording every ancestor that did
// not exist before so Rollback can remove them again.
func (j *journal) MkdirAll(dir string) error {
	d := dir
	for {
		if _, err := os.Lstat(d); err == nil {
			break
		} else if !os.IsNotExist(err) {
			return err
		}
		j.dirs = append(j.dirs, d)
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}
	return os.MkdirAll(dir, 0o755)
}

// Touch snapshots path before the transaction mutates it. Paths already
// journaled are not snapshotted again; the first snapshot is the truth.
func (j *journal) Touch(path string) error {
	for _, e := range j.entries {
		if e.path == path {
			return nil
		}
	}

	snap := snapshot{path: path}
	info, err := os.Lstat(path)
	switch {
	case os.IsNotExist(err):
		// nothing to capture
	case err != nil:
		return err
	default:
		snap.existed = true
		snap.mode = info.Mode().Perm()
		if info.Mode()&os.ModeSymlink != 0 {
			snap.wasSymlink = true
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			snap.linkTarget = target
		} else {
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			snap.content = content
		}
	}

	j.entries = append(j.entries, snap)
	return nil
}

// Rollback restores every journaled path, newest first. It keeps going past
// individual failures and returns the list of paths it restored, so the
// aggregated error can name them all.
func (j *journal) Rollback() []string {
	restored := make([]string, 0, len(j.entries))
	for i := len(j.entries) - 1; i >= 0; i-- {
		e := j.entries[i]
		os.Remove(e.path)
		if e.existed {
			if e.wasSymlink {
				if err := os.Symlink(e.linkTarget, e.path); err != nil {
					continue
				}
			} else {
				if err := os.MkdirAll(filepath.Dir(e.path), 0o755); err != nil {
					continue
				}
				if err := fsutil.WriteFileAtomic(e.path, e.content, e.mode); err != nil {
					continue
				}
			}
		}
		restored = append(restored, e.path)
	}

	// Created directories go last, deepest first, once their contents are
	// back out of the way. A directory that gained unrelated files in the
	// meantime stays; os.Remove refuses non-empty directories.
	sort.SliceStable(j.dirs, func(a, b int) bool {
		return strings.Count(j.dirs[a], string(os.PathSeparator)) > strings.Count(j.dirs[b], string(os.PathSeparator))
	})
	for _, d := range j.dirs {
		os.Remove(d)
	}

	return restored
}

package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/kennyg/kit/internal/fsutil"
	"github.com/kennyg/kit/internal/kit"
	"github.com/kennyg/kit/internal/manifest"
	"github.com/kennyg/kit/internal/provenance"
	"github.com/kennyg/kit/internal/resolve"
)

// Sync refreshes every dev-mode-installed kit from its current source.
// Destinations that are symlinks are live views of the source already, so
// they are skipped and reported as such: a symlinked file under active edit
// is never silently reverted. Plain copies (including symlink fallbacks)
// are re-copied when the source content changed.
//
// Like Install and Remove, the whole pass is one transaction: a failure
// rolls every already-refreshed copy back and leaves the record store
// untouched.
func (e *Engine) Sync() (*SyncResult, error) {
	lk := e.lock()
	if err := lk.Acquire(); err != nil {
		return nil, err
	}
	defer lk.Release()

	st, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Scope: e.paths.Scope}

	j := &journal{}
	commit := func() error {
		for i := range st.Kits {
			rec := &st.Kits[i]
			if !rec.DevMode {
				continue
			}

			m, _, err := manifest.Parse(rec.Source)
			if err != nil {
				return fmt.Errorf("syncing %s: %w", rec.Name, err)
			}
			m.Root = rec.Source

			log.Debug("syncing kit", "kit", rec.Name, "source", rec.Source)

			kr := KitSyncResult{Kit: rec.Name}
			for _, res := range dedupe(resolve.All(m, e.paths)) {
				fr, err := e.syncFile(j, res, rec)
				if err != nil {
					return fmt.Errorf("syncing %s: %w", rec.Name, err)
				}
				kr.Files = append(kr.Files, fr)
			}
			result.Kits = append(result.Kits, kr)
		}

		if err := j.Touch(e.paths.StateFile); err != nil {
			return err
		}
		return e.store.Save(st)
	}

	if err := commit(); err != nil {
		restored := j.Rollback()
		if len(restored) > 0 {
			return nil, fmt.Errorf("sync failed: %w (rolled back: %s)",
				err, strings.Join(restored, ", "))
		}
		return nil, fmt.Errorf("sync failed: %w", err)
	}

	return result, nil
}

func (e *Engine) syncFile(j *journal, res resolve.Resolution, rec *kit.Record) (FileResult, error) {
	if fsutil.IsSymlink(res.Dest) {
		return FileResult{Path: res.Dest, Status: StatusSkippedSymlink, Reason: "symlinked"}, nil
	}

	content, err := os.ReadFile(res.Source)
	if err != nil {
		return FileResult{}, err
	}
	if provenance.Stampable(res.Source) {
		content, err = provenance.Stamp(content, res.KitName, res.KitVersion)
		if err != nil {
			return FileResult{}, err
		}
	}

	newHash := fsutil.HashContent(content)
	if a := rec.FindArtifact(res.Type, res.Name); a != nil && a.Hash == newHash {
		if _, err := os.Stat(res.Dest); err == nil {
			return FileResult{Path: res.Dest, Status: StatusUnchanged}, nil
		}
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(res.Source); err == nil && info.Mode().Perm()&0o111 != 0 {
		mode = 0o755
	}
	if err := j.Touch(res.Dest); err != nil {
		return FileResult{}, err
	}
	if err := j.MkdirAll(filepath.Dir(res.Dest)); err != nil {
		return FileResult{}, err
	}
	if err := e.writeFile(res.Dest, content, mode); err != nil {
		return FileResult{}, err
	}

	if a := rec.FindArtifact(res.Type, res.Name); a != nil {
		a.Hash = newHash
	}
	return FileResult{Path: res.Dest, Status: StatusRefreshed}, nil
}

package engine

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/kennyg/kit/internal/fsutil"
	"github.com/kennyg/kit/internal/settings"
)

// Remove uninstalls a kit from the scope using only its recorded
// provenance: every owned artifact path is deleted (symlink or regular
// file), the kit's hook entries are removed from the settings document, and
// the record is dropped. Hand-edited copies are deleted too, but surfaced
// as warnings first.
func (e *Engine) Remove(kitName string) (*RemoveResult, error) {
	lk := e.lock()
	if err := lk.Acquire(); err != nil {
		return nil, err
	}
	defer lk.Release()

	doc, st, err := e.loadPair()
	if err != nil {
		return nil, err
	}

	rec := st.Find(kitName)
	if rec == nil {
		return nil, &NotFoundError{Kit: kitName}
	}

	log.Debug("removing kit", "kit", kitName, "scope", e.paths.Scope, "artifacts", len(rec.Artifacts))

	result := &RemoveResult{
		Kit:     rec.Name,
		Version: rec.Version,
		Scope:   e.paths.Scope,
	}

	// Warn about copies edited since install; removal is destructive by
	// default, so the warning is all the caller gets.
	for _, a := range rec.Artifacts {
		if a.IsSymlink || a.Hash == "" {
			continue
		}
		if current, err := fsutil.HashFile(a.Path); err == nil && current != a.Hash {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s was modified after install; deleting anyway", a.Path))
		}
	}

	j := &journal{}
	commit := func() error {
		for _, a := range rec.Artifacts {
			if err := j.Touch(a.Path); err != nil {
				return err
			}
			if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
				return err
			}
		}

		pruned := settings.RemoveHooks(doc, kitName)
		if err := j.Touch(e.paths.SettingsFile); err != nil {
			return err
		}
		if err := settings.Save(e.paths.SettingsFile, pruned); err != nil {
			return err
		}

		if err := j.Touch(e.paths.StateFile); err != nil {
			return err
		}
		removed := *rec
		st.Remove(kitName)
		result.ArtifactsRemoved = len(removed.Artifacts)
		result.HooksRemoved = len(removed.Hooks)
		return e.store.Save(st)
	}

	if err := commit(); err != nil {
		restored := j.Rollback()
		if len(restored) > 0 {
			return nil, fmt.Errorf("remove of %s failed: %w (rolled back: %s)",
				kitName, err, strings.Join(restored, ", "))
		}
		return nil, fmt.Errorf("remove of %s failed: %w", kitName, err)
	}

	return result, nil
}

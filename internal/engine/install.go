package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kennyg/kit/internal/fsutil"
	"github.com/kennyg/kit/internal/kit"
	"github.com/kennyg/kit/internal/manifest"
	"github.com/kennyg/kit/internal/provenance"
	"github.com/kennyg/kit/internal/resolve"
	"github.com/kennyg/kit/internal/settings"
	"github.com/kennyg/kit/internal/state"
)

// InstallOptions control an install transaction.
type InstallOptions struct {
	// Force allows overwriting artifact names owned by another kit or by
	// unmanaged local files.
	Force bool

	// DevMode installs artifacts as symlinks back to the kit source, so
	// edits to the installed copy affect the source directly. Each file
	// falls back to a copy individually if its symlink fails.
	DevMode bool
}

// Install runs a full install transaction for the kit at kitRoot.
//
// Manifest and conflict failures are detected before any mutation and
// returned directly. Once mutation begins, any failure rolls the scope back
// to its exact pre-install state before the lock is released.
func (e *Engine) Install(kitRoot string, opts InstallOptions) (*InstallResult, error) {
	m, warnings, err := manifest.Parse(kitRoot)
	if err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(kitRoot)
	if err != nil {
		return nil, err
	}
	m.Root = absRoot

	resolutions := dedupe(resolve.All(m, e.paths))

	lk := e.lock()
	if err := lk.Acquire(); err != nil {
		return nil, err
	}
	defer lk.Release()

	doc, st, err := e.loadPair()
	if err != nil {
		return nil, err
	}

	// Collision check against other owners; no mutation has happened yet.
	if !opts.Force {
		if collisions := e.findCollisions(st, m.Name, resolutions); len(collisions) > 0 {
			return nil, &ConflictError{Collisions: collisions}
		}
	}

	log.Debug("installing kit", "kit", m.Name, "version", m.Version, "scope", e.paths.Scope, "dev", opts.DevMode)

	j := &journal{}
	result := &InstallResult{
		Kit:      m.Name,
		Version:  m.Version,
		Scope:    e.paths.Scope,
		Warnings: warnings,
	}

	rec := kit.Record{
		Name:        m.Name,
		Version:     m.Version,
		Source:      absRoot,
		InstalledAt: time.Now(),
		DevMode:     opts.DevMode,
	}

	commit := func() error {
		if err := e.ensureDirs(j); err != nil {
			return err
		}

		for _, res := range resolutions {
			fr, installed, err := e.placeFile(j, res, opts.DevMode)
			if err != nil {
				return err
			}
			result.Files = append(result.Files, fr)
			if fr.Status == StatusCopiedFallback {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%s: symlink failed (%s), copied instead", res.Dest, fr.Reason))
			}
			rec.Artifacts = append(rec.Artifacts, installed)
		}

		// Remove files a previous version owned that this one no longer ships.
		if prev := st.Find(m.Name); prev != nil {
			if err := e.pruneStale(j, prev, resolutions); err != nil {
				return err
			}
		}

		for _, h := range m.Hooks {
			rec.Hooks = append(rec.Hooks, kit.InstalledHook{
				ID:          h.ID,
				Lifecycle:   h.Lifecycle,
				Matcher:     h.Matcher,
				Script:      resolve.One(m, kit.TypeHook, h.Script, e.paths).Dest,
				Description: h.Description,
				Timeout:     h.Timeout,
			})
		}

		// Reconcile rather than add: an upgrade may drop hooks or move
		// them to a different lifecycle or matcher, and their old entries
		// must go the same way pruneStale handles old files.
		merged := settings.ReconcileHooks(doc, m.Name, rec.Hooks)
		if err := j.Touch(e.paths.SettingsFile); err != nil {
			return err
		}
		if err := settings.Save(e.paths.SettingsFile, merged); err != nil {
			return err
		}

		st.Upsert(rec)
		if err := j.Touch(e.paths.StateFile); err != nil {
			return err
		}
		return e.store.Save(st)
	}

	if err := commit(); err != nil {
		restored := j.Rollback()
		if len(restored) > 0 {
			return nil, fmt.Errorf("install of %s failed: %w (rolled back: %s)",
				m.Name, err, strings.Join(restored, ", "))
		}
		return nil, fmt.Errorf("install of %s failed: %w", m.Name, err)
	}

	for _, res := range resolutions {
		if !res.FromHook {
			result.ArtifactsInstalled++
		}
	}
	result.HooksInstalled = len(rec.Hooks)
	return result, nil
}

// placeFile installs one resolved artifact, journaling the destination
// first. In dev mode it attempts a symlink and falls back to a copy for
// this file only, returning the typed outcome.
func (e *Engine) placeFile(j *journal, res resolve.Resolution, devMode bool) (FileResult, kit.InstalledArtifact, error) {
	installed := kit.InstalledArtifact{
		Type: res.Type,
		Name: res.Name,
		Path: res.Dest,
	}

	if err := j.Touch(res.Dest); err != nil {
		return FileResult{}, installed, err
	}
	if err := j.MkdirAll(filepath.Dir(res.Dest)); err != nil {
		return FileResult{}, installed, err
	}

	if devMode {
		// Replace whatever is there; the journal holds the original.
		if err := os.RemoveAll(res.Dest); err != nil {
			return FileResult{}, installed, err
		}
		if err := e.symlink(res.Source, res.Dest); err == nil {
			installed.IsSymlink = true
			return FileResult{Path: res.Dest, Status: StatusSymlinked}, installed, nil
		} else {
			fallbackReason := err.Error()
			if err := e.copyArtifact(res, &installed); err != nil {
				return FileResult{}, installed, err
			}
			return FileResult{Path: res.Dest, Status: StatusCopiedFallback, Reason: fallbackReason}, installed, nil
		}
	}

	if err := e.copyArtifact(res, &installed); err != nil {
		return FileResult{}, installed, err
	}
	return FileResult{Path: res.Dest, Status: StatusCopied}, installed, nil
}

// copyArtifact writes a copy-mode file, stamping markdown content with
// provenance so the installed copy can be traced without the record.
func (e *Engine) copyArtifact(res resolve.Resolution, installed *kit.InstalledArtifact) error {
	content, err := os.ReadFile(res.Source)
	if err != nil {
		return err
	}

	if provenance.Stampable(res.Source) {
		stamped, err := provenance.Stamp(content, res.KitName, res.KitVersion)
		if err != nil {
			return fmt.Errorf("stamping %s: %w", res.Source, err)
		}
		content = stamped
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(res.Source); err == nil && info.Mode().Perm()&0o111 != 0 {
		mode = 0o755
	}

	if err := e.writeFile(res.Dest, content, mode); err != nil {
		return err
	}

	installed.Hash = fsutil.HashContent(content)
	return nil
}

// ensureDirs creates the scope layout through the journal so a rollback
// removes any directory this transaction introduced.
func (e *Engine) ensureDirs(j *journal) error {
	if err := j.MkdirAll(e.paths.Root); err != nil {
		return err
	}
	for _, t := range kit.Types {
		if err := j.MkdirAll(e.paths.ArtifactDir(t)); err != nil {
			return err
		}
	}
	return nil
}

// pruneStale deletes files the previous record owned that the new
// resolution set no longer produces.
func (e *Engine) pruneStale(j *journal, prev *kit.Record, resolutions []resolve.Resolution) error {
	current := make(map[string]bool, len(resolutions))
	for _, res := range resolutions {
		current[res.Dest] = true
	}
	for _, a := range prev.Artifacts {
		if current[a.Path] {
			continue
		}
		if err := j.Touch(a.Path); err != nil {
			return err
		}
		if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// findCollisions reports (type, name) keys owned by a different kit, or by
// unmanaged local files sitting at a destination.
func (e *Engine) findCollisions(st *state.State, kitName string, resolutions []resolve.Resolution) []Collision {
	var collisions []Collision
	seen := make(map[string]bool)
	for _, res := range resolutions {
		key := string(res.Type) + "/" + res.Name
		if seen[key] {
			continue
		}
		seen[key] = true

		owner := st.OwnerOf(res.Type, res.Name)
		if owner != "" && owner != kitName {
			collisions = append(collisions, Collision{Type: res.Type, Name: res.Name, Owner: owner})
			continue
		}
		if owner == "" {
			if _, err := os.Lstat(res.Dest); err == nil {
				collisions = append(collisions, Collision{Type: res.Type, Name: res.Name, Owner: kit.LocalOwner})
			}
		}
	}
	return collisions
}

// dedupe drops duplicate destinations (a hook script also listed as an
// artifact resolves twice).
func dedupe(resolutions []resolve.Resolution) []resolve.Resolution {
	seen := make(map[string]bool, len(resolutions))
	out := resolutions[:0]
	for _, res := range resolutions {
		if seen[res.Dest] {
			continue
		}
		seen[res.Dest] = true
		out = append(out, res)
	}
	return out
}

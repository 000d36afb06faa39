package engine

import (
	"fmt"
	"os"

	"github.com/kennyg/kit/internal/settings"
	"github.com/kennyg/kit/internal/state"
)

// Validate runs a read-only integrity check over the scope's shared
// configuration: structural settings-document checks plus a cross-check
// that every entry's provenance references a currently-installed kit hook.
//
// It takes no lock. Writers replace both documents atomically, so a read
// here always observes a complete document and never needs retry logic.
func (e *Engine) Validate() ([]settings.Issue, error) {
	doc, err := settings.Load(e.paths.SettingsFile)
	if err != nil {
		return nil, err
	}
	st, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	issues := settings.Validate(doc)
	issues = append(issues, crossCheck(doc, st)...)
	return issues, nil
}

// crossCheck verifies each entry's provenance against the record store.
func crossCheck(doc settings.Document, st *state.State) []settings.Issue {
	var issues []settings.Issue
	for _, pe := range doc.Entries() {
		prov := pe.Entry.Provenance
		if prov.Kit == "" {
			continue // structural check already flagged it
		}
		rec := st.Find(prov.Kit)
		if rec == nil {
			issues = append(issues, settings.Issue{
				Path:    fmt.Sprintf("%s[%s]", pe.Lifecycle, pe.Matcher),
				Message: fmt.Sprintf("entry owned by %q, which is not installed", prov.Kit),
			})
			continue
		}
		found := false
		for _, h := range rec.Hooks {
			if h.ID == prov.Hook {
				found = true
				break
			}
		}
		if !found {
			issues = append(issues, settings.Issue{
				Path:    fmt.Sprintf("%s[%s]", pe.Lifecycle, pe.Matcher),
				Message: fmt.Sprintf("entry references hook %q not owned by kit %q", prov.Hook, prov.Kit),
			})
		}
	}
	return issues
}

// CheckArtifacts reports owned artifact paths that no longer exist and
// symlinks whose targets are gone. Read-only; used by doctor.
func (e *Engine) CheckArtifacts() ([]settings.Issue, error) {
	st, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	var issues []settings.Issue
	for _, rec := range st.Kits {
		for _, a := range rec.Artifacts {
			info, err := os.Lstat(a.Path)
			if err != nil {
				issues = append(issues, settings.Issue{
					Path:    a.Path,
					Message: fmt.Sprintf("owned by %s but missing from disk", rec.Name),
				})
				continue
			}
			if info.Mode()&os.ModeSymlink != 0 {
				if _, err := os.Stat(a.Path); err != nil {
					issues = append(issues, settings.Issue{
						Path:    a.Path,
						Message: "dangling symlink",
					})
				}
			}
		}
	}
	return issues, nil
}

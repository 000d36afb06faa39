// Package resolve maps kit artifacts to their installed destinations.
// Everything in this package is a pure computation over the manifest and
// scope paths; no filesystem mutation happens here.
package resolve

import (
	"path/filepath"
	"strings"

	"github.com/kennyg/kit/internal/kit"
	"github.com/kennyg/kit/internal/scope"
)

// Resolution is one artifact's computed placement and provenance.
type Resolution struct {
	Type    kit.ArtifactType
	Name    string
	RelPath string // kit-relative subpath, preserved under the type dir
	Source  string // absolute path inside the kit
	Dest    string // absolute path inside the scope

	// Provenance attached to the installed file
	KitName    string
	KitVersion string

	// FromHook marks script files resolved from hook definitions rather
	// than the artifact map; they install but do not count as artifacts.
	FromHook bool
}

// One resolves a single artifact path.
func One(m *kit.Manifest, t kit.ArtifactType, rel string, p *scope.Paths) Resolution {
	clean := filepath.Clean(rel)
	return Resolution{
		Type:       t,
		Name:       ArtifactName(clean),
		RelPath:    clean,
		Source:     filepath.Join(m.Root, clean),
		Dest:       filepath.Join(p.ArtifactDir(t), clean),
		KitName:    m.Name,
		KitVersion: m.Version,
	}
}

// All resolves every artifact and hook script a manifest declares, in a
// stable order: artifact types first (declaration order), then hook scripts.
func All(m *kit.Manifest, p *scope.Paths) []Resolution {
	var out []Resolution
	for _, t := range kit.Types {
		for _, rel := range m.Artifacts[t] {
			out = append(out, One(m, t, rel, p))
		}
	}
	for _, h := range m.Hooks {
		res := One(m, kit.TypeHook, h.Script, p)
		res.FromHook = true
		out = append(out, res)
	}
	return out
}

// ArtifactName derives the collision key for a kit-relative path: the top
// directory for nested artifacts (my-skill/SKILL.md -> my-skill), the bare
// filename for flat ones (deploy.md -> deploy).
func ArtifactName(rel string) string {
	rel = filepath.ToSlash(filepath.Clean(rel))
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		return rel[:i]
	}
	return strings.TrimSuffix(rel, filepath.Ext(rel))
}

// Package manifest loads and validates kit.yaml files. Parsing is pure:
// nothing here mutates the kit or any scope.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/kennyg/kit/internal/kit"
)

// Parse reads and validates the manifest at kitRoot. Warnings cover
// conditions an external collaborator will care about (command-loader
// name mapping) but which do not block installation.
func Parse(kitRoot string) (*kit.Manifest, []string, error) {
	path := filepath.Join(kitRoot, kit.ManifestFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, missing(fmt.Errorf("no %s in %s", kit.ManifestFilename, kitRoot))
		}
		return nil, nil, malformed(err)
	}

	var m kit.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, nil, malformed(err)
	}
	m.Root = kitRoot

	if err := validate(&m); err != nil {
		return nil, nil, err
	}

	return &m, commandWarnings(&m), nil
}

func validate(m *kit.Manifest) error {
	if m.Name == "" {
		return invalid("name", "is required")
	}
	if !kit.ValidName(m.Name) {
		return invalid("name", "%q must be lowercase kebab-case", m.Name)
	}
	if m.Version == "" {
		return invalid("version", "is required")
	}
	if _, err := semver.StrictNewVersion(m.Version); err != nil {
		return invalid("version", "%q is not a semantic version: %v", m.Version, err)
	}

	for t, paths := range m.Artifacts {
		if !t.Valid() {
			return invalid("artifacts", "unknown artifact type %q", t)
		}
		for _, rel := range paths {
			field := fmt.Sprintf("artifacts.%s", t)
			if err := checkPath(m.Root, field, rel); err != nil {
				return err
			}
		}
	}

	seen := make(map[string]bool, len(m.Hooks))
	for i := range m.Hooks {
		h := &m.Hooks[i]
		field := fmt.Sprintf("hooks[%d]", i)
		if h.ID == "" {
			return invalid(field+".id", "is required")
		}
		if seen[h.ID] {
			return invalid(field+".id", "duplicate hook id %q", h.ID)
		}
		seen[h.ID] = true

		if !kit.ValidLifecycle(h.Lifecycle) {
			return invalid(field+".lifecycle", "%q is not a recognized lifecycle event", h.Lifecycle)
		}
		if h.Matcher == "" {
			h.Matcher = kit.DefaultMatcher
		}
		if h.Script == "" {
			return invalid(field+".script", "is required")
		}
		if err := checkPath(m.Root, field+".script", h.Script); err != nil {
			return err
		}
		if h.Timeout == 0 {
			h.Timeout = kit.DefaultTimeout
		}
		if h.Timeout < kit.MinTimeout || h.Timeout > kit.MaxTimeout {
			return invalid(field+".timeout", "%d outside range [%d,%d]", h.Timeout, kit.MinTimeout, kit.MaxTimeout)
		}
	}

	for i, c := range m.CLICommands {
		field := fmt.Sprintf("kit_cli_commands[%d]", i)
		if c.Name == "" {
			return invalid(field+".name", "is required")
		}
		if c.Path == "" {
			return invalid(field+".path", "is required")
		}
		if err := checkPath(m.Root, field+".path", c.Path); err != nil {
			return err
		}
	}

	return nil
}

// checkPath verifies rel is relative, free of traversal, and exists under root.
func checkPath(root, field, rel string) error {
	if rel == "" {
		return invalid(field, "empty path")
	}
	if filepath.IsAbs(rel) {
		return escape(field, rel)
	}
	clean := filepath.Clean(rel)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return escape(field, rel)
	}
	if _, err := os.Stat(filepath.Join(root, clean)); err != nil {
		return invalid(field, "%q: %v", rel, err)
	}
	return nil
}

// commandWarnings checks that each CLI command's kebab-case name maps to the
// function name the downstream command loader will look for. A mismatch
// breaks that loader, not the install, so it is only a warning here.
func commandWarnings(m *kit.Manifest) []string {
	var warnings []string
	for _, c := range m.CLICommands {
		if !kit.ValidName(c.Name) {
			warnings = append(warnings, fmt.Sprintf(
				"command %q: name is not kebab-case; the command loader derives function names from kebab-case", c.Name))
			continue
		}
		base := strings.TrimSuffix(filepath.Base(c.Path), filepath.Ext(c.Path))
		if base != c.Name && base != FunctionName(c.Name) {
			warnings = append(warnings, fmt.Sprintf(
				"command %q: file %q does not match; the command loader expects %s or %s",
				c.Name, filepath.Base(c.Path), c.Name, FunctionName(c.Name)))
		}
	}
	return warnings
}

// FunctionName converts a kebab-case command name to the exported function
// name the command loader resolves it to (create-epic -> CreateEpic).
func FunctionName(kebab string) string {
	parts := strings.Split(kebab, "-")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

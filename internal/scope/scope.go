package scope

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/kennyg/kit/internal/kit"
)

// User config:    $XDG_DATA_HOME/kit/ (or ~/.local/share/kit/)
// Project config: .kit/ (in project root)
// KIT_HOME overrides the user scope root entirely.

// Scope is an installation precedence level.
type Scope string

const (
	User    Scope = "user"
	Project Scope = "project"
)

// ProjectDirName is the per-project scope directory
const ProjectDirName = ".kit"

// Paths holds every path a scope owns. The settings document, the record
// store, and the lock file all live directly under Root, so two scopes
// never share state.
type Paths struct {
	Scope Scope
	Root  string

	SettingsFile string
	StateFile    string
	LockFile     string
}

// ForUser returns the user-wide scope paths.
func ForUser() (*Paths, error) {
	root := os.Getenv("KIT_HOME")
	if root == "" {
		root = filepath.Join(xdg.DataHome, "kit")
	}
	return newPaths(User, root), nil
}

// ForProject returns the project-local scope paths, discovering the project
// root from the current directory.
func ForProject() (*Paths, error) {
	projectRoot := findProjectRoot()
	if projectRoot == "" {
		return nil, fmt.Errorf("not inside a project (no %s or .git found)", ProjectDirName)
	}
	return newPaths(Project, filepath.Join(projectRoot, ProjectDirName)), nil
}

// ForProjectAt returns project-scope paths rooted at an explicit directory.
func ForProjectAt(projectRoot string) *Paths {
	return newPaths(Project, filepath.Join(projectRoot, ProjectDirName))
}

// For resolves a scope by name.
func For(s Scope) (*Paths, error) {
	switch s {
	case User:
		return ForUser()
	case Project:
		return ForProject()
	}
	return nil, fmt.Errorf("unknown scope: %s", s)
}

func newPaths(s Scope, root string) *Paths {
	return &Paths{
		Scope:        s,
		Root:         root,
		SettingsFile: filepath.Join(root, kit.SettingsFilename),
		StateFile:    filepath.Join(root, kit.StateFilename),
		LockFile:     filepath.Join(root, kit.LockFilename),
	}
}

// ArtifactDir returns the directory a given artifact type installs into.
func (p *Paths) ArtifactDir(t kit.ArtifactType) string {
	return filepath.Join(p.Root, kit.DirFor(t))
}

// EnsureDirs creates the scope root and every artifact type directory.
func (p *Paths) EnsureDirs() error {
	dirs := []string{p.Root}
	for _, t := range kit.Types {
		dirs = append(dirs, p.ArtifactDir(t))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Exists reports whether the scope has been initialized on disk.
func (p *Paths) Exists() bool {
	info, err := os.Stat(p.Root)
	return err == nil && info.IsDir()
}

// findProjectRoot walks up from the current directory looking for a .kit
// directory or a .git repo root.
func findProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		candidate := filepath.Join(dir, ProjectDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return dir
		}

		gitDir := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitDir); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}

	return ""
}

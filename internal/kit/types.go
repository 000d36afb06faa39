package kit

import (
	"fmt"
	"regexp"
	"time"
)

// ArtifactType represents the kind of artifact a kit ships
type ArtifactType string

const (
	TypeSkill   ArtifactType = "skill"
	TypeCommand ArtifactType = "command"
	TypeAgent   ArtifactType = "agent"
	TypeHook    ArtifactType = "hook"
	TypeDoc     ArtifactType = "doc"
)

// Types lists every artifact type in a stable order.
var Types = []ArtifactType{TypeSkill, TypeCommand, TypeAgent, TypeHook, TypeDoc}

// Valid reports whether t is a known artifact type.
func (t ArtifactType) Valid() bool {
	switch t {
	case TypeSkill, TypeCommand, TypeAgent, TypeHook, TypeDoc:
		return true
	}
	return false
}

// Manifest represents the kit.yaml file at the root of a kit
type Manifest struct {
	Name        string                    `yaml:"name" json:"name"`
	Version     string                    `yaml:"version" json:"version"`
	Description string                    `yaml:"description,omitempty" json:"description,omitempty"`
	License     string                    `yaml:"license,omitempty" json:"license,omitempty"`
	Artifacts   map[ArtifactType][]string `yaml:"artifacts,omitempty" json:"artifacts,omitempty"`
	Hooks       []HookDefinition          `yaml:"hooks,omitempty" json:"hooks,omitempty"`
	CLICommands []CommandDefinition       `yaml:"kit_cli_commands,omitempty" json:"kit_cli_commands,omitempty"`

	// Root is the directory the manifest was loaded from. Not serialized.
	Root string `yaml:"-" json:"-"`
}

// HookDefinition declares a hook a kit wants registered with the host runtime.
// Execution (and timeout enforcement) is the host's job; we only install.
type HookDefinition struct {
	ID          string `yaml:"id" json:"id"`
	Lifecycle   string `yaml:"lifecycle" json:"lifecycle"`
	Matcher     string `yaml:"matcher,omitempty" json:"matcher,omitempty"`
	Script      string `yaml:"script" json:"script"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Timeout     int    `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// CommandDefinition declares a CLI command a kit contributes. The downstream
// command loader resolves the kebab-case name to an exported function.
type CommandDefinition struct {
	Name        string `yaml:"name" json:"name"`
	Path        string `yaml:"path" json:"path"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

const (
	// DefaultMatcher is used when a hook omits its matcher
	DefaultMatcher = "*"

	// DefaultTimeout is the hook timeout in seconds when unset
	DefaultTimeout = 30

	// MinTimeout and MaxTimeout bound the accepted hook timeout range
	MinTimeout = 1
	MaxTimeout = 120
)

// Lifecycles is the closed, host-defined set of lifecycle events.
// These are opaque validated strings; this tool never dispatches them.
var Lifecycles = []string{
	"PreToolUse",
	"PostToolUse",
	"UserPromptSubmit",
	"SessionStart",
	"SessionEnd",
	"Stop",
	"SubagentStop",
	"PreCompact",
}

// ValidLifecycle reports whether name is a member of the host lifecycle set.
func ValidLifecycle(name string) bool {
	for _, l := range Lifecycles {
		if l == name {
			return true
		}
	}
	return false
}

var nameRe = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidName reports whether s is a well-formed kit name (lowercase kebab).
func ValidName(s string) bool {
	return nameRe.MatchString(s)
}

// LocalOwner is the owner recorded for artifacts that exist on disk but were
// not installed by any kit.
const LocalOwner = "local"

// InstalledArtifact is one file a kit placed into a scope.
type InstalledArtifact struct {
	Type      ArtifactType `json:"type"`
	Name      string       `json:"name"`
	Path      string       `json:"path"`
	IsSymlink bool         `json:"is_symlink"`
	Hash      string       `json:"hash,omitempty"` // sha256 of content at install time; empty for symlinks
}

// InstalledHook is the persisted form of a HookDefinition owned by a record.
type InstalledHook struct {
	ID          string `json:"id"`
	Lifecycle   string `json:"lifecycle"`
	Matcher     string `json:"matcher"`
	Script      string `json:"script"`
	Description string `json:"description,omitempty"`
	Timeout     int    `json:"timeout"`
}

// Record tracks one installed kit within a scope. It is created on install,
// replaced wholesale on upgrade, and deleted with all owned state on removal.
type Record struct {
	Name        string              `json:"name"`
	Version     string              `json:"version"`
	Source      string              `json:"source"`
	InstalledAt time.Time           `json:"installed_at"`
	DevMode     bool                `json:"dev_mode,omitempty"`
	Artifacts   []InstalledArtifact `json:"artifacts"`
	Hooks       []InstalledHook     `json:"hooks,omitempty"`
}

// FindArtifact returns the owned artifact with the given type and name, or nil.
func (r *Record) FindArtifact(t ArtifactType, name string) *InstalledArtifact {
	for i := range r.Artifacts {
		if r.Artifacts[i].Type == t && r.Artifacts[i].Name == name {
			return &r.Artifacts[i]
		}
	}
	return nil
}

// HookRef names a hook as "<kit>:<hook-id>".
func HookRef(kitName, hookID string) string {
	return fmt.Sprintf("%s:%s", kitName, hookID)
}

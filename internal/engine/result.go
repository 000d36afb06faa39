package engine

import (
	"fmt"
	"strings"

	"github.com/kennyg/kit/internal/kit"
	"github.com/kennyg/kit/internal/scope"
)

// FileStatus is the typed per-file outcome of an install or sync step.
// Symlink failure is not control flow here: a failed link degrades to
// StatusCopiedFallback with the reason attached.
type FileStatus string

const (
	StatusCopied         FileStatus = "copied"
	StatusSymlinked      FileStatus = "symlinked"
	StatusCopiedFallback FileStatus = "copied_fallback"
	StatusSkippedSymlink FileStatus = "skipped_symlink"
	StatusRefreshed      FileStatus = "refreshed"
	StatusUnchanged      FileStatus = "unchanged"
)

// FileResult reports what happened to one destination path.
type FileResult struct {
	Path   string     `json:"path"`
	Status FileStatus `json:"status"`
	Reason string     `json:"reason,omitempty"`
}

// InstallResult summarizes a completed install transaction.
type InstallResult struct {
	Kit                string       `json:"kit"`
	Version            string       `json:"version"`
	Scope              scope.Scope  `json:"scope"`
	ArtifactsInstalled int          `json:"artifacts_installed"`
	HooksInstalled     int          `json:"hooks_installed"`
	Files              []FileResult `json:"files"`
	Warnings           []string     `json:"warnings,omitempty"`
}

// RemoveResult summarizes a completed removal.
type RemoveResult struct {
	Kit              string      `json:"kit"`
	Version          string      `json:"version"`
	Scope            scope.Scope `json:"scope"`
	ArtifactsRemoved int         `json:"artifacts_removed"`
	HooksRemoved     int         `json:"hooks_removed"`
	Warnings         []string    `json:"warnings,omitempty"`
}

// KitSyncResult reports the per-file outcomes of syncing one dev-mode kit.
type KitSyncResult struct {
	Kit   string       `json:"kit"`
	Files []FileResult `json:"files"`
}

// SyncResult summarizes a sync pass over a scope.
type SyncResult struct {
	Scope scope.Scope     `json:"scope"`
	Kits  []KitSyncResult `json:"kits"`
}

// Collision is one artifact name already owned within the scope.
type Collision struct {
	Type  kit.ArtifactType `json:"type"`
	Name  string           `json:"name"`
	Owner string           `json:"owner"` // owning kit, or "local" for unmanaged files
}

// ConflictError aborts an install before any mutation when artifact names
// collide with another owner and force was not given.
type ConflictError struct {
	Collisions []Collision
}

func (e *ConflictError) Error() string {
	parts := make([]string, len(e.Collisions))
	for i, c := range e.Collisions {
		parts[i] = fmt.Sprintf("%s %q (owned by %s)", c.Type, c.Name, c.Owner)
	}
	return "artifact name collision: " + strings.Join(parts, ", ")
}

// NotFoundError is returned when removing a kit that is not installed.
type NotFoundError struct {
	Kit string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("kit %q is not installed", e.Kit)
}

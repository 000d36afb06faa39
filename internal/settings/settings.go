// Package settings models the shared hook-configuration document and the
// provenance-aware merge that installs and removals apply to it.
//
// The document on disk is JSON shaped as
//
//	{ "<lifecycle>": [ { "matcher": "...", "hooks": [ ... ] } ] }
//
// and is owned by whichever host runtime dispatches the hooks. This package
// only ever rewrites it whole, under the scope lock, via an atomic replace.
package settings

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kennyg/kit/internal/fsutil"
)

// Document maps a lifecycle event to its matcher groups.
type Document map[string][]MatcherGroup

// MatcherGroup holds every hook entry registered for one exact matcher
// string under a lifecycle. Matchers are compared literally: "*.py" and
// "**/*.py" are distinct groups even if the host treats them alike.
type MatcherGroup struct {
	Matcher string      `json:"matcher"`
	Hooks   []HookEntry `json:"hooks"`
}

// HookEntry is one registered hook command with its owning provenance.
type HookEntry struct {
	Type       string     `json:"type"`
	Command    string     `json:"command"`
	Timeout    int        `json:"timeout"`
	Provenance Provenance `json:"provenance"`
}

// Provenance records which kit hook owns an entry, enabling precise removal.
type Provenance struct {
	Kit  string `json:"kit_id"`
	Hook string `json:"hook_id"`
}

// EntryTypeCommand is the only entry type this tool writes.
const EntryTypeCommand = "command"

// Load reads the document at path. A missing file is an empty document.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, nil
		}
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed settings document %s: %w", path, err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Save writes the document atomically so concurrent readers never observe a
// partial write.
func Save(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return fsutil.WriteFileAtomic(path, data, 0o644)
}

// Clone returns a deep copy of the document. Merge operations work on a
// clone so a failed transaction never leaves a half-mutated document behind.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for lifecycle, groups := range d {
		cp := make([]MatcherGroup, len(groups))
		for i, g := range groups {
			cp[i] = MatcherGroup{
				Matcher: g.Matcher,
				Hooks:   append([]HookEntry(nil), g.Hooks...),
			}
		}
		out[lifecycle] = cp
	}
	return out
}

// Entries returns every entry in the document with its lifecycle and
// matcher, in document order. Read-only helper for listing and validation.
func (d Document) Entries() []PlacedEntry {
	var out []PlacedEntry
	for lifecycle, groups := range d {
		for _, g := range groups {
			for _, e := range g.Hooks {
				out = append(out, PlacedEntry{Lifecycle: lifecycle, Matcher: g.Matcher, Entry: e})
			}
		}
	}
	return out
}

// PlacedEntry is a hook entry together with its position in the document.
type PlacedEntry struct {
	Lifecycle string
	Matcher   string
	Entry     HookEntry
}

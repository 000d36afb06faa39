// Package state persists the installed-kit record store for a scope.
//
// The store and the scope's settings document are always mutated together
// under the scope lock, never independently; callers go through the engine
// for any write.
package state

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kennyg/kit/internal/fsutil"
	"github.com/kennyg/kit/internal/kit"
)

// State is the on-disk record store: one Record per installed kit.
type State struct {
	Version string       `json:"version"`
	Kits    []kit.Record `json:"kits"`
}

// Store loads and saves a scope's record store. It is a plain repository
// over externally-owned shared state; locking is the caller's job.
type Store struct {
	path string
}

// NewStore returns a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the store. A missing file is an empty store.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{Version: "1"}, nil
		}
		return nil, err
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("malformed record store %s: %w", s.path, err)
	}
	return &st, nil
}

// Save writes the store atomically.
func (s *Store) Save(st *State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return fsutil.WriteFileAtomic(s.path, data, 0o644)
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Find returns the record for the named kit, or nil.
func (st *State) Find(name string) *kit.Record {
	for i := range st.Kits {
		if st.Kits[i].Name == name {
			return &st.Kits[i]
		}
	}
	return nil
}

// Upsert replaces the record for rec.Name, or appends it.
func (st *State) Upsert(rec kit.Record) {
	for i := range st.Kits {
		if st.Kits[i].Name == rec.Name {
			st.Kits[i] = rec
			return
		}
	}
	st.Kits = append(st.Kits, rec)
}

// Remove deletes the record for the named kit. Returns false if absent.
func (st *State) Remove(name string) bool {
	for i := range st.Kits {
		if st.Kits[i].Name == name {
			st.Kits = append(st.Kits[:i], st.Kits[i+1:]...)
			return true
		}
	}
	return false
}

// OwnerOf returns the name of the kit owning the (type, name) artifact key,
// or "" if no installed kit owns it.
func (st *State) OwnerOf(t kit.ArtifactType, name string) string {
	for i := range st.Kits {
		if st.Kits[i].FindArtifact(t, name) != nil {
			return st.Kits[i].Name
		}
	}
	return ""
}

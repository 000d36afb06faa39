package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kennyg/kit/internal/kit"
)

func TestLoad_NewFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "installed.json"))

	st, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if st.Version != "1" {
		t.Errorf("Version = %v, want 1", st.Version)
	}
	if len(st.Kits) != 0 {
		t.Errorf("Kits = %v, want empty", st.Kits)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installed.json")
	store := NewStore(path)

	st := &State{
		Version: "1",
		Kits: []kit.Record{
			{
				Name:        "alpha",
				Version:     "1.0.0",
				Source:      "/src/alpha",
				InstalledAt: time.Now(),
				Artifacts: []kit.InstalledArtifact{
					{Type: kit.TypeSkill, Name: "greet", Path: "/scope/skills/greet/SKILL.md"},
				},
			},
		},
	}

	if err := store.Save(st); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("store file was not created")
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded.Kits) != 1 {
		t.Fatalf("Kits len = %d, want 1", len(loaded.Kits))
	}
	if loaded.Kits[0].Name != "alpha" {
		t.Errorf("Name = %v, want alpha", loaded.Kits[0].Name)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installed.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewStore(path).Load(); err == nil {
		t.Fatal("Load() succeeded on malformed store")
	}
}

func TestState_Upsert(t *testing.T) {
	st := &State{Version: "1"}
	st.Upsert(kit.Record{Name: "alpha", Version: "1.0.0"})
	st.Upsert(kit.Record{Name: "alpha", Version: "1.1.0"})

	if len(st.Kits) != 1 {
		t.Fatalf("Kits len = %d, want 1", len(st.Kits))
	}
	if st.Kits[0].Version != "1.1.0" {
		t.Errorf("Version = %v, want 1.1.0 (record replaced on upgrade)", st.Kits[0].Version)
	}
}

func TestState_Remove(t *testing.T) {
	st := &State{Version: "1", Kits: []kit.Record{{Name: "alpha"}, {Name: "beta"}}}

	if !st.Remove("alpha") {
		t.Error("Remove(alpha) = false, want true")
	}
	if st.Remove("alpha") {
		t.Error("second Remove(alpha) = true, want false")
	}
	if len(st.Kits) != 1 || st.Kits[0].Name != "beta" {
		t.Errorf("Kits = %v, want [beta]", st.Kits)
	}
}

func TestState_OwnerOf(t *testing.T) {
	st := &State{Version: "1", Kits: []kit.Record{
		{Name: "alpha", Artifacts: []kit.InstalledArtifact{
			{Type: kit.TypeSkill, Name: "greet"},
		}},
	}}

	if got := st.OwnerOf(kit.TypeSkill, "greet"); got != "alpha" {
		t.Errorf("OwnerOf = %q, want alpha", got)
	}
	if got := st.OwnerOf(kit.TypeCommand, "greet"); got != "" {
		t.Errorf("OwnerOf wrong type = %q, want empty", got)
	}
	if got := st.OwnerOf(kit.TypeSkill, "other"); got != "" {
		t.Errorf("OwnerOf unknown = %q, want empty", got)
	}
}

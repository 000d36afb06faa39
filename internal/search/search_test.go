package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kennyg/kit/internal/kit"
	"github.com/kennyg/kit/internal/scope"
)

func writeSkill(t *testing.T, p *scope.Paths, dir, name, description string) string {
	t.Helper()
	path := filepath.Join(p.ArtifactDir(kit.TypeSkill), dir, "SKILL.md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "---\nname: " + name + "\ndescription: " + description + "\nkit: alpha\n---\n\n# " + name + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildAndSearch(t *testing.T) {
	p := scope.ForProjectAt(t.TempDir())
	if err := p.EnsureDirs(); err != nil {
		t.Fatal(err)
	}
	writeSkill(t, p, "greet", "greet", "Say hello in many languages")
	writeSkill(t, p, "review", "review", "Review pull requests for style issues")

	idx := Build(p)
	if got, want := len(idx.Entries), 2; got != want {
		t.Fatalf("indexed %d entries, want %d", got, want)
	}

	results := Search(idx, "hello")
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if got, want := results[0].Entry.Name, "greet"; got != want {
		t.Errorf("top result = %q, want %q", got, want)
	}
	if got, want := results[0].Entry.Kit, "alpha"; got != want {
		t.Errorf("owner = %q, want %q", got, want)
	}
}

func TestSearch_RanksNameMatchFirst(t *testing.T) {
	p := scope.ForProjectAt(t.TempDir())
	if err := p.EnsureDirs(); err != nil {
		t.Fatal(err)
	}
	writeSkill(t, p, "deploy", "deploy", "Ship a release to production")
	writeSkill(t, p, "rollback", "rollback", "Undo a bad deploy quickly")

	results := Search(Build(p), "deploy")
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if got, want := results[0].Entry.Name, "deploy"; got != want {
		t.Errorf("top result = %q, want %q", got, want)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("name match score %d not above description match %d",
			results[0].Score, results[1].Score)
	}
}

func TestEnsure_RebuildsWhenStale(t *testing.T) {
	p := scope.ForProjectAt(t.TempDir())
	if err := p.EnsureDirs(); err != nil {
		t.Fatal(err)
	}
	writeSkill(t, p, "greet", "greet", "Say hello")

	idx, err := Ensure(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(idx.Entries) != 1 {
		t.Fatalf("indexed %d entries, want 1", len(idx.Entries))
	}
	if _, err := os.Stat(filepath.Join(p.Root, IndexFilename)); err != nil {
		t.Fatalf("index cache not written: %v", err)
	}

	// a new artifact invalidates the cache
	writeSkill(t, p, "review", "review", "Review code")
	if !Stale(p, idx) {
		t.Fatal("index should be stale after adding an artifact")
	}

	idx, err = Ensure(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(idx.Entries) != 2 {
		t.Fatalf("rebuilt index has %d entries, want 2", len(idx.Entries))
	}
	if Stale(p, idx) {
		t.Fatal("fresh index reported stale")
	}
}

func TestStale_RemovedArtifact(t *testing.T) {
	p := scope.ForProjectAt(t.TempDir())
	if err := p.EnsureDirs(); err != nil {
		t.Fatal(err)
	}
	path := writeSkill(t, p, "greet", "greet", "Say hello")

	idx := Build(p)
	if Stale(p, idx) {
		t.Fatal("fresh index reported stale")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if !Stale(p, idx) {
		t.Fatal("index should be stale after removing an artifact")
	}
}

func TestSearch_NilIndex(t *testing.T) {
	if got := Search(nil, "anything"); got != nil {
		t.Errorf("Search(nil) = %v, want nil", got)
	}
}

func TestExtractKeywords(t *testing.T) {
	got := extractKeywords("Review pull requests for style issues, and review again")
	want := map[string]bool{"review": true, "pull": true, "requests": true, "style": true, "issues": true, "again": true}
	if len(got) != len(want) {
		t.Fatalf("keywords = %v, want %d distinct", got, len(want))
	}
	for _, kw := range got {
		if !want[kw] {
			t.Errorf("unexpected keyword %q", kw)
		}
	}
}

package resolve

import (
	"path/filepath"
	"testing"

	"github.com/kennyg/kit/internal/kit"
	"github.com/kennyg/kit/internal/scope"
)

func TestArtifactName(t *testing.T) {
	tests := []struct {
		rel, want string
	}{
		{"greet/SKILL.md", "greet"},
		{"greet/reference/usage.md", "greet"},
		{"deploy.md", "deploy"},
		{"fmt.sh", "fmt"},
		{"./greet/SKILL.md", "greet"},
	}
	for _, tt := range tests {
		if got := ArtifactName(tt.rel); got != tt.want {
			t.Errorf("ArtifactName(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}

func TestOne(t *testing.T) {
	p := scope.ForProjectAt("/proj")
	m := &kit.Manifest{Name: "alpha", Version: "1.0.0", Root: "/src/alpha"}

	res := One(m, kit.TypeSkill, "greet/SKILL.md", p)

	if res.Name != "greet" {
		t.Errorf("Name = %q, want greet", res.Name)
	}
	if res.Source != filepath.Join("/src/alpha", "greet/SKILL.md") {
		t.Errorf("Source = %q", res.Source)
	}
	want := filepath.Join("/proj", scope.ProjectDirName, kit.SkillsDirName, "greet/SKILL.md")
	if res.Dest != want {
		t.Errorf("Dest = %q, want %q", res.Dest, want)
	}
	if res.KitName != "alpha" || res.KitVersion != "1.0.0" {
		t.Errorf("provenance = %s@%s, want alpha@1.0.0", res.KitName, res.KitVersion)
	}
}

func TestAll_OrderAndHookScripts(t *testing.T) {
	p := scope.ForProjectAt("/proj")
	m := &kit.Manifest{
		Name:    "alpha",
		Version: "1.0.0",
		Root:    "/src/alpha",
		Artifacts: map[kit.ArtifactType][]string{
			kit.TypeSkill:   {"greet/SKILL.md"},
			kit.TypeCommand: {"deploy.md"},
		},
		Hooks: []kit.HookDefinition{
			{ID: "fmt", Lifecycle: "PostToolUse", Script: "scripts/fmt.sh"},
		},
	}

	all := All(m, p)
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	// artifact types resolve in declaration order, hook scripts last
	if all[0].Type != kit.TypeSkill || all[1].Type != kit.TypeCommand {
		t.Errorf("order = %v, %v", all[0].Type, all[1].Type)
	}
	last := all[2]
	if last.Type != kit.TypeHook || !last.FromHook {
		t.Errorf("hook script = %+v, want TypeHook with FromHook", last)
	}
	if last.Dest != filepath.Join(p.Root, kit.HooksDirName, "scripts/fmt.sh") {
		t.Errorf("hook dest = %q", last.Dest)
	}
}

package provenance

import (
	"strings"
	"testing"
)

func TestStamp_NoFrontmatter(t *testing.T) {
	out, err := Stamp([]byte("# Greet\n\nSay hello.\n"), "alpha", "1.0.0")
	if err != nil {
		t.Fatalf("Stamp() error = %v", err)
	}

	kitName, version := Read(out)
	if kitName != "alpha" || version != "1.0.0" {
		t.Errorf("Read = %s@%s, want alpha@1.0.0", kitName, version)
	}
	if !strings.Contains(string(out), "# Greet") {
		t.Error("body lost during stamp")
	}
}

func TestStamp_PreservesExistingFrontmatter(t *testing.T) {
	content := "---\ndescription: greets the user\nglobs:\n  - \"*.go\"\n---\n# Greet\n"
	out, err := Stamp([]byte(content), "alpha", "1.1.0")
	if err != nil {
		t.Fatalf("Stamp() error = %v", err)
	}

	s := string(out)
	if !strings.Contains(s, "description: greets the user") {
		t.Error("existing frontmatter field lost")
	}
	if !strings.Contains(s, "# Greet") {
		t.Error("body lost")
	}

	kitName, version := Read(out)
	if kitName != "alpha" || version != "1.1.0" {
		t.Errorf("Read = %s@%s, want alpha@1.1.0", kitName, version)
	}
}

func TestStamp_Restamp(t *testing.T) {
	first, err := Stamp([]byte("body\n"), "alpha", "1.0.0")
	if err != nil {
		t.Fatal(err)
	}
	second, err := Stamp(first, "alpha", "2.0.0")
	if err != nil {
		t.Fatal(err)
	}

	_, version := Read(second)
	if version != "2.0.0" {
		t.Errorf("version = %q, want 2.0.0 (restamp replaces, not appends)", version)
	}
	if strings.Count(string(second), "kit_version") != 1 {
		t.Errorf("duplicate stamp keys in %q", second)
	}
}

func TestRead_Unstamped(t *testing.T) {
	kitName, version := Read([]byte("plain text, no frontmatter"))
	if kitName != "" || version != "" {
		t.Errorf("Read = %q,%q, want empty", kitName, version)
	}
}

func TestStampable(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"greet/SKILL.md", true},
		{"DOC.MD", true},
		{"fmt.sh", false},
		{"tool.go", false},
	}
	for _, tt := range tests {
		if got := Stampable(tt.path); got != tt.want {
			t.Errorf("Stampable(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

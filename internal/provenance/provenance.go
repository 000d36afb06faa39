// Package provenance stamps and reads ownership metadata on copied
// markdown artifacts. Symlinked files are never stamped (writing through
// the link would edit the kit's source), so for those the installed-kit
// record is the only carrier; the record is authoritative either way and
// the stamp is advisory.
package provenance

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keys injected into artifact frontmatter on copy-mode installs.
const (
	KeyKit     = "kit"
	KeyVersion = "kit_version"
)

// Stamp returns content with kit/kit_version frontmatter keys set,
// preserving any existing frontmatter fields and the body untouched.
func Stamp(content []byte, kitName, version string) ([]byte, error) {
	fm, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}
	fm[KeyKit] = kitName
	fm[KeyVersion] = version

	yamlBytes, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("serializing frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(yamlBytes)
	b.WriteString("---\n")
	if body != "" {
		b.WriteString(body)
	}
	return []byte(b.String()), nil
}

// Read extracts the stamped kit name and version from content. Both are
// empty when the content carries no stamp.
func Read(content []byte) (kitName, version string) {
	fm, _, err := splitFrontmatter(content)
	if err != nil {
		return "", ""
	}
	kitName, _ = fm[KeyKit].(string)
	version, _ = fm[KeyVersion].(string)
	return kitName, version
}

// Stampable reports whether a file should carry an in-content stamp.
// Only markdown artifacts are stamped; scripts and binaries are left alone.
func Stampable(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".md")
}

// splitFrontmatter extracts YAML frontmatter from content, returning the
// parsed map and the body. Content without a frontmatter block yields an
// empty map and the full text as body.
func splitFrontmatter(content []byte) (map[string]interface{}, string, error) {
	text := string(content)
	fm := make(map[string]interface{})

	if !strings.HasPrefix(text, "---") {
		return fm, text, nil
	}

	rest := strings.TrimPrefix(text[3:], "\n")
	idx := strings.Index(rest, "\n---")
	if idx == -1 {
		return fm, text, nil
	}

	yamlContent := rest[:idx]
	body := strings.TrimPrefix(rest[idx+4:], "\n")

	if err := yaml.Unmarshal([]byte(yamlContent), &fm); err != nil {
		return nil, "", fmt.Errorf("parsing frontmatter: %w", err)
	}

	return fm, body, nil
}

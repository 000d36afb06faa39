// Package search maintains a keyword index over installed markdown
// artifacts so kits can be found by what they do, not just by name. The
// index is a per-scope cache file rebuilt whenever an artifact's mtime
// disagrees with it.
package search

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kennyg/kit/internal/kit"
	"github.com/kennyg/kit/internal/provenance"
	"github.com/kennyg/kit/internal/scope"
)

// IndexFilename is the per-scope cache file, stored at the scope root.
const IndexFilename = ".search-index"

// Index is the serialized per-scope search index.
type Index struct {
	Generated time.Time `yaml:"generated"`
	Entries   []Entry   `yaml:"entries"`
}

// Entry is one indexed artifact.
type Entry struct {
	Kit         string           `yaml:"kit" json:"kit"`
	Type        kit.ArtifactType `yaml:"type" json:"type"`
	Name        string           `yaml:"name" json:"name"`
	Path        string           `yaml:"path" json:"path"`
	Description string           `yaml:"description,omitempty" json:"description,omitempty"`
	Keywords    []string         `yaml:"keywords,omitempty" json:"-"`
	ModTime     int64            `yaml:"mod_time" json:"-"`
}

// frontmatter is the subset of artifact frontmatter the index cares about.
type frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "was": true,
	"are": true, "were": true, "been": true, "be": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true, "must": true,
	"this": true, "that": true, "these": true, "those": true, "it": true,
	"its": true, "when": true, "needs": true, "use": true,
	"using": true, "used": true, "can": true, "any": true, "other": true,
}

// Load reads the scope's index, or returns nil if none exists yet.
func Load(p *scope.Paths) (*Index, error) {
	data, err := os.ReadFile(filepath.Join(p.Root, IndexFilename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var idx Index
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// Save writes the scope's index.
func Save(p *scope.Paths, idx *Index) error {
	data, err := yaml.Marshal(idx)
	if err != nil {
		return err
	}
	header := "# search index, auto-generated; do not edit\n"
	return os.WriteFile(filepath.Join(p.Root, IndexFilename), append([]byte(header), data...), 0o644)
}

// Stale reports whether any indexable artifact disagrees with the index.
func Stale(p *scope.Paths, idx *Index) bool {
	if idx == nil {
		return true
	}

	indexed := make(map[string]int64, len(idx.Entries))
	for _, e := range idx.Entries {
		indexed[e.Path] = e.ModTime
	}

	stale := false
	walkArtifacts(p, func(typ kit.ArtifactType, path string, info fs.FileInfo) {
		mod, ok := indexed[path]
		if !ok || mod != info.ModTime().Unix() {
			stale = true
		}
		delete(indexed, path)
	})

	// entries whose files are gone also invalidate the index
	return stale || len(indexed) > 0
}

// Build scans the scope's artifact directories and produces a fresh index.
func Build(p *scope.Paths) *Index {
	idx := &Index{Generated: time.Now(), Entries: []Entry{}}

	walkArtifacts(p, func(typ kit.ArtifactType, path string, info fs.FileInfo) {
		entry, err := indexFile(typ, path, info)
		if err != nil {
			return
		}
		idx.Entries = append(idx.Entries, *entry)
	})

	return idx
}

// Ensure returns a current index for the scope, rebuilding and persisting
// it when stale. A failed cache write is not fatal; the fresh index is
// still returned.
func Ensure(p *scope.Paths) (*Index, error) {
	idx, err := Load(p)
	if err != nil {
		return nil, err
	}
	if !Stale(p, idx) {
		return idx, nil
	}

	idx = Build(p)
	// a failed cache write only costs a rebuild next time
	_ = Save(p, idx)
	return idx, nil
}

// walkArtifacts visits every indexable markdown file in the scope.
func walkArtifacts(p *scope.Paths, visit func(kit.ArtifactType, string, fs.FileInfo)) {
	for _, typ := range []kit.ArtifactType{kit.TypeSkill, kit.TypeCommand, kit.TypeAgent, kit.TypeDoc} {
		dir := p.ArtifactDir(typ)
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if !strings.EqualFold(filepath.Ext(path), ".md") {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			visit(typ, path, info)
			return nil
		})
	}
}

func indexFile(typ kit.ArtifactType, path string, info fs.FileInfo) (*Entry, error) {
	fm, err := parseFrontmatter(path)
	if err != nil {
		fm = &frontmatter{}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	owner, _ := provenance.Read(content)

	name := fm.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if strings.EqualFold(filepath.Base(path), "SKILL.md") {
			name = filepath.Base(filepath.Dir(path))
		}
	}

	return &Entry{
		Kit:         owner,
		Type:        typ,
		Name:        name,
		Path:        path,
		Description: fm.Description,
		Keywords:    extractKeywords(fm.Description),
		ModTime:     info.ModTime().Unix(),
	}, nil
}

func parseFrontmatter(path string) (*frontmatter, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return nil, os.ErrNotExist
	}

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			break
		}
		lines = append(lines, line)
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(strings.Join(lines, "\n")), &fm); err != nil {
		return nil, err
	}
	return &fm, nil
}

var nonWord = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

func extractKeywords(description string) []string {
	normalized := nonWord.ReplaceAllString(strings.ToLower(description), " ")

	seen := make(map[string]bool)
	var keywords []string
	for _, word := range strings.Fields(normalized) {
		if len(word) < 3 || stopwords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}
	return keywords
}

// Result is one scored match.
type Result struct {
	Entry Entry `json:"entry"`
	Score int   `json:"score"`
}

// Search ranks index entries against the query, best first. Ties keep
// index order, which follows artifact type then path.
func Search(idx *Index, query string) []Result {
	if idx == nil || len(idx.Entries) == 0 {
		return nil
	}

	words := strings.Fields(strings.ToLower(query))
	var results []Result
	for _, e := range idx.Entries {
		if score := scoreMatch(e, words); score > 0 {
			results = append(results, Result{Entry: e, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func scoreMatch(e Entry, queryWords []string) int {
	score := 0
	nameLower := strings.ToLower(e.Name)
	descLower := strings.ToLower(e.Description)

	for _, qw := range queryWords {
		switch {
		case nameLower == qw:
			score += 100
		case strings.Contains(nameLower, qw):
			score += 50
		}
		if strings.Contains(descLower, qw) {
			score += 10
		}
		if strings.ToLower(e.Kit) == qw {
			score += 30
		}
		for _, kw := range e.Keywords {
			if kw == qw {
				score += 20
			} else if strings.Contains(kw, qw) {
				score += 5
			}
		}
	}
	return score
}

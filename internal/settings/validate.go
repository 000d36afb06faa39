package settings

import (
	"fmt"

	"github.com/kennyg/kit/internal/kit"
)

// Issue is one structural problem found in a settings document.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Validate checks the document's structure: required fields, timeout range,
// lifecycle membership. It never mutates and never stops early; every issue
// found is returned.
func Validate(doc Document) []Issue {
	var issues []Issue
	for lifecycle, groups := range doc {
		if !kit.ValidLifecycle(lifecycle) {
			issues = append(issues, Issue{
				Path:    lifecycle,
				Message: "not a recognized lifecycle event",
			})
		}
		for gi, g := range groups {
			gpath := fmt.Sprintf("%s[%d]", lifecycle, gi)
			if g.Matcher == "" {
				issues = append(issues, Issue{Path: gpath, Message: "empty matcher"})
			}
			if len(g.Hooks) == 0 {
				issues = append(issues, Issue{Path: gpath, Message: "group has no hooks"})
			}
			for ei, e := range g.Hooks {
				epath := fmt.Sprintf("%s.hooks[%d]", gpath, ei)
				if e.Type != EntryTypeCommand {
					issues = append(issues, Issue{Path: epath, Message: fmt.Sprintf("unknown entry type %q", e.Type)})
				}
				if e.Command == "" {
					issues = append(issues, Issue{Path: epath, Message: "empty command"})
				}
				if e.Timeout < kit.MinTimeout || e.Timeout > kit.MaxTimeout {
					issues = append(issues, Issue{
						Path:    epath,
						Message: fmt.Sprintf("timeout %d outside range [%d,%d]", e.Timeout, kit.MinTimeout, kit.MaxTimeout),
					})
				}
				if e.Provenance.Kit == "" || e.Provenance.Hook == "" {
					issues = append(issues, Issue{Path: epath, Message: "missing provenance"})
				}
			}
		}
	}
	return issues
}

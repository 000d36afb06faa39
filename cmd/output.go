package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/kennyg/kit/internal/kit"
	"github.com/kennyg/kit/internal/scope"
	"github.com/kennyg/kit/internal/ui"
)

// resolveScope picks the target scope: --project wins, otherwise user.
func resolveScope(project bool) (*scope.Paths, error) {
	if project {
		return scope.ForProject()
	}
	return scope.ForUser()
}

// resolveScopeFlags validates an explicit --user/--project pair before
// resolving; asking for both is an error rather than a silent default.
func resolveScopeFlags(user, project bool) (*scope.Paths, error) {
	if user && project {
		return nil, errors.New("--user and --project are mutually exclusive")
	}
	return resolveScope(project)
}

// emitJSON writes the machine-readable result document to stdout. Human
// output goes to stderr when JSON mode is on, so the two streams never mix.
func emitJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		exitWithError(err.Error())
	}
}

// humanOut returns the stream for styled human output: stderr in JSON mode
// so stdout stays machine-parseable.
func humanOut(jsonMode bool) *os.File {
	if jsonMode {
		return os.Stderr
	}
	return os.Stdout
}

// getBadge returns the styled badge for an artifact type
func getBadge(t kit.ArtifactType) string {
	switch t {
	case kit.TypeSkill:
		return ui.SkillBadge()
	case kit.TypeCommand:
		return ui.CmdBadge()
	case kit.TypeAgent:
		return ui.AgentBadge()
	case kit.TypeHook:
		return ui.HookBadge()
	case kit.TypeDoc:
		return ui.DocBadge()
	}
	return fmt.Sprintf("[%s]", t)
}

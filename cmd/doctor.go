package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kennyg/kit/internal/engine"
	"github.com/kennyg/kit/internal/scope"
	"github.com/kennyg/kit/internal/settings"
	"github.com/kennyg/kit/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check scope integrity",
	Long: `Run read-only integrity checks over each scope: settings document
structure, hook provenance against installed kits, and owned artifact
files (missing files, dangling symlinks).`,
	Run: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	fmt.Println()
	fmt.Println(ui.SectionHeader("Diagnosing"))
	fmt.Println()

	healthy := true
	for _, s := range []scope.Scope{scope.User, scope.Project} {
		paths, err := scope.For(s)
		if err != nil || !paths.Exists() {
			fmt.Println(ui.Muted.Render(fmt.Sprintf("  %s scope: not initialized", s)))
			continue
		}

		eng := engine.New(paths)

		var issues []settings.Issue
		docIssues, err := eng.Validate()
		if err != nil {
			exitWithError(err.Error())
		}
		issues = append(issues, docIssues...)

		fileIssues, err := eng.CheckArtifacts()
		if err != nil {
			exitWithError(err.Error())
		}
		issues = append(issues, fileIssues...)

		if len(issues) == 0 {
			fmt.Println(ui.SuccessLine(fmt.Sprintf("%s scope: healthy", s)))
			continue
		}

		healthy = false
		fmt.Println(ui.WarningLine(fmt.Sprintf("%s scope: %d issue(s)", s, len(issues))))
		for _, issue := range issues {
			fmt.Println(ui.Muted.Render("    " + issue.String()))
		}
	}

	fmt.Println()
	if !healthy {
		exitWithError("integrity issues found")
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kennyg/kit/internal/kit"
	"github.com/kennyg/kit/internal/scope"
	"github.com/kennyg/kit/internal/state"
	"github.com/kennyg/kit/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List installed kits",
	Long:    `Display installed kits from both scopes. Project-scope kits take precedence.`,
	Run:     runList,
}

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Emit the result as JSON on stdout")
}

// listedKit tracks a kit record and where it came from
type listedKit struct {
	kit.Record
	Scope    scope.Scope `json:"scope"`
	InEffect bool        `json:"in_effect"`
}

func runList(cmd *cobra.Command, args []string) {
	var all []listedKit
	seen := make(map[string]bool)

	// Project-local kits take precedence over user-wide ones.
	if projPaths, err := scope.ForProject(); err == nil && projPaths.Exists() {
		if st, err := state.NewStore(projPaths.StateFile).Load(); err == nil {
			for _, rec := range st.Kits {
				seen[rec.Name] = true
				all = append(all, listedKit{Record: rec, Scope: scope.Project, InEffect: true})
			}
		}
	}

	userPaths, err := scope.ForUser()
	if err != nil {
		exitWithError(err.Error())
	}
	userState, err := state.NewStore(userPaths.StateFile).Load()
	if err != nil {
		exitWithError(err.Error())
	}
	for _, rec := range userState.Kits {
		all = append(all, listedKit{Record: rec, Scope: scope.User, InEffect: !seen[rec.Name]})
	}

	if listJSON {
		emitJSON(all)
		return
	}

	if len(all) == 0 {
		fmt.Println()
		fmt.Println(ui.Muted.Render("  No kits installed."))
		fmt.Println(ui.Muted.Render("  Use `kit install <path>` to begin."))
		fmt.Println()
		return
	}

	fmt.Println()
	fmt.Println(ui.SectionHeader("Installed kits"))
	fmt.Println()

	for _, k := range all {
		marker := "  "
		if !k.InEffect {
			marker = ui.Muted.Render("· ")
		}
		mode := ""
		if k.DevMode {
			mode = ui.Info.Render(" [dev]")
		}
		fmt.Printf("%s%s %s %s%s\n",
			marker,
			ui.Highlight.Render(k.Name),
			ui.Muted.Render("v"+k.Version),
			ui.Muted.Render(string(k.Scope)),
			mode)
		fmt.Println(ui.Muted.Render(fmt.Sprintf("    %d artifacts, %d hooks", len(k.Artifacts), len(k.Hooks))))
	}
	fmt.Println()
}

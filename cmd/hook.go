package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kennyg/kit/internal/engine"
	"github.com/kennyg/kit/internal/settings"
	"github.com/kennyg/kit/internal/state"
	"github.com/kennyg/kit/internal/ui"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Inspect and validate installed hooks",
}

var hookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed hooks",
	Run:   runHookList,
}

var hookShowCmd = &cobra.Command{
	Use:   "show <kit:hook>",
	Short: "Show one hook's details",
	Args:  cobra.ExactArgs(1),
	Run:   runHookShow,
}

var hookValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the scope's hook settings",
	Long: `Check the settings document structurally and verify every entry's
provenance points at a currently-installed kit hook. Read-only: issues
are reported, nothing is changed.`,
	Run: runHookValidate,
}

var (
	hookProject bool
	hookJSON    bool
)

func init() {
	for _, c := range []*cobra.Command{hookListCmd, hookShowCmd, hookValidateCmd} {
		c.Flags().BoolVar(&hookProject, "project", false, "Use the project scope")
		c.Flags().BoolVar(&hookJSON, "json", false, "Emit the result as JSON on stdout")
	}
	hookCmd.AddCommand(hookListCmd)
	hookCmd.AddCommand(hookShowCmd)
	hookCmd.AddCommand(hookValidateCmd)
}

func runHookList(cmd *cobra.Command, args []string) {
	paths, err := resolveScope(hookProject)
	if err != nil {
		exitWithError(err.Error())
	}

	st, err := state.NewStore(paths.StateFile).Load()
	if err != nil {
		exitWithError(err.Error())
	}

	if hookJSON {
		type listed struct {
			Kit       string `json:"kit"`
			ID        string `json:"id"`
			Lifecycle string `json:"lifecycle"`
			Matcher   string `json:"matcher"`
			Timeout   int    `json:"timeout"`
		}
		var out []listed
		for _, rec := range st.Kits {
			for _, h := range rec.Hooks {
				out = append(out, listed{Kit: rec.Name, ID: h.ID, Lifecycle: h.Lifecycle, Matcher: h.Matcher, Timeout: h.Timeout})
			}
		}
		emitJSON(out)
		return
	}

	fmt.Println()
	any := false
	for _, rec := range st.Kits {
		for _, h := range rec.Hooks {
			any = true
			fmt.Printf("  %s %s\n", ui.HookBadge(), ui.Highlight.Render(rec.Name+":"+h.ID))
			fmt.Println(ui.Muted.Render(fmt.Sprintf("    %s / %q, %ds timeout", h.Lifecycle, h.Matcher, h.Timeout)))
		}
	}
	if !any {
		fmt.Println(ui.Muted.Render("  No hooks installed."))
	}
	fmt.Println()
}

func runHookShow(cmd *cobra.Command, args []string) {
	ref := args[0]
	kitName, hookID, ok := strings.Cut(ref, ":")
	if !ok {
		exitWithError("expected <kit>:<hook-id>")
	}

	paths, err := resolveScope(hookProject)
	if err != nil {
		exitWithError(err.Error())
	}

	st, err := state.NewStore(paths.StateFile).Load()
	if err != nil {
		exitWithError(err.Error())
	}

	rec := st.Find(kitName)
	if rec == nil {
		exitWithError(fmt.Sprintf("kit '%s' is not installed in the %s scope", kitName, paths.Scope))
	}

	for _, h := range rec.Hooks {
		if h.ID != hookID {
			continue
		}
		if hookJSON {
			emitJSON(h)
			return
		}
		fmt.Println()
		fmt.Printf("  %s %s\n", ui.HookBadge(), ui.Highlight.Render(ref))
		fmt.Println(ui.Muted.Render("    Lifecycle: " + h.Lifecycle))
		fmt.Println(ui.Muted.Render("    Matcher:   " + h.Matcher))
		fmt.Println(ui.Muted.Render("    Script:    " + h.Script))
		fmt.Println(ui.Muted.Render(fmt.Sprintf("    Timeout:   %ds", h.Timeout)))
		if h.Description != "" {
			fmt.Println(ui.Muted.Render("    " + h.Description))
		}
		fmt.Println()
		return
	}

	exitWithError(fmt.Sprintf("hook '%s' not found in kit '%s'", hookID, kitName))
}

func runHookValidate(cmd *cobra.Command, args []string) {
	paths, err := resolveScope(hookProject)
	if err != nil {
		exitWithError(err.Error())
	}

	issues, err := engine.New(paths).Validate()
	if err != nil {
		exitWithError(err.Error())
	}

	if hookJSON {
		if issues == nil {
			issues = []settings.Issue{}
		}
		emitJSON(issues)
		if len(issues) > 0 {
			os.Exit(1)
		}
		return
	}

	if len(issues) == 0 {
		fmt.Println(ui.SuccessLine("settings document is valid"))
		return
	}
	for _, issue := range issues {
		fmt.Println(ui.WarningLine(issue.String()))
	}
	exitWithError(fmt.Sprintf("%d issue(s) found", len(issues)))
}

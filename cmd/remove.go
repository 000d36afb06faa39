package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kennyg/kit/internal/engine"
	"github.com/kennyg/kit/internal/ui"
)

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm", "uninstall"},
	Short:   "Remove an installed kit",
	Long: `Remove a kit and everything it owns: artifacts, hook entries, and
the install record. Files the kit placed are deleted even if they were
edited after install; a warning is printed for each one.

Examples:
  kit remove alpha
  kit remove alpha --project`,
	Args: cobra.ExactArgs(1),
	Run:  runRemove,
}

var (
	removeProject bool
	removeJSON    bool
)

func init() {
	removeCmd.Flags().BoolVar(&removeProject, "project", false, "Remove from the project scope")
	removeCmd.Flags().BoolVar(&removeJSON, "json", false, "Emit the result as JSON on stdout")
}

func runRemove(cmd *cobra.Command, args []string) {
	name := args[0]

	paths, err := resolveScope(removeProject)
	if err != nil {
		exitWithError(err.Error())
	}

	out := humanOut(removeJSON)

	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.Title.Render("  Removing "+name))
	fmt.Fprintln(out)

	eng := engine.New(paths)
	result, err := eng.Remove(name)
	if err != nil {
		var nf *engine.NotFoundError
		if errors.As(err, &nf) {
			exitWithError(fmt.Sprintf("kit '%s' is not installed in the %s scope", name, paths.Scope))
		}
		exitWithError(err.Error())
	}

	for _, w := range result.Warnings {
		fmt.Fprintln(out, ui.WarningLine(w))
	}

	fmt.Fprintln(out, ui.Success.Render(fmt.Sprintf("  Removed %s@%s (%d artifacts, %d hooks).",
		result.Kit, result.Version, result.ArtifactsRemoved, result.HooksRemoved)))
	fmt.Fprintln(out)

	if removeJSON {
		emitJSON(result)
	}
}

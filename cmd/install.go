package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kennyg/kit/internal/engine"
	"github.com/kennyg/kit/internal/ui"
)

var installCmd = &cobra.Command{
	Use:     "install <path>",
	Aliases: []string{"add"},
	Short:   "Install a kit into a scope",
	Long: `Install the kit at the given path.

The install is a single transaction: artifacts are copied (or symlinked
with --dev), hooks are merged into the scope's settings, and an install
record is written. Any failure rolls the scope back to its prior state.

Examples:
  kit install ./my-kit                 # user scope
  kit install ./my-kit --project       # project scope
  kit install ./my-kit --dev           # symlink artifacts to the source
  kit install ./my-kit --force         # overwrite colliding artifact names`,
	Args: cobra.ExactArgs(1),
	Run:  runInstall,
}

var (
	installUser    bool
	installProject bool
	installForce   bool
	installDev     bool
	installJSON    bool
)

func init() {
	installCmd.Flags().BoolVar(&installUser, "user", false, "Install into the user scope (default)")
	installCmd.Flags().BoolVar(&installProject, "project", false, "Install into the project scope")
	installCmd.Flags().BoolVar(&installProject, "local", false, "Alias for --project")
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "Overwrite artifacts owned by another kit")
	installCmd.Flags().BoolVar(&installDev, "dev", false, "Dev mode: symlink artifacts back to the kit source")
	installCmd.Flags().BoolVar(&installJSON, "json", false, "Emit the result as JSON on stdout")
	installCmd.Flags().MarkHidden("local")
}

func runInstall(cmd *cobra.Command, args []string) {
	paths, err := resolveScopeFlags(installUser, installProject)
	if err != nil {
		exitWithError(err.Error())
	}

	out := humanOut(installJSON)

	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.Title.Render("  Installing into "+string(paths.Scope)+" scope"))
	fmt.Fprintln(out)

	eng := engine.New(paths)
	result, err := eng.Install(args[0], engine.InstallOptions{
		Force:   installForce,
		DevMode: installDev,
	})
	if err != nil {
		var conflict *engine.ConflictError
		if errors.As(err, &conflict) {
			fmt.Fprintln(out, ui.ErrorLine("Conflicting artifact names:"))
			for _, c := range conflict.Collisions {
				fmt.Fprintf(out, "    %s %s (owned by %s)\n", getBadge(c.Type), c.Name, c.Owner)
			}
			fmt.Fprintln(out, ui.Muted.Render("    Use --force to overwrite."))
		}
		exitWithError(err.Error())
	}

	for _, f := range result.Files {
		switch f.Status {
		case engine.StatusSymlinked:
			fmt.Fprintln(out, ui.InfoLine("linked "+f.Path))
		case engine.StatusCopiedFallback:
			fmt.Fprintln(out, ui.WarningLine("copied "+f.Path+" (symlink failed)"))
		default:
			fmt.Fprintln(out, ui.SuccessLine("copied "+f.Path))
		}
	}
	for _, w := range result.Warnings {
		fmt.Fprintln(out, ui.WarningLine(w))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.Success.Render(fmt.Sprintf("  Installed %s@%s (%d artifacts, %d hooks).",
		result.Kit, result.Version, result.ArtifactsInstalled, result.HooksInstalled)))
	fmt.Fprintln(out)

	if installJSON {
		emitJSON(result)
	}
}

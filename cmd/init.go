package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kennyg/kit/internal/scope"
	"github.com/kennyg/kit/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a project-local scope",
	Long: `Prepare the current project for project-scoped kit installs.

Creates the .kit/ directory with its artifact subdirectories. Kits
installed with --project land here and shadow user-scope kits of the
same name.`,
	Run: runInit,
}

func runInit(cmd *cobra.Command, args []string) {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Println()
	fmt.Println(ui.Title.Render("  Initializing project scope..."))
	fmt.Println()

	gitDir := filepath.Join(cwd, ".git")
	if _, err := os.Stat(gitDir); os.IsNotExist(err) {
		fmt.Println(ui.Warning.Render("  Warning: not a git repository; scope discovery will rely on .kit/ alone."))
		fmt.Println()
	}

	paths := scope.ForProjectAt(cwd)
	if paths.Exists() {
		fmt.Println(ui.Info.Render("  Project scope already initialized at " + paths.Root))
		fmt.Println()
		return
	}

	if err := paths.EnsureDirs(); err != nil {
		exitWithError(fmt.Sprintf("failed to create %s: %v", paths.Root, err))
	}

	fmt.Println(ui.Success.Render("  Created " + paths.Root))
	fmt.Println(ui.Muted.Render("  Install project-scoped kits with `kit install <path> --project`."))
	fmt.Println()
}

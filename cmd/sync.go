package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kennyg/kit/internal/engine"
	"github.com/kennyg/kit/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh dev-mode kits from their sources",
	Long: `Sync every dev-mode-installed kit with its source directory.

Symlinked files are already live views of the source and are skipped, so
local edits through the link are never reverted. Files that fell back to
copies are refreshed when the source changed.`,
	Run: runSync,
}

var (
	syncProject bool
	syncJSON    bool
)

func init() {
	syncCmd.Flags().BoolVar(&syncProject, "project", false, "Sync the project scope")
	syncCmd.Flags().BoolVar(&syncJSON, "json", false, "Emit the result as JSON on stdout")
}

func runSync(cmd *cobra.Command, args []string) {
	paths, err := resolveScope(syncProject)
	if err != nil {
		exitWithError(err.Error())
	}

	out := humanOut(syncJSON)

	eng := engine.New(paths)
	result, err := eng.Sync()
	if err != nil {
		exitWithError(err.Error())
	}

	if len(result.Kits) == 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.Muted.Render("  No dev-mode kits installed. Nothing to sync."))
		fmt.Fprintln(out)
		if syncJSON {
			emitJSON(result)
		}
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.Title.Render("  Syncing dev-mode kits..."))
	fmt.Fprintln(out)

	var refreshed, skipped, unchanged int
	for _, k := range result.Kits {
		fmt.Fprintf(out, "  %s\n", ui.Highlight.Render(k.Kit))
		for _, f := range k.Files {
			switch f.Status {
			case engine.StatusSkippedSymlink:
				skipped++
				fmt.Fprintln(out, ui.Muted.Render("    ↷ skipped (symlinked) "+f.Path))
			case engine.StatusRefreshed:
				refreshed++
				fmt.Fprintln(out, ui.SuccessLine("refreshed "+f.Path))
			case engine.StatusUnchanged:
				unchanged++
				fmt.Fprintln(out, ui.Muted.Render("    ✓ up to date "+f.Path))
			}
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.Divider(50))
	fmt.Fprintln(out, ui.Success.Render(fmt.Sprintf(
		"  %d refreshed, %d unchanged, %d symlinked (skipped).", refreshed, unchanged, skipped)))
	fmt.Fprintln(out)

	if syncJSON {
		emitJSON(result)
	}
}

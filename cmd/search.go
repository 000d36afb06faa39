package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kennyg/kit/internal/scope"
	"github.com/kennyg/kit/internal/search"
	"github.com/kennyg/kit/internal/ui"
)

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Aliases: []string{"find"},
	Short:   "Search installed artifacts by keyword",
	Long: `Search the names and descriptions of installed artifacts across both
scopes. The index is rebuilt automatically when artifacts change.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSearch,
}

var searchJSON bool

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Emit results as JSON on stdout")
}

// scopedResult carries a match together with the scope it was found in.
type scopedResult struct {
	search.Result
	Scope scope.Scope `json:"scope"`
}

func runSearch(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")

	var all []scopedResult
	if projPaths, err := scope.ForProject(); err == nil && projPaths.Exists() {
		all = append(all, searchScope(projPaths, query)...)
	}
	userPaths, err := scope.ForUser()
	if err != nil {
		exitWithError(err.Error())
	}
	if userPaths.Exists() {
		all = append(all, searchScope(userPaths, query)...)
	}

	if searchJSON {
		emitJSON(all)
		return
	}

	if len(all) == 0 {
		fmt.Println()
		fmt.Println(ui.Muted.Render(fmt.Sprintf("  No artifacts match %q.", query)))
		fmt.Println()
		return
	}

	fmt.Println()
	fmt.Println(ui.SectionHeader(fmt.Sprintf("Matches for %q", query)))
	fmt.Println()
	for _, r := range all {
		owner := ""
		if r.Entry.Kit != "" {
			owner = ui.Muted.Render(" (" + r.Entry.Kit + ")")
		}
		fmt.Printf("  %s %s%s %s\n",
			getBadge(r.Entry.Type),
			ui.Highlight.Render(r.Entry.Name),
			owner,
			ui.Muted.Render(string(r.Scope)))
		if r.Entry.Description != "" {
			fmt.Println(ui.Muted.Render("    " + ui.Truncate(r.Entry.Description, 76)))
		}
	}
	fmt.Println()
}

func searchScope(p *scope.Paths, query string) []scopedResult {
	idx, err := search.Ensure(p)
	if err != nil {
		return nil
	}
	results := search.Search(idx, query)
	out := make([]scopedResult, 0, len(results))
	for _, r := range results {
		out = append(out, scopedResult{Result: r, Scope: p.Scope})
	}
	return out
}

package search

import (
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
	cmdpkg "github.com/Paintersrp/kf/pkg/cmd"
	"github.com/Paintersrp/kf/pkg/shared/flags"
)

var writeClipboard = clipboard.WriteAll

func NewCmdSearch(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search [query]...",
		Aliases: []string{"s"},
		Short:   "Search for files and directories, ranked.",
		Long: heredoc.Doc(`
			Search a directory tree or a tag scope and print the matches, best
			first. Query terms fuzzy-match names, ".ext" filters by extension,
			a quoted phrase must appear verbatim, and -f/-d keep only files or
			directories.

			Examples:
			  kf search main .rs
			  kf search --tag work --tag rust "read me"
			  kf search --root ~/projects -d src --limit 10
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := cmdpkg.ResolveScope(cmd, s, "")
			if err != nil {
				return err
			}
			limit, err := flags.HandleLimit(cmd)
			if err != nil {
				return err
			}

			results, stats, err := s.Engine.Collect(
				cmd.Context(),
				strings.Join(args, " "),
				scope,
				limit,
			)
			if err != nil {
				return err
			}

			for _, r := range results {
				if r.IsDir {
					cmd.Println(r.Path + string(os.PathSeparator))
					continue
				}
				cmd.Println(r.Path)
			}

			if stats.DroppedDirs > 0 {
				cmd.PrintErrf(
					"warning: %d directories were dropped; raise queue_cap to search them\n",
					stats.DroppedDirs,
				)
			}
			for _, pe := range stats.Errors {
				cmd.PrintErrf("warning: %s: %v\n", pe.Path, pe.Err)
			}

			copyFlag, err := flags.HandleCopy(cmd)
			if err != nil {
				return err
			}
			if copyFlag && len(results) > 0 {
				if err := writeClipboard(results[0].Path); err != nil {
					return fmt.Errorf("copying %s: %w", results[0].Path, err)
				}
				cmd.PrintErrf("Copied %s\n", results[0].Path)
			}

			return nil
		},
	}

	flags.AddScope(cmd)
	flags.AddLimit(cmd)
	flags.AddCopy(cmd)

	return cmd
}
